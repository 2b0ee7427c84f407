package formulakit

import (
	"errors"
	"regexp"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// tokenPattern matches, in priority order: a decimal number without sign or
// exponent, an identifier, or a single punctuation character.
var tokenPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)|([A-Za-z_][A-Za-z0-9_]*)|([-+*/(),])`)

// Lex splits a formula into tokens without resolving variables.
// Identifiers that are not whitelisted functions become KindVariable tokens.
//
// Any character outside numbers, identifiers, "+-*/(),", and whitespace is
// a *SyntaxError.
func (e *Engine) Lex(formula string) ([]Token, error) {
	if len(formula) > e.maxLength {
		return nil, &LimitError{Limit: e.maxLength, Actual: len(formula), Err: ErrFormulaTooLong}
	}

	matches := tokenPattern.FindAllStringSubmatchIndex(formula, -1)
	tokens := make([]Token, 0, len(matches))
	last := 0
	for _, m := range matches {
		if err := checkGap(formula, last, m[0]); err != nil {
			return nil, err
		}
		last = m[1]

		text := formula[m[0]:m[1]]
		tok := Token{Text: text, Pos: m[0]}
		switch {
		case m[2] >= 0:
			v, err := strconv.ParseFloat(text, 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return nil, &SyntaxError{Pos: m[0], Char: rune(text[0])}
			}
			tok.Kind = KindNumber
			tok.Value = v
		case m[4] >= 0:
			if IsFunction(text) {
				tok.Kind = KindFunction
			} else {
				tok.Kind = KindVariable
			}
		default:
			tok.Kind = e.punctuationKind(text, tokens)
		}

		tokens = append(tokens, tok)
		if len(tokens) > e.maxTokens {
			return nil, &LimitError{Limit: e.maxTokens, Actual: len(tokens), Err: ErrTooManyTokens}
		}
	}
	if err := checkGap(formula, last, len(formula)); err != nil {
		return nil, err
	}
	return tokens, nil
}

// Tokenize lexes a formula and substitutes every variable with its bound
// value. The result contains no KindVariable tokens: each identifier is
// either a function or a number. Substituted tokens keep the variable name
// in Text.
func (e *Engine) Tokenize(formula string, bindings map[string]float64) ([]Token, error) {
	tokens, err := e.Lex(formula)
	if err != nil {
		return nil, err
	}
	for i, tok := range tokens {
		if tok.Kind != KindVariable {
			continue
		}
		v, ok := bindings[tok.Text]
		if !ok {
			return nil, unknownVariable(tok, bindings)
		}
		tokens[i].Kind = KindNumber
		tokens[i].Value = v
	}
	return tokens, nil
}

// punctuationKind classifies a single character token. A sign is unary
// when it starts the formula or follows an operator, '(' or ','.
func (e *Engine) punctuationKind(text string, prev []Token) Kind {
	switch text {
	case "(":
		return KindLeftParen
	case ")":
		return KindRightParen
	case ",":
		return KindComma
	}
	if e.unary && (text == "-" || text == "+") && startsOperand(prev) {
		return KindUnary
	}
	return KindOperator
}

func startsOperand(prev []Token) bool {
	if len(prev) == 0 {
		return true
	}
	switch prev[len(prev)-1].Kind {
	case KindOperator, KindUnary, KindLeftParen, KindComma:
		return true
	}
	return false
}

// checkGap reports the first non-space character in formula[from:to].
func checkGap(formula string, from, to int) error {
	for i := from; i < to; {
		r, size := utf8.DecodeRuneInString(formula[i:to])
		if !unicode.IsSpace(r) {
			return &SyntaxError{Pos: i, Char: r}
		}
		i += size
	}
	return nil
}

func unknownVariable(tok Token, bindings map[string]float64) error {
	return &IdentifierError{
		Name:       tok.Text,
		Pos:        tok.Pos,
		Suggestion: suggest(tok.Text, bindingNames(bindings)),
		Err:        ErrUnknownVariable,
	}
}
