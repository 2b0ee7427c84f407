package formulakit

import (
	"strconv"
)

// Kind classifies a Token.
type Kind int

const (
	// KindNumber is a numeric literal or an already substituted variable.
	KindNumber Kind = iota + 1
	// KindVariable is a symbolic variable reference. Only Lex produces it.
	KindVariable
	// KindFunction is a whitelisted function name.
	KindFunction
	// KindOperator is a binary operator: + - * /.
	KindOperator
	// KindUnary is a prefix sign: - or +.
	KindUnary
	// KindLeftParen is '('.
	KindLeftParen
	// KindRightParen is ')'.
	KindRightParen
	// KindComma separates function arguments.
	KindComma
	// KindInvalid marks a place where ToRPN found a missing operator or an
	// empty function argument. EvalRPN rejects it.
	KindInvalid
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	case KindOperator:
		return "operator"
	case KindUnary:
		return "unary"
	case KindLeftParen:
		return "lparen"
	case KindRightParen:
		return "rparen"
	case KindComma:
		return "comma"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Token is a single lexical element of a formula.
// Tokens are values; nothing retains them across calls.
type Token struct {
	Kind Kind
	// Text is the source text. For substituted variables it is the
	// variable name, so errors can still point at what the author wrote.
	Text string
	// Value holds the number for KindNumber tokens.
	Value float64
	// Pos is the byte offset of the token in the formula.
	Pos int
	// Argc is the argument count of a function call, set by ToRPN.
	Argc int

	reason string // why a KindInvalid token was emitted
}

// String renders the token for debugging and test failure output.
func (t Token) String() string {
	switch t.Kind {
	case KindNumber:
		return strconv.FormatFloat(t.Value, 'g', -1, 64)
	case KindFunction:
		if t.Argc > 0 {
			return t.Text + "/" + strconv.Itoa(t.Argc)
		}
		return t.Text
	case KindUnary:
		return "u" + t.Text
	case KindInvalid:
		return "!" + t.Text
	default:
		return t.Text
	}
}

// Binary operator precedences. Unary signs bind tighter than any binary
// operator.
const (
	precAdditive       = 1
	precMultiplicative = 2
	precUnary          = 3
)

// precedence returns the binding strength of an operator token, or 0 for
// anything that is not an operator.
func precedence(t Token) int {
	switch t.Kind {
	case KindUnary:
		return precUnary
	case KindOperator:
		switch t.Text {
		case "*", "/":
			return precMultiplicative
		case "+", "-":
			return precAdditive
		}
	}
	return 0
}

func isOperator(t Token) bool {
	return t.Kind == KindOperator || t.Kind == KindUnary
}
