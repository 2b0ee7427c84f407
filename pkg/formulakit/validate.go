package formulakit

import (
	"regexp"
	"strings"
	"unicode"
)

// identPattern finds identifier-shaped words. Digits glued to the front of a
// word ("2abc") suppress the match, the same way a word boundary would in
// the editor's highlighting.
var identPattern = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\b`)

// Validate performs the editor-time check of a formula.
//
// It only verifies that every identifier is a whitelisted function or one of
// availableKeys, and that parentheses balance. It does not check operator
// placement, argument counts or numeric validity, so a formula such as
// "1 +" passes Validate and still fails Evaluate. Callers must not treat a
// nil result as a guarantee that evaluation succeeds.
//
// Offsets reported in errors refer to the formula with whitespace removed.
func (e *Engine) Validate(formula string, availableKeys []string) error {
	if len(formula) > e.maxLength {
		return &LimitError{Limit: e.maxLength, Actual: len(formula), Err: ErrFormulaTooLong}
	}

	stripped := stripSpace(formula)

	known := make(map[string]struct{}, len(availableKeys))
	for _, k := range availableKeys {
		known[k] = struct{}{}
	}
	for _, loc := range identPattern.FindAllStringIndex(stripped, -1) {
		name := stripped[loc[0]:loc[1]]
		if IsFunction(name) {
			continue
		}
		if _, ok := known[name]; ok {
			continue
		}
		return &IdentifierError{
			Name:       name,
			Pos:        loc[0],
			Suggestion: suggest(name, withFunctions(availableKeys)),
			Err:        ErrUnknownIdentifier,
		}
	}

	depth := 0
	for i, r := range stripped {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return &ParenError{Pos: i}
			}
		}
	}
	if depth != 0 {
		return &ParenError{Pos: len(stripped), Open: depth}
	}
	return nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
