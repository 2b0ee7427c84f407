package formulakit

import (
	"errors"
	"fmt"
)

// Sentinel errors for editor-time validation.
var (
	// ErrUnknownIdentifier indicates a formula names something that is neither
	// a whitelisted function nor an available variable key.
	ErrUnknownIdentifier = errors.New("unknown identifier")

	// ErrUnbalancedParentheses indicates a ')' without a matching '(' or a
	// '(' that is never closed.
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")
)

// Sentinel errors for evaluation.
var (
	// ErrUnknownVariable indicates an identifier that is neither a function
	// nor present in the variable bindings.
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrSyntax indicates a character outside the formula alphabet.
	ErrSyntax = errors.New("syntax error")

	// ErrMalformedExpression indicates a structurally broken expression:
	// missing operands, wrong argument counts, stray parentheses or leftover
	// values on the stack.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrFormulaTooLong indicates the formula exceeds the configured length.
	ErrFormulaTooLong = errors.New("formula too long")

	// ErrTooManyTokens indicates the formula exceeds the configured token count.
	ErrTooManyTokens = errors.New("too many tokens")
)

// IdentifierError names an identifier that could not be resolved.
type IdentifierError struct {
	// Name is the offending identifier as written in the formula.
	Name string
	// Pos is the byte offset of the identifier, or -1 when unknown.
	Pos int
	// Suggestion is the closest known name, empty if nothing is close.
	Suggestion string
	// Err is ErrUnknownIdentifier or ErrUnknownVariable.
	Err error
}

// Error implements the error interface.
func (e *IdentifierError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v %q (did you mean %q?)", e.Err, e.Name, e.Suggestion)
	}
	return fmt.Sprintf("%v %q", e.Err, e.Name)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *IdentifierError) Unwrap() error {
	return e.Err
}

// ParenError reports where parenthesis balancing failed.
type ParenError struct {
	// Pos is the offset in the whitespace-stripped formula of the first
	// unmatched ')', or the formula length when a '(' is left open.
	Pos int
	// Open is the nesting depth left over at the end of the formula.
	Open int
}

// Error implements the error interface.
func (e *ParenError) Error() string {
	if e.Open > 0 {
		return fmt.Sprintf("%v: %d unclosed '('", ErrUnbalancedParentheses, e.Open)
	}
	return fmt.Sprintf("%v: unexpected ')' at %d", ErrUnbalancedParentheses, e.Pos)
}

// Unwrap returns ErrUnbalancedParentheses for errors.Is support.
func (e *ParenError) Unwrap() error {
	return ErrUnbalancedParentheses
}

// SyntaxError reports a character the tokenizer does not accept.
type SyntaxError struct {
	Pos  int
	Char rune
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v: unexpected %q at %d", ErrSyntax, e.Char, e.Pos)
}

// Unwrap returns ErrSyntax for errors.Is support.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// MalformedError describes why an RPN sequence could not be reduced to a
// single value.
type MalformedError struct {
	// Token is the text of the token being evaluated, empty at end of input.
	Token string
	// Pos is the source offset of Token, or -1.
	Pos int
	// Reason is a short human readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%v: %s at %q (pos %d)", ErrMalformedExpression, e.Reason, e.Token, e.Pos)
	}
	return fmt.Sprintf("%v: %s", ErrMalformedExpression, e.Reason)
}

// Unwrap returns ErrMalformedExpression for errors.Is support.
func (e *MalformedError) Unwrap() error {
	return ErrMalformedExpression
}

// LimitError reports a formula that exceeds a resource limit.
type LimitError struct {
	Limit  int
	Actual int
	// Err is ErrFormulaTooLong or ErrTooManyTokens.
	Err error
}

// Error implements the error interface.
func (e *LimitError) Error() string {
	return fmt.Sprintf("%v: %d exceeds limit %d", e.Err, e.Actual, e.Limit)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *LimitError) Unwrap() error {
	return e.Err
}

// ErrorKind returns a short stable label for the failure class of err,
// suitable for log fields and metric attributes. It returns "" for nil and
// "other" for errors that did not come from this package.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownIdentifier):
		return "unknown_identifier"
	case errors.Is(err, ErrUnknownVariable):
		return "unknown_variable"
	case errors.Is(err, ErrUnbalancedParentheses):
		return "unbalanced_parentheses"
	case errors.Is(err, ErrSyntax):
		return "syntax"
	case errors.Is(err, ErrMalformedExpression):
		return "malformed_expression"
	case errors.Is(err, ErrFormulaTooLong), errors.Is(err, ErrTooManyTokens):
		return "limit"
	default:
		return "other"
	}
}
