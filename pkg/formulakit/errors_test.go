package formulakit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierError(t *testing.T) {
	err := &IdentifierError{Name: "wieght", Suggestion: "weight", Err: ErrUnknownIdentifier}

	assert.Equal(t, `unknown identifier "wieght" (did you mean "weight"?)`, err.Error())
	assert.True(t, errors.Is(err, ErrUnknownIdentifier))
	assert.False(t, errors.Is(err, ErrUnknownVariable))

	plain := &IdentifierError{Name: "x", Err: ErrUnknownVariable}
	assert.Equal(t, `unknown variable "x"`, plain.Error())
}

func TestParenError(t *testing.T) {
	open := &ParenError{Pos: 5, Open: 2}
	assert.Equal(t, "unbalanced parentheses: 2 unclosed '('", open.Error())

	stray := &ParenError{Pos: 3}
	assert.Equal(t, "unbalanced parentheses: unexpected ')' at 3", stray.Error())

	assert.True(t, errors.Is(stray, ErrUnbalancedParentheses))
}

func TestSyntaxError(t *testing.T) {
	err := &SyntaxError{Pos: 2, Char: '#'}
	assert.Equal(t, `syntax error: unexpected '#' at 2`, err.Error())
	assert.True(t, errors.Is(err, ErrSyntax))
}

func TestMalformedError(t *testing.T) {
	withToken := &MalformedError{Token: "+", Pos: 2, Reason: "operator needs two operands"}
	assert.Equal(t, `malformed expression: operator needs two operands at "+" (pos 2)`, withToken.Error())

	atEnd := &MalformedError{Pos: -1, Reason: "empty expression"}
	assert.Equal(t, "malformed expression: empty expression", atEnd.Error())

	assert.True(t, errors.Is(atEnd, ErrMalformedExpression))
}

func TestLimitError(t *testing.T) {
	err := &LimitError{Limit: 10, Actual: 12, Err: ErrFormulaTooLong}
	assert.Equal(t, "formula too long: 12 exceeds limit 10", err.Error())
	assert.True(t, errors.Is(err, ErrFormulaTooLong))
	assert.False(t, errors.Is(err, ErrTooManyTokens))
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&IdentifierError{Name: "x", Err: ErrUnknownIdentifier}, "unknown_identifier"},
		{&IdentifierError{Name: "x", Err: ErrUnknownVariable}, "unknown_variable"},
		{&ParenError{Pos: 1}, "unbalanced_parentheses"},
		{&SyntaxError{Pos: 0, Char: '#'}, "syntax"},
		{&MalformedError{Pos: -1, Reason: "empty expression"}, "malformed_expression"},
		{&LimitError{Err: ErrTooManyTokens}, "limit"},
		{errors.New("disk full"), "other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorKind(tt.err))
	}
}
