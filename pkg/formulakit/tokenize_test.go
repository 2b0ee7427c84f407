package formulakit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenize_Numbers(t *testing.T) {
	tokens, err := Tokenize("2 + 3.5", nil)
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	assert.Equal(t, []Kind{KindNumber, KindOperator, KindNumber}, kinds(tokens))
	assert.Equal(t, 2.0, tokens[0].Value)
	assert.Equal(t, 3.5, tokens[2].Value)
	assert.Equal(t, 4, tokens[2].Pos)
}

func TestTokenize_SubstitutesVariables(t *testing.T) {
	tokens, err := Tokenize("weight / height", map[string]float64{"weight": 70, "height": 1.75})
	require.NoError(t, err)

	assert.Equal(t, []Kind{KindNumber, KindOperator, KindNumber}, kinds(tokens))
	assert.Equal(t, 70.0, tokens[0].Value)
	assert.Equal(t, "weight", tokens[0].Text)
	assert.Equal(t, 1.75, tokens[2].Value)
	assert.Equal(t, "height", tokens[2].Text)
}

func TestTokenize_Functions(t *testing.T) {
	tokens, err := Tokenize("pow(x, 2)", map[string]float64{"x": 3})
	require.NoError(t, err)

	assert.Equal(t,
		[]Kind{KindFunction, KindLeftParen, KindNumber, KindComma, KindNumber, KindRightParen},
		kinds(tokens))
}

func TestTokenize_FunctionNameBeatsBinding(t *testing.T) {
	tokens, err := Tokenize("min(1, 2)", map[string]float64{"min": 9})
	require.NoError(t, err)
	assert.Equal(t, KindFunction, tokens[0].Kind)
}

func TestTokenize_NoVariablesSurvive(t *testing.T) {
	vars := map[string]float64{"a": 1, "b": 2, "c": 3}
	tokens, err := Tokenize("a * (b + c) / max(a, c)", vars)
	require.NoError(t, err)

	for _, tok := range tokens {
		assert.NotEqual(t, KindVariable, tok.Kind, "token %v", tok)
	}
}

func TestTokenize_UnknownVariable(t *testing.T) {
	tests := []struct {
		name       string
		formula    string
		vars       map[string]float64
		wantName   string
		wantPos    int
		suggestion string
	}{
		{"unbound", "x + 1", nil, "x", 0, ""},
		{"second identifier", "a + bb", map[string]float64{"a": 1}, "bb", 4, ""},
		{"typo", "hieght * 2", map[string]float64{"height": 1.8}, "hieght", 0, "height"},
		{"exponent is not supported", "1e5", nil, "e5", 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.formula, tt.vars)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownVariable))

			var idErr *IdentifierError
			require.True(t, errors.As(err, &idErr))
			assert.Equal(t, tt.wantName, idErr.Name)
			assert.Equal(t, tt.wantPos, idErr.Pos)
			if tt.suggestion != "" {
				assert.Equal(t, tt.suggestion, idErr.Suggestion)
			}
		})
	}
}

func TestTokenize_SyntaxError(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		pos     int
		char    rune
	}{
		{"hash", "2 # 3", 2, '#'},
		{"caret", "2 ^ 3", 2, '^'},
		{"leading dot", ".5", 0, '.'},
		{"trailing dot", "5.", 1, '.'},
		{"trailing garbage", "2 $", 2, '$'},
		{"non ascii operator", "2 × 3", 2, '×'},
		{"code injection attempt", "x; os.Exit(1)", 1, ';'},
		{"string literal", `"1"`, 0, '"'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.formula, map[string]float64{"x": 1})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))

			var sErr *SyntaxError
			require.True(t, errors.As(err, &sErr))
			assert.Equal(t, tt.pos, sErr.Pos)
			assert.Equal(t, tt.char, sErr.Char)
		})
	}
}

func TestTokenize_Whitespace(t *testing.T) {
	tokens, err := Tokenize(" \t1\n+\r\n2 ", nil)
	require.NoError(t, err)
	assert.Len(t, tokens, 3)
}

func TestLex_UnarySigns(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		want    []Kind
	}{
		{"leading minus", "-5 + x", []Kind{KindUnary, KindNumber, KindOperator, KindVariable}},
		{"leading plus", "+5", []Kind{KindUnary, KindNumber}},
		{"after operator", "2 - -1", []Kind{KindNumber, KindOperator, KindUnary, KindNumber}},
		{"after paren", "(-1)", []Kind{KindLeftParen, KindUnary, KindNumber, KindRightParen}},
		{"after comma", "min(1, -2)", []Kind{KindFunction, KindLeftParen, KindNumber, KindComma, KindUnary, KindNumber, KindRightParen}},
		{"after close paren", "(1) - 2", []Kind{KindLeftParen, KindNumber, KindRightParen, KindOperator, KindNumber}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Lex(tt.formula)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kinds(tokens))
		})
	}
}

func TestLex_UnaryDisabled(t *testing.T) {
	e := New(WithUnaryOperators(false))

	tokens, err := e.Lex("-5 + x")
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindOperator, KindNumber, KindOperator, KindVariable}, kinds(tokens))
}

func TestLex_KeepsVariablesSymbolic(t *testing.T) {
	tokens, err := Lex("a + b")
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindVariable, KindOperator, KindVariable}, kinds(tokens))
	assert.Equal(t, "b", tokens[2].Text)
}

func TestLex_Limits(t *testing.T) {
	t.Run("too many tokens", func(t *testing.T) {
		e := New(WithMaxTokens(3))
		_, err := e.Lex("1+2+3")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTooManyTokens))

		var lErr *LimitError
		require.True(t, errors.As(err, &lErr))
		assert.Equal(t, 3, lErr.Limit)
	})

	t.Run("too long", func(t *testing.T) {
		e := New(WithMaxLength(4))
		_, err := e.Lex("1 + 2")
		assert.True(t, errors.Is(err, ErrFormulaTooLong))
	})

	t.Run("within limits", func(t *testing.T) {
		e := New(WithMaxTokens(5), WithMaxLength(5))
		tokens, err := e.Lex("1+2+3")
		require.NoError(t, err)
		assert.Len(t, tokens, 5)
	})
}
