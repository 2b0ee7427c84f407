package formulakit

import (
	"github.com/randalmurphal/formulakit/pkg/formulakit/cache"
)

// Option configures an Engine.
type Option func(*Engine)

// WithMaxLength sets the maximum formula length in bytes.
// Default: 4096. Non-positive values are ignored.
func WithMaxLength(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxLength = n
		}
	}
}

// WithMaxTokens sets the maximum number of tokens in a formula.
// Default: 1024. Non-positive values are ignored.
func WithMaxTokens(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// WithUnaryOperators enables or disables prefix signs.
//
// Default: true. When disabled, a leading '-' is lexed as a binary operator
// with no left operand, so "-5 + x" fails evaluation as malformed.
//
// Example:
//
//	e := formulakit.New(formulakit.WithUnaryOperators(false))
//	_, err := e.Evaluate("-5 + x", map[string]float64{"x": 1})
//	// errors.Is(err, formulakit.ErrMalformedExpression) == true
func WithUnaryOperators(enabled bool) Option {
	return func(e *Engine) {
		e.unary = enabled
	}
}

// WithCache keeps up to size compiled programs keyed by formula text, so
// repeated evaluations skip lexing and conversion. A size of zero or less
// keeps every program ever compiled.
//
// Example:
//
//	e := formulakit.New(formulakit.WithCache(256))
func WithCache(size int) Option {
	return func(e *Engine) {
		e.programs = cache.New[string, *Program](size)
	}
}
