package formulakit

import (
	"github.com/randalmurphal/formulakit/pkg/formulakit/cache"
)

// Default resource limits. They bound the work done for a single formula.
const (
	DefaultMaxLength = 4096
	DefaultMaxTokens = 1024
)

// Engine validates and evaluates formulas.
//
// An Engine holds only configuration and an optional program cache.
// It is safe for concurrent use.
type Engine struct {
	maxLength int
	maxTokens int
	unary     bool
	programs  *cache.Cache[string, *Program]
}

// New creates an Engine with the given options.
//
// Default configuration:
//   - MaxLength: 4096 bytes
//   - MaxTokens: 1024
//   - UnaryOperators: enabled
//   - Cache: disabled
func New(opts ...Option) *Engine {
	e := &Engine{
		maxLength: DefaultMaxLength,
		maxTokens: DefaultMaxTokens,
		unary:     true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate computes the value of formula with the given variable bindings.
//
// Without a cache this is Tokenize, ToRPN, EvalRPN in sequence. With a
// cache the formula is compiled once and bound on every call; both paths
// return the same values and the same error kinds.
//
// Infinity and NaN are valid results, not errors.
func (e *Engine) Evaluate(formula string, variables map[string]float64) (float64, error) {
	if e.programs != nil {
		p, err := e.Compile(formula)
		if err != nil {
			return 0, err
		}
		return p.Eval(variables)
	}

	tokens, err := e.Tokenize(formula, variables)
	if err != nil {
		return 0, err
	}
	return EvalRPN(ToRPN(tokens))
}

// Compile lexes and converts formula into a reusable Program whose
// variables are resolved at evaluation time.
func (e *Engine) Compile(formula string) (*Program, error) {
	if e.programs != nil {
		if p, ok := e.programs.Get(formula); ok {
			return p, nil
		}
	}

	tokens, err := e.Lex(formula)
	if err != nil {
		return nil, err
	}
	if e.programs == nil {
		return newProgram(formula, tokens), nil
	}
	// Concurrent compilations of one formula all return the first Program stored.
	return e.programs.GetOrCreate(formula, func() *Program {
		return newProgram(formula, tokens)
	}), nil
}

// CachedPrograms returns the number of compiled programs held by the cache.
func (e *Engine) CachedPrograms() int {
	if e.programs == nil {
		return 0
	}
	return e.programs.Len()
}

// defaultEngine backs the package-level functions.
var defaultEngine = New()

// Validate checks formula with the default engine. See Engine.Validate.
func Validate(formula string, availableKeys []string) error {
	return defaultEngine.Validate(formula, availableKeys)
}

// Evaluate computes formula with the default engine. See Engine.Evaluate.
func Evaluate(formula string, variables map[string]float64) (float64, error) {
	return defaultEngine.Evaluate(formula, variables)
}

// Tokenize lexes formula with the default engine. See Engine.Tokenize.
func Tokenize(formula string, bindings map[string]float64) ([]Token, error) {
	return defaultEngine.Tokenize(formula, bindings)
}

// Lex lexes formula with the default engine. See Engine.Lex.
func Lex(formula string) ([]Token, error) {
	return defaultEngine.Lex(formula)
}

// Compile compiles formula with the default engine. See Engine.Compile.
func Compile(formula string) (*Program, error) {
	return defaultEngine.Compile(formula)
}
