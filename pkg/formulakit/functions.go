package formulakit

import (
	"math"
	"sort"
)

// function is a whitelisted callable. Exactly one of unary or binary is set.
type function struct {
	arity  int
	unary  func(x float64) float64
	binary func(a, b float64) float64
}

// functions is the closed whitelist. It is never modified after init and
// there is no way to register more entries: a formula can only ever call
// what is listed here.
var functions = map[string]function{
	"round": {arity: 1, unary: math.Round},
	"floor": {arity: 1, unary: math.Floor},
	"ceil":  {arity: 1, unary: math.Ceil},
	"abs":   {arity: 1, unary: math.Abs},
	"sqrt":  {arity: 1, unary: math.Sqrt},
	"min":   {arity: 2, binary: math.Min},
	"max":   {arity: 2, binary: math.Max},
	"pow":   {arity: 2, binary: math.Pow},
}

// IsFunction reports whether name is a whitelisted function.
func IsFunction(name string) bool {
	_, ok := functions[name]
	return ok
}

// Arity returns the number of arguments a whitelisted function takes,
// or 0 if name is not a function.
func Arity(name string) int {
	return functions[name].arity
}

// Functions returns the whitelisted function names in sorted order.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyBinary computes a <op> b for the four arithmetic operators.
// Division follows IEEE-754: x/0 is ±Inf and 0/0 is NaN.
func applyBinary(op string, a, b float64) (float64, bool) {
	switch op {
	case "+":
		return a + b, true
	case "-":
		return a - b, true
	case "*":
		return a * b, true
	case "/":
		return a / b, true
	default:
		return 0, false
	}
}
