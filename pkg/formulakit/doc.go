/*
Package formulakit evaluates clinical scoring formulas.

# Overview

formulakit implements a small arithmetic language for formulas written by
administrators and evaluated against numeric inputs entered by end users,
for example a body mass index:

	weight / pow(height, 2)

Formulas are never handed to an interpreter. They are lexed, converted to
postfix order and reduced on a numeric stack, and the only callable names
are the built-in function whitelist.

# Expression Syntax

	<expr>   := <term> (('+' | '-') <term>)*
	<term>   := <unary> (('*' | '/') <unary>)*
	<unary>  := ('-' | '+') <unary> | <atom>
	<atom>   := number | variable | <call> | '(' <expr> ')'
	<call>   := function '(' <expr> (',' <expr>)* ')'
	number   := digits ['.' digits]
	variable := [A-Za-z_][A-Za-z0-9_]*

Binary operators are left associative: 10-3-2 is (10-3)-2.

# Functions

	round(x)   floor(x)   ceil(x)   abs(x)   sqrt(x)
	min(a, b)  max(a, b)  pow(a, b)

The set is fixed. Calls with the wrong number of arguments, an empty
argument ("min(1,)") or two operands without an operator between them
("min(1 2,)") fail with ErrMalformedExpression.

# Numeric Semantics

All values are float64. Division by zero yields +Inf, -Inf or NaN and
sqrt of a negative number yields NaN; these are results, not errors, and
callers decide how to display them. round rounds half away from zero.

# Validation and Evaluation

Validate is the cheap editor-time check: every identifier must be a
function or a known key, and parentheses must balance.

	err := formulakit.Validate("weight / pow(height, 2)", []string{"weight", "height"})

Evaluate runs the full pipeline:

	v, err := formulakit.Evaluate("weight / pow(height, 2)", map[string]float64{
	    "weight": 70,
	    "height": 1.75,
	})
	// v ≈ 22.857

Validate does not check operator placement or argument counts, so a formula
can pass Validate and still fail Evaluate ("1 +", "min(1)").

# Pipeline

Evaluate is Tokenize, ToRPN and EvalRPN composed. Each stage is exported:

	tokens, err := formulakit.Tokenize("2 + 3 * x", map[string]float64{"x": 4})
	rpn := formulakit.ToRPN(tokens)   // 2 3 4 * +
	v, err := formulakit.EvalRPN(rpn) // 14

Compile keeps variables symbolic, producing a Program that can be evaluated
with many bindings. An Engine created WithCache reuses Programs per formula.

# Errors

Failures are returned, never panicked:

  - ErrUnknownIdentifier, ErrUnknownVariable (*IdentifierError)
  - ErrUnbalancedParentheses (*ParenError)
  - ErrSyntax (*SyntaxError)
  - ErrMalformedExpression (*MalformedError)
  - ErrFormulaTooLong, ErrTooManyTokens (*LimitError)

# Thread Safety

Engine and Program are safe for concurrent use. Identical formula and
bindings always produce identical results.
*/
package formulakit
