package formulakit

import (
	"testing"

	"github.com/expr-lang/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEvaluate_MatchesExprLang cross-checks plain arithmetic against an
// independent expression engine. Only the operators both languages share
// are used.
func TestEvaluate_MatchesExprLang(t *testing.T) {
	vars := map[string]float64{"a": 7.5, "b": 2, "c": 4.25}
	env := map[string]any{}
	for k, v := range vars {
		env[k] = v
	}

	formulas := []string{
		"a + b * c",
		"(a + b) * c",
		"a - b - c",
		"a / b / c",
		"a * (b - c) / (a + 1)",
		"a - (b - c)",
		"((a))",
		"10 - 3 - 2",
		"2 + 3 * 4",
		"-a + b",
		"a * -b",
		"1.5 * a - c / 0.25",
	}

	for _, formula := range formulas {
		t.Run(formula, func(t *testing.T) {
			out, err := expr.Eval(formula, env)
			require.NoError(t, err)

			var want float64
			switch v := out.(type) {
			case int:
				want = float64(v)
			case float64:
				want = v
			default:
				t.Fatalf("unexpected oracle result type %T", out)
			}

			got, err := Evaluate(formula, vars)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-9)
		})
	}
}
