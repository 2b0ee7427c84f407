// Package observability provides logging, metrics and tracing for
// formula evaluation.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"math"

	"github.com/randalmurphal/formulakit/pkg/formulakit"
)

// EnrichLogger adds formula context to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "3f0c...", "BMI")
//	enriched.Info("scoring") // includes formula_id and formula_name
func EnrichLogger(logger *slog.Logger, formulaID, name string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("formula_id", formulaID),
		slog.String("formula_name", name),
	)
}

// LogEvaluate logs a successful evaluation. Non-finite results are logged
// at warn level since they usually mean an input is out of range.
func LogEvaluate(logger *slog.Logger, formulaID string, value float64, durationMs float64) {
	if logger == nil {
		return
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		logger.Warn("formula produced non-finite result",
			slog.String("formula_id", formulaID),
			slog.Float64("value", value),
			slog.Float64("duration_ms", durationMs),
		)
		return
	}
	logger.Debug("formula evaluated",
		slog.String("formula_id", formulaID),
		slog.Float64("value", value),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvaluateError logs a failed evaluation.
func LogEvaluateError(logger *slog.Logger, formulaID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("formula evaluation failed",
		slog.String("formula_id", formulaID),
		slog.String("kind", formulakit.ErrorKind(err)),
		slog.String("error", err.Error()),
	)
}

// LogValidateError logs a formula rejected by validation. Rejections are
// expected while an author is typing, so they are logged at debug level.
func LogValidateError(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Debug("formula rejected",
		slog.String("kind", formulakit.ErrorKind(err)),
		slog.String("error", err.Error()),
	)
}

// LogDefinitionSaved logs a persisted formula definition.
func LogDefinitionSaved(logger *slog.Logger, formulaID, name string) {
	if logger == nil {
		return
	}
	logger.Info("formula definition saved",
		slog.String("formula_id", formulaID),
		slog.String("formula_name", name),
	)
}

// LogStoreError logs a storage failure.
func LogStoreError(logger *slog.Logger, op, formulaID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("formula store failed",
		slog.String("operation", op),
		slog.String("formula_id", formulaID),
		slog.String("error", err.Error()),
	)
}
