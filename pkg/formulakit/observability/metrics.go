package observability

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/randalmurphal/formulakit/pkg/formulakit"
)

// MetricsRecorder records formula metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEvaluation records one evaluation, its latency, and its outcome.
	RecordEvaluation(ctx context.Context, formulaID string, duration time.Duration, value float64, err error)

	// RecordValidation records one editor-time validation.
	RecordValidation(ctx context.Context, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	evaluations metric.Int64Counter
	errors      metric.Int64Counter
	nonFinite   metric.Int64Counter
	latency     metric.Float64Histogram
	validations metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("formulakit")

	evaluations, err := meter.Int64Counter("formulakit.evaluations",
		metric.WithDescription("Number of formula evaluations"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter("formulakit.evaluation.errors",
		metric.WithDescription("Number of failed formula evaluations"),
	)
	if err != nil {
		return nil, err
	}

	nonFinite, err := meter.Int64Counter("formulakit.evaluation.nonfinite",
		metric.WithDescription("Number of evaluations that produced NaN or Inf"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("formulakit.evaluation.latency_ms",
		metric.WithDescription("Formula evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	validations, err := meter.Int64Counter("formulakit.validations",
		metric.WithDescription("Number of editor-time formula validations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		evaluations: evaluations,
		errors:      errs,
		nonFinite:   nonFinite,
		latency:     latency,
		validations: validations,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses the global
// OpenTelemetry meter provider. If initialization fails, a no-op recorder
// is returned.
//
//	otel.SetMeterProvider(yourProvider)
//	recorder := observability.NewMetricsRecorder()
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEvaluation records an evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, formulaID string, duration time.Duration, value float64, err error) {
	attrs := metric.WithAttributes(
		attribute.String("formula_id", formulaID),
		attribute.Bool("success", err == nil),
	)
	m.evaluations.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("formula_id", formulaID),
			attribute.String("kind", formulakit.ErrorKind(err)),
		))
		return
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		m.nonFinite.Add(ctx, 1, metric.WithAttributes(attribute.String("formula_id", formulaID)))
	}
}

// RecordValidation records a validation.
func (m *otelMetrics) RecordValidation(ctx context.Context, err error) {
	m.validations.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("valid", err == nil),
		attribute.String("kind", formulakit.ErrorKind(err)),
	))
}
