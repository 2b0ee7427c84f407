package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/formulakit/pkg/formulakit"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("formulakit")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartEvaluateSpan starts a span for one formula evaluation.
	StartEvaluateSpan(ctx context.Context, formulaID string) (context.Context, trace.Span)

	// StartValidateSpan starts a span for one editor-time validation.
	StartValidateSpan(ctx context.Context) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses the global OpenTelemetry
// tracer provider.
//
//	otel.SetTracerProvider(yourProvider)
//	spans := observability.NewSpanManager()
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartEvaluateSpan(ctx context.Context, formulaID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "formulakit.evaluate",
		trace.WithAttributes(attribute.String("formula.id", formulaID)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) StartValidateSpan(ctx context.Context) (context.Context, trace.Span) {
	return tracer.Start(ctx, "formulakit.validate",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError marks the span failed when err is non-nil, tagging the
// error kind, and ends it.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.SetAttributes(attribute.String("error.kind", formulakit.ErrorKind(err)))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
