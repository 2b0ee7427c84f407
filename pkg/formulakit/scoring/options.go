package scoring

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/formulakit/pkg/formulakit"
	"github.com/randalmurphal/formulakit/pkg/formulakit/observability"
)

// Option configures a Scorer.
type Option func(*Scorer)

// WithEngine sets the formula engine.
// Default: an engine with a 256-entry program cache.
func WithEngine(e *formulakit.Engine) Option {
	return func(s *Scorer) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(s *Scorer) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithSpans sets the span manager.
// Default: observability.NoopSpanManager{}.
func WithSpans(sm observability.SpanManager) Option {
	return func(s *Scorer) {
		if sm != nil {
			s.spans = sm
		}
	}
}

// withClock overrides time.Now in tests.
func withClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}
