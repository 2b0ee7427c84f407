// Package scoring saves formula definitions and scores them against user
// inputs.
//
// A Scorer validates formulas before they are saved, so a stored
// definition always references only its own declared variables and the
// built-in functions. Scoring a definition requires a value for every
// declared variable; the formula result is returned as is, including NaN
// and ±Inf.
//
//	s := scoring.New(store.NewMemoryStore())
//	def, err := s.Define(ctx, store.Definition{
//	    Name:      "BMI",
//	    Formula:   "weight / pow(height, 2)",
//	    Variables: []store.Variable{{Key: "weight"}, {Key: "height"}},
//	})
//	res, err := s.Score(ctx, def.ID, map[string]float64{"weight": 70, "height": 1.75})
package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/formulakit/pkg/formulakit"
	"github.com/randalmurphal/formulakit/pkg/formulakit/observability"
	"github.com/randalmurphal/formulakit/pkg/formulakit/store"
)

// previewID labels evaluations of unsaved formulas in logs and metrics.
const previewID = "preview"

// Scorer is safe for concurrent use.
type Scorer struct {
	store   store.Store
	engine  *formulakit.Engine
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	now     func() time.Time
}

// Result is the outcome of scoring a saved definition.
type Result struct {
	DefinitionID string
	Name         string
	Value        float64
	// Finite is false when Value is NaN or ±Inf.
	Finite      bool
	Inputs      map[string]float64
	EvaluatedAt time.Time
}

// New creates a Scorer backed by st.
func New(st store.Store, opts ...Option) *Scorer {
	s := &Scorer{
		store:   st,
		engine:  formulakit.New(formulakit.WithCache(256)),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check validates formula against the given variable keys. It is the
// editor-time check run as an administrator types.
func (s *Scorer) Check(ctx context.Context, formula string, keys []string) error {
	ctx, span := s.spans.StartValidateSpan(ctx)
	err := s.engine.Validate(formula, keys)
	s.metrics.RecordValidation(ctx, err)
	if err != nil {
		observability.LogValidateError(s.logger, err)
	}
	s.spans.EndSpanWithError(span, err)
	return err
}

// Define validates and saves a definition. Formulas that fail Check or
// cannot be evaluated are never saved. An empty ID is replaced by a new UUID; redefining an existing ID
// keeps its creation time.
func (s *Scorer) Define(ctx context.Context, d store.Definition) (store.Definition, error) {
	if err := s.checkDefinition(d); err != nil {
		return store.Definition{}, err
	}
	if err := s.Check(ctx, d.Formula, d.Keys()); err != nil {
		return store.Definition{}, fmt.Errorf("define %q: %w", d.Name, err)
	}
	if err := s.dryRun(d); err != nil {
		observability.LogValidateError(s.logger, err)
		return store.Definition{}, fmt.Errorf("define %q: %w", d.Name, err)
	}

	now := s.now().UTC()
	if d.ID == "" {
		d.ID = uuid.NewString()
	} else if prev, err := s.store.Load(ctx, d.ID); err == nil {
		d.CreatedAt = prev.CreatedAt
	} else if !errors.Is(err, store.ErrNotFound) {
		observability.LogStoreError(s.logger, "load", d.ID, err)
		return store.Definition{}, err
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	if err := s.store.Save(ctx, d); err != nil {
		observability.LogStoreError(s.logger, "save", d.ID, err)
		return store.Definition{}, err
	}
	observability.LogDefinitionSaved(s.logger, d.ID, d.Name)
	return d, nil
}

// checkDefinition rejects definitions whose variables could never be
// referenced: each key must lex as a single variable and be unique.
func (s *Scorer) checkDefinition(d store.Definition) error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}
	seen := make(map[string]struct{}, len(d.Variables))
	for _, v := range d.Variables {
		toks, err := s.engine.Lex(v.Key)
		if err != nil || len(toks) != 1 || toks[0].Kind != formulakit.KindVariable || toks[0].Text != v.Key {
			return fmt.Errorf("%w: variable key %q is not an identifier", ErrInvalidDefinition, v.Key)
		}
		if _, dup := seen[v.Key]; dup {
			return fmt.Errorf("%w: duplicate variable key %q", ErrInvalidDefinition, v.Key)
		}
		seen[v.Key] = struct{}{}
	}
	return nil
}

// dryRun evaluates the formula with every declared variable bound to 1.
// Check only looks at names and parentheses; this rejects formulas such as
// "min(weight)" that fail for every input.
func (s *Scorer) dryRun(d store.Definition) error {
	vars := make(map[string]float64, len(d.Variables))
	for _, key := range d.Keys() {
		vars[key] = 1
	}
	_, err := s.engine.Evaluate(d.Formula, vars)
	return err
}

// Preview evaluates an unsaved formula, as in a live test panel.
func (s *Scorer) Preview(ctx context.Context, formula string, inputs map[string]float64) (float64, error) {
	return s.evaluate(ctx, s.logger, previewID, formula, inputs)
}

// Score loads the definition with the given ID and evaluates it. Every
// declared variable must be present in inputs; extra inputs are ignored
// unless the formula references them.
func (s *Scorer) Score(ctx context.Context, id string, inputs map[string]float64) (Result, error) {
	d, err := s.store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			observability.LogStoreError(s.logger, "load", id, err)
		}
		return Result{}, err
	}

	var missing []string
	for _, key := range d.Keys() {
		if _, ok := inputs[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Result{}, &MissingInputError{DefinitionID: id, Keys: missing}
	}

	logger := observability.EnrichLogger(s.logger, d.ID, d.Name)
	v, err := s.evaluate(ctx, logger, d.ID, d.Formula, inputs)
	if err != nil {
		return Result{}, err
	}
	return Result{
		DefinitionID: d.ID,
		Name:         d.Name,
		Value:        v,
		Finite:       !math.IsNaN(v) && !math.IsInf(v, 0),
		Inputs:       maps.Clone(inputs),
		EvaluatedAt:  s.now().UTC(),
	}, nil
}

// List returns every saved definition.
func (s *Scorer) List(ctx context.Context) ([]store.Definition, error) {
	return s.store.List(ctx)
}

func (s *Scorer) evaluate(ctx context.Context, logger *slog.Logger, id, formula string, inputs map[string]float64) (float64, error) {
	ctx, span := s.spans.StartEvaluateSpan(ctx, id)
	s.spans.AddSpanEvent(ctx, "inputs.bound", attribute.Int("count", len(inputs)))

	start := time.Now()
	v, err := s.engine.Evaluate(formula, inputs)
	elapsed := time.Since(start)

	s.metrics.RecordEvaluation(ctx, id, elapsed, v, err)
	if err != nil {
		observability.LogEvaluateError(logger, id, err)
	} else {
		observability.LogEvaluate(logger, id, v, float64(elapsed.Microseconds())/1000)
	}
	s.spans.EndSpanWithError(span, err)
	return v, err
}
