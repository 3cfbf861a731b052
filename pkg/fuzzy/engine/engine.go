// Package engine implements a Mamdani fuzzy inference engine.
//
// An engine holds an ordered rule base, an aggregation t-conorm and a
// defuzzification method. Compose fires every rule for one crisp input vector
// and returns the aggregated output set as a value; Infer reduces that set to a
// crisp number. Nothing is retained between calls, so one engine can serve
// concurrent callers.
package engine

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/fuzzy/pkg/fuzzy/algebra"
	"github.com/cognicore/fuzzy/pkg/fuzzy/defuzz"
	"github.com/cognicore/fuzzy/pkg/fuzzy/grid"
	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/mf"
	"github.com/cognicore/fuzzy/pkg/fuzzy/rule"
)

// Engine is the inference surface exposed to callers.
// This interface allows swapping implementations (Mamdani today, Sugeno or a
// remote evaluator later).
type Engine interface {
	// Compose fires every rule for the crisp inputs and aggregates the
	// clipped consequents.
	Compose(inputs ...float64) (Composition, error)

	// Infer defuzzifies a composition sampled at the universe x.
	Infer(c Composition, x []float64) (float64, error)

	// ControlSurface sweeps Compose over the Cartesian grid of ranges.
	ControlSurface(ctx context.Context, ranges [][]float64) (*grid.Array, error)

	// InferenceSurface sweeps Compose and Infer over the grid of ranges.
	InferenceSurface(ctx context.Context, ranges [][]float64, universe []float64) (*grid.Array, error)

	// Method is the defuzzification method used by Infer.
	Method() defuzz.Method
}

// Composition is the outcome of one Compose call.
type Composition struct {
	// Aggregate is the combined output membership function.
	Aggregate mf.MembershipFunction
	// Rules holds the per-rule results in rule order.
	Rules []rule.Result
}

// Composed reports whether c came from a successful Compose.
func (c Composition) Composed() bool { return c.Aggregate != nil }

// Strength is the largest rule firing strength.
func (c Composition) Strength() float64 {
	if len(c.Rules) == 0 {
		return 0
	}
	s := make([]float64, len(c.Rules))
	for i, r := range c.Rules {
		s[i] = r.Strength
	}
	return floats.Max(s)
}

// ControlStrength is the degree sampled by the control surface: each rule
// contributes its smallest antecedent degree, whatever its own connectors and
// t-norm, and the largest contribution wins.
func (c Composition) ControlStrength() float64 {
	if len(c.Rules) == 0 {
		return 0
	}
	s := make([]float64, len(c.Rules))
	for i, r := range c.Rules {
		s[i] = floats.Min(r.DOM)
	}
	return floats.Max(s)
}

// Mamdani is the default Engine.
type Mamdani struct {
	rules     []*rule.Rule
	aggregate algebra.TCoNorm
	method    defuzz.Method

	log     *zap.Logger
	metrics *Metrics
	workers int
}

var _ Engine = (*Mamdani)(nil)

// Option configures a Mamdani engine.
type Option func(*Mamdani)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(m *Mamdani) {
		if l != nil {
			m.log = l
		}
	}
}

// WithMetrics records engine activity on mt.
func WithMetrics(mt *Metrics) Option {
	return func(m *Mamdani) { m.metrics = mt }
}

// WithWorkers sets how many goroutines sweep a surface. Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(m *Mamdani) {
		if n < 1 {
			n = 1
		}
		m.workers = n
	}
}

// New builds an engine over rules. The method is one of the names accepted by
// defuzz.Lookup.
func New(rules []*rule.Rule, aggregate algebra.TCoNorm, method string, opts ...Option) (*Mamdani, error) {
	if len(rules) == 0 {
		return nil, errors.Wrap(internalerr.ErrInvalidConfig, "engine: at least one rule is required")
	}
	for i, r := range rules {
		if r == nil {
			return nil, errors.Wrapf(internalerr.ErrInvalidConfig, "engine: rule %d is nil", i)
		}
	}
	if !aggregate.Valid() {
		return nil, errors.Wrapf(internalerr.ErrInvalidOperator, "engine: aggregate %s is not a t-conorm", aggregate)
	}
	dm, err := defuzz.Lookup(method)
	if err != nil {
		return nil, errors.Wrap(err, "engine")
	}

	m := &Mamdani{
		rules:     append([]*rule.Rule(nil), rules...),
		aggregate: aggregate,
		method:    dm,
		log:       zap.NewNop(),
		workers:   1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Rules returns the rule base in order.
func (m *Mamdani) Rules() []*rule.Rule { return append([]*rule.Rule(nil), m.rules...) }

// Aggregate returns the aggregation t-conorm.
func (m *Mamdani) Aggregate() algebra.TCoNorm { return m.aggregate }

// Method returns the defuzzification method.
func (m *Mamdani) Method() defuzz.Method { return m.method }

// Compose evaluates every rule with the same crisp inputs and folds the
// clipped consequents left to right with the aggregation t-conorm.
func (m *Mamdani) Compose(inputs ...float64) (Composition, error) {
	c, err := m.compose(inputs)
	if err != nil {
		return Composition{}, err
	}
	m.metrics.composed()
	m.log.Debug("composed",
		zap.Float64s("inputs", inputs),
		zap.Int("rules", len(c.Rules)),
		zap.Float64("strength", c.Strength()))
	return c, nil
}

func (m *Mamdani) compose(inputs []float64) (Composition, error) {
	results := make([]rule.Result, len(m.rules))
	var agg mf.MembershipFunction
	for i, r := range m.rules {
		res, err := r.Evaluate(inputs)
		if err != nil {
			return Composition{}, errors.Wrapf(err, "engine: rule %d", i)
		}
		results[i] = res
		if agg == nil {
			agg = res.Consequent
			continue
		}
		agg = m.aggregate.Combine(agg, res.Consequent)
	}
	return Composition{Aggregate: agg, Rules: results}, nil
}

// Infer samples c.Aggregate at x and reduces it with the engine's method.
func (m *Mamdani) Infer(c Composition, x []float64) (float64, error) {
	if !c.Composed() {
		err := errors.Wrap(internalerr.ErrNotComposed, "engine: infer")
		return 0, errors.WithHint(err, "call Compose with the crisp inputs first")
	}
	out, err := m.method.Defuzz(x, c.Aggregate)
	if err != nil {
		m.metrics.defuzzFailed()
		return 0, errors.Wrapf(err, "engine: infer with %s", m.method)
	}
	m.metrics.inferred()
	return out, nil
}

// Evaluate composes inputs and infers over universe in one step.
func (m *Mamdani) Evaluate(universe []float64, inputs ...float64) (float64, Composition, error) {
	c, err := m.Compose(inputs...)
	if err != nil {
		return 0, Composition{}, err
	}
	out, err := m.Infer(c, universe)
	if err != nil {
		return 0, c, err
	}
	return out, c, nil
}
