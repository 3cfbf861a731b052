package fuzzy

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/cognicore/fuzzy/pkg/fuzzy/engine"
	"github.com/cognicore/fuzzy/pkg/fuzzy/grid"
	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/store"
)

// System is the main fuzzy inference facade: an engine, its output universe
// and an optional run journal.
type System struct {
	engine   engine.Engine
	store    store.Store
	universe []float64
	source   string
	log      *zap.Logger
}

// Options configures a System instance
type Options struct {
	Engine   engine.Engine
	Store    store.Store // optional; nil disables journaling
	Universe []float64   // output samples used by Infer
	Source   string      // recorded on every run
	Logger   *zap.Logger
}

// New creates a System with the given dependencies
func New(opts Options) (*System, error) {
	if opts.Engine == nil {
		return nil, errors.Wrap(internalerr.ErrInvalidConfig, "fuzzy: engine is required")
	}
	if len(opts.Universe) == 0 {
		return nil, errors.Wrap(internalerr.ErrInvalidConfig, "fuzzy: output universe is empty")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &System{
		engine:   opts.Engine,
		store:    opts.Store,
		universe: append([]float64(nil), opts.Universe...),
		source:   opts.Source,
		log:      log,
	}, nil
}

// Close cleanly shuts down the journal
func (s *System) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// Result is one crisp inference
type Result struct {
	RunID    string // empty when journaling is off
	Output   float64
	Strength float64 // maximum rule firing strength
	Fired    []float64
}

// Infer composes the inputs, defuzzifies over the output universe and
// journals the run.
func (s *System) Infer(ctx context.Context, inputs ...float64) (Result, error) {
	c, err := s.engine.Compose(inputs...)
	if err != nil {
		return Result{}, err
	}
	out, err := s.engine.Infer(c, s.universe)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Output:   out,
		Strength: c.Strength(),
		Fired:    make([]float64, len(c.Rules)),
	}
	for i, r := range c.Rules {
		res.Fired[i] = r.Strength
	}

	run, err := s.record(ctx, store.Run{
		Kind:   store.KindInference,
		Inputs: inputs,
		Output: out,
	})
	if err != nil {
		return Result{}, err
	}
	res.RunID = run.ID

	s.log.Info("inference",
		zap.String("run", run.ID),
		zap.Float64s("inputs", inputs),
		zap.Float64("output", out))
	return res, nil
}

// SurfaceResult is a computed and journaled surface
type SurfaceResult struct {
	RunID   string
	Surface *grid.Array
}

// ControlSurface sweeps the engine's control surface over ranges
func (s *System) ControlSurface(ctx context.Context, ranges [][]float64) (SurfaceResult, error) {
	arr, err := s.engine.ControlSurface(ctx, ranges)
	if err != nil {
		return SurfaceResult{}, err
	}
	return s.recordSurface(ctx, store.KindControlSurface, arr)
}

// InferenceSurface sweeps full inference over ranges using the output universe
func (s *System) InferenceSurface(ctx context.Context, ranges [][]float64) (SurfaceResult, error) {
	arr, err := s.engine.InferenceSurface(ctx, ranges, s.universe)
	if err != nil {
		return SurfaceResult{}, err
	}
	return s.recordSurface(ctx, store.KindInferenceSurface, arr)
}

func (s *System) recordSurface(ctx context.Context, kind store.Kind, arr *grid.Array) (SurfaceResult, error) {
	run, err := s.record(ctx, store.Run{
		Kind:   kind,
		Shape:  arr.Shape(),
		Values: arr.Values(),
	})
	if err != nil {
		return SurfaceResult{}, err
	}
	s.log.Info("surface",
		zap.String("run", run.ID),
		zap.String("kind", string(kind)),
		zap.Ints("shape", arr.Shape()))
	return SurfaceResult{RunID: run.ID, Surface: arr}, nil
}

// Runs lists journaled runs, newest first
func (s *System) Runs(ctx context.Context, opts store.ListOptions) ([]store.Run, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.ListRuns(ctx, opts)
}

func (s *System) record(ctx context.Context, r store.Run) (store.Run, error) {
	if s.store == nil {
		return r, nil
	}
	r.Source = s.source
	r.Method = s.engine.Method().String()
	r.CreatedAt = time.Now().UTC()
	run, err := s.store.RecordRun(ctx, r)
	if err != nil {
		return store.Run{}, errors.Wrap(err, "fuzzy: journal run")
	}
	return run, nil
}
