package engine

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/fuzzy/pkg/fuzzy/grid"
	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
)

// pointFunc computes the surface value at one grid point.
type pointFunc func(point []float64) (float64, error)

// ControlSurface evaluates the engine at every point of the Cartesian grid
// over ranges. At each point it composes, takes Composition.ControlStrength
// (per rule the minimum antecedent degree, then the maximum across rules), and
// defuzzifies that single sample against the composed aggregate. The result has shape [len(ranges[0]), len(ranges[1]), ...] with
// the last axis varying fastest.
func (m *Mamdani) ControlSurface(ctx context.Context, ranges [][]float64) (*grid.Array, error) {
	return m.sweep(ctx, "control", ranges, func(point []float64) (float64, error) {
		c, err := m.compose(point)
		if err != nil {
			return 0, err
		}
		out, err := m.method.Defuzz([]float64{c.ControlStrength()}, c.Aggregate)
		if err != nil {
			m.metrics.defuzzFailed()
			return 0, err
		}
		return out, nil
	})
}

// InferenceSurface is ControlSurface with ordinary inference at each point:
// the composed aggregate is defuzzified over universe.
func (m *Mamdani) InferenceSurface(ctx context.Context, ranges [][]float64, universe []float64) (*grid.Array, error) {
	if len(universe) == 0 {
		return nil, errors.Wrap(internalerr.ErrInvalidInput, "engine: inference surface needs a universe")
	}
	return m.sweep(ctx, "inference", ranges, func(point []float64) (float64, error) {
		c, err := m.compose(point)
		if err != nil {
			return 0, err
		}
		out, err := m.method.Defuzz(universe, c.Aggregate)
		if err != nil {
			m.metrics.defuzzFailed()
			return 0, err
		}
		return out, nil
	})
}

func (m *Mamdani) sweep(ctx context.Context, kind string, ranges [][]float64, fn pointFunc) (*grid.Array, error) {
	cart, err := grid.NewCartesian(ranges)
	if err != nil {
		return nil, errors.Wrapf(err, "engine: %s surface", kind)
	}
	out := cart.Array()
	n := cart.Len()

	workers := min(m.workers, n)
	m.log.Debug("surface sweep started",
		zap.String("kind", kind),
		zap.Ints("shape", cart.Shape()),
		zap.Int("workers", workers))

	eval := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		point := cart.Point(i)
		v, err := fn(point)
		if err != nil {
			return errors.Wrapf(err, "engine: %s surface at point %v", kind, point)
		}
		out.SetFlat(i, v)
		m.metrics.surfacePoint()
		return nil
	}

	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := eval(ctx, i); err != nil {
				return nil, err
			}
		}
	} else {
		// Each worker owns a strided slice of flat indices, so writes never
		// overlap.
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < workers; w++ {
			g.Go(func() error {
				for i := w; i < n; i += workers {
					if err := eval(gctx, i); err != nil {
						return err
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	m.log.Debug("surface sweep finished", zap.String("kind", kind), zap.Int("points", n))
	return out, nil
}
