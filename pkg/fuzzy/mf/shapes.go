package mf

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
)

// Bell is the generalised bell curve 1 / (1 + |(x-center)/width|^(2*intensity)).
type Bell struct {
	center, width, intensity float64
}

// NewBell validates that width is non-zero.
func NewBell(center, width, intensity float64) (Bell, error) {
	if width == 0 {
		return Bell{}, errors.Wrap(internalerr.ErrInvalidInput, "bell: width must be non-zero")
	}
	return Bell{center: center, width: width, intensity: intensity}, nil
}

func (b Bell) Evaluate(x float64) float64 {
	return 1 / (1 + math.Pow(math.Abs((x-b.center)/b.width), 2*b.intensity))
}

func (b Bell) String() string {
	return fmt.Sprintf("Bell(center=%g, width=%g, intensity=%g)", b.center, b.width, b.intensity)
}

// Gaussian is exp(-0.5 * ((x-mean)/std)^2).
type Gaussian struct {
	mean, std float64
}

// NewGaussian validates that std is non-zero.
func NewGaussian(mean, std float64) (Gaussian, error) {
	if std == 0 {
		return Gaussian{}, errors.Wrap(internalerr.ErrInvalidInput, "gaussian: std must be non-zero")
	}
	return Gaussian{mean: mean, std: std}, nil
}

func (g Gaussian) Evaluate(x float64) float64 {
	z := (x - g.mean) / g.std
	return math.Exp(-0.5 * z * z)
}

func (g Gaussian) String() string {
	return fmt.Sprintf("Gaussian(mean=%g, std=%g)", g.mean, g.std)
}

// Trapezoid rises on [a, b], is 1 on [b, c] and falls on [c, d].
type Trapezoid struct {
	a, b, c, d float64
}

// NewTrapezoid requires a <= b <= c <= d.
func NewTrapezoid(a, b, c, d float64) (Trapezoid, error) {
	if err := ordered("trapezoid", []string{"a", "b", "c", "d"}, []float64{a, b, c, d}); err != nil {
		return Trapezoid{}, err
	}
	return Trapezoid{a: a, b: b, c: c, d: d}, nil
}

func (t Trapezoid) Evaluate(x float64) float64 {
	return math.Min(rising(x, t.a, t.b), falling(x, t.c, t.d))
}

func (t Trapezoid) String() string {
	return fmt.Sprintf("Trapezoid(a=%g, b=%g, c=%g, d=%g)", t.a, t.b, t.c, t.d)
}

// Triangle rises on [a, b] and falls on [b, c].
type Triangle struct {
	a, b, c float64
}

// NewTriangle requires a <= b <= c.
func NewTriangle(a, b, c float64) (Triangle, error) {
	if err := ordered("triangle", []string{"a", "b", "c"}, []float64{a, b, c}); err != nil {
		return Triangle{}, err
	}
	return Triangle{a: a, b: b, c: c}, nil
}

func (t Triangle) Evaluate(x float64) float64 {
	return math.Min(rising(x, t.a, t.b), falling(x, t.b, t.c))
}

func (t Triangle) String() string {
	return fmt.Sprintf("Triangle(a=%g, b=%g, c=%g)", t.a, t.b, t.c)
}

// ordered reports the first adjacent pair that breaks non-decreasing order.
func ordered(shape string, names []string, vals []float64) error {
	for i := 1; i < len(vals); i++ {
		if math.IsNaN(vals[i-1]) || math.IsNaN(vals[i]) || vals[i-1] > vals[i] {
			return errors.Wrapf(internalerr.ErrInvalidInput, "%s: %s <= %s violated (%s=%g, %s=%g)",
				shape, names[i-1], names[i], names[i-1], vals[i-1], names[i], vals[i])
		}
	}
	return nil
}

// rising is the left edge: 0 before lo, linear on [lo, hi], 1 from hi on.
// A vertical edge (lo == hi) steps to 1 at lo.
func rising(x, lo, hi float64) float64 {
	switch {
	case x < lo:
		return 0
	case x < hi:
		return (x - lo) / (hi - lo)
	default:
		return 1
	}
}

// falling is the right edge: 1 up to lo, linear on [lo, hi], 0 after hi.
func falling(x, lo, hi float64) float64 {
	switch {
	case x > hi:
		return 0
	case x > lo:
		return (hi - x) / (hi - lo)
	default:
		return 1
	}
}

// Sigmoid is 1 / (1 + exp(-slope*(x-center))).
type Sigmoid struct {
	slope, center float64
}

func NewSigmoid(slope, center float64) Sigmoid {
	return Sigmoid{slope: slope, center: center}
}

func (s Sigmoid) Evaluate(x float64) float64 {
	return 1 / (1 + math.Exp(-s.slope*(x-s.center)))
}

func (s Sigmoid) String() string {
	return fmt.Sprintf("Sigmoid(slope=%g, center=%g)", s.slope, s.center)
}

// Step is 0 below limit and 1 from limit on.
type Step struct {
	limit float64
}

func NewStep(limit float64) Step { return Step{limit: limit} }

func (s Step) Evaluate(x float64) float64 {
	if x < s.limit {
		return 0
	}
	return 1
}

func (s Step) String() string { return fmt.Sprintf("Step(limit=%g)", s.limit) }

// Linear is m*x + b clipped to [0, 1].
type Linear struct {
	m, b float64
}

func NewLinear(m, b float64) Linear { return Linear{m: m, b: b} }

func (l Linear) Evaluate(x float64) float64 {
	return math.Max(0, math.Min(1, l.m*x+l.b))
}

func (l Linear) String() string { return fmt.Sprintf("Linear(m=%g, b=%g)", l.m, l.b) }

// Rectangular is 1 on [low, high] and 0 elsewhere.
type Rectangular struct {
	low, high float64
}

// NewRectangular requires low <= high.
func NewRectangular(low, high float64) (Rectangular, error) {
	if !(low <= high) {
		return Rectangular{}, errors.Wrapf(internalerr.ErrInvalidInput,
			"rectangular: low <= high violated (low=%g, high=%g)", low, high)
	}
	return Rectangular{low: low, high: high}, nil
}

func (r Rectangular) Evaluate(x float64) float64 {
	if x >= r.low && x <= r.high {
		return 1
	}
	return 0
}

func (r Rectangular) String() string {
	return fmt.Sprintf("Rectangular(low=%g, high=%g)", r.low, r.high)
}

// Singleton is 1 exactly at value and 0 everywhere else. It fuzzifies a crisp input.
type Singleton struct {
	value float64
}

func NewSingleton(value float64) Singleton { return Singleton{value: value} }

func (s Singleton) Evaluate(x float64) float64 {
	if x == s.value {
		return 1
	}
	return 0
}

func (s Singleton) String() string { return fmt.Sprintf("Singleton(%g)", s.value) }

// Constant has the same degree at every sample.
type Constant struct {
	value float64
}

// NewConstant requires value in [0, 1].
func NewConstant(value float64) (Constant, error) {
	if !(value >= 0 && value <= 1) {
		return Constant{}, errors.Wrapf(internalerr.ErrInvalidInput, "constant: value %g outside [0, 1]", value)
	}
	return Constant{value: value}, nil
}

func (c Constant) Evaluate(float64) float64 { return c.value }

// Value returns the constant degree.
func (c Constant) Value() float64 { return c.value }

func (c Constant) String() string { return fmt.Sprintf("Constant(%g)", c.value) }
