package defuzz

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/mf"
)

// Method names a defuzzification strategy.
type Method uint8

const (
	MethodCentroid Method = iota + 1
	MethodBisector
	MethodMeanOfMaximum
	MethodLargestOfMaximum
	MethodSmallestOfMaximum
)

var methodNames = map[string]Method{
	"centroid": MethodCentroid,
	"bisector": MethodBisector,
	"mom":      MethodMeanOfMaximum,
	"lom":      MethodLargestOfMaximum,
	"som":      MethodSmallestOfMaximum,
}

// Methods lists every strategy in a stable order.
func Methods() []Method {
	return []Method{MethodCentroid, MethodBisector, MethodMeanOfMaximum, MethodLargestOfMaximum, MethodSmallestOfMaximum}
}

// Lookup resolves one of "centroid", "bisector", "mom", "lom" or "som".
func Lookup(name string) (Method, error) {
	if m, ok := methodNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, nil
	}
	err := errors.Wrapf(internalerr.ErrInvalidConfig, "defuzz: unknown method %q", name)
	return 0, errors.WithHint(err, "use one of centroid, bisector, mom, lom, som")
}

// Func returns the strategy implementation, or nil for an undeclared method.
func (m Method) Func() Func {
	switch m {
	case MethodCentroid:
		return Centroid
	case MethodBisector:
		return Bisector
	case MethodMeanOfMaximum:
		return MeanOfMaximum
	case MethodLargestOfMaximum:
		return LargestOfMaximum
	case MethodSmallestOfMaximum:
		return SmallestOfMaximum
	}
	return nil
}

// Defuzz applies the strategy to m sampled at x.
func (m Method) Defuzz(x []float64, fn mf.MembershipFunction) (float64, error) {
	f := m.Func()
	if f == nil {
		return 0, errors.Wrapf(internalerr.ErrInvalidConfig, "defuzz: invalid method tag %d", uint8(m))
	}
	return f(x, fn)
}

func (m Method) Valid() bool { return m.Func() != nil }

func (m Method) String() string {
	switch m {
	case MethodCentroid:
		return "centroid"
	case MethodBisector:
		return "bisector"
	case MethodMeanOfMaximum:
		return "mom"
	case MethodLargestOfMaximum:
		return "lom"
	case MethodSmallestOfMaximum:
		return "som"
	default:
		return "invalid"
	}
}
