// Package defuzz reduces a sampled membership function to one crisp value.
//
// Every strategy samples the membership function at the given abscissae, which
// are expected in ascending order, and returns one of them or a weighted mean.
package defuzz

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/mf"
)

// Func is the shape shared by all strategies.
type Func func(x []float64, m mf.MembershipFunction) (float64, error)

// Centroid returns Σ(xᵢ·μᵢ) / Σμᵢ, the centre of area.
func Centroid(x []float64, m mf.MembershipFunction) (float64, error) {
	mu, err := sample("centroid", x, m)
	if err != nil {
		return 0, err
	}

	den := floats.Sum(mu)
	if den == 0 {
		return 0, zeroArea("centroid")
	}
	return floats.Dot(x, mu) / den, nil
}

// Bisector returns the sample whose cumulative area is closest to half of the
// total area. The first such sample wins a tie.
func Bisector(x []float64, m mf.MembershipFunction) (float64, error) {
	mu, err := sample("bisector", x, m)
	if err != nil {
		return 0, err
	}

	cum := floats.CumSum(make([]float64, len(mu)), mu)
	total := cum[len(cum)-1]
	if total == 0 {
		return 0, zeroArea("bisector")
	}

	// cum becomes |cum - total/2|; MinIdx returns the first minimum.
	floats.AddConst(-total/2, cum)
	for i, v := range cum {
		cum[i] = math.Abs(v)
	}
	return x[floats.MinIdx(cum)], nil
}

// MeanOfMaximum returns the mean of the samples attaining the maximum degree.
func MeanOfMaximum(x []float64, m mf.MembershipFunction) (float64, error) {
	peaks, err := maxima("mom", x, m)
	if err != nil {
		return 0, err
	}
	return floats.Sum(peaks) / float64(len(peaks)), nil
}

// LargestOfMaximum returns the largest sample attaining the maximum degree.
func LargestOfMaximum(x []float64, m mf.MembershipFunction) (float64, error) {
	peaks, err := maxima("lom", x, m)
	if err != nil {
		return 0, err
	}
	return floats.Max(peaks), nil
}

// SmallestOfMaximum returns the smallest sample attaining the maximum degree.
func SmallestOfMaximum(x []float64, m mf.MembershipFunction) (float64, error) {
	peaks, err := maxima("som", x, m)
	if err != nil {
		return 0, err
	}
	return floats.Min(peaks), nil
}

func sample(name string, x []float64, m mf.MembershipFunction) ([]float64, error) {
	if len(x) == 0 {
		return nil, errors.Wrapf(internalerr.ErrInvalidInput, "%s: no samples", name)
	}
	if m == nil {
		return nil, errors.Wrapf(internalerr.ErrInvalidInput, "%s: nil membership function", name)
	}
	return mf.EvaluateAll(m, x), nil
}

// maxima collects the samples whose degree equals the maximum exactly.
func maxima(name string, x []float64, m mf.MembershipFunction) ([]float64, error) {
	mu, err := sample(name, x, m)
	if err != nil {
		return nil, err
	}
	top := floats.Max(mu)
	var peaks []float64
	for i, v := range mu {
		if v == top {
			peaks = append(peaks, x[i])
		}
	}
	// Only reachable when every degree is NaN.
	if len(peaks) == 0 {
		return nil, errors.Wrapf(internalerr.ErrInvalidInput, "%s: membership degrees are not comparable", name)
	}
	return peaks, nil
}

func zeroArea(name string) error {
	err := errors.Wrapf(internalerr.ErrZeroArea, "%s", name)
	return errors.WithHint(err, "widen the sample range or check that at least one rule fires")
}
