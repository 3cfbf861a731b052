package defuzz

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/fuzzy/pkg/fuzzy/grid"
	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/mf"
)

var wave = mf.Func(func(x float64) float64 { return (math.Sin(x) + 1) / 2 })

func TestCentroidMatchesReferenceFormula(t *testing.T) {
	x := grid.Linspace(0, 2*math.Pi, 1000)

	got, err := Centroid(x, wave)
	require.NoError(t, err)

	num, den := 0.0, 0.0
	for _, xi := range x {
		num += xi * wave(xi)
		den += wave(xi)
	}
	assert.InEpsilon(t, num/den, got, 1e-12)
}

func TestBisectorMatchesCumulativeArea(t *testing.T) {
	x := grid.Linspace(0, 2*math.Pi, 1000)

	got, err := Bisector(x, wave)
	require.NoError(t, err)

	cum := make([]float64, len(x))
	total := 0.0
	for i, xi := range x {
		total += wave(xi)
		cum[i] = total
	}
	best := 0
	for i := range cum {
		if math.Abs(cum[i]-total/2) < math.Abs(cum[best]-total/2) {
			best = i
		}
	}
	assert.Equal(t, x[best], got)
}

func TestBisectorFirstIndexWinsTie(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	mu := mf.Func(func(v float64) float64 {
		if v == 0 || v == 3 {
			return 1
		}
		return 0
	})

	// cumulative [1 1 1 2], half = 1: indices 0..2 all tie.
	got, err := Bisector(x, mu)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestMaximumFamily(t *testing.T) {
	trap, err := mf.NewTrapezoid(0, 1, 2, 3)
	require.NoError(t, err)
	x := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3}

	mom, err := MeanOfMaximum(x, trap)
	require.NoError(t, err)
	lom, err := LargestOfMaximum(x, trap)
	require.NoError(t, err)
	som, err := SmallestOfMaximum(x, trap)
	require.NoError(t, err)

	assert.Equal(t, 1.5, mom)
	assert.Equal(t, 2.0, lom)
	assert.Equal(t, 1.0, som)
}

func TestSinglePeak(t *testing.T) {
	tri, err := mf.NewTriangle(0, 1, 2)
	require.NoError(t, err)
	x := grid.Linspace(0, 2, 5)

	for _, m := range []Method{MethodMeanOfMaximum, MethodLargestOfMaximum, MethodSmallestOfMaximum, MethodCentroid} {
		got, err := m.Defuzz(x, tri)
		require.NoError(t, err, m.String())
		assert.Equal(t, 1.0, got, m.String())
	}

	// cumulative [0 0.5 1.5 2 2], half = 1: 0.5 and 1 tie, the first wins.
	got, err := Bisector(x, tri)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got)
}

func TestZeroArea(t *testing.T) {
	zero, err := mf.NewConstant(0)
	require.NoError(t, err)
	x := grid.Linspace(0, 1, 10)

	for _, fn := range []Func{Centroid, Bisector} {
		_, err := fn(x, zero)
		require.Error(t, err)
		assert.True(t, errors.Is(err, internalerr.ErrZeroArea))
		assert.NotEmpty(t, errors.GetAllHints(err))
	}

	// The maximum family has no area requirement.
	got, err := MeanOfMaximum(x, zero)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)
}

func TestEmptySamples(t *testing.T) {
	for _, m := range Methods() {
		_, err := m.Defuzz(nil, wave)
		assert.True(t, errors.Is(err, internalerr.ErrInvalidInput), m.String())
	}
	_, err := Centroid([]float64{1}, nil)
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))
}

func TestLookup(t *testing.T) {
	for _, m := range Methods() {
		got, err := Lookup(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
		assert.True(t, got.Valid())
	}

	got, err := Lookup(" Centroid ")
	require.NoError(t, err)
	assert.Equal(t, MethodCentroid, got)

	_, err = Lookup("median")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrInvalidConfig))
	assert.Contains(t, err.Error(), `"median"`)

	var invalid Method
	assert.False(t, invalid.Valid())
	_, err = invalid.Defuzz([]float64{1}, wave)
	assert.True(t, errors.Is(err, internalerr.ErrInvalidConfig))
}
