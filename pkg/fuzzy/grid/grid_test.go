package grid

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
)

func TestArrayRowMajor(t *testing.T) {
	a, err := New(2, 3)
	require.NoError(t, err)

	for i := 0; i < a.Len(); i++ {
		a.SetFlat(i, float64(i))
	}

	assert.Equal(t, 0.0, a.At(0, 0))
	assert.Equal(t, 2.0, a.At(0, 2))
	assert.Equal(t, 3.0, a.At(1, 0))
	assert.Equal(t, 5.0, a.At(1, 2))
	assert.Equal(t, []int{1, 1}, a.Unravel(4))

	rows, err := a.Rows()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1, 2}, {3, 4, 5}}, rows)
}

func TestArrayRejectsBadShape(t *testing.T) {
	_, err := New()
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))

	_, err = New(2, 0)
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))

	_, err = FromValues([]int{2, 2}, []float64{1, 2, 3})
	assert.True(t, errors.Is(err, internalerr.ErrShapeMismatch))
}

func TestArrayAtPanicsOutOfRange(t *testing.T) {
	a, err := New(2)
	require.NoError(t, err)
	assert.Panics(t, func() { a.At(2) })
	assert.Panics(t, func() { a.At(0, 0) })
}

func TestArrayJSON(t *testing.T) {
	a, err := FromValues([]int{1, 2}, []float64{0.25, 0.75})
	require.NoError(t, err)

	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"shape":[1,2],"values":[0.25,0.75]}`, string(b))

	var back Array
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, 0.75, back.At(0, 1))
}

func TestCartesianOrder(t *testing.T) {
	c, err := NewCartesian([][]float64{{1, 2}, {10, 20, 30}})
	require.NoError(t, err)

	assert.Equal(t, 6, c.Len())
	assert.Equal(t, []int{2, 3}, c.Shape())
	assert.Equal(t, []float64{1, 10}, c.Point(0))
	assert.Equal(t, []float64{1, 30}, c.Point(2))
	assert.Equal(t, []float64{2, 10}, c.Point(3))
	assert.Equal(t, []float64{2, 30}, c.Point(5))
}

func TestCartesianRejectsEmptyAxis(t *testing.T) {
	_, err := NewCartesian(nil)
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))

	_, err = NewCartesian([][]float64{{1}, {}})
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))
}

func TestMeshIJ(t *testing.T) {
	X1, X2 := Mesh([]float64{1, 2}, []float64{5, 6, 7})

	assert.Equal(t, [][]float64{{1, 1, 1}, {2, 2, 2}}, X1)
	assert.Equal(t, [][]float64{{5, 6, 7}, {5, 6, 7}}, X2)
}

func TestShape2(t *testing.T) {
	_, _, err := Shape2([][]float64{{1, 2}, {3}})
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))

	_, _, err = SameShape2([][]float64{{1, 2}}, [][]float64{{1}, {2}})
	assert.True(t, errors.Is(err, internalerr.ErrShapeMismatch))

	r, c, err := SameShape2([][]float64{{1, 2}}, [][]float64{{3, 4}})
	require.NoError(t, err)
	assert.Equal(t, 1, r)
	assert.Equal(t, 2, c)
}

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, Linspace(0, 1, 5))
	assert.Equal(t, []float64{3}, Linspace(3, 9, 1))
	assert.Nil(t, Linspace(0, 1, 0))

	odd := Linspace(0, 0.3, 7)
	require.Len(t, odd, 7)
	assert.Equal(t, 0.0, odd[0])
	assert.Equal(t, 0.3, odd[6])
	assert.InDelta(t, 0.15, odd[3], 1e-15)
}
