package grid

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
)

// Cartesian enumerates the product of per-axis sample sequences in row-major
// (ij) order: the last axis varies fastest.
type Cartesian struct {
	axes    [][]float64
	shape   []int
	strides []int
	size    int
}

// NewCartesian builds the grid over axes. Each axis needs at least one sample.
func NewCartesian(axes [][]float64) (*Cartesian, error) {
	if len(axes) == 0 {
		return nil, errors.Wrap(internalerr.ErrInvalidInput, "grid: no axes")
	}
	shape := make([]int, len(axes))
	size := 1
	for i, ax := range axes {
		if len(ax) == 0 {
			return nil, errors.Wrapf(internalerr.ErrInvalidInput, "grid: axis %d is empty", i)
		}
		shape[i] = len(ax)
		size *= len(ax)
	}

	copied := make([][]float64, len(axes))
	for i, ax := range axes {
		copied[i] = append([]float64(nil), ax...)
	}

	return &Cartesian{
		axes:    copied,
		shape:   shape,
		strides: stridesFor(shape),
		size:    size,
	}, nil
}

// Len is the number of grid points.
func (c *Cartesian) Len() int { return c.size }

// Shape is the per-axis sample count.
func (c *Cartesian) Shape() []int { return append([]int(nil), c.shape...) }

// Point returns the coordinates of the flat-th point.
func (c *Cartesian) Point(flat int) []float64 {
	idx := unravel(c.strides, flat)
	pt := make([]float64, len(idx))
	for axis, i := range idx {
		pt[axis] = c.axes[axis][i]
	}
	return pt
}

// Array allocates an output array matching the grid shape.
func (c *Cartesian) Array() *Array {
	a, _ := New(c.shape...)
	return a
}

// Mesh broadcasts two 1-D sample sequences onto a 2-D grid with ij indexing:
// X1[i][j] = x1[i] and X2[i][j] = x2[j].
func Mesh(x1, x2 []float64) (X1, X2 [][]float64) {
	X1 = make([][]float64, len(x1))
	X2 = make([][]float64, len(x1))
	for i, v := range x1 {
		X1[i] = make([]float64, len(x2))
		floats.AddConst(v, X1[i])
		X2[i] = append([]float64(nil), x2...)
	}
	return X1, X2
}

// Shape2 returns the dimensions of a rectangular 2-D slice. Ragged input is
// not array-like and fails with ErrInvalidInput.
func Shape2(m [][]float64) (rows, cols int, err error) {
	rows = len(m)
	if rows == 0 {
		return 0, 0, nil
	}
	cols = len(m[0])
	for i, r := range m {
		if len(r) != cols {
			return 0, 0, errors.Wrapf(internalerr.ErrInvalidInput,
				"grid: row %d has %d columns, row 0 has %d", i, len(r), cols)
		}
	}
	return rows, cols, nil
}

// SameShape2 checks that two 2-D slices are rectangular and equally shaped.
func SameShape2(a, b [][]float64) (rows, cols int, err error) {
	ra, ca, err := Shape2(a)
	if err != nil {
		return 0, 0, err
	}
	rb, cb, err := Shape2(b)
	if err != nil {
		return 0, 0, err
	}
	if ra != rb || ca != cb {
		return 0, 0, errors.Wrapf(internalerr.ErrShapeMismatch, "grid: (%d, %d) vs (%d, %d)", ra, ca, rb, cb)
	}
	return ra, ca, nil
}

// Linspace returns n evenly spaced samples over [start, stop], endpoints included.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := floats.Span(make([]float64, n), start, stop)
	out[n-1] = stop
	return out
}
