// Package grid provides the dense arrays and Cartesian grids used to evaluate
// membership functions over product universes and to sweep control surfaces.
package grid

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
)

// Array is a dense row-major N-dimensional array of float64.
type Array struct {
	shape   []int
	strides []int
	data    []float64
}

// New allocates a zero-filled array. Every dimension must be positive.
func New(shape ...int) (*Array, error) {
	if len(shape) == 0 {
		return nil, errors.Wrap(internalerr.ErrInvalidInput, "grid: array needs at least one dimension")
	}
	size := 1
	for i, n := range shape {
		if n <= 0 {
			return nil, errors.Wrapf(internalerr.ErrInvalidInput, "grid: dimension %d has size %d", i, n)
		}
		size *= n
	}

	s := append([]int(nil), shape...)
	return &Array{
		shape:   s,
		strides: stridesFor(s),
		data:    make([]float64, size),
	}, nil
}

// FromValues wraps values into an array of the given shape. The slice is copied.
func FromValues(shape []int, values []float64) (*Array, error) {
	a, err := New(shape...)
	if err != nil {
		return nil, err
	}
	if len(values) != len(a.data) {
		return nil, errors.Wrapf(internalerr.ErrShapeMismatch,
			"grid: shape %v holds %d values, got %d", shape, len(a.data), len(values))
	}
	copy(a.data, values)
	return a, nil
}

func stridesFor(shape []int) []int {
	strides := make([]int, len(shape))
	step := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = step
		step *= shape[i]
	}
	return strides
}

// Shape returns a copy of the array dimensions.
func (a *Array) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Len returns the total number of elements.
func (a *Array) Len() int { return len(a.data) }

// Values returns a copy of the elements in row-major order.
func (a *Array) Values() []float64 {
	return append([]float64(nil), a.data...)
}

// At returns the element at the given coordinates. It panics when the
// coordinates are out of range, like a slice index would.
func (a *Array) At(idx ...int) float64 {
	return a.data[a.offset(idx)]
}

// Set stores v at the given coordinates.
func (a *Array) Set(v float64, idx ...int) {
	a.data[a.offset(idx)] = v
}

// SetFlat stores v at a row-major offset.
func (a *Array) SetFlat(i int, v float64) {
	a.data[i] = v
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(errors.Newf("grid: %d coordinates for a %d-dimensional array", len(idx), len(a.shape)))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.shape[i] {
			panic(errors.Newf("grid: index %d out of range for axis %d of size %d", v, i, a.shape[i]))
		}
		off += v * a.strides[i]
	}
	return off
}

// Unravel converts a row-major offset to coordinates.
func (a *Array) Unravel(flat int) []int {
	return unravel(a.strides, flat)
}

func unravel(strides []int, flat int) []int {
	idx := make([]int, len(strides))
	for i, s := range strides {
		idx[i] = flat / s
		flat %= s
	}
	return idx
}

// Rows returns a 2-D array as nested slices.
func (a *Array) Rows() ([][]float64, error) {
	if len(a.shape) != 2 {
		return nil, errors.Wrapf(internalerr.ErrShapeMismatch, "grid: Rows needs 2 dimensions, have %d", len(a.shape))
	}
	out := make([][]float64, a.shape[0])
	for i := range out {
		out[i] = append([]float64(nil), a.data[i*a.shape[1]:(i+1)*a.shape[1]]...)
	}
	return out, nil
}

type arrayJSON struct {
	Shape  []int     `json:"shape"`
	Values []float64 `json:"values"`
}

// MarshalJSON encodes the array as {"shape": [...], "values": [...]}.
func (a *Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(arrayJSON{Shape: a.shape, Values: a.data})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (a *Array) UnmarshalJSON(b []byte) error {
	var raw arrayJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	decoded, err := FromValues(raw.Shape, raw.Values)
	if err != nil {
		return err
	}
	*a = *decoded
	return nil
}
