// Package mf defines the membership function contract and the closed-form
// shapes used as antecedents and consequents.
//
// A membership function maps a sample of its universe of discourse to a
// degree in [0, 1]. Implementations are stateless values: evaluating one never
// changes it, so the same function can be shared between rules and goroutines.
package mf

import (
	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/grid"
	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
)

// MembershipFunction evaluates the degree of membership of a single sample.
type MembershipFunction interface {
	Evaluate(x float64) float64
}

// Joint is a two-argument membership function over a product universe.
// Both inputs must be rectangular and share one shape.
type Joint interface {
	EvaluateGrid(x, y [][]float64) ([][]float64, error)
}

// EvaluateAll evaluates m elementwise over xs.
func EvaluateAll(m MembershipFunction, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = m.Evaluate(x)
	}
	return out
}

// Inverse is the complement 1 - m(x).
func Inverse(m MembershipFunction, x float64) float64 {
	return 1 - m.Evaluate(x)
}

// InverseAll is Inverse applied elementwise.
func InverseAll(m MembershipFunction, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = 1 - m.Evaluate(x)
	}
	return out
}

// Func adapts an ordinary function to MembershipFunction.
type Func func(x float64) float64

// Evaluate calls f.
func (f Func) Evaluate(x float64) float64 { return f(x) }

func (f Func) String() string { return "Func" }

// UserDefined is a joint membership function backed by a caller-supplied
// formula of two variables.
type UserDefined struct {
	fn func(x, y float64) float64
}

// NewUserDefined wraps fn. fn must not be nil.
func NewUserDefined(fn func(x, y float64) float64) (UserDefined, error) {
	if fn == nil {
		return UserDefined{}, errors.Wrap(internalerr.ErrInvalidInput, "user defined: nil function")
	}
	return UserDefined{fn: fn}, nil
}

// EvaluateAt evaluates the formula at one point.
func (u UserDefined) EvaluateAt(x, y float64) float64 { return u.fn(x, y) }

// EvaluateGrid evaluates the formula elementwise over two equally shaped grids.
func (u UserDefined) EvaluateGrid(x, y [][]float64) ([][]float64, error) {
	rows, cols, err := grid.SameShape2(x, y)
	if err != nil {
		return nil, errors.Wrap(err, "user defined")
	}
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = u.fn(x[i][j], y[i][j])
		}
	}
	return out, nil
}

func (u UserDefined) String() string { return "UserDefined" }
