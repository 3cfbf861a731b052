package algebra

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/mf"
)

// TCoNorm (S-norm) generalises logical OR over [0, 1]. It is the dual of
// TNorm, with boundary condition S(x, 0) = x.
type TCoNorm uint8

const (
	Maximum TCoNorm = iota + 1
	AlgebraicSum
	BoundedSum
	DrasticSum
)

// TCoNorms lists every t-conorm variant.
func TCoNorms() []TCoNorm {
	return []TCoNorm{Maximum, AlgebraicSum, BoundedSum, DrasticSum}
}

// Apply combines two degrees. It panics on an undeclared tag.
func (s TCoNorm) Apply(a, b float64) float64 {
	switch s {
	case Maximum:
		return math.Max(a, b)
	case AlgebraicSum:
		return a + b - a*b
	case BoundedSum:
		return math.Min(1, a+b)
	case DrasticSum:
		switch {
		case a == 0:
			return b
		case b == 0:
			return a
		default:
			return 1
		}
	}
	panic(invalidTag("t-conorm", uint8(s)))
}

func (s TCoNorm) Family() Family { return FamilyTCoNorm }

func (s TCoNorm) Valid() bool { return s >= Maximum && s <= DrasticSum }

func (s TCoNorm) String() string {
	switch s {
	case Maximum:
		return "maximum"
	case AlgebraicSum:
		return "algebraic_sum"
	case BoundedSum:
		return "bounded_sum"
	case DrasticSum:
		return "drastic_sum"
	default:
		return "invalid_tconorm"
	}
}

// Combine builds the node s(left(x), right(x)) over a shared universe.
func (s TCoNorm) Combine(left, right mf.MembershipFunction) Node {
	return Combine(s, left, right)
}

// CombineJoint builds the node s(left(x1), right(x2)) over the product universe.
func (s TCoNorm) CombineJoint(left, right mf.MembershipFunction) JointNode {
	return CombineJoint(s, left, right)
}

// ParseTCoNorm resolves a t-conorm by name.
func ParseTCoNorm(name string) (TCoNorm, error) {
	switch normalize(name) {
	case "maximum", "max":
		return Maximum, nil
	case "algebraic_sum", "probabilistic_sum", "sum":
		return AlgebraicSum, nil
	case "bounded_sum":
		return BoundedSum, nil
	case "drastic_sum":
		return DrasticSum, nil
	}
	return 0, errors.Wrapf(internalerr.ErrInvalidOperator, "unknown t-conorm %q", name)
}
