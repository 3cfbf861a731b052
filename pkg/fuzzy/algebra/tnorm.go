package algebra

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/mf"
)

// TNorm generalises logical AND over [0, 1]. Every variant is commutative,
// associative, monotone in each argument and satisfies T(x, 1) = x.
type TNorm uint8

const (
	Minimum TNorm = iota + 1
	AlgebraicProduct
	BoundedProduct
	DrasticProduct
)

// TNorms lists every t-norm variant.
func TNorms() []TNorm {
	return []TNorm{Minimum, AlgebraicProduct, BoundedProduct, DrasticProduct}
}

// Apply combines two degrees. It panics on an undeclared tag.
func (t TNorm) Apply(a, b float64) float64 {
	switch t {
	case Minimum:
		return math.Min(a, b)
	case AlgebraicProduct:
		return a * b
	case BoundedProduct:
		return math.Max(0, a+b-1)
	case DrasticProduct:
		switch {
		case a == 1:
			return b
		case b == 1:
			return a
		default:
			return 0
		}
	}
	panic(invalidTag("t-norm", uint8(t)))
}

func (t TNorm) Family() Family { return FamilyTNorm }

func (t TNorm) Valid() bool { return t >= Minimum && t <= DrasticProduct }

func (t TNorm) String() string {
	switch t {
	case Minimum:
		return "minimum"
	case AlgebraicProduct:
		return "algebraic_product"
	case BoundedProduct:
		return "bounded_product"
	case DrasticProduct:
		return "drastic_product"
	default:
		return "invalid_tnorm"
	}
}

// Combine builds the node t(left(x), right(x)) over a shared universe.
func (t TNorm) Combine(left, right mf.MembershipFunction) Node {
	return Combine(t, left, right)
}

// CombineJoint builds the node t(left(x1), right(x2)) over the product universe.
func (t TNorm) CombineJoint(left, right mf.MembershipFunction) JointNode {
	return CombineJoint(t, left, right)
}

// ParseTNorm resolves a t-norm by name.
func ParseTNorm(name string) (TNorm, error) {
	switch normalize(name) {
	case "minimum", "min":
		return Minimum, nil
	case "algebraic_product", "product", "prod":
		return AlgebraicProduct, nil
	case "bounded_product", "bounded_difference", "lukasiewicz":
		return BoundedProduct, nil
	case "drastic_product", "drastic":
		return DrasticProduct, nil
	}
	return 0, errors.Wrapf(internalerr.ErrInvalidOperator, "unknown t-norm %q", name)
}
