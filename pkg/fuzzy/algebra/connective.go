package algebra

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/mf"
)

// Connective is the linguistic AND / OR between membership functions of
// linguistic variables: intersection (min) and union (max).
type Connective uint8

const (
	And Connective = iota + 1
	Or
)

func (c Connective) Apply(a, b float64) float64 {
	switch c {
	case And:
		return math.Min(a, b)
	case Or:
		return math.Max(a, b)
	}
	panic(invalidTag("connective", uint8(c)))
}

func (c Connective) Family() Family { return FamilyConnective }

func (c Connective) Valid() bool { return c == And || c == Or }

func (c Connective) String() string {
	switch c {
	case And:
		return "and"
	case Or:
		return "or"
	default:
		return "invalid_connective"
	}
}

// Combine builds the intersection (And) or union (Or) of two membership functions.
func (c Connective) Combine(left, right mf.MembershipFunction) Node {
	return Combine(c, left, right)
}

// ParseConnective resolves "and" / "or".
func ParseConnective(name string) (Connective, error) {
	switch normalize(name) {
	case "and":
		return And, nil
	case "or":
		return Or, nil
	}
	return 0, errors.Wrapf(internalerr.ErrInvalidOperator, "unknown connective %q", name)
}
