package algebra

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/mf"
)

// Hedge is a unary linguistic modifier ("not", "very", "somewhat", ...).
type Hedge uint8

const (
	// Not is the complement 1 - u.
	Not Hedge = iota + 1
	// Con (concentration, "very") is u².
	Con
	// Dil (dilation, "somewhat") is √u.
	Dil
	// Int (contrast intensifier, "indeed") pushes degrees away from 0.5.
	Int
	// Dim (contrast diminisher, "slightly") pulls degrees towards 0.5.
	Dim
)

// Hedges lists every hedge variant.
func Hedges() []Hedge {
	return []Hedge{Not, Con, Dil, Int, Dim}
}

// Apply modifies a single degree. It panics on an undeclared tag.
func (h Hedge) Apply(u float64) float64 {
	switch h {
	case Not:
		return 1 - u
	case Con:
		return u * u
	case Dil:
		return math.Sqrt(u)
	case Int:
		if u < 0.5 {
			return 2 * u * u
		}
		return 1 - 2*(1-u)*(1-u)
	case Dim:
		if u < 0.5 {
			return 0.5 * math.Sqrt(u)
		}
		return 1 - 0.5*math.Sqrt(1-u)
	}
	panic(invalidTag("hedge", uint8(h)))
}

func (h Hedge) Valid() bool { return h >= Not && h <= Dim }

func (h Hedge) String() string {
	switch h {
	case Not:
		return "not"
	case Con:
		return "con"
	case Dil:
		return "dil"
	case Int:
		return "int"
	case Dim:
		return "dim"
	default:
		return "invalid_hedge"
	}
}

// Transform builds the modified membership function h(m(x)).
func (h Hedge) Transform(m mf.MembershipFunction) Modified {
	return Transform(h, m)
}

// ParseHedge resolves a hedge by its name or its linguistic word.
func ParseHedge(name string) (Hedge, error) {
	switch normalize(name) {
	case "not":
		return Not, nil
	case "con", "very":
		return Con, nil
	case "dil", "somewhat":
		return Dil, nil
	case "int", "indeed":
		return Int, nil
	case "dim", "slightly":
		return Dim, nil
	}
	return 0, errors.Wrapf(internalerr.ErrInvalidOperator, "unknown hedge %q", name)
}
