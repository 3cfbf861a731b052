// Package algebra implements the operators that combine and modify membership
// functions: t-norms, t-conorms, connectives and hedges.
//
// Operators are closed sets of tagged values. Applying one never builds a
// closure; Combine and Transform return explicit expression nodes (Node,
// Modified, JointNode) that hold the operator tag and their operands. Nodes are
// plain values, so evaluating a tree is pure and repeatable, and the tree can be
// inspected with Walk.
package algebra

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
)

// Family groups operators by their algebraic role.
type Family uint8

const (
	FamilyTNorm Family = iota + 1
	FamilyTCoNorm
	FamilyConnective
)

func (f Family) String() string {
	switch f {
	case FamilyTNorm:
		return "t-norm"
	case FamilyTCoNorm:
		return "t-conorm"
	case FamilyConnective:
		return "connective"
	default:
		return "unknown"
	}
}

// Operator is a binary operator on membership degrees.
type Operator interface {
	// Apply combines two degrees.
	Apply(a, b float64) float64
	Family() Family
	// Valid reports whether the value is one of the declared variants.
	Valid() bool
	String() string
}

// ParseOperator resolves a t-norm or t-conorm by name.
func ParseOperator(name string) (Operator, error) {
	if t, err := ParseTNorm(name); err == nil {
		return t, nil
	}
	if s, err := ParseTCoNorm(name); err == nil {
		return s, nil
	}
	return nil, errors.Wrapf(internalerr.ErrInvalidOperator, "unknown t-norm or t-conorm %q", name)
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "_", " ", "_").Replace(name)
}

func invalidTag(kind string, v uint8) string {
	return fmt.Sprintf("algebra: invalid %s tag %d", kind, v)
}
