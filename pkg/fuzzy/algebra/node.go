package algebra

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/grid"
	"github.com/cognicore/fuzzy/pkg/fuzzy/mf"
)

// Node is a binary expression Op(Left(x), Right(x)) over one universe.
type Node struct {
	Op          Operator
	Left, Right mf.MembershipFunction
}

// Combine builds a binary node. Operands are evaluated lazily, on each call
// to Evaluate.
func Combine(op Operator, left, right mf.MembershipFunction) Node {
	return Node{Op: op, Left: left, Right: right}
}

func (n Node) Evaluate(x float64) float64 {
	return n.Op.Apply(n.Left.Evaluate(x), n.Right.Evaluate(x))
}

func (n Node) String() string {
	return fmt.Sprintf("%s(%v, %v)", n.Op, n.Left, n.Right)
}

// Modified is a hedge applied to one operand.
type Modified struct {
	Hedge   Hedge
	Operand mf.MembershipFunction
}

// Transform builds a unary hedge node.
func Transform(h Hedge, m mf.MembershipFunction) Modified {
	return Modified{Hedge: h, Operand: m}
}

func (m Modified) Evaluate(x float64) float64 {
	return m.Hedge.Apply(m.Operand.Evaluate(x))
}

func (m Modified) String() string {
	return fmt.Sprintf("%s(%v)", m.Hedge, m.Operand)
}

// JointNode combines two membership functions that range over independent
// universes x1 and x2. Its value at (x1, x2) is Op(Left(x1), Right(x2)).
type JointNode struct {
	Op          Operator
	Left, Right mf.MembershipFunction
}

// CombineJoint builds a node over the product universe.
func CombineJoint(op Operator, left, right mf.MembershipFunction) JointNode {
	return JointNode{Op: op, Left: left, Right: right}
}

// EvaluateAt evaluates the node at a single point of the product universe.
func (j JointNode) EvaluateAt(x1, x2 float64) float64 {
	return j.Op.Apply(j.Left.Evaluate(x1), j.Right.Evaluate(x2))
}

// EvaluateProduct evaluates the node over the Cartesian grid x1 × x2.
// Row i follows x1[i] and column j follows x2[j].
func (j JointNode) EvaluateProduct(x1, x2 []float64) [][]float64 {
	left := mf.EvaluateAll(j.Left, x1)
	right := mf.EvaluateAll(j.Right, x2)

	out := make([][]float64, len(x1))
	for r := range out {
		out[r] = make([]float64, len(x2))
		for c := range out[r] {
			out[r][c] = j.Op.Apply(left[r], right[c])
		}
	}
	return out
}

// EvaluateGrid evaluates the node over already broadcast coordinate grids,
// such as the pair returned by grid.Mesh. It satisfies mf.Joint.
func (j JointNode) EvaluateGrid(X1, X2 [][]float64) ([][]float64, error) {
	rows, cols, err := grid.SameShape2(X1, X2)
	if err != nil {
		return nil, errors.Wrapf(err, "joint %s", j.Op)
	}
	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]float64, cols)
		for c := 0; c < cols; c++ {
			out[r][c] = j.EvaluateAt(X1[r][c], X2[r][c])
		}
	}
	return out, nil
}

func (j JointNode) String() string {
	return fmt.Sprintf("%s[joint](%v, %v)", j.Op, j.Left, j.Right)
}

// Walk visits m and then its operands depth first. It stops descending into a
// subtree when fn returns false.
func Walk(m mf.MembershipFunction, fn func(mf.MembershipFunction) bool) {
	if m == nil || !fn(m) {
		return
	}
	switch n := m.(type) {
	case Node:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case Modified:
		Walk(n.Operand, fn)
	}
}

// Depth is the height of the composition tree rooted at m. A leaf has depth 1.
func Depth(m mf.MembershipFunction) int {
	switch n := m.(type) {
	case Node:
		return 1 + max(Depth(n.Left), Depth(n.Right))
	case Modified:
		return 1 + Depth(n.Operand)
	case nil:
		return 0
	default:
		return 1
	}
}

// Leaves returns the leaf membership functions of the tree in visiting order.
func Leaves(m mf.MembershipFunction) []mf.MembershipFunction {
	var out []mf.MembershipFunction
	Walk(m, func(n mf.MembershipFunction) bool {
		switch n.(type) {
		case Node, Modified:
		default:
			out = append(out, n)
		}
		return true
	})
	return out
}
