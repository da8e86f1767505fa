// Package autograd implements scalar reverse-mode automatic differentiation.
//
// The engine is built around two types:
//   - Value: one scalar vertex in a computation graph, holding the forward
//     result, the accumulated gradient, and back-edges to its operands with
//     the local partial derivatives evaluated at construction time.
//   - Arena: the exclusive owner and allocator of Values for one computation
//     episode (one forward+backward step). Values can only be constructed
//     through the arena's factory methods, which guarantees every operand
//     reference stays valid for the lifetime of any backward pass.
//
// Usage:
//
//	arena := autograd.NewArena()
//	a, _ := arena.Constant(2.0)
//	b, _ := arena.Constant(3.0)
//	c, _ := arena.Mul(a, b) // c = a * b
//
//	if err := c.Backward(); err != nil {
//	    // malformed graph (cycle, nil operand, size bound)
//	}
//	fmt.Println(a.Grad) // dc/da = b = 3.0
package autograd

// Value is a single scalar node in the computation graph.
//
// Data is the forward-computed value, set once at construction. It is mutated
// in place only for leaf nodes acting as optimizer-owned parameters.
//
// Grad accumulates d(loss)/d(this) across backward passes. It starts at zero
// and supports repeated += accumulation, which is what makes fan-out (one
// node consumed by several downstream nodes) come out right. Callers that
// need a fresh gradient must zero Grad (or discard the arena) first.
//
// Values must never be copied once created: a copy would duplicate the node's
// identity without redirecting the edges that reference it, corrupting the
// graph. All construction goes through Arena factory methods.
type Value struct {
	Data float64
	Grad float64

	// operands[i] produced this node; localGrads[i] is d(this)/d(operands[i])
	// evaluated at the forward values. The two slices are always paired.
	operands   []*Value
	localGrads []float64
}

// NumOperands returns the number of operands this node was derived from.
// Leaves and constants have zero operands.
func (v *Value) NumOperands() int {
	return len(v.operands)
}

// IsLeaf reports whether this node has no operands (a constant or parameter).
func (v *Value) IsLeaf() bool {
	return len(v.operands) == 0
}

// ZeroGrad resets the accumulated gradient to zero.
func (v *Value) ZeroGrad() {
	v.Grad = 0
}
