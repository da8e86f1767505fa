package autograd

import "fmt"

// MaxGraphNodes bounds the number of nodes one backward pass may visit.
// A reachable set larger than this indicates a runaway graph construction
// bug; Backward rejects the traversal rather than attempt it.
const MaxGraphNodes = 4 << 20

// Traversal colors for the iterative depth-first search.
const (
	colorWhite = iota // not yet visited
	colorGray         // on the DFS stack; seeing a gray node again means a cycle
	colorBlack        // fully processed
)

// Backward propagates gradients from this node to every node reachable
// through its operand edges.
//
// The traversal computes a depth-first post-order over the reachable
// subgraph, visiting each node exactly once even under heavy fan-in, then
// seeds this node's Grad with 1 (d(self)/d(self)) and walks the order in
// reverse, accumulating operands[i].Grad += localGrads[i] * node.Grad for
// every edge.
//
// Gradients accumulate: calling Backward twice on the same terminal without
// zeroing grads in between doubles every leaf's gradient. That is the same
// accumulation semantic fan-out relies on within a single graph, and callers
// wanting a fresh computation must reset grads (or start a new arena) first.
//
// Backward fails without touching any gradient if the graph contains a
// cycle, a nil operand reference, or more than MaxGraphNodes reachable nodes.
func (v *Value) Backward() error {
	topo, err := topoOrder(v, MaxGraphNodes)
	if err != nil {
		return err
	}

	v.Grad = 1

	// Post-order places the terminal last; reverse iteration processes it
	// first and reaches every node only after all of its consumers.
	for i := len(topo) - 1; i >= 0; i-- {
		node := topo[i]
		for j, operand := range node.operands {
			operand.Grad += node.localGrads[j] * node.Grad
		}
	}
	return nil
}

// topoOrder builds a depth-first post-order over the nodes reachable from
// root. The traversal is iterative so graph depth is bounded by memory, not
// by the goroutine stack (a 10k-node chain is a legitimate graph).
func topoOrder(root *Value, maxNodes int) ([]*Value, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: backward on nil node", ErrNilOperand)
	}

	type frame struct {
		node *Value
		next int // index of the next operand edge to follow
	}

	color := make(map[*Value]uint8)
	topo := make([]*Value, 0, 64)
	stack := make([]frame, 0, 64)

	color[root] = colorGray
	stack = append(stack, frame{node: root})

	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		if f.next < len(f.node.operands) {
			child := f.node.operands[f.next]
			f.next++

			if child == nil {
				return nil, fmt.Errorf("%w: operand %d of node with value %v",
					ErrNilOperand, f.next-1, f.node.Data)
			}

			switch color[child] {
			case colorWhite:
				if len(color) >= maxNodes {
					return nil, fmt.Errorf("%w: more than %d reachable nodes",
						ErrGraphTooLarge, maxNodes)
				}
				color[child] = colorGray
				stack = append(stack, frame{node: child})
			case colorGray:
				// The child is still on the DFS stack: following this edge
				// would re-enter an ancestor.
				return nil, fmt.Errorf("%w: node with value %v reaches itself",
					ErrGraphCycle, child.Data)
			}
			continue
		}

		color[f.node] = colorBlack
		topo = append(topo, f.node)
		stack = stack[:len(stack)-1]
	}

	return topo, nil
}
