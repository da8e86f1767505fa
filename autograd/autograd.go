// Package autograd provides the public API for the scalar reverse-mode
// automatic differentiation engine.
//
// The engine records every arithmetic operation as a node in a computation
// graph owned by an Arena. Calling Backward on any node propagates gradients
// through the whole reachable graph in reverse topological order.
//
// Example:
//
//	arena := autograd.NewArena()
//	x, _ := arena.Constant(3.0)
//	y, _ := arena.Mul(x, x) // y = x²
//
//	if err := y.Backward(); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(x.Grad) // dy/dx = 2x = 6.0
//
// Arenas are scoped to one forward+backward episode: build the graph, call
// Backward once, read the gradients, then discard the arena. Long-lived
// parameters live in their own arena owned by the model.
package autograd

import (
	"github.com/microgpt-ml/microgpt/internal/autograd"
)

// Value is one scalar vertex in the computation graph.
type Value = autograd.Value

// Arena owns all Values for one computation episode and is the only way to
// construct them. Pointers returned by its factory methods remain valid until
// the arena is reset or discarded.
type Arena = autograd.Arena

// NewArena creates an empty arena with the default node limit.
func NewArena() *Arena {
	return autograd.NewArena()
}

// NewArenaWithLimit creates an empty arena holding at most limit nodes.
func NewArenaWithLimit(limit int) *Arena {
	return autograd.NewArenaWithLimit(limit)
}

// DefaultNodeLimit is the default per-arena node bound.
const DefaultNodeLimit = autograd.DefaultNodeLimit

// MaxGraphNodes bounds the reachable set of a single backward pass.
const MaxGraphNodes = autograd.MaxGraphNodes

// Operation and graph integrity errors.
var (
	ErrNonFinite     = autograd.ErrNonFinite
	ErrOverflow      = autograd.ErrOverflow
	ErrLogDomain     = autograd.ErrLogDomain
	ErrDivByZero     = autograd.ErrDivByZero
	ErrPowDomain     = autograd.ErrPowDomain
	ErrArenaFull     = autograd.ErrArenaFull
	ErrGraphCycle    = autograd.ErrGraphCycle
	ErrGraphTooLarge = autograd.ErrGraphTooLarge
	ErrNilOperand    = autograd.ErrNilOperand
)
