package autograd

import "errors"

// Operation factory errors. Every factory validates its inputs and fails
// before constructing a node, so an invalid Value never enters the graph.
var (
	// ErrNonFinite reports a NaN or infinite input where a finite scalar is required.
	ErrNonFinite = errors.New("autograd: value is NaN or infinite")

	// ErrOverflow reports a forward result that exceeds the representable float64 range.
	ErrOverflow = errors.New("autograd: result overflows float64")

	// ErrLogDomain reports a logarithm of a non-positive value.
	ErrLogDomain = errors.New("autograd: log of non-positive value")

	// ErrDivByZero reports division by a zero or near-zero denominator.
	ErrDivByZero = errors.New("autograd: division by zero or near-zero value")

	// ErrPowDomain reports an invalid base/exponent combination: a negative
	// base with a non-integer exponent, or a zero base with a negative one.
	ErrPowDomain = errors.New("autograd: invalid power operands")

	// ErrArenaFull reports that the arena's node limit was reached. This
	// usually means a forward pass is leaking nodes across steps instead of
	// starting a fresh arena.
	ErrArenaFull = errors.New("autograd: arena node limit exceeded")
)

// Graph integrity errors. These indicate a construction bug upstream, not a
// recoverable runtime condition: Backward rejects the whole traversal.
var (
	// ErrGraphCycle reports a node that (directly or transitively) references itself.
	ErrGraphCycle = errors.New("autograd: cycle detected in computation graph")

	// ErrGraphTooLarge reports more reachable nodes than MaxGraphNodes.
	ErrGraphTooLarge = errors.New("autograd: computation graph exceeds node limit")

	// ErrNilOperand reports an operand reference that resolved to nothing.
	ErrNilOperand = errors.New("autograd: nil operand in computation graph")
)
