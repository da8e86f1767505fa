// Package nn implements the scalar transformer built on the autograd arena.
//
// This package provides the building blocks for the character-level GPT:
//   - Module interface: base interface for components exposing parameters
//   - Parameter: named matrix of trainable scalar leaves
//   - Linear, RMSNorm, Softmax, CrossEntropy: functional layers over []*Value
//   - GPT: the full pre-norm residual transformer with per-layer KV cache
//
// Every operation is expressed through arena factory methods so the whole
// forward pass is differentiable node by node. Layers take the arena
// explicitly: model parameters live in a long-lived arena owned by the GPT,
// while activations are built in a per-step arena the caller discards after
// each backward pass.
package nn

import (
	"github.com/microgpt-ml/microgpt/internal/autograd"
)

// Module is the base interface for components with trainable parameters.
type Module interface {
	// Parameters returns all trainable scalar leaves of this module.
	//
	// The order is stable across calls; optimizers and checkpoints rely on it.
	Parameters() []*autograd.Value
}
