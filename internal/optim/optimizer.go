// Package optim implements gradient-descent optimizers over scalar
// parameters.
//
// Optimizers operate directly on the leaves returned by a model's
// Parameters() call: they read each leaf's Grad, update its Data in place,
// and clear the gradient for the next step.
package optim

import (
	"errors"

	"github.com/microgpt-ml/microgpt/internal/autograd"
)

// ErrNoParameters indicates an optimizer constructed over an empty
// parameter set.
var ErrNoParameters = errors.New("optimizer has no parameters")

// Optimizer updates parameters from their accumulated gradients.
type Optimizer interface {
	// Step applies one update using the current gradients, then clears
	// them.
	Step() error

	// ZeroGrad clears all parameter gradients without updating.
	ZeroGrad()

	// LR returns the learning rate the next Step will use.
	LR() float64
}

func zeroGrads(params []*autograd.Value) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
