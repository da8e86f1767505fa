// Package optim is the public API for the gradient-descent optimizers.
package optim

import (
	"github.com/microgpt-ml/microgpt/internal/autograd"
	"github.com/microgpt-ml/microgpt/internal/optim"
)

// Optimizer updates parameters from their accumulated gradients.
type Optimizer = optim.Optimizer

// Adam implements the Adam optimizer with bias correction and an optional
// cosine learning-rate schedule.
type Adam = optim.Adam

// AdamConfig holds the Adam hyperparameters.
type AdamConfig = optim.AdamConfig

// SGD implements stochastic gradient descent with optional momentum.
type SGD = optim.SGD

// ErrNoParameters indicates an optimizer over an empty parameter set.
var ErrNoParameters = optim.ErrNoParameters

// NewAdam creates an Adam optimizer over params.
//
// Example:
//
//	model, _ := nn.NewGPT(cfg, rand.NewSource(42))
//	opt, err := optim.NewAdam(model.Parameters(), optim.AdamConfig{
//	    LR:         0.01,
//	    TotalSteps: 1000, // cosine decay horizon
//	})
func NewAdam(params []*autograd.Value, cfg AdamConfig) (*Adam, error) {
	return optim.NewAdam(params, cfg)
}

// NewSGD creates an SGD optimizer. momentum 0 gives plain gradient descent.
func NewSGD(params []*autograd.Value, lr, momentum float64) (*SGD, error) {
	return optim.NewSGD(params, lr, momentum)
}
