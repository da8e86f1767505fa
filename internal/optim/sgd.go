package optim

import "github.com/microgpt-ml/microgpt/internal/autograd"

// SGD implements stochastic gradient descent with optional classical
// momentum. Used in tests and small experiments where Adam's moment
// buffers obscure what a single update does.
type SGD struct {
	lr       float64
	momentum float64
	params   []*autograd.Value
	velocity []float64
}

// NewSGD creates an SGD optimizer. momentum 0 gives plain gradient descent.
func NewSGD(params []*autograd.Value, lr, momentum float64) (*SGD, error) {
	if len(params) == 0 {
		return nil, ErrNoParameters
	}
	return &SGD{
		lr:       lr,
		momentum: momentum,
		params:   params,
		velocity: make([]float64, len(params)),
	}, nil
}

// Step applies one update and zeroes every gradient.
func (s *SGD) Step() error {
	for i, p := range s.params {
		s.velocity[i] = s.momentum*s.velocity[i] + p.Grad
		p.Data -= s.lr * s.velocity[i]
		p.Grad = 0
	}
	return nil
}

// ZeroGrad clears all parameter gradients.
func (s *SGD) ZeroGrad() { zeroGrads(s.params) }

// LR returns the fixed learning rate.
func (s *SGD) LR() float64 { return s.lr }
