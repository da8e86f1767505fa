package optim

import (
	"math"

	"github.com/microgpt-ml/microgpt/internal/autograd"
)

// AdamConfig holds the Adam hyperparameters. Zero values are replaced with
// the defaults used for character-level training.
type AdamConfig struct {
	LR    float64 // learning rate, default 0.01
	Beta1 float64 // first-moment decay, default 0.9
	Beta2 float64 // second-moment decay, default 0.95
	Eps   float64 // denominator guard, default 1e-8

	// TotalSteps enables cosine learning-rate decay over that many steps.
	// Zero disables the schedule.
	TotalSteps int
}

func (c AdamConfig) withDefaults() AdamConfig {
	if c.LR == 0 {
		c.LR = 0.01
	}
	if c.Beta1 == 0 {
		c.Beta1 = 0.9
	}
	if c.Beta2 == 0 {
		c.Beta2 = 0.95
	}
	if c.Eps == 0 {
		c.Eps = 1e-8
	}
	return c
}

// Adam implements the Adam optimizer with bias correction and an optional
// cosine learning-rate schedule.
type Adam struct {
	config AdamConfig
	params []*autograd.Value
	m      []float64 // first moment, one per parameter
	v      []float64 // second moment, one per parameter
	step   int
}

// NewAdam creates an Adam optimizer over params.
func NewAdam(params []*autograd.Value, cfg AdamConfig) (*Adam, error) {
	if len(params) == 0 {
		return nil, ErrNoParameters
	}
	return &Adam{
		config: cfg.withDefaults(),
		params: params,
		m:      make([]float64, len(params)),
		v:      make([]float64, len(params)),
	}, nil
}

// Step applies one Adam update and zeroes every gradient.
func (a *Adam) Step() error {
	a.step++
	lr := a.lrAt(a.step)

	c1 := 1 - math.Pow(a.config.Beta1, float64(a.step))
	c2 := 1 - math.Pow(a.config.Beta2, float64(a.step))

	for i, p := range a.params {
		g := p.Grad
		a.m[i] = a.config.Beta1*a.m[i] + (1-a.config.Beta1)*g
		a.v[i] = a.config.Beta2*a.v[i] + (1-a.config.Beta2)*g*g

		mHat := a.m[i] / c1
		vHat := a.v[i] / c2

		p.Data -= lr * mHat / (math.Sqrt(vHat) + a.config.Eps)
		p.Grad = 0
	}
	return nil
}

// ZeroGrad clears all parameter gradients.
func (a *Adam) ZeroGrad() { zeroGrads(a.params) }

// LR returns the learning rate the next Step will use.
func (a *Adam) LR() float64 { return a.lrAt(a.step + 1) }

// StepCount returns the number of completed steps.
func (a *Adam) StepCount() int { return a.step }

func (a *Adam) lrAt(step int) float64 {
	if a.config.TotalSteps <= 0 {
		return a.config.LR
	}
	// Cosine decay from LR to 0 over TotalSteps.
	return a.config.LR * 0.5 * (1 + math.Cos(math.Pi*float64(step)/float64(a.config.TotalSteps)))
}
