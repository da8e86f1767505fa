package nn

import (
	"fmt"
	"math"

	"github.com/microgpt-ml/microgpt/internal/autograd"
)

// rmsNormEpsilon guards the mean square against a zero activation vector.
const rmsNormEpsilon = 1e-5

// Linear applies the weight matrix to the activation vector: out[o] = Σ_i
// w[o][i] * x[i]. No bias term, matching the model architecture.
func Linear(arena *autograd.Arena, x []*autograd.Value, w *Parameter) ([]*autograd.Value, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("linear %q: %w", w.Name(), ErrEmptyInput)
	}
	if w.Cols() != len(x) {
		return nil, fmt.Errorf("linear %q: weight is %dx%d, input has %d: %w",
			w.Name(), w.Rows(), w.Cols(), len(x), ErrDimensionMismatch)
	}

	out := make([]*autograd.Value, 0, w.Rows())
	for o := 0; o < w.Rows(); o++ {
		row := w.Row(o)
		sum, err := arena.Constant(0)
		if err != nil {
			return nil, err
		}
		for i, xi := range x {
			prod, err := arena.Mul(row[i], xi)
			if err != nil {
				return nil, err
			}
			sum, err = arena.Add(sum, prod)
			if err != nil {
				return nil, err
			}
		}
		out = append(out, sum)
	}
	return out, nil
}

// RMSNorm normalizes x by the root of its mean square:
// out[i] = x[i] / sqrt(mean(x²) + eps). There is no learnable scale.
func RMSNorm(arena *autograd.Arena, x []*autograd.Value) ([]*autograd.Value, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("rmsnorm: %w", ErrEmptyInput)
	}

	ms, err := arena.Constant(0)
	if err != nil {
		return nil, err
	}
	for _, xi := range x {
		sq, err := arena.Mul(xi, xi)
		if err != nil {
			return nil, err
		}
		ms, err = arena.Add(ms, sq)
		if err != nil {
			return nil, err
		}
	}
	ms, err = arena.DivScalar(ms, float64(len(x)))
	if err != nil {
		return nil, err
	}
	msEps, err := arena.AddScalar(ms, rmsNormEpsilon)
	if err != nil {
		return nil, err
	}
	scale, err := arena.Pow(msEps, -0.5)
	if err != nil {
		return nil, err
	}

	out := make([]*autograd.Value, 0, len(x))
	for _, xi := range x {
		scaled, err := arena.Mul(xi, scale)
		if err != nil {
			return nil, err
		}
		out = append(out, scaled)
	}
	return out, nil
}

// Softmax converts logits to probabilities with the max-shift trick, so the
// largest exponent argument is always 0.
func Softmax(arena *autograd.Arena, logits []*autograd.Value) ([]*autograd.Value, error) {
	if len(logits) == 0 {
		return nil, fmt.Errorf("softmax: %w", ErrEmptyInput)
	}

	maxLogit := logits[0].Data
	for _, l := range logits[1:] {
		maxLogit = math.Max(maxLogit, l.Data)
	}

	exps := make([]*autograd.Value, 0, len(logits))
	total, err := arena.Constant(0)
	if err != nil {
		return nil, err
	}
	for _, l := range logits {
		shifted, err := arena.SubScalar(l, maxLogit)
		if err != nil {
			return nil, err
		}
		e, err := arena.Exp(shifted)
		if err != nil {
			return nil, err
		}
		exps = append(exps, e)
		total, err = arena.Add(total, e)
		if err != nil {
			return nil, err
		}
	}

	probs := make([]*autograd.Value, 0, len(exps))
	for _, e := range exps {
		p, err := arena.Div(e, total)
		if err != nil {
			return nil, err
		}
		probs = append(probs, p)
	}
	return probs, nil
}

// CrossEntropy returns the negative log-likelihood of the target class under
// softmax(logits).
func CrossEntropy(arena *autograd.Arena, logits []*autograd.Value, target int) (*autograd.Value, error) {
	if target < 0 || target >= len(logits) {
		return nil, fmt.Errorf("cross entropy: target %d with %d classes: %w",
			target, len(logits), ErrTokenOutOfRange)
	}
	probs, err := Softmax(arena, logits)
	if err != nil {
		return nil, err
	}
	logProb, err := arena.Log(probs[target])
	if err != nil {
		return nil, err
	}
	return arena.Neg(logProb)
}
