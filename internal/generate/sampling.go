// Package generate implements autoregressive sampling from a trained model.
package generate

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidSamplingConfig indicates out-of-range sampling parameters.
var ErrInvalidSamplingConfig = errors.New("invalid sampling config")

// SamplingConfig controls how the next token is drawn from the logits.
type SamplingConfig struct {
	// Temperature scales the logits before softmax. 0 means greedy
	// decoding; higher values flatten the distribution.
	Temperature float64

	// TopK restricts sampling to the K most likely tokens. 0 disables
	// the filter.
	TopK int

	// Seed initializes the sampler's random source.
	Seed uint64
}

// Validate reports whether the configuration is usable.
func (c SamplingConfig) Validate() error {
	if c.Temperature < 0 {
		return fmt.Errorf("%w: temperature %v", ErrInvalidSamplingConfig, c.Temperature)
	}
	if c.TopK < 0 {
		return fmt.Errorf("%w: top-k %d", ErrInvalidSamplingConfig, c.TopK)
	}
	return nil
}

// Sampler draws token ids from model logits.
//
// Sampling runs on plain float64 values: no gradients flow through
// generation, so the logits are read once and the arena is left alone.
type Sampler struct {
	config SamplingConfig
	src    rand.Source
}

// NewSampler creates a sampler with its own seeded random source.
func NewSampler(cfg SamplingConfig) (*Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sampler{config: cfg, src: rand.NewSource(cfg.Seed)}, nil
}

// Sample picks the next token id from the logits.
func (s *Sampler) Sample(logits []float64) (int, error) {
	if len(logits) == 0 {
		return 0, fmt.Errorf("%w: no logits", ErrInvalidSamplingConfig)
	}
	if s.config.Temperature == 0 {
		return argmax(logits), nil
	}

	probs := softmaxFloat(logits, s.config.Temperature)
	if k := s.config.TopK; k > 0 && k < len(probs) {
		keepTopK(probs, k)
	}

	dist := distuv.NewCategorical(probs, s.src)
	return int(dist.Rand()), nil
}

func argmax(xs []float64) int {
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}
	return best
}

// softmaxFloat is the max-shifted softmax over temperature-scaled logits.
func softmaxFloat(logits []float64, temperature float64) []float64 {
	maxLogit := math.Inf(-1)
	for _, l := range logits {
		maxLogit = math.Max(maxLogit, l)
	}

	probs := make([]float64, len(logits))
	var total float64
	for i, l := range logits {
		probs[i] = math.Exp((l - maxLogit) / temperature)
		total += probs[i]
	}
	for i := range probs {
		probs[i] /= total
	}
	return probs
}

// keepTopK zeroes every weight outside the k largest. Categorical
// renormalizes internally, so no rescaling is needed here.
func keepTopK(probs []float64, k int) {
	idx := make([]int, len(probs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return probs[idx[a]] > probs[idx[b]] })
	for _, i := range idx[k:] {
		probs[i] = 0
	}
}
