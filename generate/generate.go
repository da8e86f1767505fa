// Package generate is the public API for sampling from trained models.
package generate

import (
	"github.com/microgpt-ml/microgpt/internal/generate"
	"github.com/microgpt-ml/microgpt/internal/nn"
	"github.com/microgpt-ml/microgpt/internal/tokenizer"
)

// SamplingConfig controls how the next token is drawn from the logits.
type SamplingConfig = generate.SamplingConfig

// Sampler draws token ids from model logits.
type Sampler = generate.Sampler

// Generator runs the autoregressive decoding loop.
type Generator = generate.Generator

// ErrInvalidSamplingConfig indicates out-of-range sampling parameters.
var ErrInvalidSamplingConfig = generate.ErrInvalidSamplingConfig

// NewSampler creates a sampler with its own seeded random source.
func NewSampler(cfg SamplingConfig) (*Sampler, error) { return generate.NewSampler(cfg) }

// NewGenerator creates a generator over a trained model.
func NewGenerator(model *nn.GPT, tok tokenizer.Tokenizer, cfg SamplingConfig) (*Generator, error) {
	return generate.NewGenerator(model, tok, cfg)
}
