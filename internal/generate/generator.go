package generate

import (
	"github.com/microgpt-ml/microgpt/internal/autograd"
	"github.com/microgpt-ml/microgpt/internal/nn"
	"github.com/microgpt-ml/microgpt/internal/tokenizer"
)

// Generator runs the autoregressive decoding loop: feed BOS, sample a token
// from the logits, feed it back, until BOS reappears or the context window
// fills up.
type Generator struct {
	model   *nn.GPT
	tok     tokenizer.Tokenizer
	sampler *Sampler
}

// NewGenerator creates a generator over a trained model.
func NewGenerator(model *nn.GPT, tok tokenizer.Tokenizer, cfg SamplingConfig) (*Generator, error) {
	sampler, err := NewSampler(cfg)
	if err != nil {
		return nil, err
	}
	return &Generator{model: model, tok: tok, sampler: sampler}, nil
}

// Generate produces one decoded sample of at most maxTokens tokens.
//
// Each call builds its graph in a fresh arena with a fresh KV cache; both
// are discarded when the call returns.
func (g *Generator) Generate(maxTokens int) (string, error) {
	cfg := g.model.Config()
	arena := autograd.NewArena()
	cache := nn.NewKVCache(cfg.NumLayers)

	bos := g.tok.BosToken()
	tokenID := bos
	var tokens []int

	for pos := 0; pos < maxTokens && pos < cfg.BlockSize; pos++ {
		logits, err := g.model.Forward(arena, tokenID, pos, cache)
		if err != nil {
			return "", err
		}
		next, err := g.sampler.Sample(logitData(logits))
		if err != nil {
			return "", err
		}
		if next == bos {
			break
		}
		tokens = append(tokens, next)
		tokenID = next
	}
	return g.tok.Decode(tokens), nil
}

func logitData(logits []*autograd.Value) []float64 {
	out := make([]float64, len(logits))
	for i, l := range logits {
		out[i] = l.Data
	}
	return out
}
