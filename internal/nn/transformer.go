package nn

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/microgpt-ml/microgpt/internal/autograd"
)

// Config describes the transformer architecture.
type Config struct {
	VocabSize int // tokenizer vocabulary size, including BOS
	EmbedDim  int // embedding width, must be divisible by NumHeads
	NumHeads  int // attention heads per layer
	NumLayers int // transformer layers
	BlockSize int // maximum sequence length
}

// Validate reports whether the configuration describes a buildable model.
func (c Config) Validate() error {
	switch {
	case c.VocabSize <= 0:
		return fmt.Errorf("%w: vocab size %d", ErrInvalidConfig, c.VocabSize)
	case c.EmbedDim <= 0:
		return fmt.Errorf("%w: embed dim %d", ErrInvalidConfig, c.EmbedDim)
	case c.NumHeads <= 0:
		return fmt.Errorf("%w: num heads %d", ErrInvalidConfig, c.NumHeads)
	case c.NumLayers <= 0:
		return fmt.Errorf("%w: num layers %d", ErrInvalidConfig, c.NumLayers)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d", ErrInvalidConfig, c.BlockSize)
	case c.EmbedDim%c.NumHeads != 0:
		return fmt.Errorf("%w: embed dim %d not divisible by %d heads",
			ErrInvalidConfig, c.EmbedDim, c.NumHeads)
	}
	return nil
}

// HeadDim returns the per-head width.
func (c Config) HeadDim() int { return c.EmbedDim / c.NumHeads }

// NumParams returns the total scalar parameter count for this configuration.
func (c Config) NumParams() int {
	e := c.EmbedDim
	perLayer := 4*e*e + 2*4*e*e // wq+wk+wv+wo + fc1+fc2
	return c.VocabSize*e + c.BlockSize*e + c.VocabSize*e + c.NumLayers*perLayer
}

// layerWeights holds one transformer layer's parameter matrices.
type layerWeights struct {
	wq, wk, wv, wo *Parameter // attention projections, EmbedDim×EmbedDim
	fc1            *Parameter // MLP expansion, 4E×E
	fc2            *Parameter // MLP contraction, E×4E
}

// GPT is the decoder-only transformer: token+position embeddings, NumLayers
// pre-norm residual blocks of causal multi-head attention and a ReLU² MLP,
// and a linear head back to vocabulary logits.
//
// The model owns a private arena holding exactly its parameters; every
// forward pass builds activations in a caller-supplied step arena.
type GPT struct {
	config Config
	arena  *autograd.Arena
	wte    *Parameter // token embeddings, VocabSize×EmbedDim
	wpe    *Parameter // position embeddings, BlockSize×EmbedDim
	lmHead *Parameter // output projection, VocabSize×EmbedDim
	layers []layerWeights
}

// NewGPT builds a model with N(0, 0.02) initial weights drawn from src.
// Output projections (attn_wo, mlp_fc2) start at zero so each residual block
// is the identity at initialization.
func NewGPT(cfg Config, src rand.Source) (*GPT, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	arena := autograd.NewArenaWithLimit(cfg.NumParams())
	normal := Normal(src, 0.02)
	zeros := Zeros()

	m := &GPT{config: cfg, arena: arena}
	var err error
	if m.wte, err = NewParameter(arena, "wte", cfg.VocabSize, cfg.EmbedDim, normal); err != nil {
		return nil, err
	}
	if m.wpe, err = NewParameter(arena, "wpe", cfg.BlockSize, cfg.EmbedDim, normal); err != nil {
		return nil, err
	}
	if m.lmHead, err = NewParameter(arena, "lm_head", cfg.VocabSize, cfg.EmbedDim, normal); err != nil {
		return nil, err
	}

	m.layers = make([]layerWeights, cfg.NumLayers)
	e := cfg.EmbedDim
	for i := range m.layers {
		prefix := fmt.Sprintf("layer%d.", i)
		l := &m.layers[i]
		if l.wq, err = NewParameter(arena, prefix+"attn_wq", e, e, normal); err != nil {
			return nil, err
		}
		if l.wk, err = NewParameter(arena, prefix+"attn_wk", e, e, normal); err != nil {
			return nil, err
		}
		if l.wv, err = NewParameter(arena, prefix+"attn_wv", e, e, normal); err != nil {
			return nil, err
		}
		if l.wo, err = NewParameter(arena, prefix+"attn_wo", e, e, zeros); err != nil {
			return nil, err
		}
		if l.fc1, err = NewParameter(arena, prefix+"mlp_fc1", 4*e, e, normal); err != nil {
			return nil, err
		}
		if l.fc2, err = NewParameter(arena, prefix+"mlp_fc2", e, 4*e, zeros); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Config returns the model configuration.
func (m *GPT) Config() Config { return m.config }

// Parameters returns every trainable scalar in a fixed order: wte, wpe,
// lm_head, then per layer wq, wk, wv, wo, fc1, fc2. Checkpoints serialize
// weights in exactly this order.
func (m *GPT) Parameters() []*autograd.Value {
	params := make([]*autograd.Value, 0, m.config.NumParams())
	params = append(params, m.wte.Values()...)
	params = append(params, m.wpe.Values()...)
	params = append(params, m.lmHead.Values()...)
	for i := range m.layers {
		l := &m.layers[i]
		params = append(params, l.wq.Values()...)
		params = append(params, l.wk.Values()...)
		params = append(params, l.wv.Values()...)
		params = append(params, l.wo.Values()...)
		params = append(params, l.fc1.Values()...)
		params = append(params, l.fc2.Values()...)
	}
	return params
}

// ZeroGrad clears all parameter gradients.
func (m *GPT) ZeroGrad() {
	for _, p := range m.Parameters() {
		p.ZeroGrad()
	}
}

// Forward runs one token through the model and returns the logits over the
// vocabulary. The cache accumulates this position's keys and values so the
// next call attends over the whole prefix.
func (m *GPT) Forward(arena *autograd.Arena, tokenID, posID int, cache *KVCache) ([]*autograd.Value, error) {
	if tokenID < 0 || tokenID >= m.config.VocabSize {
		return nil, fmt.Errorf("%w: token %d, vocab %d", ErrTokenOutOfRange, tokenID, m.config.VocabSize)
	}
	if posID < 0 || posID >= m.config.BlockSize {
		return nil, fmt.Errorf("%w: position %d, block %d", ErrPositionOutOfRange, posID, m.config.BlockSize)
	}

	// Joint token + position embedding.
	tokEmb := m.wte.Row(tokenID)
	posEmb := m.wpe.Row(posID)
	x := make([]*autograd.Value, 0, m.config.EmbedDim)
	for i := 0; i < m.config.EmbedDim; i++ {
		sum, err := arena.Add(tokEmb[i], posEmb[i])
		if err != nil {
			return nil, err
		}
		x = append(x, sum)
	}
	x, err := RMSNorm(arena, x)
	if err != nil {
		return nil, err
	}

	for li := range m.layers {
		if x, err = m.attentionBlock(arena, x, li, cache); err != nil {
			return nil, fmt.Errorf("layer %d attention: %w", li, err)
		}
		if x, err = m.mlpBlock(arena, x, li); err != nil {
			return nil, fmt.Errorf("layer %d mlp: %w", li, err)
		}
	}

	return Linear(arena, x, m.lmHead)
}

// attentionBlock applies pre-norm causal multi-head attention with a
// residual connection, attending over every cached position plus the current
// one.
func (m *GPT) attentionBlock(arena *autograd.Arena, x []*autograd.Value, layer int, cache *KVCache) ([]*autograd.Value, error) {
	residual := x
	x, err := RMSNorm(arena, x)
	if err != nil {
		return nil, err
	}

	l := &m.layers[layer]
	q, err := Linear(arena, x, l.wq)
	if err != nil {
		return nil, err
	}
	k, err := Linear(arena, x, l.wk)
	if err != nil {
		return nil, err
	}
	v, err := Linear(arena, x, l.wv)
	if err != nil {
		return nil, err
	}
	cache.Append(layer, k, v)

	keys := cache.Keys(layer)
	values := cache.Values(layer)
	headDim := m.config.HeadDim()
	scale := math.Sqrt(float64(headDim))

	attnOut := make([]*autograd.Value, 0, m.config.EmbedDim)
	for h := 0; h < m.config.NumHeads; h++ {
		hs := h * headDim
		qh := q[hs : hs+headDim]

		// Scaled dot-product score against every cached position.
		scores := make([]*autograd.Value, 0, len(keys))
		for _, kt := range keys {
			score, err := arena.Constant(0)
			if err != nil {
				return nil, err
			}
			for j := 0; j < headDim; j++ {
				prod, err := arena.Mul(qh[j], kt[hs+j])
				if err != nil {
					return nil, err
				}
				if score, err = arena.Add(score, prod); err != nil {
					return nil, err
				}
			}
			scaled, err := arena.DivScalar(score, scale)
			if err != nil {
				return nil, err
			}
			scores = append(scores, scaled)
		}

		weights, err := Softmax(arena, scores)
		if err != nil {
			return nil, err
		}

		// Attention-weighted sum of the cached values.
		for j := 0; j < headDim; j++ {
			out, err := arena.Constant(0)
			if err != nil {
				return nil, err
			}
			for t, vt := range values {
				prod, err := arena.Mul(weights[t], vt[hs+j])
				if err != nil {
					return nil, err
				}
				if out, err = arena.Add(out, prod); err != nil {
					return nil, err
				}
			}
			attnOut = append(attnOut, out)
		}
	}

	x, err = Linear(arena, attnOut, l.wo)
	if err != nil {
		return nil, err
	}
	return addResidual(arena, x, residual)
}

// mlpBlock applies the pre-norm position-wise MLP with ReLU² activation and
// a residual connection.
func (m *GPT) mlpBlock(arena *autograd.Arena, x []*autograd.Value, layer int) ([]*autograd.Value, error) {
	residual := x
	x, err := RMSNorm(arena, x)
	if err != nil {
		return nil, err
	}

	l := &m.layers[layer]
	x, err = Linear(arena, x, l.fc1)
	if err != nil {
		return nil, err
	}
	for i, xi := range x {
		r, err := arena.ReLU(xi)
		if err != nil {
			return nil, err
		}
		if x[i], err = arena.Mul(r, r); err != nil {
			return nil, err
		}
	}
	x, err = Linear(arena, x, l.fc2)
	if err != nil {
		return nil, err
	}
	return addResidual(arena, x, residual)
}

func addResidual(arena *autograd.Arena, x, residual []*autograd.Value) ([]*autograd.Value, error) {
	if len(x) != len(residual) {
		return nil, fmt.Errorf("residual: %d vs %d: %w", len(x), len(residual), ErrDimensionMismatch)
	}
	out := make([]*autograd.Value, 0, len(x))
	for i := range x {
		sum, err := arena.Add(x[i], residual[i])
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, nil
}
