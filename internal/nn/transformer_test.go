package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/microgpt-ml/microgpt/internal/autograd"
	"github.com/microgpt-ml/microgpt/internal/nn"
)

func tinyConfig() nn.Config {
	return nn.Config{
		VocabSize: 5,
		EmbedDim:  4,
		NumHeads:  2,
		NumLayers: 1,
		BlockSize: 3,
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, tinyConfig().Validate())

	bad := tinyConfig()
	bad.VocabSize = 0
	assert.ErrorIs(t, bad.Validate(), nn.ErrInvalidConfig)

	bad = tinyConfig()
	bad.EmbedDim = 6 // not divisible by 4 heads
	bad.NumHeads = 4
	assert.ErrorIs(t, bad.Validate(), nn.ErrInvalidConfig)

	bad = tinyConfig()
	bad.NumLayers = -1
	assert.ErrorIs(t, bad.Validate(), nn.ErrInvalidConfig)
}

func TestGPT_ParameterCountAndOrder(t *testing.T) {
	cfg := tinyConfig()
	model, err := nn.NewGPT(cfg, rand.NewSource(42))
	require.NoError(t, err)

	params := model.Parameters()
	require.Len(t, params, cfg.NumParams())

	// The enumeration is stable: two calls hand out the same leaves.
	again := model.Parameters()
	for i := range params {
		require.Same(t, params[i], again[i])
	}
}

func TestGPT_OutputProjectionsStartAtZero(t *testing.T) {
	cfg := tinyConfig()
	model, err := nn.NewGPT(cfg, rand.NewSource(42))
	require.NoError(t, err)

	// With attn_wo and mlp_fc2 at zero, every residual block is the
	// identity, so two different tokens at the same position still produce
	// different logits purely through their embeddings.
	arena := autograd.NewArena()
	cacheA := nn.NewKVCache(cfg.NumLayers)
	logitsA, err := model.Forward(arena, 0, 0, cacheA)
	require.NoError(t, err)

	cacheB := nn.NewKVCache(cfg.NumLayers)
	logitsB, err := model.Forward(arena, 1, 0, cacheB)
	require.NoError(t, err)

	differ := false
	for i := range logitsA {
		if math.Abs(logitsA[i].Data-logitsB[i].Data) > 1e-12 {
			differ = true
		}
	}
	assert.True(t, differ, "distinct tokens must produce distinct logits")
}

func TestGPT_ForwardShapeAndFiniteness(t *testing.T) {
	cfg := tinyConfig()
	model, err := nn.NewGPT(cfg, rand.NewSource(1))
	require.NoError(t, err)

	arena := autograd.NewArena()
	cache := nn.NewKVCache(cfg.NumLayers)

	for pos := 0; pos < cfg.BlockSize; pos++ {
		logits, err := model.Forward(arena, pos%cfg.VocabSize, pos, cache)
		require.NoError(t, err)
		require.Len(t, logits, cfg.VocabSize)
		for i, l := range logits {
			require.False(t, math.IsNaN(l.Data) || math.IsInf(l.Data, 0),
				"logit %d at position %d is not finite", i, pos)
		}
		require.Equal(t, pos+1, cache.Len())
	}
}

func TestGPT_ForwardRejectsOutOfRangeIDs(t *testing.T) {
	cfg := tinyConfig()
	model, err := nn.NewGPT(cfg, rand.NewSource(1))
	require.NoError(t, err)

	arena := autograd.NewArena()
	cache := nn.NewKVCache(cfg.NumLayers)

	_, err = model.Forward(arena, cfg.VocabSize, 0, cache)
	assert.ErrorIs(t, err, nn.ErrTokenOutOfRange)
	_, err = model.Forward(arena, -1, 0, cache)
	assert.ErrorIs(t, err, nn.ErrTokenOutOfRange)
	_, err = model.Forward(arena, 0, cfg.BlockSize, cache)
	assert.ErrorIs(t, err, nn.ErrPositionOutOfRange)
	_, err = model.Forward(arena, 0, -1, cache)
	assert.ErrorIs(t, err, nn.ErrPositionOutOfRange)
	assert.Zero(t, cache.Len(), "rejected calls must not touch the cache")
}

func TestGPT_BackwardReachesEmbeddings(t *testing.T) {
	cfg := tinyConfig()
	model, err := nn.NewGPT(cfg, rand.NewSource(7))
	require.NoError(t, err)

	arena := autograd.NewArena()
	cache := nn.NewKVCache(cfg.NumLayers)

	logits, err := model.Forward(arena, 2, 0, cache)
	require.NoError(t, err)
	loss, err := nn.CrossEntropy(arena, logits, 3)
	require.NoError(t, err)
	require.False(t, math.IsNaN(loss.Data))

	require.NoError(t, loss.Backward())

	nonZero := 0
	for _, p := range model.Parameters() {
		if p.Grad != 0 {
			nonZero++
		}
	}
	assert.Positive(t, nonZero, "loss gradient must reach the parameters")

	model.ZeroGrad()
	for _, p := range model.Parameters() {
		require.Zero(t, p.Grad)
	}
}

func TestKVCache_AppendAndReset(t *testing.T) {
	arena := autograd.NewArena()
	cache := nn.NewKVCache(2)
	require.Zero(t, cache.Len())

	k := makeVector(t, arena, []float64{1, 2})
	v := makeVector(t, arena, []float64{3, 4})
	cache.Append(0, k, v)
	cache.Append(1, k, v)
	require.Equal(t, 1, cache.Len())
	require.Len(t, cache.Keys(0), 1)
	require.Len(t, cache.Values(1), 1)

	cache.Reset()
	require.Zero(t, cache.Len())
	require.Empty(t, cache.Keys(0))
}
