package generate_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/microgpt-ml/microgpt/internal/generate"
	"github.com/microgpt-ml/microgpt/internal/nn"
	"github.com/microgpt-ml/microgpt/internal/tokenizer"
)

func testModelAndTokenizer(t *testing.T) (*nn.GPT, tokenizer.Tokenizer) {
	t.Helper()
	tok := tokenizer.FitChar([]string{"abcab"})
	model, err := nn.NewGPT(nn.Config{
		VocabSize: tok.VocabSize(),
		EmbedDim:  4,
		NumHeads:  2,
		NumLayers: 1,
		BlockSize: 8,
	}, rand.NewSource(3))
	require.NoError(t, err)
	return model, tok
}

func TestGenerator_RespectsMaxTokensAndBlockSize(t *testing.T) {
	model, tok := testModelAndTokenizer(t)

	gen, err := generate.NewGenerator(model, tok, generate.SamplingConfig{
		Temperature: 1.0, Seed: 11,
	})
	require.NoError(t, err)

	out, err := gen.Generate(5)
	require.NoError(t, err)
	assert.LessOrEqual(t, utf8.RuneCountInString(out), 5)

	// Asking past the context window is capped at BlockSize.
	out, err = gen.Generate(1000)
	require.NoError(t, err)
	assert.LessOrEqual(t, utf8.RuneCountInString(out), model.Config().BlockSize)
}

func TestGenerator_OutputStaysInVocabulary(t *testing.T) {
	model, tok := testModelAndTokenizer(t)

	gen, err := generate.NewGenerator(model, tok, generate.SamplingConfig{
		Temperature: 1.5, Seed: 5,
	})
	require.NoError(t, err)

	out, err := gen.Generate(8)
	require.NoError(t, err)
	for _, r := range out {
		assert.Contains(t, "abc", string(r))
	}
}

func TestGenerator_SeededRunsRepeat(t *testing.T) {
	model, tok := testModelAndTokenizer(t)

	sample := func() string {
		gen, err := generate.NewGenerator(model, tok, generate.SamplingConfig{
			Temperature: 1.0, Seed: 99,
		})
		require.NoError(t, err)
		out, err := gen.Generate(8)
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, sample(), sample(), "same seed, same sample")
}

func TestGenerator_GreedyIsDeterministicWithoutSeed(t *testing.T) {
	model, tok := testModelAndTokenizer(t)

	gen, err := generate.NewGenerator(model, tok, generate.SamplingConfig{Temperature: 0})
	require.NoError(t, err)

	first, err := gen.Generate(8)
	require.NoError(t, err)
	second, err := gen.Generate(8)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
