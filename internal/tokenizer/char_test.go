package tokenizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microgpt-ml/microgpt/internal/tokenizer"
)

func TestChar_FitSortsUniqueRunes(t *testing.T) {
	tok := tokenizer.FitChar([]string{"cab", "abba"})

	// Unique runes a, b, c sorted; BOS one past.
	assert.Equal(t, "abc", tok.Vocab())
	assert.Equal(t, 4, tok.VocabSize())
	assert.Equal(t, 3, tok.BosToken())
}

func TestChar_EncodeFramesWithBOS(t *testing.T) {
	tok := tokenizer.FitChar([]string{"abc"})

	tokens := tok.Encode("cab")
	require.Equal(t, []int{3, 2, 0, 1, 3}, tokens)
}

func TestChar_EncodeDropsUnknownRunes(t *testing.T) {
	tok := tokenizer.FitChar([]string{"ab"})

	tokens := tok.Encode("axbz")
	assert.Equal(t, []int{2, 0, 1, 2}, tokens, "x and z are out of vocabulary")
}

func TestChar_DecodeSkipsBOSAndInvalid(t *testing.T) {
	tok := tokenizer.FitChar([]string{"abc"})

	text := tok.Decode([]int{3, 2, 0, 1, 3, 99, -1})
	assert.Equal(t, "cab", text)
}

func TestChar_RoundTrip(t *testing.T) {
	docs := []string{"hello world", "göödbye"}
	tok := tokenizer.FitChar(docs)

	for _, doc := range docs {
		assert.Equal(t, doc, tok.Decode(tok.Encode(doc)))
	}
}

func TestChar_VocabPersistence(t *testing.T) {
	orig := tokenizer.FitChar([]string{"the quick brown fox"})
	restored := tokenizer.NewCharFromVocab(orig.Vocab())

	assert.Equal(t, orig.VocabSize(), restored.VocabSize())
	assert.Equal(t, orig.BosToken(), restored.BosToken())
	assert.Equal(t, orig.Encode("quick fox"), restored.Encode("quick fox"))
}

func TestChar_EmptyCorpus(t *testing.T) {
	tok := tokenizer.FitChar(nil)
	assert.Equal(t, 1, tok.VocabSize(), "BOS alone")
	assert.Equal(t, []int{0, 0}, tok.Encode("anything"))
	assert.Equal(t, "", tok.Decode([]int{0, 0}))
}
