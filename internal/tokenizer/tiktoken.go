package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// encodingCL100kBase is the encoding used by GPT-4 class models.
	encodingCL100kBase = "cl100k_base"
	// encodingP50kBase is the encoding used by GPT-3 class models.
	encodingP50kBase = "p50k_base"
	// encodingR50kBase is the encoding used by older GPT-3 models.
	encodingR50kBase = "r50k_base"
)

// TikToken wraps a pkoukk/tiktoken-go encoding as a subword alternative to
// the character tokenizer. One id past the encoding's vocabulary serves as
// the BOS sentinel, mirroring the character tokenizer's framing.
type TikToken struct {
	encoding *tiktoken.Tiktoken
	name     string
	bos      int
}

// NewTikToken loads a tiktoken encoding by name (e.g. "cl100k_base").
func NewTikToken(encodingName string) (*TikToken, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %q: %w", encodingName, err)
	}
	return &TikToken{
		encoding: encoding,
		name:     encodingName,
		bos:      baseVocabSize(encodingName),
	}, nil
}

// baseVocabSize returns the encoding's vocabulary size.
// tiktoken-go does not expose it, so the known sizes are hardcoded.
func baseVocabSize(name string) int {
	switch name {
	case encodingCL100kBase:
		return 100277 // includes <|endoftext|> and friends
	case encodingP50kBase, encodingR50kBase:
		return 50257
	default:
		return 100277
	}
}

// Name returns the encoding name.
func (t *TikToken) Name() string { return t.name }

// Encode converts text to token IDs with the BOS sentinel at both ends.
func (t *TikToken) Encode(text string) []int {
	ids := t.encoding.Encode(text, nil, nil)
	tokens := make([]int, 0, len(ids)+2)
	tokens = append(tokens, t.bos)
	tokens = append(tokens, ids...)
	return append(tokens, t.bos)
}

// Decode converts token IDs back to text, skipping the BOS sentinel.
func (t *TikToken) Decode(tokens []int) string {
	filtered := make([]int, 0, len(tokens))
	for _, id := range tokens {
		if id != t.bos {
			filtered = append(filtered, id)
		}
	}
	return t.encoding.Decode(filtered)
}

// VocabSize returns the encoding vocabulary size plus the BOS sentinel.
func (t *TikToken) VocabSize() int { return t.bos + 1 }

// BosToken returns the sentinel id.
func (t *TikToken) BosToken() int { return t.bos }
