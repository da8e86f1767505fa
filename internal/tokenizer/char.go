package tokenizer

import "sort"

// Char is a character-level tokenizer fit on a corpus.
//
// The vocabulary is the sorted set of unique runes seen during Fit, plus one
// BOS sentinel whose id equals the rune count. Runes never seen during Fit
// are silently dropped on Encode.
type Char struct {
	runes []rune
	ids   map[rune]int
}

// FitChar builds a character vocabulary from the corpus documents.
func FitChar(docs []string) *Char {
	seen := make(map[rune]struct{})
	for _, doc := range docs {
		for _, r := range doc {
			seen[r] = struct{}{}
		}
	}
	runes := make([]rune, 0, len(seen))
	for r := range seen {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	ids := make(map[rune]int, len(runes))
	for i, r := range runes {
		ids[r] = i
	}
	return &Char{runes: runes, ids: ids}
}

// NewCharFromVocab rebuilds a tokenizer from a stored vocabulary string.
// The string holds the vocabulary runes in id order, as produced by Vocab.
func NewCharFromVocab(vocab string) *Char {
	runes := []rune(vocab)
	ids := make(map[rune]int, len(runes))
	for i, r := range runes {
		ids[r] = i
	}
	return &Char{runes: runes, ids: ids}
}

// Vocab returns the vocabulary runes in id order, for checkpointing.
func (c *Char) Vocab() string { return string(c.runes) }

// Encode converts text to token IDs with the BOS sentinel at both ends.
func (c *Char) Encode(text string) []int {
	tokens := make([]int, 0, len(text)+2)
	tokens = append(tokens, c.BosToken())
	for _, r := range text {
		if id, ok := c.ids[r]; ok {
			tokens = append(tokens, id)
		}
	}
	return append(tokens, c.BosToken())
}

// Decode converts token IDs back to text, skipping BOS and invalid ids.
func (c *Char) Decode(tokens []int) string {
	out := make([]rune, 0, len(tokens))
	for _, id := range tokens {
		if id >= 0 && id < len(c.runes) {
			out = append(out, c.runes[id])
		}
	}
	return string(out)
}

// VocabSize returns the rune count plus the BOS sentinel.
func (c *Char) VocabSize() int { return len(c.runes) + 1 }

// BosToken returns the sentinel id, one past the last rune id.
func (c *Char) BosToken() int { return len(c.runes) }
