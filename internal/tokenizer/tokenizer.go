// Package tokenizer converts between text and token id sequences.
//
// The default tokenizer is character-level, fit on the training corpus, with
// a single BOS sentinel delimiting documents. A tiktoken-backed subword
// tokenizer is available as an alternative for larger vocabularies.
package tokenizer

// Tokenizer is the core interface for text tokenization.
type Tokenizer interface {
	// Encode converts text to token IDs, framed by the BOS sentinel at
	// both ends.
	Encode(text string) []int

	// Decode converts token IDs back to text, skipping sentinel and
	// out-of-vocabulary ids.
	Decode(tokens []int) string

	// VocabSize returns the total vocabulary size, including BOS.
	VocabSize() int

	// BosToken returns the beginning-of-sequence token ID.
	BosToken() int
}
