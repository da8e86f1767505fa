// Package tokenizer is the public API for text tokenization.
package tokenizer

import "github.com/microgpt-ml/microgpt/internal/tokenizer"

// Tokenizer converts between text and token id sequences.
type Tokenizer = tokenizer.Tokenizer

// Char is the character-level tokenizer.
type Char = tokenizer.Char

// TikToken is the tiktoken-backed subword tokenizer.
type TikToken = tokenizer.TikToken

// FitChar builds a character vocabulary from the corpus documents.
func FitChar(docs []string) *Char { return tokenizer.FitChar(docs) }

// NewCharFromVocab rebuilds a tokenizer from a stored vocabulary string.
func NewCharFromVocab(vocab string) *Char { return tokenizer.NewCharFromVocab(vocab) }

// NewTikToken loads a tiktoken encoding by name (e.g. "cl100k_base").
func NewTikToken(encodingName string) (*TikToken, error) {
	return tokenizer.NewTikToken(encodingName)
}
