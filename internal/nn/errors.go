package nn

import "errors"

var (
	// ErrInvalidConfig indicates a Config that fails validation.
	ErrInvalidConfig = errors.New("invalid model config")

	// ErrTokenOutOfRange indicates a token id outside [0, VocabSize).
	ErrTokenOutOfRange = errors.New("token id out of range")

	// ErrPositionOutOfRange indicates a position id outside [0, BlockSize).
	ErrPositionOutOfRange = errors.New("position id out of range")

	// ErrEmptyInput indicates a layer was called with no activations.
	ErrEmptyInput = errors.New("empty input")

	// ErrDimensionMismatch indicates activations and weights disagree on size.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
