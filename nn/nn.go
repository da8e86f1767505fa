// Package nn is the public API for the scalar transformer: parameters,
// functional layers and the GPT model itself.
package nn

import (
	"golang.org/x/exp/rand"

	"github.com/microgpt-ml/microgpt/internal/autograd"
	"github.com/microgpt-ml/microgpt/internal/nn"
)

// Module is the base interface for components with trainable parameters.
type Module = nn.Module

// Parameter is a named matrix of trainable scalar leaves.
type Parameter = nn.Parameter

// Init produces one freshly drawn initial value per call.
type Init = nn.Init

// Config describes the transformer architecture.
type Config = nn.Config

// GPT is the decoder-only transformer model.
type GPT = nn.GPT

// KVCache holds cached key/value projections for incremental decoding.
type KVCache = nn.KVCache

// NewParameter allocates a rows×cols parameter matrix.
func NewParameter(arena *autograd.Arena, name string, rows, cols int, init Init) (*Parameter, error) {
	return nn.NewParameter(arena, name, rows, cols, init)
}

// Normal returns an initializer drawing from N(0, stddev²).
func Normal(src rand.Source, stddev float64) Init { return nn.Normal(src, stddev) }

// Zeros returns an initializer that always yields 0.
func Zeros() Init { return nn.Zeros() }

// NewGPT builds a model with freshly initialized weights.
func NewGPT(cfg Config, src rand.Source) (*GPT, error) { return nn.NewGPT(cfg, src) }

// NewKVCache creates an empty cache for numLayers transformer layers.
func NewKVCache(numLayers int) *KVCache { return nn.NewKVCache(numLayers) }

// Linear applies a weight matrix to an activation vector.
func Linear(arena *autograd.Arena, x []*autograd.Value, w *Parameter) ([]*autograd.Value, error) {
	return nn.Linear(arena, x, w)
}

// RMSNorm normalizes x by the root of its mean square.
func RMSNorm(arena *autograd.Arena, x []*autograd.Value) ([]*autograd.Value, error) {
	return nn.RMSNorm(arena, x)
}

// Softmax converts logits to probabilities with the max-shift trick.
func Softmax(arena *autograd.Arena, logits []*autograd.Value) ([]*autograd.Value, error) {
	return nn.Softmax(arena, logits)
}

// CrossEntropy returns the negative log-likelihood of the target class.
func CrossEntropy(arena *autograd.Arena, logits []*autograd.Value, target int) (*autograd.Value, error) {
	return nn.CrossEntropy(arena, logits, target)
}

// Errors re-exported from the internal package.
var (
	ErrInvalidConfig      = nn.ErrInvalidConfig
	ErrTokenOutOfRange    = nn.ErrTokenOutOfRange
	ErrPositionOutOfRange = nn.ErrPositionOutOfRange
	ErrEmptyInput         = nn.ErrEmptyInput
	ErrDimensionMismatch  = nn.ErrDimensionMismatch
)
