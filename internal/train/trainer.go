// Package train runs the optimization loop over a document corpus.
package train

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/microgpt-ml/microgpt/internal/autograd"
	"github.com/microgpt-ml/microgpt/internal/nn"
	"github.com/microgpt-ml/microgpt/internal/optim"
	"github.com/microgpt-ml/microgpt/internal/tokenizer"
)

// ErrNoDocuments indicates a trainer built over an empty corpus.
var ErrNoDocuments = errors.New("no training documents")

// Config holds the trainer's collaborators. Logger defaults to
// slog.Default; Metrics is optional.
type Config struct {
	Logger   *slog.Logger
	Metrics  *Metrics
	LogEvery int // steps between progress log lines, default 100
}

// Trainer drives next-token-prediction training: one document per step, one
// fresh arena per step.
type Trainer struct {
	model    *nn.GPT
	opt      optim.Optimizer
	tok      tokenizer.Tokenizer
	docs     []string
	logger   *slog.Logger
	metrics  *Metrics
	logEvery int
	step     int
}

// New creates a trainer over the given corpus.
func New(model *nn.GPT, opt optim.Optimizer, tok tokenizer.Tokenizer, docs []string, cfg Config) (*Trainer, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logEvery := cfg.LogEvery
	if logEvery <= 0 {
		logEvery = 100
	}
	return &Trainer{
		model:    model,
		opt:      opt,
		tok:      tok,
		docs:     docs,
		logger:   logger.With("component", "trainer"),
		metrics:  cfg.Metrics,
		logEvery: logEvery,
	}, nil
}

// Run performs steps optimization steps, cycling through the corpus.
func (t *Trainer) Run(steps int) error {
	for i := 0; i < steps; i++ {
		doc := t.docs[t.step%len(t.docs)]
		loss, err := t.Step(doc)
		if err != nil {
			return fmt.Errorf("step %d: %w", t.step, err)
		}
		if t.step%t.logEvery == 0 {
			t.logger.Info("training",
				"step", t.step,
				"loss", loss,
				"lr", t.opt.LR(),
			)
		}
	}
	return nil
}

// Step trains on one document and returns the mean token loss.
//
// The whole computation graph lives in an arena local to this call: forward
// over at most BlockSize positions, mean negative log-likelihood, backward,
// optimizer step, arena discarded.
func (t *Trainer) Step(doc string) (float64, error) {
	start := time.Now()

	tokens := t.tok.Encode(doc)
	n := len(tokens) - 1
	if limit := t.model.Config().BlockSize; n > limit {
		n = limit
	}
	if n <= 0 {
		return 0, fmt.Errorf("document %q produced no training positions", doc)
	}

	arena := autograd.NewArena()
	cache := nn.NewKVCache(t.model.Config().NumLayers)

	total, err := arena.Constant(0)
	if err != nil {
		return 0, err
	}
	for pos := 0; pos < n; pos++ {
		logits, err := t.model.Forward(arena, tokens[pos], pos, cache)
		if err != nil {
			return 0, err
		}
		loss, err := nn.CrossEntropy(arena, logits, tokens[pos+1])
		if err != nil {
			return 0, err
		}
		if total, err = arena.Add(total, loss); err != nil {
			return 0, err
		}
	}
	mean, err := arena.DivScalar(total, float64(n))
	if err != nil {
		return 0, err
	}

	if err := mean.Backward(); err != nil {
		return 0, err
	}
	if err := t.opt.Step(); err != nil {
		return 0, err
	}

	t.step++
	t.metrics.observeStep(mean.Data, n, time.Since(start).Seconds())
	return mean.Data, nil
}

// StepCount returns the number of completed steps.
func (t *Trainer) StepCount() int { return t.step }
