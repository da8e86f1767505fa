// Package main provides the microgpt CLI: train a character-level GPT on a
// line-per-document corpus and sample from the result.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/rand"

	"github.com/microgpt-ml/microgpt/internal/dataset"
	"github.com/microgpt-ml/microgpt/internal/generate"
	"github.com/microgpt-ml/microgpt/internal/nn"
	"github.com/microgpt-ml/microgpt/internal/optim"
	"github.com/microgpt-ml/microgpt/internal/serialization"
	"github.com/microgpt-ml/microgpt/internal/tokenizer"
	"github.com/microgpt-ml/microgpt/internal/train"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "train":
		err = runTrain(os.Args[2:])
	case "generate":
		err = runGenerate(os.Args[2:])
	case "version":
		fmt.Printf("microgpt %s\n", version)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: microgpt <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  train      Train a model on a corpus")
	fmt.Fprintln(os.Stderr, "  generate   Sample text from a checkpoint")
	fmt.Fprintln(os.Stderr, "  version    Show version")
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	dataPath := fs.String("data", "input.txt", "corpus file, one document per line")
	steps := fs.Int("steps", 1000, "optimization steps")
	lr := fs.Float64("lr", 0.01, "peak learning rate")
	blockSize := fs.Int("block-size", 16, "maximum sequence length")
	embedDim := fs.Int("embd", 16, "embedding width")
	numHeads := fs.Int("heads", 4, "attention heads")
	numLayers := fs.Int("layers", 1, "transformer layers")
	seed := fs.Uint64("seed", 42, "random seed")
	out := fs.String("out", "model.mgpt", "checkpoint output path")
	metricsAddr := fs.String("metrics-listen", "", "address for /metrics, empty disables")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	docs, err := dataset.Load(*dataPath)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(*seed))
	dataset.Shuffle(docs, rng)
	logger.Info("corpus loaded", "docs", len(docs), "path", *dataPath)

	tok := tokenizer.FitChar(docs)
	cfg := nn.Config{
		VocabSize: tok.VocabSize(),
		EmbedDim:  *embedDim,
		NumHeads:  *numHeads,
		NumLayers: *numLayers,
		BlockSize: *blockSize,
	}
	model, err := nn.NewGPT(cfg, rand.NewSource(*seed))
	if err != nil {
		return err
	}
	logger.Info("model built",
		"vocab", cfg.VocabSize,
		"params", cfg.NumParams(),
		"layers", cfg.NumLayers,
	)

	opt, err := optim.NewAdam(model.Parameters(), optim.AdamConfig{
		LR:         *lr,
		TotalSteps: *steps,
	})
	if err != nil {
		return err
	}

	var metrics *train.Metrics
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = train.NewMetrics(reg)
		go serveMetrics(*metricsAddr, reg, logger)
	}

	trainer, err := train.New(model, opt, tok, docs, train.Config{
		Logger:  logger,
		Metrics: metrics,
	})
	if err != nil {
		return err
	}
	if err := trainer.Run(*steps); err != nil {
		return err
	}

	if err := serialization.Save(*out, model, tok); err != nil {
		return err
	}
	logger.Info("checkpoint written", "path", *out)
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Info("metrics listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", "error", err)
	}
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	checkpoint := fs.String("checkpoint", "model.mgpt", "checkpoint path")
	samples := fs.Int("samples", 5, "number of samples")
	maxTokens := fs.Int("max-tokens", 64, "maximum tokens per sample")
	temperature := fs.Float64("temperature", 1.0, "sampling temperature, 0 is greedy")
	topK := fs.Int("top-k", 0, "restrict sampling to the k most likely tokens, 0 disables")
	seed := fs.Uint64("seed", 42, "random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	model, tok, err := serialization.Load(*checkpoint)
	if err != nil {
		return err
	}

	gen, err := generate.NewGenerator(model, tok, generate.SamplingConfig{
		Temperature: *temperature,
		TopK:        *topK,
		Seed:        *seed,
	})
	if err != nil {
		return err
	}

	for i := 0; i < *samples; i++ {
		text, err := gen.Generate(*maxTokens)
		if err != nil {
			return err
		}
		fmt.Println(text)
	}
	return nil
}
