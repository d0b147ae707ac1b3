// Package app provides the application bootstrap: it wires the
// configuration onto the normalizer, the embedding registry and the
// refinement pipeline, and exposes the batch entry point the CLI uses.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/bilicorpus/refinery/internal/core/domain"
	"github.com/bilicorpus/refinery/internal/embeddings"
	"github.com/bilicorpus/refinery/internal/pipeline"
	"github.com/bilicorpus/refinery/internal/platform/config"
	"github.com/bilicorpus/refinery/internal/platform/observability"
	"github.com/bilicorpus/refinery/internal/simplified"
	"github.com/bilicorpus/refinery/internal/textnorm"
)

// App holds the wired dependencies for one process.
type App struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	logger   *zerolog.Logger
}

// New wires the full stack from configuration. Config errors,
// including an unknown dedup method, surface here.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	converter := newConverter(logger)
	normalizer := textnorm.New(converter, logger)
	vectorizer := embeddings.NewVectorizer(cfg.Embeddings(), logger)

	p, err := pipeline.New(cfg.Pipeline(), normalizer, vectorizer, logger)
	if err != nil {
		return nil, fmt.Errorf("pipeline init: %w", err)
	}

	return &App{
		cfg:      cfg,
		pipeline: p,
		logger:   logger,
	}, nil
}

func newConverter(logger *zerolog.Logger) simplified.Converter {
	converter := simplified.NewTableConverter()
	if !converter.IsAvailable() {
		logger.Warn().Msg("script conversion unavailable, traditional text passes through")

		return simplified.NewDisabled()
	}

	return converter
}

// StartMetricsServer serves /healthz and /metrics until ctx cancels.
func (a *App) StartMetricsServer(ctx context.Context) error {
	srv := observability.NewServer(a.cfg.MetricsAddr, a.logger)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("metrics server: %w", err)
	}

	return nil
}

// Run processes one batch of items.
func (a *App) Run(ctx context.Context, items []domain.TextItem) (*pipeline.Outcome, error) {
	return a.pipeline.Run(ctx, items)
}

// batchInput is the accepted JSON shape: either a bare array of items
// or an object with parallel texts/popularity arrays.
type batchInput struct {
	Texts      []string  `json:"texts"`
	Popularity []float64 `json:"popularity"`
}

// DecodeBatch reads one JSON batch from r. Both input shapes assign
// original indices by position.
func DecodeBatch(r io.Reader) ([]domain.TextItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading batch: %w", err)
	}

	var items []domain.TextItem
	if err := json.Unmarshal(data, &items); err == nil {
		for i := range items {
			items[i].OriginalIndex = i
		}

		return items, nil
	}

	var in batchInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decoding batch: %w", err)
	}

	return domain.NewBatch(in.Texts, in.Popularity), nil
}

// EncodeOutcome writes the outcome as indented JSON.
func EncodeOutcome(w io.Writer, out *pipeline.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding outcome: %w", err)
	}

	return nil
}
