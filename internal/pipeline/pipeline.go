// Package pipeline orchestrates the refinement stages over one batch:
// normalize, filter, score, deduplicate. Control flow is a strict
// staged pipeline — each stage consumes the index set survived by the
// previous stage. One Pipeline may serve concurrent Run calls; every
// run owns its stats and index sets exclusively.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bilicorpus/refinery/internal/core/domain"
	"github.com/bilicorpus/refinery/internal/dedup"
	"github.com/bilicorpus/refinery/internal/filter"
	"github.com/bilicorpus/refinery/internal/platform/observability"
	"github.com/bilicorpus/refinery/internal/quality"
	"github.com/bilicorpus/refinery/internal/textnorm"
)

// Pipeline stages, strictly forward. The quality stage may be skipped;
// no other transition may be.
type stage int

const (
	stageCreated stage = iota
	stageCleaned
	stageFiltered
	stageScored
	stageDeduplicated
	stageFinalized
)

var stageNames = map[stage]string{
	stageCreated:      "created",
	stageCleaned:      "cleaned",
	stageFiltered:     "filtered",
	stageScored:       "scored",
	stageDeduplicated: "deduplicated",
	stageFinalized:    "finalized",
}

// Outcome is the only externally visible result of a run: the
// surviving items in original-batch order plus the rejection report.
type Outcome struct {
	Texts           []string  `json:"texts"`
	OriginalIndices []int     `json:"original_indices"`
	QualityScores   []float64 `json:"quality_scores,omitempty"`
	Popularity      []float64 `json:"popularity"`
	Stats           Stats     `json:"stats"`
}

// Pipeline holds per-run-independent state: validated config, the
// normalizer and the dedup strategy.
type Pipeline struct {
	cfg        Config
	normalizer *textnorm.Normalizer
	strategy   dedup.Strategy
	logger     *zerolog.Logger
}

// New validates cfg and assembles the pipeline. An unrecognized dedup
// method is a hard error here, not a mid-run discovery. vectorizer may
// be nil; semantic dedup then degrades to identity.
func New(cfg Config, normalizer *textnorm.Normalizer, vectorizer dedup.Vectorizer, logger *zerolog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	strategy, err := dedup.ForMethod(cfg.DedupMethod, cfg.FuzzyThreshold, cfg.EmbeddingThreshold, vectorizer, logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:        cfg,
		normalizer: normalizer,
		strategy:   strategy,
		logger:     logger,
	}, nil
}

// run carries the mutable state of one batch through the stages.
type run struct {
	stage   stage
	items   []domain.TextItem
	cleaned []string
	valid   []int // surviving positions into items/cleaned, ascending
	scores  []float64
	stats   Stats
}

// advance moves to the next stage, asserting strict forward order.
// Calling stages out of order is a programming-contract violation.
func (r *run) advance(to stage) {
	skipScored := to == stageDeduplicated && r.stage == stageFiltered
	if to != r.stage+1 && !skipScored {
		panic(fmt.Sprintf("pipeline stage out of order: %s -> %s", stageNames[r.stage], stageNames[to]))
	}

	r.stage = to
}

// Run processes one batch. Per-item issues never abort the batch; they
// surface only in the rejection counters.
func (p *Pipeline) Run(ctx context.Context, items []domain.TextItem) (*Outcome, error) {
	start := time.Now()
	runID := uuid.NewString()

	logger := p.logger.With().Str("run_id", runID).Logger()
	logger.Info().Int("items", len(items)).Str("dedup_method", string(p.cfg.DedupMethod)).Msg("pipeline run starting")

	observability.ItemsIngested.Add(float64(len(items)))

	r := &run{
		items: items,
		stats: Stats{OriginalCount: len(items)},
	}

	if err := p.clean(ctx, r); err != nil {
		return nil, err
	}

	p.filterStage(r)

	if p.cfg.MinQualityScore >= 0 {
		if err := p.scoreStage(ctx, r); err != nil {
			return nil, err
		}
	}

	if err := p.dedupStage(ctx, r); err != nil {
		return nil, err
	}

	outcome := p.finalize(r)

	observability.ItemsKept.Add(float64(len(outcome.OriginalIndices)))
	observability.BatchDurationSeconds.Observe(time.Since(start).Seconds())

	logger.Info().
		Int("kept", len(outcome.OriginalIndices)).
		Int("original", r.stats.OriginalCount).
		Dur("elapsed", time.Since(start)).
		Msg("pipeline run finished")

	return outcome, nil
}

// clean normalizes every item. Normalization is pure and total, so the
// items fan out across a bounded worker group; results land by index.
func (p *Pipeline) clean(ctx context.Context, r *run) error {
	defer p.observeStage(stageCleaned, time.Now())

	r.cleaned = make([]string, len(r.items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.parallelism())

	for i := range r.items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			r.cleaned[i] = p.normalizer.Normalize(r.items[i].Text, p.cfg.CleanForAnalysis)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("clean stage: %w", err)
	}

	r.stats.AfterClean = len(r.cleaned)
	r.advance(stageCleaned)

	return nil
}

// filterStage applies the admissibility gate and records per-reason
// rejection counts.
func (p *Pipeline) filterStage(r *run) {
	defer p.observeStage(stageFiltered, time.Now())

	r.valid = make([]int, 0, len(r.cleaned))

	for i, text := range r.cleaned {
		switch {
		case !filter.LengthOK(text, p.cfg.MinLength, p.cfg.MaxLength):
			r.stats.RemovedByLength++

			observability.RecordDrop(ReasonLength)
		case filter.IsSpam(text):
			r.stats.RemovedBySpam++

			observability.RecordDrop(ReasonSpam)
		case !p.chineseRatioOK(text):
			r.stats.RemovedByChineseRatio++

			observability.RecordDrop(ReasonChineseRatio)
		default:
			r.valid = append(r.valid, i)
		}
	}

	r.stats.AfterFilter = len(r.valid)
	r.advance(stageFiltered)
}

// ratioExemptLen mirrors the filter package: short tokens skip the
// language-ratio check.
const ratioExemptLen = 10

func (p *Pipeline) chineseRatioOK(text string) bool {
	if len([]rune(text)) <= ratioExemptLen {
		return true
	}

	return filter.ChineseRatio(text) >= p.cfg.MinChineseRatio
}

// scoreStage computes quality scores for the surviving indices in
// parallel and drops those below the configured cutoff.
func (p *Pipeline) scoreStage(ctx context.Context, r *run) error {
	defer p.observeStage(stageScored, time.Now())

	scores := make([]float64, len(r.valid))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.parallelism())

	for pos, idx := range r.valid {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			scores[pos] = quality.Score(r.cleaned[idx], r.items[idx].Popularity, p.cfg.MinLength, p.cfg.MaxLength)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("score stage: %w", err)
	}

	kept := make([]int, 0, len(r.valid))
	keptScores := make([]float64, 0, len(scores))

	for pos, idx := range r.valid {
		if scores[pos] >= p.cfg.MinQualityScore {
			kept = append(kept, idx)
			keptScores = append(keptScores, scores[pos])

			continue
		}

		r.stats.RemovedByQuality++

		observability.RecordDrop(ReasonQuality)
	}

	r.valid = kept
	r.scores = keptScores
	r.stats.AfterQuality = len(r.valid)
	r.advance(stageScored)

	return nil
}

// dedupStage runs the configured strategy over the surviving texts and
// maps its kept set back to original indices.
func (p *Pipeline) dedupStage(ctx context.Context, r *run) error {
	defer p.observeStage(stageDeduplicated, time.Now())

	texts := make([]string, len(r.valid))
	weights := make([]float64, len(r.valid))

	for pos, idx := range r.valid {
		texts[pos] = r.cleaned[idx]
		weights[pos] = r.items[idx].Popularity
	}

	before := len(r.valid)

	res, err := p.strategy.Dedup(ctx, texts, weights)
	if err != nil {
		return fmt.Errorf("dedup stage (%s): %w", p.strategy.Name(), err)
	}

	observability.DuplicateGroups.WithLabelValues(p.strategy.Name()).Add(float64(len(res.Groups)))

	for _, group := range res.Groups {
		mapped := make([]int, len(group))
		for i, pos := range group {
			mapped[i] = r.items[r.valid[pos]].OriginalIndex
		}

		r.stats.DuplicateGroups = append(r.stats.DuplicateGroups, mapped)
	}

	kept := make([]int, len(res.Keep))
	keptScores := make([]float64, 0, len(res.Keep))

	for i, pos := range res.Keep {
		kept[i] = r.valid[pos]

		if r.scores != nil {
			keptScores = append(keptScores, r.scores[pos])
		}
	}

	r.valid = kept
	if r.scores != nil {
		r.scores = keptScores
	}

	removed := before - len(r.valid)
	r.stats.RemovedByDedup = removed
	r.stats.AfterDedup = len(r.valid)

	for i := 0; i < removed; i++ {
		observability.RecordDrop(ReasonDuplicate)
	}

	r.advance(stageDeduplicated)

	return nil
}

// finalize exposes the surviving item set. Intermediate stage state is
// not inspectable once this returns.
func (p *Pipeline) finalize(r *run) *Outcome {
	r.advance(stageFinalized)

	out := &Outcome{
		Texts:           make([]string, len(r.valid)),
		OriginalIndices: make([]int, len(r.valid)),
		QualityScores:   r.scores,
		Popularity:      make([]float64, len(r.valid)),
		Stats:           r.stats,
	}

	for i, idx := range r.valid {
		out.Texts[i] = r.cleaned[idx]
		out.OriginalIndices[i] = r.items[idx].OriginalIndex
		out.Popularity[i] = r.items[idx].Popularity
	}

	return out
}

func (p *Pipeline) parallelism() int {
	if p.cfg.Parallelism > 0 {
		return p.cfg.Parallelism
	}

	return runtime.GOMAXPROCS(0)
}

func (p *Pipeline) observeStage(s stage, start time.Time) {
	observability.ObserveStage(stageNames[s], time.Since(start))
}
