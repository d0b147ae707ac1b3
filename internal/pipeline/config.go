package pipeline

import (
	"errors"
	"fmt"

	"github.com/bilicorpus/refinery/internal/dedup"
	"github.com/bilicorpus/refinery/internal/filter"
)

// DefaultMinQualityScore drops the bottom tail of the score range.
const DefaultMinQualityScore = 0.3

// Config holds the recognized tunables for one pipeline run. The
// config is supplied once per run and never mutated during it.
type Config struct {
	// Length bounds (in runes) on normalized text admissibility.
	MinLength int
	MaxLength int

	// MinChineseRatio is the minimum CJK fraction for texts longer
	// than the exemption cutoff.
	MinChineseRatio float64

	// MinQualityScore drops items scoring below it. A negative value
	// disables the quality stage entirely.
	MinQualityScore float64

	// DedupMethod is one of exact, fuzzy, embedding, all.
	DedupMethod dedup.Method

	FuzzyThreshold     float64
	EmbeddingThreshold float64

	// CleanForAnalysis keeps sentiment-bearing characters during
	// normalization.
	CleanForAnalysis bool

	// Parallelism bounds the fan-out of per-item stages; zero or
	// negative means GOMAXPROCS.
	Parallelism int
}

// DefaultConfig returns the standard tuning for comment streams.
func DefaultConfig() Config {
	return Config{
		MinLength:          filter.DefaultMinLength,
		MaxLength:          filter.DefaultMaxLength,
		MinChineseRatio:    filter.DefaultMinChineseRatio,
		MinQualityScore:    DefaultMinQualityScore,
		DedupMethod:        dedup.MethodExact,
		FuzzyThreshold:     dedup.DefaultFuzzyThreshold,
		EmbeddingThreshold: dedup.DefaultEmbeddingThreshold,
	}
}

// Config validation errors.
var (
	ErrLengthBounds = errors.New("min length must be positive and not exceed max length")
	ErrRatioRange   = errors.New("ratio and threshold options must lie in [0,1]")
)

// Validate checks bounds and the dedup method. Called by New; a config
// error is a hard operator error surfaced before any item is touched.
func (c Config) Validate() error {
	if c.MinLength <= 0 || c.MinLength > c.MaxLength {
		return fmt.Errorf("%w: min=%d max=%d", ErrLengthBounds, c.MinLength, c.MaxLength)
	}

	for _, v := range []float64{c.MinChineseRatio, c.FuzzyThreshold, c.EmbeddingThreshold} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: got %v", ErrRatioRange, v)
		}
	}

	if c.MinQualityScore > 1 {
		return fmt.Errorf("%w: got %v", ErrRatioRange, c.MinQualityScore)
	}

	if _, err := dedup.ParseMethod(string(c.DedupMethod)); err != nil {
		return err
	}

	return nil
}
