// Package quality computes a composite [0,1] quality score for a
// normalized text item. Four independently bounded sub-scores are
// combined: length fitness, popularity, language ratio and character
// diversity.
package quality

import (
	"math"

	"github.com/bilicorpus/refinery/internal/filter"
)

// Component weights. They sum to 1, so the composite stays in [0,1].
const (
	weightLength     = 0.3
	weightPopularity = 0.3
	weightLanguage   = 0.2
	weightDiversity  = 0.2
)

// Default ideal length bounds for scoring. These are tighter than the
// admissibility bounds: a 300-rune wall of text can pass the filter yet
// still lose length-fitness points.
const (
	DefaultMinLength = 5
	DefaultMaxLength = 200
)

// Popularity saturates at 100 likes under log compression.
const popularitySaturation = 101

// shortPenalty scales the score of texts below the ideal minimum;
// anything under tooShortLen runes scores zero on length outright.
const (
	shortPenalty = 0.7
	tooShortLen  = 2
)

// basePopularityScore is granted when the popularity signal is zero.
const basePopularityScore = 0.1

// overlengthFloor bounds the penalty for very long texts.
const overlengthFloor = 0.5

// Language-ratio score tiers.
const (
	ratioHigh      = 0.5
	ratioMid       = 0.3
	scoreHighRatio = 1.0
	scoreMidRatio  = 0.8
	scoreLowRatio  = 0.6
	scoreNoRatio   = 0.4
)

// diversityGain doubles the distinct-character ratio before clamping.
const diversityGain = 2.0

// Score rates text quality in [0,1], rounded to 3 decimal places.
// Empty text scores exactly 0. popularity must be non-negative; the
// caller-facing signal is typically a like count.
func Score(text string, popularity float64, minLength, maxLength int) float64 {
	if text == "" {
		return 0
	}

	score := lengthScore(text, minLength, maxLength)*weightLength +
		popularityScore(popularity)*weightPopularity +
		languageScore(text)*weightLanguage +
		diversityScore(text)*weightDiversity

	return round3(score)
}

// ScoreDefault applies the default ideal length bounds.
func ScoreDefault(text string, popularity float64) float64 {
	return Score(text, popularity, DefaultMinLength, DefaultMaxLength)
}

func lengthScore(text string, minLength, maxLength int) float64 {
	n := len([]rune(text))

	switch {
	case n < tooShortLen:
		return 0
	case n < minLength:
		return float64(n) / float64(minLength) * shortPenalty
	case n <= maxLength:
		return 1
	default:
		excess := float64(n - maxLength)
		return math.Max(overlengthFloor, 1-excess/float64(maxLength))
	}
}

func popularityScore(popularity float64) float64 {
	if popularity <= 0 {
		return basePopularityScore
	}

	return math.Min(1, math.Log(1+popularity)/math.Log(popularitySaturation))
}

func languageScore(text string) float64 {
	ratio := filter.ChineseRatio(text)

	switch {
	case ratio >= ratioHigh:
		return scoreHighRatio
	case ratio >= ratioMid:
		return scoreMidRatio
	case ratio > 0:
		return scoreLowRatio
	default:
		return scoreNoRatio
	}
}

func diversityScore(text string) float64 {
	if filter.IsSpam(text) {
		return 0
	}

	runes := []rune(text)
	distinct := make(map[rune]struct{}, len(runes))

	for _, r := range runes {
		distinct[r] = struct{}{}
	}

	uniqueRatio := float64(len(distinct)) / float64(len(runes))

	return math.Min(1, uniqueRatio*diversityGain)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
