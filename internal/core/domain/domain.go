// Package domain holds the shared value types that flow through the
// refinement pipeline. Items are immutable input records; every stage
// operates on index sets over a batch, never by mutating the items.
package domain

// TextItem is one raw input record: a short text plus the popularity
// signal (like count) used for representative selection and quality
// scoring. OriginalIndex is the stable position in the input batch.
type TextItem struct {
	Text          string  `json:"text"`
	Popularity    float64 `json:"popularity"`
	OriginalIndex int     `json:"original_index"`
}

// NewBatch wraps caller-supplied texts and popularity counts into items.
// Missing popularity entries default to zero; extra entries are ignored.
func NewBatch(texts []string, popularity []float64) []TextItem {
	items := make([]TextItem, len(texts))

	for i, text := range texts {
		var pop float64
		if i < len(popularity) {
			pop = popularity[i]
		}

		items[i] = TextItem{
			Text:          text,
			Popularity:    pop,
			OriginalIndex: i,
		}
	}

	return items
}

// Sentiment label constants for downstream classification output.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Sentiment score cutoffs.
const (
	positiveCutoff = 0.6
	negativeCutoff = 0.4
)

// SentimentLabel maps a scorer output in [0,1] to a discrete label.
// The scorer itself is an external collaborator; only the cutoffs live here.
func SentimentLabel(score float64) string {
	switch {
	case score >= positiveCutoff:
		return SentimentPositive
	case score <= negativeCutoff:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
