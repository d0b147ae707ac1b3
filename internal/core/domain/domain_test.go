package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBatch(t *testing.T) {
	items := NewBatch([]string{"甲", "乙", "丙"}, []float64{3, 5})

	assert.Len(t, items, 3)
	assert.Equal(t, TextItem{Text: "甲", Popularity: 3, OriginalIndex: 0}, items[0])
	assert.Equal(t, TextItem{Text: "乙", Popularity: 5, OriginalIndex: 1}, items[1])

	// Missing popularity defaults to zero.
	assert.Equal(t, TextItem{Text: "丙", Popularity: 0, OriginalIndex: 2}, items[2])
}

func TestNewBatchExtraPopularityIgnored(t *testing.T) {
	items := NewBatch([]string{"甲"}, []float64{1, 2, 3})

	assert.Len(t, items, 1)
	assert.Equal(t, 1.0, items[0].Popularity)
}

func TestSentimentLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{score: 0.9, want: SentimentPositive},
		{score: 0.6, want: SentimentPositive},
		{score: 0.5, want: SentimentNeutral},
		{score: 0.4, want: SentimentNegative},
		{score: 0.1, want: SentimentNegative},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SentimentLabel(tt.score), "score %v", tt.score)
	}
}
