package quality

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreEmpty(t *testing.T) {
	assert.Zero(t, Score("", 100, 2, 500))
}

func TestScoreGolden(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		popularity float64
		want       float64
	}{
		{
			// length 1, popularity log(11)/log(101), full language and
			// diversity credit.
			name:       "good chinese comment",
			text:       "这是一条很棒的评论",
			popularity: 10,
			want:       0.856,
		},
		{
			// Compressed laugh: full length credit, spam-free but low
			// diversity.
			name:       "short repeated comment",
			popularity: 2,
			text:       "哈哈哈",
			want:       0.705,
		},
		{
			// Saturated popularity caps the composite at 1.
			name:       "saturated popularity",
			text:       "这是一条很棒的评论",
			popularity: 1e9,
			want:       1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.text, tt.popularity, 2, 500), 1e-9)
		})
	}
}

func TestScoreBounded(t *testing.T) {
	texts := []string{
		"好",
		"这是一条很棒的评论",
		"啊啊啊啊啊啊啊啊啊啊啊啊",
		"pure english text here",
		"12345678",
		"混合 mixed 内容 content 123",
	}

	for _, text := range texts {
		for _, pop := range []float64{0, 1, 50, 1e6} {
			score := Score(text, pop, 2, 500)
			assert.GreaterOrEqual(t, score, 0.0, "text %q pop %v", text, pop)
			assert.LessOrEqual(t, score, 1.0, "text %q pop %v", text, pop)
		}
	}
}

func TestScoreRounding(t *testing.T) {
	score := Score("这是一条很棒的评论", 10, 2, 500)
	assert.Equal(t, score, math.Round(score*1000)/1000)
}

func TestLengthScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  int
		max  int
		want float64
	}{
		{name: "single rune scores zero", text: "好", min: 5, max: 200, want: 0},
		{name: "below ideal scaled", text: "四个字啊", min: 5, max: 200, want: 4.0 / 5.0 * 0.7},
		{name: "in range", text: "刚好五个字", min: 5, max: 200, want: 1},
		{name: "over max penalized", text: "abcdef", min: 2, max: 4, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, lengthScore(tt.text, tt.min, tt.max), 1e-9)
		})
	}
}

func TestPopularityScore(t *testing.T) {
	assert.InDelta(t, 0.1, popularityScore(0), 1e-9)
	assert.InDelta(t, 0.1, popularityScore(-5), 1e-9)
	assert.InDelta(t, 1, popularityScore(100), 1e-9)
	assert.InDelta(t, 1, popularityScore(1e12), 1e-9)
	assert.InDelta(t, math.Log(11)/math.Log(101), popularityScore(10), 1e-9)
}

func TestLanguageScoreTiers(t *testing.T) {
	assert.Equal(t, 1.0, languageScore("全是中文的句子"))
	assert.Equal(t, 0.8, languageScore("中文多些 some"))
	assert.Equal(t, 0.6, languageScore("mostly english 好"))
	assert.Equal(t, 0.4, languageScore("no chinese at all"))
}

func TestDiversityScore(t *testing.T) {
	// Spam scores zero regardless of distinct characters.
	assert.Zero(t, diversityScore("啊啊啊啊啊啊啊"))

	// All-distinct text saturates.
	assert.Equal(t, 1.0, diversityScore("这是不同的字"))

	// One distinct rune in three.
	assert.InDelta(t, 2.0/3.0, diversityScore("哈哈哈"), 1e-9)
}

func TestScoreDefault(t *testing.T) {
	// Defaults use the tighter ideal bounds; a 3-rune text loses length
	// credit that explicit wide bounds would grant.
	withDefaults := ScoreDefault("哈哈哈", 2)
	withWide := Score("哈哈哈", 2, 2, 500)

	assert.Less(t, withDefaults, withWide)
}
