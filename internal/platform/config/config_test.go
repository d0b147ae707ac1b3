package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilicorpus/refinery/internal/dedup"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.AppEnv)
	assert.Equal(t, 2, cfg.MinLength)
	assert.Equal(t, 500, cfg.MaxLength)
	assert.Equal(t, 0.3, cfg.MinChineseRatio)
	assert.Equal(t, 0.3, cfg.MinQualityScore)
	assert.Equal(t, "exact", cfg.DedupMethod)
	assert.Equal(t, 0.85, cfg.FuzzyThreshold)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DEDUP_METHOD", "all")
	t.Setenv("MIN_LENGTH", "5")
	t.Setenv("MIN_QUALITY_SCORE", "-1")
	t.Setenv("USE_MOCK_EMBEDDINGS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "all", cfg.DedupMethod)
	assert.Equal(t, 5, cfg.MinLength)
	assert.Equal(t, -1.0, cfg.MinQualityScore)
	assert.True(t, cfg.UseMockEmbeddings)
}

func TestPipelineMapping(t *testing.T) {
	t.Setenv("DEDUP_METHOD", "fuzzy")
	t.Setenv("FUZZY_THRESHOLD", "0.9")

	cfg, err := Load()
	require.NoError(t, err)

	pc := cfg.Pipeline()
	assert.Equal(t, dedup.MethodFuzzy, pc.DedupMethod)
	assert.Equal(t, 0.9, pc.FuzzyThreshold)
	require.NoError(t, pc.Validate())
}

func TestEmbeddingsMapping(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("EMBEDDING_DIMENSIONS", "256")

	cfg, err := Load()
	require.NoError(t, err)

	ec := cfg.Embeddings()
	assert.Equal(t, "test-key", ec.OpenAIAPIKey)
	assert.Equal(t, 256, ec.OpenAIDimensions)
}
