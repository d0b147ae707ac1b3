package embeddings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOpenAIProviderDefaults(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{})

	assert.Equal(t, ProviderOpenAI, p.Name())
	assert.Equal(t, PriorityPrimary, p.Priority())
	assert.Equal(t, DefaultDimensions, p.Dimensions())
	assert.False(t, p.IsAvailable(), "no API key means unavailable")
}

func TestNewOpenAIProviderConfigured(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{
		APIKey:     "test-key",
		Model:      ModelTextEmbedding3Large,
		Dimensions: 256,
	})

	assert.True(t, p.IsAvailable())
	assert.Equal(t, 256, p.Dimensions())
}
