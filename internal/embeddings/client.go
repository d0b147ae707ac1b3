package embeddings

import (
	"github.com/rs/zerolog"
)

// Config holds settings for building the default vectorizer.
type Config struct {
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIDimensions int
	OpenAIRateLimit  int
	OpenAIBatchSize  int

	// UseMock registers the deterministic mock provider even when no
	// real provider is configured, instead of leaving the registry
	// empty. Semantic dedup then clusters by text-hash vectors, which
	// approximates exact dedup; useful for offline runs and tests.
	UseMock bool

	CircuitBreaker CircuitBreakerConfig
}

// NewVectorizer assembles the provider registry from configuration.
// With no providers configured and UseMock false, the returned registry
// reports unavailable and semantic dedup degrades to identity.
func NewVectorizer(cfg Config, logger *zerolog.Logger) *Registry {
	if cfg.CircuitBreaker.Threshold == 0 {
		cfg.CircuitBreaker = DefaultCircuitBreakerConfig()
	}

	registry := NewRegistry(logger)

	if cfg.OpenAIAPIKey != "" {
		registry.Register(NewOpenAIProvider(OpenAIConfig{
			APIKey:     cfg.OpenAIAPIKey,
			Model:      cfg.OpenAIModel,
			Dimensions: cfg.OpenAIDimensions,
			RateLimit:  cfg.OpenAIRateLimit,
			BatchSize:  cfg.OpenAIBatchSize,
		}), cfg.CircuitBreaker)
	}

	if cfg.UseMock && registry.ProviderCount() == 0 {
		if logger != nil {
			logger.Warn().Msg("no embedding providers configured, using mock provider")
		}

		registry.Register(NewMockProvider(), cfg.CircuitBreaker)
	}

	return registry
}
