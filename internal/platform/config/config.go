// Package config loads the process configuration from the environment.
// A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/bilicorpus/refinery/internal/dedup"
	"github.com/bilicorpus/refinery/internal/embeddings"
	"github.com/bilicorpus/refinery/internal/pipeline"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"local"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":8080"`

	// Cleaning and filtering
	MinLength        int     `env:"MIN_LENGTH" envDefault:"2"`
	MaxLength        int     `env:"MAX_LENGTH" envDefault:"500"`
	MinChineseRatio  float64 `env:"MIN_CHINESE_RATIO" envDefault:"0.3"`
	CleanForAnalysis bool    `env:"CLEAN_FOR_ANALYSIS" envDefault:"false"`
	Parallelism      int     `env:"PARALLELISM" envDefault:"0"`

	// Quality gate. A negative score disables the stage.
	MinQualityScore float64 `env:"MIN_QUALITY_SCORE" envDefault:"0.3"`

	// Deduplication
	DedupMethod        string  `env:"DEDUP_METHOD" envDefault:"exact"`
	FuzzyThreshold     float64 `env:"FUZZY_THRESHOLD" envDefault:"0.85"`
	EmbeddingThreshold float64 `env:"EMBEDDING_THRESHOLD" envDefault:"0.85"`

	// Embedding provider. Without an API key the mock provider serves
	// semantic dedup, which keeps local runs deterministic.
	OpenAIAPIKey       string        `env:"OPENAI_API_KEY"`
	EmbeddingModel     string        `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	EmbeddingDims      int           `env:"EMBEDDING_DIMENSIONS" envDefault:"1536"`
	EmbeddingRateRPS   int           `env:"EMBEDDING_RATE_RPS" envDefault:"1"`
	EmbeddingBatchSize int           `env:"EMBEDDING_BATCH_SIZE" envDefault:"32"`
	UseMockEmbeddings  bool          `env:"USE_MOCK_EMBEDDINGS" envDefault:"false"`
	BreakerThreshold   int           `env:"BREAKER_FAILURE_THRESHOLD" envDefault:"5"`
	BreakerReset       time.Duration `env:"BREAKER_RESET_TIMEOUT" envDefault:"1m"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	return cfg, nil
}

// Pipeline maps the environment values onto the pipeline's own config.
// Validation happens in pipeline.New, not here.
func (c *Config) Pipeline() pipeline.Config {
	return pipeline.Config{
		MinLength:          c.MinLength,
		MaxLength:          c.MaxLength,
		MinChineseRatio:    c.MinChineseRatio,
		MinQualityScore:    c.MinQualityScore,
		DedupMethod:        dedup.Method(c.DedupMethod),
		FuzzyThreshold:     c.FuzzyThreshold,
		EmbeddingThreshold: c.EmbeddingThreshold,
		CleanForAnalysis:   c.CleanForAnalysis,
		Parallelism:        c.Parallelism,
	}
}

// Embeddings maps the environment values onto the provider config.
func (c *Config) Embeddings() embeddings.Config {
	return embeddings.Config{
		OpenAIAPIKey:     c.OpenAIAPIKey,
		OpenAIModel:      c.EmbeddingModel,
		OpenAIDimensions: c.EmbeddingDims,
		OpenAIRateLimit:  c.EmbeddingRateRPS,
		OpenAIBatchSize:  c.EmbeddingBatchSize,
		UseMock:          c.UseMockEmbeddings,
		CircuitBreaker: embeddings.CircuitBreakerConfig{
			Threshold:  c.BreakerThreshold,
			ResetAfter: c.BreakerReset,
		},
	}
}
