// Package embeddings provides batch text vectorization behind a narrow
// capability interface. Providers (OpenAI, deterministic mock) are
// managed by a registry with priority ordering and circuit-breaker
// fallback; callers check IsAvailable and degrade when no provider can
// serve.
package embeddings

import (
	"context"
	"time"
)

// ProviderName identifies an embedding provider.
type ProviderName string

// Provider name constants.
const (
	ProviderOpenAI ProviderName = "openai"
	ProviderMock   ProviderName = "mock"
)

// Priority constants for provider ordering.
const (
	PriorityPrimary = 100
	PriorityMock    = 0
)

// DefaultDimensions is the vector width providers default to.
const DefaultDimensions = 1536

// defaultCircuitThreshold opens the circuit after this many
// consecutive failures.
const defaultCircuitThreshold = 5

// Provider is one embedding backend. Vectorize must return one vector
// per input text, in input order.
type Provider interface {
	Name() ProviderName
	Vectorize(ctx context.Context, texts []string) ([][]float32, error)
	IsAvailable() bool
	Priority() int
	Dimensions() int
}

// CircuitBreakerConfig defines circuit breaker settings.
type CircuitBreakerConfig struct {
	Threshold  int           // consecutive failures before opening
	ResetAfter time.Duration // time before attempting recovery
}

// DefaultCircuitBreakerConfig returns sensible defaults.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Threshold:  defaultCircuitThreshold,
		ResetAfter: time.Minute,
	}
}
