package embeddings

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bilicorpus/refinery/internal/platform/observability"
)

// Registry errors.
var (
	ErrNoProvidersAvailable = errors.New("no embedding providers available")
	ErrAllProvidersFailed   = errors.New("all embedding providers failed")
)

const logKeyProvider = "provider"

// Registry manages embedding providers with priority ordering and
// circuit-breaker fallback. It implements the Vectorizer capability
// consumed by semantic deduplication.
type Registry struct {
	mu              sync.RWMutex
	providers       map[ProviderName]Provider
	order           []ProviderName // priority order, highest first
	circuitBreakers map[ProviderName]*CircuitBreaker
	logger          *zerolog.Logger
}

// NewRegistry creates an empty provider registry.
func NewRegistry(logger *zerolog.Logger) *Registry {
	return &Registry{
		providers:       make(map[ProviderName]Provider),
		order:           make([]ProviderName, 0),
		circuitBreakers: make(map[ProviderName]*CircuitBreaker),
		logger:          logger,
	}
}

// Register adds a provider to the registry.
func (r *Registry) Register(p Provider, cfg CircuitBreakerConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	r.providers[name] = p
	r.order = append(r.order, name)
	r.circuitBreakers[name] = NewCircuitBreaker(cfg, r.logger)

	sort.SliceStable(r.order, func(i, j int) bool {
		return r.providers[r.order[i]].Priority() > r.providers[r.order[j]].Priority()
	})

	observability.SetVectorizerAvailable(string(name), p.IsAvailable())

	if r.logger != nil {
		r.logger.Info().
			Str(logKeyProvider, string(name)).
			Int("priority", p.Priority()).
			Int("dimensions", p.Dimensions()).
			Msg("registered embedding provider")
	}
}

// ProviderCount returns the number of registered providers.
func (r *Registry) ProviderCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.providers)
}

// IsAvailable reports whether at least one provider can currently
// serve a request.
func (r *Registry) IsAvailable() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, p := range r.providers {
		if p.IsAvailable() && r.circuitBreakers[name].CanAttempt() {
			return true
		}
	}

	return false
}

// Vectorize embeds the batch with the highest-priority provider that
// will take it, falling back down the order on failure.
func (r *Registry) Vectorize(ctx context.Context, texts []string) ([][]float32, error) {
	r.mu.RLock()
	ordered := make([]Provider, 0, len(r.order))

	for _, name := range r.order {
		ordered = append(ordered, r.providers[name])
	}
	r.mu.RUnlock()

	if len(ordered) == 0 {
		return nil, ErrNoProvidersAvailable
	}

	var lastErr error

	for _, p := range ordered {
		name := string(p.Name())

		if !p.IsAvailable() {
			continue
		}

		cb := r.getCircuitBreaker(p.Name())
		if !cb.CanAttempt() {
			if r.logger != nil {
				r.logger.Debug().Str(logKeyProvider, name).Msg("skipping provider, circuit breaker open")
			}

			observability.SetVectorizerAvailable(name, false)

			continue
		}

		start := time.Now()
		vectors, err := p.Vectorize(ctx, texts)

		observability.ObserveVectorizeLatency(name, time.Since(start))

		if err != nil {
			cb.RecordFailure(p.Name())
			observability.RecordVectorizeRequest(name, false)

			lastErr = err

			if ctx.Err() != nil {
				return nil, err
			}

			if r.logger != nil {
				r.logger.Warn().Err(err).Str(logKeyProvider, name).Msg("embedding provider failed, trying fallback")
			}

			continue
		}

		cb.RecordSuccess()
		observability.RecordVectorizeRequest(name, true)
		observability.SetVectorizerAvailable(name, true)

		return vectors, nil
	}

	if lastErr != nil {
		return nil, errors.Join(ErrAllProvidersFailed, lastErr)
	}

	return nil, ErrNoProvidersAvailable
}

func (r *Registry) getCircuitBreaker(name ProviderName) *CircuitBreaker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.circuitBreakers[name]
}
