package embeddings

import (
	"context"
	"hash/fnv"
	"math"
)

// LCG constants for deterministic pseudo-random vector generation.
const (
	lcgMultiplier = 6364136223846793005
	lcgIncrement  = 1442695040888963407

	seedShift  = 33
	floatScale = 0x40000000
)

// MockProvider generates deterministic embeddings from a text hash, so
// identical texts map to identical vectors. Intended for tests and
// offline development.
type MockProvider struct {
	dimensions int
}

// NewMockProvider creates a mock provider with the default dimensions.
func NewMockProvider() *MockProvider {
	return &MockProvider{dimensions: DefaultDimensions}
}

// NewMockProviderWithDimensions creates a mock provider with custom
// dimensions.
func NewMockProviderWithDimensions(dims int) *MockProvider {
	return &MockProvider{dimensions: dims}
}

// Name implements Provider.
func (p *MockProvider) Name() ProviderName {
	return ProviderMock
}

// Priority implements Provider.
func (p *MockProvider) Priority() int {
	return PriorityMock
}

// Dimensions implements Provider.
func (p *MockProvider) Dimensions() int {
	return p.dimensions
}

// IsAvailable always returns true.
func (p *MockProvider) IsAvailable() bool {
	return true
}

// Vectorize implements Provider with hash-seeded unit vectors.
func (p *MockProvider) Vectorize(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = p.vector(text)
	}

	return vectors, nil
}

func (p *MockProvider) vector(text string) []float32 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text)) // fnv.Write never returns an error
	seed := h.Sum64()

	vec := make([]float32, p.dimensions)
	for i := range vec {
		seed = seed*lcgMultiplier + lcgIncrement
		//nolint:gosec // intentional uint64->int64 conversion for pseudo-random generation
		vec[i] = float32(int64(seed>>seedShift)-floatScale) / float32(floatScale)
	}

	return normalizeVector(vec)
}

func normalizeVector(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}

	if sum == 0 {
		return vec
	}

	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}

	return vec
}
