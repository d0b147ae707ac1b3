package embeddings

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderDeterministic(t *testing.T) {
	p := NewMockProvider()

	first, err := p.Vectorize(context.Background(), []string{"这是一条评论"})
	require.NoError(t, err)

	second, err := p.Vectorize(context.Background(), []string{"这是一条评论"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMockProviderDistinctTexts(t *testing.T) {
	p := NewMockProvider()

	vectors, err := p.Vectorize(context.Background(), []string{"甲", "乙"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	assert.NotEqual(t, vectors[0], vectors[1])
}

func TestMockProviderUnitNorm(t *testing.T) {
	p := NewMockProviderWithDimensions(64)

	vectors, err := p.Vectorize(context.Background(), []string{"规一化检查"})
	require.NoError(t, err)
	require.Len(t, vectors, 1)
	require.Len(t, vectors[0], 64)

	var sum float64
	for _, v := range vectors[0] {
		sum += float64(v) * float64(v)
	}

	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-3)
}

func TestMockProviderMetadata(t *testing.T) {
	p := NewMockProvider()

	assert.Equal(t, ProviderMock, p.Name())
	assert.Equal(t, PriorityMock, p.Priority())
	assert.Equal(t, DefaultDimensions, p.Dimensions())
	assert.True(t, p.IsAvailable())
}
