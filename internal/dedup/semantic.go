package dedup

import (
	"context"
	"math"

	"github.com/rs/zerolog"
)

// Vectorizer is the narrow batch-embedding dependency of the semantic
// strategy. Implementations must be safe for concurrent use; the
// strategy treats the client as read-only.
type Vectorizer interface {
	Vectorize(ctx context.Context, texts []string) ([][]float32, error)
	IsAvailable() bool
}

// Semantic clusters texts by cosine similarity of their embeddings.
// When the vectorizer is unavailable or fails, the strategy degrades to
// identity: every index is kept and no groups are reported. Only
// context cancellation propagates as an error.
type Semantic struct {
	vectorizer Vectorizer
	threshold  float64
	logger     *zerolog.Logger
}

// NewSemantic returns the embedding strategy. logger may be nil.
func NewSemantic(vectorizer Vectorizer, threshold float64, logger *zerolog.Logger) *Semantic {
	return &Semantic{
		vectorizer: vectorizer,
		threshold:  threshold,
		logger:     logger,
	}
}

// Name implements Strategy.
func (s *Semantic) Name() string {
	return string(MethodEmbedding)
}

// Dedup implements Strategy.
func (s *Semantic) Dedup(ctx context.Context, texts []string, weights []float64) (Result, error) {
	if len(texts) == 0 {
		return Result{Keep: []int{}}, nil
	}

	if s.vectorizer == nil || !s.vectorizer.IsAvailable() {
		s.warn(nil, "vectorizer unavailable, skipping semantic dedup")
		return identityKeep(len(texts)), nil
	}

	vectors, err := s.vectorizer.Vectorize(ctx, texts)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}

		s.warn(err, "vectorize failed, skipping semantic dedup")

		return identityKeep(len(texts)), nil
	}

	if len(vectors) != len(texts) {
		s.warn(nil, "vectorizer returned wrong batch size, skipping semantic dedup")
		return identityKeep(len(texts)), nil
	}

	similarity := func(i, j int) float64 {
		return CosineSimilarity(vectors[i], vectors[j])
	}

	return greedyCluster(len(texts), s.threshold, alwaysEligible, similarity, weights), nil
}

func (s *Semantic) warn(err error, msg string) {
	if s.logger == nil {
		return
	}

	s.logger.Warn().Err(err).Msg(msg)
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// or 0 when their lengths differ or either norm is zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64

	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
