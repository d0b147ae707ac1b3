package dedup

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ForMethod builds the strategy for a validated method. The vectorizer
// may be nil; the semantic stage then degrades to identity.
func ForMethod(method Method, fuzzyThreshold, embeddingThreshold float64, vectorizer Vectorizer, logger *zerolog.Logger) (Strategy, error) {
	switch method {
	case MethodExact:
		return NewExact(), nil
	case MethodFuzzy:
		return NewFuzzy(fuzzyThreshold), nil
	case MethodEmbedding:
		return NewSemantic(vectorizer, embeddingThreshold, logger), nil
	case MethodAll:
		return NewChain(
			NewExact(),
			NewFuzzy(fuzzyThreshold),
			NewSemantic(vectorizer, embeddingThreshold, logger),
		), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}
