// Package dedup groups equivalent texts and picks one representative
// per group. Three escalating strategies share one contract: exact
// (content hash), fuzzy (edit-distance ratio) and semantic (embedding
// cosine similarity), plus a chain that runs them in sequence.
//
// Fuzzy and semantic clustering are greedy and order-dependent: an item
// close to two mutually distant items joins whichever cluster is
// processed first. This non-transitivity is a documented property of
// the algorithm, not a defect.
package dedup

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Method selects a deduplication strategy.
type Method string

// Recognized methods.
const (
	MethodExact     Method = "exact"
	MethodFuzzy     Method = "fuzzy"
	MethodEmbedding Method = "embedding"
	MethodAll       Method = "all"
)

// Default similarity cutoffs.
const (
	DefaultFuzzyThreshold     = 0.85
	DefaultEmbeddingThreshold = 0.85
)

// ErrUnknownMethod is returned for an unrecognized method string.
var ErrUnknownMethod = errors.New("unknown dedup method")

// ParseMethod validates a method string.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodExact, MethodFuzzy, MethodEmbedding, MethodAll:
		return Method(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Result is the outcome of one strategy invocation over a batch.
// Keep is sorted ascending and covers every non-empty input index.
// Groups lists only multi-member equivalence classes; together with the
// singleton kept indices they partition the input index set.
type Result struct {
	Keep   []int
	Groups [][]int
}

// Strategy deduplicates a batch of texts. weights, when non-nil,
// parallels texts and drives representative selection; it is typically
// the popularity signal.
type Strategy interface {
	Name() string
	Dedup(ctx context.Context, texts []string, weights []float64) (Result, error)
}

// representative picks the index that stands in for a cluster: arg-max
// weight when weights are supplied (ties go to the earliest index),
// otherwise the first index. Clusters are built in ascending order, so
// the first index is also the lowest.
func representative(cluster []int, weights []float64) int {
	best := cluster[0]

	if weights == nil {
		return best
	}

	bestWeight := weightAt(weights, best)

	for _, idx := range cluster[1:] {
		if w := weightAt(weights, idx); w > bestWeight {
			bestWeight = w
			best = idx
		}
	}

	return best
}

func weightAt(weights []float64, idx int) float64 {
	if idx < len(weights) {
		return weights[idx]
	}

	return 0
}

// greedyCluster performs the shared single-pass clustering: indices are
// processed left to right, each unclaimed index starts a cluster and
// claims every unclaimed later index whose similarity meets the
// threshold. eligible filters indices out of clustering entirely (they
// are then also excluded from Keep). The claiming loop is inherently
// sequential; only the pairwise similarity calls are independent.
func greedyCluster(n int, threshold float64, eligible func(int) bool, similarity func(i, j int) float64, weights []float64) Result {
	claimed := make([]bool, n)
	res := Result{Keep: make([]int, 0, n)}

	for i := 0; i < n; i++ {
		if claimed[i] || !eligible(i) {
			continue
		}

		cluster := []int{i}

		for j := i + 1; j < n; j++ {
			if claimed[j] || !eligible(j) {
				continue
			}

			if similarity(i, j) >= threshold {
				cluster = append(cluster, j)
				claimed[j] = true
			}
		}

		if len(cluster) > 1 {
			res.Groups = append(res.Groups, cluster)
			res.Keep = append(res.Keep, representative(cluster, weights))
		} else {
			res.Keep = append(res.Keep, i)
		}
	}

	sort.Ints(res.Keep)

	return res
}

func alwaysEligible(int) bool { return true }

func nonEmptyEligible(texts []string) func(int) bool {
	return func(i int) bool { return texts[i] != "" }
}

func identityKeep(n int) Result {
	keep := make([]int, n)
	for i := range keep {
		keep[i] = i
	}

	return Result{Keep: keep}
}
