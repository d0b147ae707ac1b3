package dedup

import "context"

// Fuzzy clusters texts by normalized edit-distance ratio:
// 2*matches/(lenA+lenB) over runes, where matches is the longest
// common subsequence length. The comparison phase is O(n²) and is the
// dominant cost for large batches.
type Fuzzy struct {
	threshold float64
}

// NewFuzzy returns the fuzzy strategy with the given similarity cutoff
// in [0,1].
func NewFuzzy(threshold float64) *Fuzzy {
	return &Fuzzy{threshold: threshold}
}

// Name implements Strategy.
func (f *Fuzzy) Name() string {
	return string(MethodFuzzy)
}

// Dedup implements Strategy. Empty strings are skipped entirely.
func (f *Fuzzy) Dedup(_ context.Context, texts []string, weights []float64) (Result, error) {
	runes := make([][]rune, len(texts))
	for i, t := range texts {
		runes[i] = []rune(t)
	}

	similarity := func(i, j int) float64 {
		return matchRatio(runes[i], runes[j])
	}

	return greedyCluster(len(texts), f.threshold, nonEmptyEligible(texts), similarity, weights), nil
}

// matchRatio computes 2*LCS(a,b)/(len(a)+len(b)) in [0,1]. Identical
// strings score 1; strings with no common character score 0.
func matchRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}

	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	return 2 * float64(lcsLength(a, b)) / float64(total)
}

// lcsLength is the classic two-row DP over runes, so multi-byte CJK
// characters compare as single units.
func lcsLength(a, b []rune) int {
	if len(b) > len(a) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}

		prev, cur = cur, prev
	}

	return prev[len(b)]
}
