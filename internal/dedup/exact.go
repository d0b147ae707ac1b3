package dedup

import (
	"context"
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"sort"
)

// Exact groups texts by content hash over their UTF-8 bytes. Empty
// strings are excluded from Keep and from every group.
type Exact struct{}

// NewExact returns the exact-hash strategy.
func NewExact() *Exact {
	return &Exact{}
}

// Name implements Strategy.
func (e *Exact) Name() string {
	return string(MethodExact)
}

// Hash returns the hex content digest used for grouping.
func Hash(text string) string {
	if text == "" {
		return ""
	}

	sum := md5.Sum([]byte(text)) //nolint:gosec // content fingerprint

	return hex.EncodeToString(sum[:])
}

// Dedup implements Strategy. Within a duplicate group the
// representative is the arg-max weight (ties to the lowest index), or
// the first index encountered when no weights are supplied.
func (e *Exact) Dedup(_ context.Context, texts []string, weights []float64) (Result, error) {
	groups := make(map[string][]int, len(texts))
	order := make([]string, 0, len(texts))

	for i, text := range texts {
		if text == "" {
			continue
		}

		h := Hash(text)
		if _, seen := groups[h]; !seen {
			order = append(order, h)
		}

		groups[h] = append(groups[h], i)
	}

	res := Result{Keep: make([]int, 0, len(order))}

	for _, h := range order {
		indices := groups[h]
		if len(indices) == 1 {
			res.Keep = append(res.Keep, indices[0])
			continue
		}

		res.Groups = append(res.Groups, indices)
		res.Keep = append(res.Keep, representative(indices, weights))
	}

	sort.Ints(res.Keep)

	return res, nil
}
