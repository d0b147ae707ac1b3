package pipeline

import (
	"fmt"
	"strings"
)

// Rejection reason labels, shared with the drop metrics.
const (
	ReasonLength       = "length"
	ReasonSpam         = "spam"
	ReasonChineseRatio = "chinese_ratio"
	ReasonQuality      = "quality"
	ReasonDuplicate    = "duplicate"
)

// Stats is the per-run rejection report. Counters only grow during a
// run; the struct is returned to the caller and never persisted.
type Stats struct {
	OriginalCount int `json:"original_count"`
	AfterClean    int `json:"after_clean"`
	AfterFilter   int `json:"after_filter"`
	AfterQuality  int `json:"after_quality"`
	AfterDedup    int `json:"after_dedup"`

	RemovedByLength       int `json:"removed_by_length"`
	RemovedBySpam         int `json:"removed_by_spam"`
	RemovedByChineseRatio int `json:"removed_by_chinese_ratio"`
	RemovedByQuality      int `json:"removed_by_quality"`
	RemovedByDedup        int `json:"removed_by_dedup"`

	// DuplicateGroups lists every multi-member equivalence group found
	// during deduplication, in original batch coordinates.
	DuplicateGroups [][]int `json:"duplicate_groups,omitempty"`
}

// KeptRatio is the fraction of the original batch that survived.
func (s Stats) KeptRatio() float64 {
	if s.OriginalCount == 0 {
		return 0
	}

	return float64(s.AfterDedup) / float64(s.OriginalCount)
}

// Report renders a human-readable rejection breakdown.
func (s Stats) Report() string {
	var b strings.Builder

	fmt.Fprintf(&b, "original: %d\n", s.OriginalCount)
	fmt.Fprintf(&b, "after clean: %d\n", s.AfterClean)
	fmt.Fprintf(&b, "after filter: %d\n", s.AfterFilter)
	fmt.Fprintf(&b, "after dedup: %d\n", s.AfterDedup)
	fmt.Fprintf(&b, "removed by length: %d\n", s.RemovedByLength)
	fmt.Fprintf(&b, "removed by spam: %d\n", s.RemovedBySpam)
	fmt.Fprintf(&b, "removed by chinese ratio: %d\n", s.RemovedByChineseRatio)
	fmt.Fprintf(&b, "removed by quality: %d\n", s.RemovedByQuality)
	fmt.Fprintf(&b, "removed as duplicates: %d\n", s.RemovedByDedup)
	fmt.Fprintf(&b, "kept: %.1f%%\n", s.KeptRatio()*100) //nolint:mnd // percent

	return b.String()
}
