package dedup

import (
	"context"
	"testing"
)

func TestExactDedup(t *testing.T) {
	tests := []struct {
		name       string
		texts      []string
		weights    []float64
		wantKeep   []int
		wantGroups [][]int
	}{
		{
			name:     "empty batch",
			texts:    nil,
			wantKeep: []int{},
		},
		{
			name:     "no duplicates",
			texts:    []string{"甲", "乙", "丙"},
			wantKeep: []int{0, 1, 2},
		},
		{
			name:       "weight picks representative",
			texts:      []string{"abc", "abc", "xyz"},
			weights:    []float64{1, 5, 1},
			wantKeep:   []int{1, 2},
			wantGroups: [][]int{{0, 1}},
		},
		{
			name:       "no weights keeps first",
			texts:      []string{"abc", "abc", "xyz"},
			wantKeep:   []int{0, 2},
			wantGroups: [][]int{{0, 1}},
		},
		{
			name:     "empty strings excluded",
			texts:    []string{"", "abc", ""},
			wantKeep: []int{1},
		},
		{
			name:       "three way group",
			texts:      []string{"同样的", "别的", "同样的", "同样的"},
			weights:    []float64{0, 0, 9, 3},
			wantKeep:   []int{1, 2},
			wantGroups: [][]int{{0, 2, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewExact().Dedup(context.Background(), tt.texts, tt.weights)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !equalInts(res.Keep, tt.wantKeep) {
				t.Errorf("Keep = %v, want %v", res.Keep, tt.wantKeep)
			}

			if len(res.Groups) != len(tt.wantGroups) {
				t.Fatalf("Groups = %v, want %v", res.Groups, tt.wantGroups)
			}

			for i := range tt.wantGroups {
				if !equalInts(res.Groups[i], tt.wantGroups[i]) {
					t.Errorf("Groups[%d] = %v, want %v", i, res.Groups[i], tt.wantGroups[i])
				}
			}

			checkPartition(t, res, len(tt.texts), nonEmptyEligible(tt.texts))
		})
	}
}

func TestHash(t *testing.T) {
	if Hash("") != "" {
		t.Error("empty text should hash to empty string")
	}

	if Hash("你好") != Hash("你好") {
		t.Error("hash must be deterministic")
	}

	if Hash("你好") == Hash("你好吗") {
		t.Error("distinct texts should not collide")
	}

	if len(Hash("x")) != 32 {
		t.Errorf("hex digest length = %d, want 32", len(Hash("x")))
	}
}
