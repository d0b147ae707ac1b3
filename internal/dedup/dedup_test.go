package dedup

import (
	"testing"
)

func TestParseMethod(t *testing.T) {
	for _, s := range []string{"exact", "fuzzy", "embedding", "all"} {
		m, err := ParseMethod(s)
		if err != nil {
			t.Fatalf("ParseMethod(%q) unexpected error: %v", s, err)
		}

		if string(m) != s {
			t.Errorf("ParseMethod(%q) = %q", s, m)
		}
	}

	if _, err := ParseMethod("levenshtein"); err == nil {
		t.Error("ParseMethod should reject unknown method")
	}
}

func TestRepresentative(t *testing.T) {
	tests := []struct {
		name    string
		cluster []int
		weights []float64
		want    int
	}{
		{name: "nil weights takes first", cluster: []int{2, 5, 7}, weights: nil, want: 2},
		{name: "argmax weight", cluster: []int{0, 1, 2}, weights: []float64{1, 5, 1}, want: 1},
		{name: "tie goes to earliest", cluster: []int{0, 1, 2}, weights: []float64{5, 5, 1}, want: 0},
		{name: "index past weights counts zero", cluster: []int{0, 3}, weights: []float64{1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := representative(tt.cluster, tt.weights); got != tt.want {
				t.Errorf("representative(%v, %v) = %d, want %d", tt.cluster, tt.weights, got, tt.want)
			}
		})
	}
}

// checkPartition verifies that Keep plus the non-representative members
// of every group cover each eligible index exactly once.
func checkPartition(t *testing.T, res Result, n int, eligible func(int) bool) {
	t.Helper()

	covered := make(map[int]int)

	for _, idx := range res.Keep {
		covered[idx]++
	}

	for _, group := range res.Groups {
		rep := -1
		for _, idx := range group {
			for _, kept := range res.Keep {
				if idx == kept {
					rep = idx
				}
			}
		}

		if rep == -1 {
			t.Errorf("group %v has no kept representative", group)
		}

		for _, idx := range group {
			if idx != rep {
				covered[idx]++
			}
		}
	}

	for i := 0; i < n; i++ {
		want := 0
		if eligible(i) {
			want = 1
		}

		if covered[i] != want {
			t.Errorf("index %d covered %d times, want %d", i, covered[i], want)
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
