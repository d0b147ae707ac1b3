package dedup

import (
	"context"
	"errors"
	"testing"
)

func TestChainRemapsToOriginalCoordinates(t *testing.T) {
	// Exact removes the verbatim copy at 1, fuzzy then merges the
	// near-copy at 2 into 0. Groups and Keep must come back in original
	// batch coordinates.
	texts := []string{
		"这个视频真的很好看",
		"这个视频真的很好看",
		"这个视频真的很好看啊",
		"完全无关的评论",
	}

	c := NewChain(NewExact(), NewFuzzy(0.8))

	res, err := c.Dedup(context.Background(), texts, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !equalInts(res.Keep, []int{0, 3}) {
		t.Errorf("Keep = %v, want [0 3]", res.Keep)
	}

	if len(res.Groups) != 2 {
		t.Fatalf("Groups = %v, want two groups", res.Groups)
	}

	if !equalInts(res.Groups[0], []int{0, 1}) {
		t.Errorf("exact group = %v, want [0 1]", res.Groups[0])
	}

	if !equalInts(res.Groups[1], []int{0, 2}) {
		t.Errorf("fuzzy group = %v, want [0 2]", res.Groups[1])
	}
}

func TestChainCarriesWeights(t *testing.T) {
	// The exact stage keeps index 1 (heavier duplicate); the fuzzy stage
	// must see the surviving weights, not the originals by position.
	texts := []string{
		"这个视频真的很好看",
		"这个视频真的很好看",
		"这个视频真的很好看啊",
	}
	weights := []float64{1, 5, 3}

	c := NewChain(NewExact(), NewFuzzy(0.8))

	res, err := c.Dedup(context.Background(), texts, weights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !equalInts(res.Keep, []int{1}) {
		t.Errorf("Keep = %v, want [1]", res.Keep)
	}
}

func TestChainStageError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewChain(NewSemantic(&stubVectorizer{available: true, err: context.Canceled}, 0.9, nil))

	if _, err := c.Dedup(ctx, []string{"甲"}, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestForMethod(t *testing.T) {
	for _, m := range []Method{MethodExact, MethodFuzzy, MethodEmbedding, MethodAll} {
		s, err := ForMethod(m, 0.85, 0.85, nil, nil)
		if err != nil {
			t.Fatalf("ForMethod(%q) unexpected error: %v", m, err)
		}

		if s == nil {
			t.Fatalf("ForMethod(%q) returned nil strategy", m)
		}
	}

	if _, err := ForMethod(Method("simhash"), 0.85, 0.85, nil, nil); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("err = %v, want ErrUnknownMethod", err)
	}
}
