package dedup

import (
	"context"
	"fmt"
)

// Chain runs strategies in sequence: each stage's kept set becomes the
// next stage's input, and final indices are mapped back through every
// remapping to the original batch coordinates. Groups from all stages
// are reported in original coordinates.
type Chain struct {
	stages []Strategy
}

// NewChain composes strategies; used for the "all" method as
// exact → fuzzy → embedding.
func NewChain(stages ...Strategy) *Chain {
	return &Chain{stages: stages}
}

// Name implements Strategy.
func (c *Chain) Name() string {
	return string(MethodAll)
}

// Dedup implements Strategy.
func (c *Chain) Dedup(ctx context.Context, texts []string, weights []float64) (Result, error) {
	// mapping[i] is the original index of the i-th surviving text.
	mapping := make([]int, len(texts))
	for i := range mapping {
		mapping[i] = i
	}

	curTexts := texts
	curWeights := weights

	var allGroups [][]int

	for _, stage := range c.stages {
		res, err := stage.Dedup(ctx, curTexts, curWeights)
		if err != nil {
			return Result{}, fmt.Errorf("%s dedup: %w", stage.Name(), err)
		}

		for _, group := range res.Groups {
			allGroups = append(allGroups, remap(group, mapping))
		}

		mapping = remap(res.Keep, mapping)

		nextTexts := make([]string, len(res.Keep))
		for i, idx := range res.Keep {
			nextTexts[i] = curTexts[idx]
		}

		curTexts = nextTexts

		if curWeights != nil {
			nextWeights := make([]float64, len(res.Keep))
			for i, idx := range res.Keep {
				nextWeights[i] = weightAt(curWeights, idx)
			}

			curWeights = nextWeights
		}
	}

	return Result{Keep: mapping, Groups: allGroups}, nil
}

func remap(indices, mapping []int) []int {
	out := make([]int, len(indices))
	for i, idx := range indices {
		out[i] = mapping[idx]
	}

	return out
}
