package compose

import (
	"slices"

	"github.com/burnishapp/burnish/internal/pipeline"
)

// afterCap bounds post-enhancement scores; a render never claims
// perfection.
const afterCap = 98

// rankFactors scale the plan's estimated impact by priority position:
// the first-priority dimension absorbs the most improvement.
var rankFactors = []float64{1.0, 0.8, 0.6, 0.4}

// improvements projects before/after scores from the plan's estimated
// impact, distributed across dimensions by priority rank. The measured
// balance of the final render feeds the composition dimension, so a
// well-balanced result is credited with what was actually achieved.
func improvements(before pipeline.Score, plan *pipeline.Plan, balance float64) pipeline.Improvements {
	gain := func(dim pipeline.Dimension) int {
		rank := slices.Index(plan.Strategy.Priority, dim)
		factor := 0.4
		if rank >= 0 && rank < len(rankFactors) {
			factor = rankFactors[rank]
		}
		g := int(float64(plan.Strategy.EstimatedImpact) * factor * 0.8)
		if g < 2 {
			g = 2
		}
		return g
	}

	after := pipeline.Score{
		Color:       capScore(before.Color + gain(pipeline.DimensionColor)),
		Typography:  capScore(before.Typography + gain(pipeline.DimensionTypography)),
		Layout:      capScore(before.Layout + gain(pipeline.DimensionLayout)),
		Composition: capScore(before.Composition + gain(pipeline.DimensionVisuals)),
	}

	// Credit measured balance when it exceeds the projection.
	if measured := int(balance * 100); measured > after.Composition {
		after.Composition = capScore(measured)
	}

	after.Overall = (after.Color + after.Typography + after.Layout + after.Composition) / 4
	if after.Overall <= before.Overall {
		after.Overall = capScore(before.Overall + 1)
	}

	return pipeline.Improvements{
		Overall:     pipeline.ScoreChange{Before: before.Overall, After: after.Overall},
		Color:       pipeline.ScoreChange{Before: before.Color, After: after.Color},
		Typography:  pipeline.ScoreChange{Before: before.Typography, After: after.Typography},
		Layout:      pipeline.ScoreChange{Before: before.Layout, After: after.Layout},
		Composition: pipeline.ScoreChange{Before: before.Composition, After: after.Composition},
	}
}

func capScore(v int) int {
	if v > afterCap {
		return afterCap
	}
	if v < 0 {
		return 0
	}
	return v
}
