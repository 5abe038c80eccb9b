package layout

import (
	"math"
	"sort"
)

// GuideOrientation identifies the edge family an alignment guide snaps.
type GuideOrientation string

// Guide orientations.
const (
	GuideVertical   GuideOrientation = "vertical"   // left edges
	GuideHorizontal GuideOrientation = "horizontal" // top edges
	GuideCenter     GuideOrientation = "center"     // horizontal centers
)

// Guide is a detected alignment line with the indices of member elements.
type Guide struct {
	Orientation GuideOrientation `json:"orientation"`
	Position    float64          `json:"position"`
	Members     []int            `json:"members"`
}

// AlignmentOptions controls CorrectAlignment.
type AlignmentOptions struct {
	// Threshold is the pixel distance within which edges cluster into a
	// guide. Zero means 8.
	Threshold float64
	// Optical nudges tall text blocks upward by 2% of their height after
	// snapping, compensating for visual weight sitting low.
	Optical bool
}

// AlignmentResult carries detected guides, adjusted elements, and a
// change log.
type AlignmentResult struct {
	Guides   []Guide   `json:"guides"`
	Elements []Element `json:"elements"`
	Changes  []Change  `json:"changes"`
}

const (
	defaultAlignThreshold = 8.0
	opticalNudgeRatio     = 0.02
	tallTextHeight        = 64.0
)

// CorrectAlignment clusters element edges within the threshold into
// guides and snaps every member of a guide with at least two members to
// the guide position. The position is the mode of the cluster: the
// average of the largest run of near-equal values among the members.
func CorrectAlignment(elements []Element, opts AlignmentOptions) AlignmentResult {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = defaultAlignThreshold
	}

	result := AlignmentResult{Elements: cloneElements(elements)}

	type edgeAccess struct {
		orientation GuideOrientation
		value       func(Element) float64
		apply       func(*Element, float64)
	}

	accessors := []edgeAccess{
		{GuideVertical, func(e Element) float64 { return e.Bounds.X },
			func(e *Element, v float64) { e.Bounds.X = v }},
		{GuideHorizontal, func(e Element) float64 { return e.Bounds.Y },
			func(e *Element, v float64) { e.Bounds.Y = v }},
		{GuideCenter, func(e Element) float64 { return e.Bounds.CenterX() },
			func(e *Element, v float64) { e.Bounds.X = v - e.Bounds.Width/2 }},
	}

	claimed := make(map[int]bool)

	for _, acc := range accessors {
		clusters := clusterValues(result.Elements, acc.value, threshold)
		for _, members := range clusters {
			if len(members) < 2 {
				continue
			}

			// Skip members already snapped by a prior orientation so one
			// element is not pulled two directions horizontally.
			if acc.orientation == GuideCenter {
				free := members[:0:0]
				for _, m := range members {
					if !claimed[m] {
						free = append(free, m)
					}
				}
				if len(free) < 2 {
					continue
				}
				members = free
			}

			values := make([]float64, len(members))
			for i, m := range members {
				values[i] = acc.value(result.Elements[m])
			}
			target := clusterMode(values, threshold/2)

			guide := Guide{
				Orientation: acc.orientation,
				Position:    target,
				Members:     members,
			}
			result.Guides = append(result.Guides, guide)

			for _, m := range members {
				el := &result.Elements[m]
				before := acc.value(*el)
				if before == target {
					continue
				}
				acc.apply(el, target)
				field := "x"
				if acc.orientation == GuideHorizontal {
					field = "y"
				}
				result.Changes = append(result.Changes, Change{
					ElementID: el.ID,
					Field:     field,
					From:      before,
					To:        acc.value(*el),
				})
				if acc.orientation != GuideHorizontal {
					claimed[m] = true
				}
			}
		}
	}

	if opts.Optical {
		opticalAdjust(&result)
	}

	return result
}

// clusterValues groups element indices whose accessor values sit within
// threshold of the running cluster start.
func clusterValues(elements []Element, value func(Element) float64, threshold float64) [][]int {
	idx := make([]int, len(elements))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return value(elements[idx[a]]) < value(elements[idx[b]])
	})

	var clusters [][]int
	var current []int
	var start float64

	for _, i := range idx {
		v := value(elements[i])
		if len(current) == 0 || v-start <= threshold {
			if len(current) == 0 {
				start = v
			}
			current = append(current, i)
			continue
		}
		clusters = append(clusters, current)
		current = []int{i}
		start = v
	}
	if len(current) > 0 {
		clusters = append(clusters, current)
	}

	return clusters
}

// clusterMode returns the average of the largest run of near-equal
// values (within eps of each other) in the set.
func clusterMode(values []float64, eps float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	bestStart, bestLen := 0, 1
	runStart := 0
	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[runStart] > eps {
			runStart = i
			continue
		}
		if run := i - runStart + 1; run > bestLen {
			bestStart, bestLen = runStart, run
		}
	}

	var sum float64
	for _, v := range sorted[bestStart : bestStart+bestLen] {
		sum += v
	}
	return sum / float64(bestLen)
}

func opticalAdjust(result *AlignmentResult) {
	for i := range result.Elements {
		el := &result.Elements[i]
		if !el.IsText() || el.Bounds.Height < tallTextHeight {
			continue
		}
		nudge := el.Bounds.Height * opticalNudgeRatio
		before := el.Bounds.Y
		el.Bounds.Y = math.Max(0, el.Bounds.Y-nudge)
		if el.Bounds.Y != before {
			result.Changes = append(result.Changes, Change{
				ElementID: el.ID,
				Field:     "y",
				From:      before,
				To:        el.Bounds.Y,
			})
		}
	}
}
