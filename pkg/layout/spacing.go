package layout

import (
	"math"
	"sort"
)

// SpacingPolicy selects how gaps inside a proximity group are normalized.
type SpacingPolicy string

// Spacing policies.
const (
	// SpacingEqual applies one fixed gap between consecutive elements.
	SpacingEqual SpacingPolicy = "equal"
	// SpacingProportional sizes each gap relative to its neighboring
	// elements, clamped to [MinGap, MaxGap].
	SpacingProportional SpacingPolicy = "proportional"
	// SpacingRhythmic repeats a 1x/2x/1x/3x multiplier pattern over the
	// base gap.
	SpacingRhythmic SpacingPolicy = "rhythmic"
)

var rhythmPattern = []float64{1, 2, 1, 3}

// SpacingOptions controls OptimizeSpacing.
type SpacingOptions struct {
	Policy SpacingPolicy
	// Gap is the base gap in pixels. Zero means 16.
	Gap float64
	// MinGap and MaxGap clamp proportional gaps. Zeros mean 8 and 64.
	MinGap float64
	MaxGap float64
	// GroupDistance is the maximum edge distance for two elements to
	// share a proximity group. Zero means 3x Gap.
	GroupDistance float64
}

// SpacingResult carries proximity groups (element indices), adjusted
// elements, and a change log.
type SpacingResult struct {
	Groups   [][]int   `json:"groups"`
	Elements []Element `json:"elements"`
	Changes  []Change  `json:"changes"`
}

// OptimizeSpacing groups elements by proximity and re-spaces each group
// along its dominant axis using the selected policy. The first element
// of each group anchors it; later elements are repositioned relative to
// their predecessor.
func OptimizeSpacing(elements []Element, opts SpacingOptions) SpacingResult {
	gap := opts.Gap
	if gap <= 0 {
		gap = 16
	}
	minGap := opts.MinGap
	if minGap <= 0 {
		minGap = 8
	}
	maxGap := opts.MaxGap
	if maxGap <= 0 {
		maxGap = 64
	}
	groupDist := opts.GroupDistance
	if groupDist <= 0 {
		groupDist = gap * 3
	}

	result := SpacingResult{Elements: cloneElements(elements)}
	result.Groups = groupByProximity(result.Elements, groupDist)

	for _, group := range result.Groups {
		if len(group) < 2 {
			continue
		}

		vertical := dominantAxisVertical(result.Elements, group)
		ordered := make([]int, len(group))
		copy(ordered, group)
		sort.SliceStable(ordered, func(a, b int) bool {
			if vertical {
				return result.Elements[ordered[a]].Bounds.Y < result.Elements[ordered[b]].Bounds.Y
			}
			return result.Elements[ordered[a]].Bounds.X < result.Elements[ordered[b]].Bounds.X
		})

		for i := 1; i < len(ordered); i++ {
			prev := result.Elements[ordered[i-1]]
			el := &result.Elements[ordered[i]]

			g := gapFor(opts.Policy, gap, minGap, maxGap, i-1, prev, *el, vertical)

			if vertical {
				target := prev.Bounds.Bottom() + g
				if target != el.Bounds.Y {
					result.Changes = append(result.Changes, Change{
						ElementID: el.ID, Field: "y", From: el.Bounds.Y, To: target,
					})
					el.Bounds.Y = target
				}
			} else {
				target := prev.Bounds.Right() + g
				if target != el.Bounds.X {
					result.Changes = append(result.Changes, Change{
						ElementID: el.ID, Field: "x", From: el.Bounds.X, To: target,
					})
					el.Bounds.X = target
				}
			}
		}
	}

	return result
}

func gapFor(policy SpacingPolicy, gap, minGap, maxGap float64, step int, prev, next Element, vertical bool) float64 {
	switch policy {
	case SpacingProportional:
		var size float64
		if vertical {
			size = (prev.Bounds.Height + next.Bounds.Height) / 2
		} else {
			size = (prev.Bounds.Width + next.Bounds.Width) / 2
		}
		return math.Min(maxGap, math.Max(minGap, size*0.25))
	case SpacingRhythmic:
		return gap * rhythmPattern[step%len(rhythmPattern)]
	default:
		return gap
	}
}

// groupByProximity performs a union-find pass over element pairs whose
// edge distance is within maxDist.
func groupByProximity(elements []Element, maxDist float64) [][]int {
	parent := make([]int, len(elements))
	for i := range parent {
		parent[i] = i
	}

	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		parent[find(a)] = find(b)
	}

	for i := range elements {
		for j := i + 1; j < len(elements); j++ {
			if edgeDistance(elements[i].Bounds, elements[j].Bounds) <= maxDist {
				union(i, j)
			}
		}
	}

	grouped := make(map[int][]int)
	for i := range elements {
		root := find(i)
		grouped[root] = append(grouped[root], i)
	}

	roots := make([]int, 0, len(grouped))
	for root := range grouped {
		roots = append(roots, root)
	}
	sort.Ints(roots)

	groups := make([][]int, 0, len(roots))
	for _, root := range roots {
		groups = append(groups, grouped[root])
	}
	return groups
}

// edgeDistance returns the gap between two rectangles, zero when they
// touch or overlap.
func edgeDistance(a, b Bounds) float64 {
	dx := math.Max(0, math.Max(a.X-b.Right(), b.X-a.Right()))
	dy := math.Max(0, math.Max(a.Y-b.Bottom(), b.Y-a.Bottom()))
	return math.Hypot(dx, dy)
}

// dominantAxisVertical reports whether the group spreads more vertically
// than horizontally.
func dominantAxisVertical(elements []Element, group []int) bool {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, i := range group {
		b := elements[i].Bounds
		minX = math.Min(minX, b.X)
		maxX = math.Max(maxX, b.Right())
		minY = math.Min(minY, b.Y)
		maxY = math.Max(maxY, b.Bottom())
	}
	return maxY-minY >= maxX-minX
}
