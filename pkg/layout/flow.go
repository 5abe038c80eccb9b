package layout

import "sort"

// Flow classifies the reading pattern a layout encourages.
type Flow string

// Flow patterns.
const (
	FlowF      Flow = "f-pattern"
	FlowZ      Flow = "z-pattern"
	FlowLinear Flow = "linear"
)

// Canvas is the drawable area elements are arranged within.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ClassifyFlow inspects element distribution and classifies the current
// reading pattern: left-heavy layouts read as F-pattern, layouts with
// occupied opposing corners read as Z-pattern, everything else is
// linear.
func ClassifyFlow(elements []Element, canvas Canvas) Flow {
	if len(elements) == 0 || canvas.Width <= 0 || canvas.Height <= 0 {
		return FlowLinear
	}

	var leftWeight, totalWeight float64
	quadrants := [4]bool{} // TL, TR, BL, BR

	for _, el := range elements {
		area := el.Bounds.Area()
		totalWeight += area
		if el.Bounds.CenterX() < canvas.Width/2 {
			leftWeight += area
		}

		qx := 0
		if el.Bounds.CenterX() >= canvas.Width/2 {
			qx = 1
		}
		qy := 0
		if el.Bounds.CenterY() >= canvas.Height/2 {
			qy = 1
		}
		quadrants[qy*2+qx] = true
	}

	if totalWeight > 0 && leftWeight/totalWeight >= 0.65 {
		return FlowF
	}

	// Z needs the top corners plus the bottom-right terminus.
	if quadrants[0] && quadrants[1] && quadrants[3] {
		return FlowZ
	}

	return FlowLinear
}

// FlowResult carries the rearranged elements and a change log.
type FlowResult struct {
	Flow     Flow      `json:"flow"`
	Elements []Element `json:"elements"`
	Changes  []Change  `json:"changes"`
}

// ArrangeFlow force-places the key elements (largest first, headings
// preferred) at the canonical anchor points of the target flow and
// reassigns z-order to match reading order. Elements beyond the anchor
// count keep their position but still join the z-order sequence.
func ArrangeFlow(elements []Element, canvas Canvas, target Flow) FlowResult {
	result := FlowResult{Flow: target, Elements: cloneElements(elements)}
	if len(result.Elements) == 0 || canvas.Width <= 0 || canvas.Height <= 0 {
		return result
	}

	order := keyOrder(result.Elements)
	anchors := flowAnchors(target, canvas, len(order))

	for rank, idx := range order {
		el := &result.Elements[idx]

		if rank < len(anchors) {
			ax := anchors[rank][0]*canvas.Width - el.Bounds.Width/2
			ay := anchors[rank][1]*canvas.Height - el.Bounds.Height/2
			ax = clampFloat(ax, 0, canvas.Width-el.Bounds.Width)
			ay = clampFloat(ay, 0, canvas.Height-el.Bounds.Height)

			if ax != el.Bounds.X {
				result.Changes = append(result.Changes, Change{
					ElementID: el.ID, Field: "x", From: el.Bounds.X, To: ax,
				})
				el.Bounds.X = ax
			}
			if ay != el.Bounds.Y {
				result.Changes = append(result.Changes, Change{
					ElementID: el.ID, Field: "y", From: el.Bounds.Y, To: ay,
				})
				el.Bounds.Y = ay
			}
		}

		if el.ZIndex != rank {
			result.Changes = append(result.Changes, Change{
				ElementID: el.ID, Field: "z_index", From: float64(el.ZIndex), To: float64(rank),
			})
			el.ZIndex = rank
		}
	}

	return result
}

// keyOrder ranks element indices by importance: headings first, then
// descending area.
func keyOrder(elements []Element) []int {
	idx := make([]int, len(elements))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ea, eb := elements[idx[a]], elements[idx[b]]
		if (ea.Kind == KindHeading) != (eb.Kind == KindHeading) {
			return ea.Kind == KindHeading
		}
		return ea.Bounds.Area() > eb.Bounds.Area()
	})
	return idx
}

// flowAnchors returns fractional (x, y) anchor centers for the first n
// key elements under each canonical pattern.
func flowAnchors(flow Flow, canvas Canvas, n int) [][2]float64 {
	var anchors [][2]float64
	switch flow {
	case FlowF:
		anchors = [][2]float64{
			{0.5, 0.12},  // top bar
			{0.25, 0.35}, // second horizontal scan
			{0.2, 0.6},   // left stem
			{0.2, 0.8},
		}
	case FlowZ:
		anchors = [][2]float64{
			{0.18, 0.15}, // top-left
			{0.82, 0.15}, // top-right
			{0.5, 0.5},   // diagonal midpoint
			{0.18, 0.85}, // bottom-left
			{0.82, 0.85}, // bottom-right terminus
		}
	default:
		// Centered column, evenly stepped.
		rows := min(n, 5)
		for i := range rows {
			anchors = append(anchors, [2]float64{0.5, 0.15 + float64(i)*0.7/float64(max(rows-1, 1))})
		}
	}
	return anchors
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
