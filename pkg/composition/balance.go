package composition

import (
	"math"
	"sort"
)

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BalanceScores rate how evenly visual weight is distributed around the
// canvas center, each on a 0-1 scale.
type BalanceScores struct {
	Horizontal float64 `json:"horizontal"`
	Vertical   float64 `json:"vertical"`
	Radial     float64 `json:"radial"`
	Overall    float64 `json:"overall"`
}

// centerOfMass returns the visual-weight-weighted centroid of the
// layers. An empty or weightless set reports the canvas center.
func centerOfMass(layers []Layer, canvas Canvas) Point {
	var totalWeight, sumX, sumY float64
	for _, l := range layers {
		x, y, w, h := l.EffectiveBounds()
		weight := l.VisualWeight
		if weight == 0 {
			weight = defaultVisualWeight(l)
		}
		sumX += (x + w/2) * weight
		sumY += (y + h/2) * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return Point{X: canvas.Width / 2, Y: canvas.Height / 2}
	}
	return Point{X: sumX / totalWeight, Y: sumY / totalWeight}
}

// CenterOfMass returns the weighted centroid of the manager's layers.
func (m *Manager) CenterOfMass(canvas Canvas) Point {
	return centerOfMass(m.RenderOrder(), canvas)
}

// ScoreBalance derives balance scores from the deviation of the center
// of mass from the canvas center: 1 means perfectly centered, 0 means
// the centroid sits at the canvas edge on that axis.
func ScoreBalance(layers []Layer, canvas Canvas) BalanceScores {
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return BalanceScores{}
	}

	com := centerOfMass(layers, canvas)

	hDev := math.Abs(com.X-canvas.Width/2) / (canvas.Width / 2)
	vDev := math.Abs(com.Y-canvas.Height/2) / (canvas.Height / 2)
	rDev := math.Hypot(com.X-canvas.Width/2, com.Y-canvas.Height/2) /
		(math.Hypot(canvas.Width, canvas.Height) / 2)

	scores := BalanceScores{
		Horizontal: 1 - math.Min(1, hDev),
		Vertical:   1 - math.Min(1, vDev),
		Radial:     1 - math.Min(1, rDev),
	}
	scores.Overall = (scores.Horizontal + scores.Vertical + scores.Radial) / 3
	return scores
}

// Adjustment is one proposed layer perturbation and the overall balance
// improvement it yields. Adjustments are proposals: the optimizer never
// applies them to the manager.
type Adjustment struct {
	LayerID     string  `json:"layer_id"`
	Field       string  `json:"field"` // "x", "y", or "scale"
	From        float64 `json:"from"`
	To          float64 `json:"to"`
	Improvement float64 `json:"improvement"`
}

// OptimizeOptions controls OptimizeBalance.
type OptimizeOptions struct {
	// MaxAdjustments caps the returned proposals. Zero means 5.
	MaxAdjustments int
	// MinImprovement is the smallest overall-score gain worth proposing.
	// Zero means 0.01.
	MinImprovement float64
}

// Perturbation magnitudes tried per layer, as canvas-size fractions for
// position and absolute deltas for scale.
var (
	positionSteps = []float64{-0.1, -0.05, 0.05, 0.1}
	scaleSteps    = []float64{-0.1, 0.1}
)

// OptimizeBalance greedily evaluates small position and scale
// perturbations for every non-critical layer against a working copy of
// the layer set and returns the top-ranked improvements. The manager's
// layers are never mutated; callers decide which adjustments to apply.
func (m *Manager) OptimizeBalance(canvas Canvas, opts OptimizeOptions) []Adjustment {
	maxAdj := opts.MaxAdjustments
	if maxAdj <= 0 {
		maxAdj = 5
	}
	minImp := opts.MinImprovement
	if minImp <= 0 {
		minImp = 0.01
	}

	layers := m.RenderOrder()
	baseline := ScoreBalance(layers, canvas).Overall

	var proposals []Adjustment

	consider := func(idx int, field string, from, to float64) {
		// Work on a copy so candidate states never alias the arena.
		trial := make([]Layer, len(layers))
		copy(trial, layers)

		switch field {
		case "x":
			trial[idx].X = to
		case "y":
			trial[idx].Y = to
		case "scale":
			trial[idx].Scale = to
			trial[idx].VisualWeight = defaultVisualWeight(trial[idx])
		}

		improvement := ScoreBalance(trial, canvas).Overall - baseline
		if improvement > minImp {
			proposals = append(proposals, Adjustment{
				LayerID:     layers[idx].ID,
				Field:       field,
				From:        from,
				To:          to,
				Improvement: improvement,
			})
		}
	}

	for i, l := range layers {
		if l.Critical() {
			continue
		}

		for _, step := range positionSteps {
			consider(i, "x", l.X, l.X+step*canvas.Width)
			consider(i, "y", l.Y, l.Y+step*canvas.Height)
		}
		for _, step := range scaleSteps {
			scale := l.Scale
			if scale <= 0 {
				scale = 1
			}
			if next := scale + step; next > 0.2 {
				consider(i, "scale", scale, next)
			}
		}
	}

	sort.SliceStable(proposals, func(a, b int) bool {
		return proposals[a].Improvement > proposals[b].Improvement
	})

	if len(proposals) > maxAdj {
		proposals = proposals[:maxAdj]
	}
	return proposals
}
