package composition

import (
	"math"
	"slices"
	"sort"
)

// Canvas is the composition surface in pixels.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size is an object footprint to be placed.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PlacementStrategy selects how placement candidates are generated.
type PlacementStrategy string

// Placement strategies.
const (
	// StrategyGrid samples cell centers of a coarse grid.
	StrategyGrid PlacementStrategy = "grid"
	// StrategyGolden samples the four golden-ratio points.
	StrategyGolden PlacementStrategy = "golden"
	// StrategyThirds samples the four rule-of-thirds intersections.
	StrategyThirds PlacementStrategy = "thirds"
	// StrategyScan samples a dense free scan across the canvas.
	StrategyScan PlacementStrategy = "scan"
)

// Zone names a canvas region for placement preference bonuses.
type Zone string

// Placement zones.
const (
	ZoneTopLeft     Zone = "top-left"
	ZoneTopRight    Zone = "top-right"
	ZoneBottomLeft  Zone = "bottom-left"
	ZoneBottomRight Zone = "bottom-right"
	ZoneCenter      Zone = "center"
	ZoneEdges       Zone = "edges"
)

// PlacementOptions controls FindOptimalPlacement.
type PlacementOptions struct {
	Strategy PlacementStrategy
	// AvoidOverlap penalizes candidates overlapping existing layers; a
	// non-overlapping candidate always wins when one exists.
	AvoidOverlap bool
	// PreferredZones add a bonus to candidates whose center falls inside.
	PreferredZones []Zone
	// Margin keeps candidates away from canvas edges. Zero means 16.
	Margin float64
}

// Placement is a scored candidate position (top-left corner).
type Placement struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Score   float64 `json:"score"`
	Overlap float64 `json:"overlap"`
}

// Scoring weights. When avoidance is requested, overlap-free
// candidates are ranked ahead of overlapping ones outright; the
// penalty only orders candidates within the overlapping class.
const (
	centerWeight    = 30.0
	overlapPenalty  = 1000.0
	zoneBonus       = 25.0
	balanceWeight   = 45.0
	defaultMargin   = 16.0
	scanStepDivisor = 24.0
)

// FindOptimalPlacement generates candidates under the strategy, scores
// each by distance from center, overlap against existing layers, zone
// preference, and how much the placement would move the composition's
// center of mass toward canvas center, then returns the best candidate.
// Returns ErrNoPlacement when the object cannot fit the canvas at all.
func FindOptimalPlacement(obj Size, canvas Canvas, existing []Layer, opts PlacementOptions) (Placement, error) {
	if canvas.Width <= 0 || canvas.Height <= 0 || obj.Width > canvas.Width || obj.Height > canvas.Height {
		return Placement{}, ErrNoPlacement
	}

	margin := opts.Margin
	if margin <= 0 {
		margin = defaultMargin
	}
	// A margin that would leave no room collapses to zero.
	if obj.Width+2*margin > canvas.Width || obj.Height+2*margin > canvas.Height {
		margin = 0
	}

	candidates := generateCandidates(obj, canvas, margin, opts.Strategy)
	if len(candidates) == 0 {
		return Placement{}, ErrNoPlacement
	}

	var best Placement
	for i, c := range candidates {
		p := scorePlacement(c[0], c[1], obj, canvas, existing, opts)
		if i == 0 || betterPlacement(p, best, opts.AvoidOverlap) {
			best = p
		}
	}

	return best, nil
}

// betterPlacement reports whether a outranks b. With avoidance on, any
// overlap-free candidate beats every overlapping one regardless of
// score; score breaks ties within each class.
func betterPlacement(a, b Placement, avoidOverlap bool) bool {
	if avoidOverlap && (a.Overlap == 0) != (b.Overlap == 0) {
		return a.Overlap == 0
	}
	return a.Score > b.Score
}

// generateCandidates returns top-left candidate corners. Anchor-point
// strategies (golden, thirds) center the object on the anchor.
func generateCandidates(obj Size, canvas Canvas, margin float64, strategy PlacementStrategy) [][2]float64 {
	clampX := func(x float64) float64 {
		return math.Min(math.Max(x, margin), canvas.Width-obj.Width-margin)
	}
	clampY := func(y float64) float64 {
		return math.Min(math.Max(y, margin), canvas.Height-obj.Height-margin)
	}

	centerOn := func(fx, fy float64) [2]float64 {
		return [2]float64{
			clampX(fx*canvas.Width - obj.Width/2),
			clampY(fy*canvas.Height - obj.Height/2),
		}
	}

	switch strategy {
	case StrategyGolden:
		const phi = 0.618
		return [][2]float64{
			centerOn(1-phi, 1-phi),
			centerOn(phi, 1-phi),
			centerOn(1-phi, phi),
			centerOn(phi, phi),
		}

	case StrategyThirds:
		return [][2]float64{
			centerOn(1.0/3, 1.0/3),
			centerOn(2.0/3, 1.0/3),
			centerOn(1.0/3, 2.0/3),
			centerOn(2.0/3, 2.0/3),
		}

	case StrategyScan:
		stepX := math.Max(8, canvas.Width/scanStepDivisor)
		stepY := math.Max(8, canvas.Height/scanStepDivisor)
		var out [][2]float64
		for y := margin; y <= canvas.Height-obj.Height-margin; y += stepY {
			for x := margin; x <= canvas.Width-obj.Width-margin; x += stepX {
				out = append(out, [2]float64{x, y})
			}
		}
		if len(out) == 0 {
			out = append(out, [2]float64{clampX(0), clampY(0)})
		}
		return out

	default: // grid
		const cells = 4
		var out [][2]float64
		for row := range cells {
			for col := range cells {
				fx := (float64(col) + 0.5) / cells
				fy := (float64(row) + 0.5) / cells
				out = append(out, centerOn(fx, fy))
			}
		}
		return out
	}
}

func scorePlacement(x, y float64, obj Size, canvas Canvas, existing []Layer, opts PlacementOptions) Placement {
	cx := x + obj.Width/2
	cy := y + obj.Height/2

	// Distance from canvas center, normalized by the half-diagonal.
	dx := cx - canvas.Width/2
	dy := cy - canvas.Height/2
	halfDiag := math.Hypot(canvas.Width, canvas.Height) / 2
	centerScore := (1 - math.Hypot(dx, dy)/halfDiag) * centerWeight

	overlap := overlapFraction(x, y, obj, existing)
	score := centerScore
	if opts.AvoidOverlap {
		score -= overlap * overlapPenalty
	}

	for _, zone := range opts.PreferredZones {
		if zoneContains(zone, canvas, cx, cy) {
			score += zoneBonus
			break
		}
	}

	score += balanceContribution(x, y, obj, canvas, existing) * balanceWeight

	return Placement{X: x, Y: y, Score: score, Overlap: overlap}
}

// overlapFraction returns the overlapped share of the object's area
// against all existing layers, capped at 1.
func overlapFraction(x, y float64, obj Size, existing []Layer) float64 {
	area := obj.Width * obj.Height
	if area <= 0 {
		return 0
	}

	var overlapped float64
	for _, l := range existing {
		lx, ly, lw, lh := l.EffectiveBounds()
		ix := math.Max(0, math.Min(x+obj.Width, lx+lw)-math.Max(x, lx))
		iy := math.Max(0, math.Min(y+obj.Height, ly+lh)-math.Max(y, ly))
		overlapped += ix * iy
	}

	return math.Min(1, overlapped/area)
}

func zoneContains(zone Zone, canvas Canvas, cx, cy float64) bool {
	switch zone {
	case ZoneTopLeft:
		return cx < canvas.Width/2 && cy < canvas.Height/2
	case ZoneTopRight:
		return cx >= canvas.Width/2 && cy < canvas.Height/2
	case ZoneBottomLeft:
		return cx < canvas.Width/2 && cy >= canvas.Height/2
	case ZoneBottomRight:
		return cx >= canvas.Width/2 && cy >= canvas.Height/2
	case ZoneCenter:
		return cx >= canvas.Width/4 && cx <= 3*canvas.Width/4 &&
			cy >= canvas.Height/4 && cy <= 3*canvas.Height/4
	case ZoneEdges:
		return cx < canvas.Width/4 || cx > 3*canvas.Width/4 ||
			cy < canvas.Height/4 || cy > 3*canvas.Height/4
	default:
		return false
	}
}

// balanceContribution measures how much adding the object at (x, y)
// moves the weighted center of mass toward canvas center. Positive
// values improve balance; the result is bounded to [-1, 1].
func balanceContribution(x, y float64, obj Size, canvas Canvas, existing []Layer) float64 {
	if len(existing) == 0 {
		return 0
	}

	before := centerOfMass(existing, canvas)

	placed := Layer{
		Type: LayerGraphic, X: x, Y: y,
		Width: obj.Width, Height: obj.Height,
		Opacity: 1, Scale: 1,
	}
	placed.VisualWeight = defaultVisualWeight(placed)
	after := centerOfMass(append(slices.Clone(existing), placed), canvas)

	halfDiag := math.Hypot(canvas.Width, canvas.Height) / 2
	beforeDev := math.Hypot(before.X-canvas.Width/2, before.Y-canvas.Height/2) / halfDiag
	afterDev := math.Hypot(after.X-canvas.Width/2, after.Y-canvas.Height/2) / halfDiag

	return math.Max(-1, math.Min(1, beforeDev-afterDev))
}

// rankPlacements scores every candidate and returns them best first.
// Used by tests and by the multi-object arranger's fallback path.
func rankPlacements(obj Size, canvas Canvas, existing []Layer, opts PlacementOptions) []Placement {
	margin := opts.Margin
	if margin <= 0 {
		margin = defaultMargin
	}

	candidates := generateCandidates(obj, canvas, margin, opts.Strategy)
	out := make([]Placement, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, scorePlacement(c[0], c[1], obj, canvas, existing, opts))
	}
	sort.SliceStable(out, func(i, j int) bool { return betterPlacement(out[i], out[j], opts.AvoidOverlap) })
	return out
}
