// Package composition implements the composition engine: layer ownership
// and ordering, blend-mode math, smart placement search, and
// visual-balance scoring. A LayerManager owns its layers for the
// lifetime of one composition; callers work with copies and ids, never
// with aliased layer state.
package composition

import (
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"
)

// LayerType classifies a composition layer.
type LayerType string

// Layer types.
const (
	LayerBackground LayerType = "background"
	LayerOriginal   LayerType = "original"
	LayerOverlay    LayerType = "overlay"
	LayerDecoration LayerType = "decoration"
	LayerText       LayerType = "text"
	LayerGraphic    LayerType = "graphic"
	LayerEffect     LayerType = "effect"
)

// criticalImportance marks layers the balance optimizer must not move.
const criticalImportance = 0.8

// Layer is one unit of the final render.
type Layer struct {
	ID      string    `json:"id"`
	Type    LayerType `json:"type"`
	Content string    `json:"content"`

	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Rotation float64   `json:"rotation"`
	Scale    float64   `json:"scale"`
	Opacity  float64   `json:"opacity"`
	Blend    BlendMode `json:"blend"`
	Z        int       `json:"z"`

	// Importance (0-1) gates balance optimization; VisualWeight feeds
	// center-of-mass computation.
	Importance   float64 `json:"importance"`
	VisualWeight float64 `json:"visual_weight"`
}

// Critical reports whether the layer is pinned against optimization moves.
func (l Layer) Critical() bool {
	return l.Importance >= criticalImportance
}

// EffectiveBounds returns the layer's footprint with scale applied.
func (l Layer) EffectiveBounds() (x, y, w, h float64) {
	scale := l.Scale
	if scale <= 0 {
		scale = 1
	}
	return l.X, l.Y, l.Width * scale, l.Height * scale
}

// Manager owns an arena of layers plus an explicit render-order list of
// arena indices kept sorted by z-order. The invariant render order ==
// ascending z-order holds after every mutation; ties order by insertion.
type Manager struct {
	arena []Layer
	index map[string]int // id -> arena position
	order []int          // arena positions, ascending z
}

// NewManager creates an empty layer manager.
func NewManager() *Manager {
	return &Manager{index: make(map[string]int)}
}

// Add inserts a layer, assigning an id when the layer has none and
// normalizing opacity and scale. Returns the layer id.
func (m *Manager) Add(l Layer) string {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Opacity <= 0 || l.Opacity > 1 {
		l.Opacity = 1
	}
	if l.Scale <= 0 {
		l.Scale = 1
	}
	if l.VisualWeight == 0 {
		l.VisualWeight = defaultVisualWeight(l)
	}

	if pos, ok := m.index[l.ID]; ok {
		m.arena[pos] = l
		m.resort()
		return l.ID
	}

	pos := len(m.arena)
	m.arena = append(m.arena, l)
	m.index[l.ID] = pos
	m.order = append(m.order, pos)
	m.resort()
	return l.ID
}

// Get returns a copy of the layer with the given id.
func (m *Manager) Get(id string) (Layer, bool) {
	pos, ok := m.index[id]
	if !ok {
		return Layer{}, false
	}
	return m.arena[pos], true
}

// Len returns the number of layers.
func (m *Manager) Len() int {
	return len(m.order)
}

// Update replaces the stored layer with the same id.
func (m *Manager) Update(l Layer) error {
	pos, ok := m.index[l.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, l.ID)
	}
	m.arena[pos] = l
	m.resort()
	return nil
}

// Remove deletes a layer from the arena.
func (m *Manager) Remove(id string) error {
	pos, ok := m.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}

	delete(m.index, id)
	m.order = slices.DeleteFunc(m.order, func(p int) bool { return p == pos })

	// Swap-remove from the arena and patch the displaced index.
	last := len(m.arena) - 1
	if pos != last {
		m.arena[pos] = m.arena[last]
		m.index[m.arena[pos].ID] = pos
		for i, p := range m.order {
			if p == last {
				m.order[i] = pos
			}
		}
	}
	m.arena = m.arena[:last]
	return nil
}

// RenderOrder returns copies of all layers in render order (ascending z).
func (m *Manager) RenderOrder() []Layer {
	out := make([]Layer, 0, len(m.order))
	for _, pos := range m.order {
		out = append(out, m.arena[pos])
	}
	return out
}

// Merge collapses the referenced layers into a single layer covering
// their bounding-box union, inheriting the maximum importance, the
// summed visual weight, and the maximum z of the sources. The sources
// are removed; the merged layer's id is returned.
func (m *Manager) Merge(ids []string, merged LayerType) (string, error) {
	if len(ids) < 2 {
		return "", fmt.Errorf("merge requires at least 2 layers, got %d", len(ids))
	}

	layers := make([]Layer, 0, len(ids))
	for _, id := range ids {
		l, ok := m.Get(id)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrLayerNotFound, id)
		}
		layers = append(layers, l)
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	var importance, weight float64
	maxZ := math.MinInt

	for _, l := range layers {
		x, y, w, h := l.EffectiveBounds()
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x+w)
		maxY = math.Max(maxY, y+h)
		importance = math.Max(importance, l.Importance)
		weight += l.VisualWeight
		if l.Z > maxZ {
			maxZ = l.Z
		}
	}

	for _, id := range ids {
		if err := m.Remove(id); err != nil {
			return "", err
		}
	}

	return m.Add(Layer{
		Type:         merged,
		X:            minX,
		Y:            minY,
		Width:        maxX - minX,
		Height:       maxY - minY,
		Opacity:      1,
		Scale:        1,
		Z:            maxZ,
		Importance:   importance,
		VisualWeight: weight,
	}), nil
}

// Reorder assigns ascending z values following the given id sequence.
// Every id must reference an existing layer and every layer must appear
// exactly once.
func (m *Manager) Reorder(ids []string) error {
	if len(ids) != len(m.arena) {
		return fmt.Errorf("reorder lists %d layers, manager owns %d", len(ids), len(m.arena))
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := m.index[id]; !ok {
			return fmt.Errorf("%w: %s", ErrLayerNotFound, id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate layer id in reorder: %s", id)
		}
		seen[id] = true
	}

	for z, id := range ids {
		pos := m.index[id]
		m.arena[pos].Z = z
	}
	m.resort()
	return nil
}

// resort re-derives the render-order list from z values, stable across
// equal z so insertion order breaks ties.
func (m *Manager) resort() {
	slices.SortStableFunc(m.order, func(a, b int) int {
		return m.arena[a].Z - m.arena[b].Z
	})
}

// defaultVisualWeight estimates how strongly a layer type draws the eye.
func defaultVisualWeight(l Layer) float64 {
	_, _, w, h := l.EffectiveBounds()
	area := w * h
	factor := typeWeightFactor(l.Type)
	return area * l.Opacity * factor
}

func typeWeightFactor(t LayerType) float64 {
	switch t {
	case LayerText:
		return 1.2
	case LayerGraphic, LayerOriginal:
		return 1.0
	case LayerDecoration:
		return 0.8
	case LayerOverlay:
		return 0.6
	case LayerBackground:
		return 0.3
	case LayerEffect:
		return 0.2
	default:
		return 1.0
	}
}
