package pipeline

import "github.com/google/uuid"

// GeneratedAsset is one produced asset with its storage reference.
type GeneratedAsset struct {
	ID        uuid.UUID         `json:"id"`
	Kind      AssetKind         `json:"kind"`
	URL       string            `json:"url"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	SizeBytes int64             `json:"size_bytes"`
	Model     string            `json:"model,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Assets is the asset-generation stage's output, immutable once
// returned.
type Assets struct {
	Backgrounds []GeneratedAsset `json:"backgrounds"`
	Decorations []GeneratedAsset `json:"decorations"`
	Graphics    []GeneratedAsset `json:"graphics"`
}

// Count returns the total number of generated assets.
func (a *Assets) Count() int {
	return len(a.Backgrounds) + len(a.Decorations) + len(a.Graphics)
}

// All returns every asset across categories.
func (a *Assets) All() []GeneratedAsset {
	out := make([]GeneratedAsset, 0, a.Count())
	out = append(out, a.Backgrounds...)
	out = append(out, a.Decorations...)
	out = append(out, a.Graphics...)
	return out
}
