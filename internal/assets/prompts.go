package assets

import (
	"fmt"
	"strings"

	"github.com/burnishapp/burnish/internal/pipeline"
)

const generateInstructions = `You are a production graphic designer creating supporting artwork for a document enhancement.

Generated artwork must:
- Contain no text, letters, numbers, or watermarks of any kind
- Stay subtle enough that document text placed over it remains readable
- Use only the palette colors named in the request
- Fill the full canvas edge to edge with no borders or frames`

// styleGuidance maps the closed set of enhancement styles to concrete
// art direction. Unknown styles fall back to modern.
var styleGuidance = map[string]string{
	"modern":    "Clean geometric shapes, generous negative space, flat color fields.",
	"classic":   "Restrained ornamental flourishes, symmetrical structure, muted tones.",
	"playful":   "Rounded organic shapes, energetic diagonal movement, bright accents.",
	"elegant":   "Thin line work, soft gradients, airy composition with a light touch.",
	"technical": "Precise grid-aligned linework, blueprint-like structure, cool palette.",
}

// buildPrompt assembles the image-generation prompt for one asset
// requirement, folding in the plan's palette so generated artwork
// matches the rest of the enhancement.
func buildPrompt(req pipeline.AssetRequirement, colors pipeline.ColorSpec) string {
	guidance, ok := styleGuidance[req.Style]
	if !ok {
		guidance = styleGuidance["modern"]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", req.Prompt)
	fmt.Fprintf(&b, "Art direction: %s\n", guidance)
	if len(colors.Palette) > 0 {
		fmt.Fprintf(&b, "Palette: %s\n", strings.Join(colors.Palette, ", "))
	}
	fmt.Fprintf(&b, "Canvas: %d by %d pixels.", req.Width, req.Height)

	return b.String()
}
