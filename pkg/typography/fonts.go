// Package typography implements the typography engine: font pairing,
// modular type scales, line-height and letter-spacing heuristics, and
// readability scoring. All operations are pure; out-of-range inputs are
// clamped rather than rejected.
package typography

// Category classifies a typeface's construction.
type Category string

// Font categories.
const (
	CategorySerif     Category = "serif"
	CategorySans      Category = "sans-serif"
	CategoryDisplay   Category = "display"
	CategoryMonospace Category = "monospace"
	CategoryScript    Category = "script"
)

// Personality describes the impression a typeface conveys.
type Personality string

// Font personalities.
const (
	PersonalityModern    Personality = "modern"
	PersonalityClassic   Personality = "classic"
	PersonalityPlayful   Personality = "playful"
	PersonalityElegant   Personality = "elegant"
	PersonalityTechnical Personality = "technical"
	PersonalityFriendly  Personality = "friendly"
)

// Font describes a typeface known to the pairing engine.
// Readability is a 0-100 judgment of body-text legibility.
type Font struct {
	Name        string      `json:"name"`
	Category    Category    `json:"category"`
	Personality Personality `json:"personality"`
	Readability int         `json:"readability"`
}

// catalog holds the fonts the pairing engine can recommend. Web-safe and
// commonly hosted families only.
var catalog = []Font{
	{Name: "Georgia", Category: CategorySerif, Personality: PersonalityClassic, Readability: 88},
	{Name: "Merriweather", Category: CategorySerif, Personality: PersonalityClassic, Readability: 90},
	{Name: "Playfair Display", Category: CategorySerif, Personality: PersonalityElegant, Readability: 72},
	{Name: "Lora", Category: CategorySerif, Personality: PersonalityElegant, Readability: 85},
	{Name: "PT Serif", Category: CategorySerif, Personality: PersonalityClassic, Readability: 86},
	{Name: "Arial", Category: CategorySans, Personality: PersonalityModern, Readability: 90},
	{Name: "Helvetica", Category: CategorySans, Personality: PersonalityModern, Readability: 92},
	{Name: "Roboto", Category: CategorySans, Personality: PersonalityModern, Readability: 93},
	{Name: "Open Sans", Category: CategorySans, Personality: PersonalityFriendly, Readability: 94},
	{Name: "Lato", Category: CategorySans, Personality: PersonalityFriendly, Readability: 92},
	{Name: "Montserrat", Category: CategorySans, Personality: PersonalityModern, Readability: 85},
	{Name: "Nunito", Category: CategorySans, Personality: PersonalityPlayful, Readability: 89},
	{Name: "Source Sans Pro", Category: CategorySans, Personality: PersonalityTechnical, Readability: 91},
	{Name: "Poppins", Category: CategorySans, Personality: PersonalityPlayful, Readability: 84},
	{Name: "Oswald", Category: CategoryDisplay, Personality: PersonalityModern, Readability: 70},
	{Name: "Bebas Neue", Category: CategoryDisplay, Personality: PersonalityModern, Readability: 60},
	{Name: "Lobster", Category: CategoryDisplay, Personality: PersonalityPlayful, Readability: 50},
	{Name: "Pacifico", Category: CategoryScript, Personality: PersonalityPlayful, Readability: 45},
	{Name: "Dancing Script", Category: CategoryScript, Personality: PersonalityElegant, Readability: 48},
	{Name: "Courier New", Category: CategoryMonospace, Personality: PersonalityTechnical, Readability: 75},
	{Name: "JetBrains Mono", Category: CategoryMonospace, Personality: PersonalityTechnical, Readability: 80},
}

// Fonts returns a copy of the font catalog.
func Fonts() []Font {
	out := make([]Font, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a catalog font by name. Unknown names return a generic
// sans-serif with average readability so pairing still works on fonts
// the catalog has never seen.
func Lookup(name string) Font {
	for _, f := range catalog {
		if f.Name == name {
			return f
		}
	}
	return Font{Name: name, Category: CategorySans, Personality: PersonalityModern, Readability: 75}
}
