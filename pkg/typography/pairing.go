package typography

import (
	"fmt"
	"sort"
)

// PairingStrategy selects how candidate fonts are scored against the primary.
type PairingStrategy string

// Pairing strategies.
const (
	// StrategyContrast rewards category and personality mismatches for
	// deliberate visual tension.
	StrategyContrast PairingStrategy = "contrast"
	// StrategyHarmony rewards matching category and personality.
	StrategyHarmony PairingStrategy = "harmony"
	// StrategySafe rewards raw readability regardless of character.
	StrategySafe PairingStrategy = "safe"
)

// Purpose describes what the font pair will be used for.
type Purpose string

// Pairing purposes.
const (
	// PurposeHeadingBody pairs a heading font with a body font.
	PurposeHeadingBody Purpose = "heading-body"
	// PurposeUI pairs fonts for interface chrome.
	PurposeUI Purpose = "ui"
	// PurposeDisplay pairs a display face with a supporting font.
	PurposeDisplay Purpose = "display"
)

// PairingOptions controls SuggestPairings.
type PairingOptions struct {
	Strategy PairingStrategy
	Purpose  Purpose
	// Limit caps the number of returned candidates. Zero means 5.
	Limit int
}

// Pairing is a scored candidate secondary font with a human-readable
// explanation of why it was ranked where it was.
type Pairing struct {
	Font      Font   `json:"font"`
	Score     int    `json:"score"`
	Rationale string `json:"rationale"`
}

const defaultPairingLimit = 5

// SuggestPairings scores every catalog font (except the primary itself)
// against the primary using the requested strategy, applies purpose
// bonuses, and returns the candidates ranked best first.
func SuggestPairings(primary string, opts PairingOptions) []Pairing {
	p := Lookup(primary)

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultPairingLimit
	}

	var results []Pairing
	for _, candidate := range catalog {
		if candidate.Name == p.Name {
			continue
		}

		score, rationale := scorePair(p, candidate, opts.Strategy)
		bonus, why := purposeBonus(p, candidate, opts.Purpose)
		score += bonus
		if why != "" {
			rationale += "; " + why
		}

		results = append(results, Pairing{
			Font:      candidate,
			Score:     clampScore(score),
			Rationale: rationale,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func scorePair(primary, candidate Font, strategy PairingStrategy) (int, string) {
	switch strategy {
	case StrategyHarmony:
		score := 50
		parts := fmt.Sprintf("harmony pairing with %s", primary.Name)
		if candidate.Category == primary.Category {
			score += 20
			parts += ", matching category"
		}
		if candidate.Personality == primary.Personality {
			score += 20
			parts += ", matching personality"
		}
		score += candidate.Readability / 10
		return score, parts

	case StrategySafe:
		return 40 + candidate.Readability/2,
			fmt.Sprintf("safe pairing with %s, readability %d", primary.Name, candidate.Readability)

	default: // contrast
		score := 50
		parts := fmt.Sprintf("contrast pairing with %s", primary.Name)
		if candidate.Category != primary.Category {
			score += 25
			parts += fmt.Sprintf(", %s against %s", candidate.Category, primary.Category)
		}
		if candidate.Personality != primary.Personality {
			score += 15
			parts += ", differing personality"
		}
		score += candidate.Readability / 10
		return score, parts
	}
}

func purposeBonus(primary, candidate Font, purpose Purpose) (int, string) {
	switch purpose {
	case PurposeHeadingBody:
		// Serif/sans mixing reads as intentional hierarchy.
		serifSansMix := (primary.Category == CategorySerif && candidate.Category == CategorySans) ||
			(primary.Category == CategorySans && candidate.Category == CategorySerif)
		if serifSansMix {
			return 15, "serif/sans-serif mix suits heading-body hierarchy"
		}
	case PurposeUI:
		if primary.Category == CategorySans && candidate.Category == CategorySans &&
			candidate.Readability >= 85 {
			return 15, "highly readable sans-serif pair suits UI text"
		}
	case PurposeDisplay:
		if candidate.Category != CategoryDisplay && candidate.Readability >= 80 {
			return 10, "readable supporting font balances the display face"
		}
	}
	return 0, ""
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
