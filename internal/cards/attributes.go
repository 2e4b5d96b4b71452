// Package cards holds the locally cached card attributes (mana cost,
// type line, colors) that deck profile analysis buckets by. The engine
// never calls out to an external card database: attributes are loaded
// into the cache by the ingestion side and looked up here by exact name.
package cards

import "strings"

// Attributes are the cached attributes for one card name.
type Attributes struct {
	Name     string   `json:"name"`
	ManaCost string   `json:"mana_cost,omitempty"`
	CMC      float64  `json:"cmc"`
	TypeLine string   `json:"type_line,omitempty"`
	Colors   []string `json:"colors,omitempty"`
	Identity []string `json:"color_identity,omitempty"`
}

// Map indexes attributes by exact card name.
type Map map[string]Attributes

// TypeOrder is the display and grouping order for primary card types.
var TypeOrder = []string{"Land", "Creature", "Instant", "Sorcery", "Enchantment", "Artifact", "Planeswalker"}

// TypeOther buckets cards whose type line matches none of TypeOrder.
const TypeOther = "Other"

// Types returns every category a type line matches, in TypeOrder. A
// multi-type card ("Artifact Creature") counts toward each of its
// types. Lines matching nothing return [Other].
func Types(typeLine string) []string {
	upper := strings.ToUpper(typeLine)
	var out []string
	for _, t := range TypeOrder {
		if strings.Contains(upper, strings.ToUpper(t)) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return []string{TypeOther}
	}
	return out
}

// PrimaryType returns the first matching category of a type line, used
// when a card must land in exactly one display group.
func PrimaryType(typeLine string) string {
	return Types(typeLine)[0]
}

// TypeRank orders type names for deterministic grouped output.
func TypeRank(t string) int {
	for i, known := range TypeOrder {
		if t == known {
			return i
		}
	}
	return len(TypeOrder)
}

// Color buckets.
const (
	ColorWhite      = "W"
	ColorBlue       = "U"
	ColorBlack      = "B"
	ColorRed        = "R"
	ColorGreen      = "G"
	ColorColorless  = "C"
	ColorMulticolor = "M"
)

// ColorOrder is the WUBRG + colorless + multicolor display order.
var ColorOrder = []string{ColorWhite, ColorBlue, ColorBlack, ColorRed, ColorGreen, ColorColorless, ColorMulticolor}

// ColorRank orders color group names, with the Land group after every
// color bucket.
func ColorRank(c string) int {
	for i, known := range ColorOrder {
		if c == known {
			return i
		}
	}
	if c == "Land" {
		return len(ColorOrder)
	}
	return len(ColorOrder) + 1
}

// colorKnown reports whether a single-letter color is one of WUBRG.
func colorKnown(c string) bool {
	switch c {
	case ColorWhite, ColorBlue, ColorBlack, ColorRed, ColorGreen:
		return true
	}
	return false
}

// ColorGroup collapses a card's colors to one grouping bucket: its
// single color, C for colorless, or M for multicolor.
func (a Attributes) ColorGroup() string {
	colors := a.Colors
	if len(colors) == 0 {
		colors = a.Identity
	}
	switch {
	case len(colors) == 0:
		return ColorColorless
	case len(colors) > 1:
		return ColorMulticolor
	case colorKnown(colors[0]):
		return colors[0]
	default:
		return ColorColorless
	}
}

// ColorIdentity returns the colors used for mana-symbol counting,
// preferring color identity over printed colors.
func (a Attributes) ColorIdentity() []string {
	if len(a.Identity) > 0 {
		return a.Identity
	}
	return a.Colors
}

// IsLand reports whether the attributes describe a land card.
func (a Attributes) IsLand() bool {
	return strings.Contains(strings.ToUpper(a.TypeLine), "LAND")
}
