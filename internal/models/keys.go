// internal/models/keys.go
package models

// FlagKey is the symbolic icon key stored on a team row. Unknown keys render
// as the fallback glyph rather than failing the page.
type FlagKey string

const (
	FlagBolt     FlagKey = "bolt"
	FlagTriangle FlagKey = "triangle"
	FlagAlt      FlagKey = "alt"
	FlagFire     FlagKey = "fire"
	FlagUnknown  FlagKey = "unknown"
)

var flagGlyphs = map[FlagKey]string{
	FlagBolt:     "&#9889;",
	FlagTriangle: "&#9650;",
	FlagAlt:      "&#127760;",
	FlagFire:     "&#128293;",
	FlagUnknown:  "&#128100;",
}

// Glyph returns the HTML entity for the flag, falling back to the generic
// member glyph for keys the mapping does not know.
func (f FlagKey) Glyph() string {
	if glyph, ok := flagGlyphs[f]; ok {
		return glyph
	}
	return flagGlyphs[FlagUnknown]
}

// ColorKey is the symbolic color key stored on a team row.
type ColorKey string

const (
	ColorBlue   ColorKey = "blue"
	ColorOrange ColorKey = "orange"
	ColorSilver ColorKey = "silver"
	ColorGreen  ColorKey = "green"
)

const defaultTeamColor = "inherit"

var colorCSS = map[ColorKey]string{
	ColorBlue:   "LightSkyBlue",
	ColorOrange: "Coral",
	ColorSilver: "Silver",
	ColorGreen:  "MediumSeaGreen",
}

// CSS returns the CSS color value for the key, or "inherit" for keys the
// mapping does not know.
func (c ColorKey) CSS() string {
	if css, ok := colorCSS[c]; ok {
		return css
	}
	return defaultTeamColor
}
