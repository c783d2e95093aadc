package core

import "strings"

// Color represents a foreground or background color for a screen cell.
// The platform renderer maps each value to a terminal color.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBlack
	ColorGray

	// Pastel palette used for path and board highlights.
	ColorLemon
	ColorPink
	ColorAqua
	ColorLavender
	ColorPeach
	ColorSage
)

var colorNames = map[Color]string{
	ColorDefault:  "default",
	ColorRed:      "red",
	ColorGreen:    "green",
	ColorYellow:   "yellow",
	ColorBlue:     "blue",
	ColorMagenta:  "magenta",
	ColorCyan:     "cyan",
	ColorWhite:    "white",
	ColorBlack:    "black",
	ColorGray:     "gray",
	ColorLemon:    "lemon",
	ColorPink:     "pink",
	ColorAqua:     "aqua",
	ColorLavender: "lavender",
	ColorPeach:    "peach",
	ColorSage:     "sage",
}

// String returns the color's config name.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColor converts a config name to a Color.
func ParseColor(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == name {
			return c, true
		}
	}
	return ColorDefault, false
}
