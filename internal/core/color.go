package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color style.
type Color uint8

// Palette used by the ChromoEcho renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray

	// Domain shades. Platforms may give these a background or weight as
	// well as a foreground.
	ColorCone      // tile inside a calm guard's vision cone
	ColorConeAlert // tile inside an alerted guard's vision cone
	ColorEcho      // faded echo and echo trail
)
