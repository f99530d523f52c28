// Package console is the terminal presentation layer for duels: it renders
// battle state and turns typed commands into engine calls.
package console

import "fmt"

// ANSI escape code constants for terminal styling.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
)

// Palette applies ANSI styling when enabled and passes text through otherwise.
type Palette struct {
	enabled bool
}

// NewPalette returns a Palette that styles text only when enabled is true.
func NewPalette(enabled bool) Palette {
	return Palette{enabled: enabled}
}

// Colorize wraps text with the given ANSI color code and a reset suffix.
//
// Precondition: color must be a valid ANSI escape sequence.
// Postcondition: Returns text unchanged when the palette is disabled.
func (p Palette) Colorize(color, text string) string {
	if !p.enabled {
		return text
	}
	return color + text + Reset
}

// Colorf wraps a formatted string with the given ANSI color code.
//
// Precondition: color must be a valid ANSI escape sequence.
// Postcondition: Returns the formatted text, styled only when the palette is enabled.
func (p Palette) Colorf(color, format string, args ...interface{}) string {
	return p.Colorize(color, fmt.Sprintf(format, args...))
}
