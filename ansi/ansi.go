// Package ansi provides the ANSI escape sequences the host-side decoder
// uses to color rendered log lines by severity. The exported variables can
// be swapped via SetPalette; firmware-side encoding never touches this
// package.
package ansi

import "sync"

// Reset clears all terminal styling; the remaining constants expose the
// color sequences the default palette builds on.
const (
	Reset        = "\x1b[0m"
	Bold         = "\x1b[1m"
	Faint        = "\x1b[90m"
	Red          = "\x1b[31m"
	Green        = "\x1b[32m"
	Yellow       = "\x1b[33m"
	Cyan         = "\x1b[36m"
	BrightRed    = "\x1b[1;31m"
	BrightGreen  = "\x1b[1;32m"
	BrightYellow = "\x1b[1;33m"
)

// Semantic aliases for how the decoder colors its output: one sequence per
// severity region, one for references that resolve into no region, and one
// for the tick column.
var (
	Debug     = Green
	Info      = BrightGreen
	Warning   = BrightYellow
	Error     = BrightRed
	Unknown   = Red
	Timestamp = Faint
)

var paletteMu sync.RWMutex

// Palette is the input type to SetPalette; empty fields keep their current
// value.
type Palette struct {
	Debug     string
	Info      string
	Warning   string
	Error     string
	Unknown   string
	Timestamp string
}

// PaletteDefault restores the package defaults.
var PaletteDefault = Palette{
	Debug:     Green,
	Info:      BrightGreen,
	Warning:   BrightYellow,
	Error:     BrightRed,
	Unknown:   Red,
	Timestamp: Faint,
}

// SetPalette replaces the package-level color variables.
func SetPalette(palette Palette) {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	Debug = or(palette.Debug, Debug)
	Info = or(palette.Info, Info)
	Warning = or(palette.Warning, Warning)
	Error = or(palette.Error, Error)
	Unknown = or(palette.Unknown, Unknown)
	Timestamp = or(palette.Timestamp, Timestamp)
}

// Current returns a snapshot of the active palette.
func Current() Palette {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return Palette{
		Debug:     Debug,
		Info:      Info,
		Warning:   Warning,
		Error:     Error,
		Unknown:   Unknown,
		Timestamp: Timestamp,
	}
}

func or(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
