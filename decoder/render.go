package decoder

import (
	"fmt"

	deflog "github.com/Javier-varez/deferred-logging"
	"github.com/Javier-varez/deferred-logging/ansi"
)

func levelName(rec Record) string {
	if !rec.Known {
		return "Unknown"
	}
	switch rec.Level {
	case deflog.DebugLevel:
		return "Debug"
	case deflog.InfoLevel:
		return "Info"
	case deflog.WarningLevel:
		return "Warning"
	case deflog.ErrorLevel:
		return "Error"
	default:
		return "Unknown"
	}
}

func levelColor(rec Record, palette ansi.Palette) string {
	if !rec.Known {
		return palette.Unknown
	}
	switch rec.Level {
	case deflog.DebugLevel:
		return palette.Debug
	case deflog.InfoLevel:
		return palette.Info
	case deflog.WarningLevel:
		return palette.Warning
	case deflog.ErrorLevel:
		return palette.Error
	default:
		return palette.Unknown
	}
}

// Render formats rec the way the host tool prints it: the raw tick count,
// the severity region name, then the message. Unresolved references render
// their raw value so stripped-catalog captures stay inspectable.
func Render(rec Record, color bool) string {
	message := rec.Message
	if !rec.Known {
		message = fmt.Sprintf("ref 0x%08x", rec.Ref)
	}
	if !color {
		return fmt.Sprintf("[%10d] %s: %s", rec.Tick, levelName(rec), message)
	}
	palette := ansi.Current()
	return fmt.Sprintf("%s[%10d]%s %s%s%s: %s",
		palette.Timestamp, rec.Tick, ansi.Reset,
		levelColor(rec, palette), levelName(rec), ansi.Reset,
		message)
}
