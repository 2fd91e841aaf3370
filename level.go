package deflog

import (
	"os"
	"strings"
)

// Level classifies log severity. Levels are totally ordered: a logger emits
// a record when the call's level is at or above the logger's threshold.
type Level int8

const (
	// DebugLevel is the lowest, most permissive severity.
	DebugLevel Level = iota
	// InfoLevel marks routine operational messages.
	InfoLevel
	// WarningLevel marks recoverable anomalies.
	WarningLevel
	// ErrorLevel marks failures.
	ErrorLevel
	// OffLevel is a threshold sentinel that disables all output. It is not
	// a valid call-site level and no record ever carries it.
	OffLevel
)

// numLevels counts the active severities (OffLevel excluded).
const numLevels = 4

// ParseLevel converts a textual level into a Level value. It accepts
// "debug", "info", "warn", "warning", "error", and "off" (also "disabled"
// or "none"), case insensitive.
func ParseLevel(value string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return DebugLevel, true
	case "info":
		return InfoLevel, true
	case "warn", "warning":
		return WarningLevel, true
	case "error":
		return ErrorLevel, true
	case "off", "disabled", "disable", "none":
		return OffLevel, true
	default:
		return DebugLevel, false
	}
}

// LevelString returns the canonical string representation of a Level.
func LevelString(level Level) string {
	switch level {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarningLevel:
		return "warning"
	case ErrorLevel:
		return "error"
	case OffLevel:
		return "off"
	default:
		return "debug"
	}
}

// String implements fmt.Stringer.
func (l Level) String() string { return LevelString(l) }

// LevelFromEnv looks up key in the environment and parses it into a Level.
func LevelFromEnv(key string) (Level, bool) {
	if key == "" {
		return DebugLevel, false
	}
	value, ok := os.LookupEnv(key)
	if !ok {
		return DebugLevel, false
	}
	return ParseLevel(value)
}
