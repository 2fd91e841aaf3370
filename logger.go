package deflog

import "encoding/binary"

// Options controls logger construction.
type Options struct {
	// MinLevel sets the initial threshold. Defaults to DebugLevel, the most
	// permissive setting.
	MinLevel Level

	// Ticks overrides the timestamp source. When nil, the logger counts
	// coarse milliseconds starting at construction.
	Ticks TickSource
}

// Logger is the encoding engine: it filters on severity, stamps one tick
// per record, and walks the argument list into backend appends. It holds
// no buffering of its own; framing and transport live in the Backend.
//
// A Logger is not safe for concurrent use by itself. Give each goroutine
// its own Logger and share the Backend; the shipped shared backends hold a
// record-scoped lock.
type Logger struct {
	backend Backend
	ticks   TickSource
	level   Level
	scratch [8]byte
}

// New returns a logger emitting to backend with default options.
func New(backend Backend) *Logger {
	return NewWithOptions(backend, Options{})
}

// NewWithOptions returns a logger emitting to backend with explicit
// settings. A nil backend yields a logger that drops everything.
func NewWithOptions(backend Backend, opts Options) *Logger {
	ticks := opts.Ticks
	if ticks == nil {
		ticks = newCoarseTicks()
	}
	return &Logger{
		backend: backend,
		ticks:   ticks,
		level:   opts.MinLevel,
	}
}

// Nop returns a logger that silently drops every record.
func Nop() *Logger {
	return &Logger{level: OffLevel}
}

// SetLevel mutates the threshold. It affects calls made after it returns
// and is not required to be safe against a concurrent in-flight Log.
func (l *Logger) SetLevel(level Level) { l.level = level }

// Level reports the current threshold.
func (l *Logger) Level() Level { return l.level }

// SetLevelFromEnv sets the threshold from the value of key in the
// environment. Recognised values are the same as ParseLevel. Missing or
// invalid values leave the logger unchanged and report false.
func (l *Logger) SetLevelFromEnv(key string) bool {
	level, ok := LevelFromEnv(key)
	if !ok {
		return false
	}
	l.level = level
	return true
}

// Log emits one record at level: tick stamp, the interned format
// reference, then every argument in call-site order. A call below the
// threshold (or at OffLevel) is a no-op with no side effects; an accepted
// call always runs to completion before Log returns.
func (l *Logger) Log(level Level, format InternedString, args ...any) {
	if l == nil || l.backend == nil {
		return
	}
	if level >= OffLevel || level < l.level {
		return
	}
	l.backend.StartMessage(l.ticks.Ticks())
	binary.NativeEndian.PutUint32(l.scratch[:4], format.ref)
	l.backend.AppendData(l.scratch[:4])
	for _, arg := range args {
		l.appendArg(arg)
	}
	l.backend.FinishMessage()
}

// Debug logs format at DebugLevel.
func (l *Logger) Debug(format InternedString, args ...any) {
	l.Log(DebugLevel, format, args...)
}

// Info logs format at InfoLevel.
func (l *Logger) Info(format InternedString, args ...any) {
	l.Log(InfoLevel, format, args...)
}

// Warning logs format at WarningLevel.
func (l *Logger) Warning(format InternedString, args ...any) {
	l.Log(WarningLevel, format, args...)
}

// Error logs format at ErrorLevel.
func (l *Logger) Error(format InternedString, args ...any) {
	l.Log(ErrorLevel, format, args...)
}
