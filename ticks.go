package deflog

import "time"

// TickSource supplies the monotonic tick value stamped on each record.
// Ticks is read synchronously exactly once per accepted record, at the
// moment the record starts; it must not block.
type TickSource interface {
	Ticks() uint64
}

// TickSourceFunc adapts a plain function into a TickSource.
type TickSourceFunc func() uint64

// Ticks implements TickSource.
func (f TickSourceFunc) Ticks() uint64 { return f() }

// coarseTicks counts milliseconds since construction, the software analog
// of a SysTick-style coarse counter. time.Since rides Go's monotonic clock
// so the count never goes backwards.
type coarseTicks struct {
	start time.Time
}

func newCoarseTicks() coarseTicks { return coarseTicks{start: time.Now()} }

func (c coarseTicks) Ticks() uint64 {
	return uint64(time.Since(c.start) / time.Millisecond)
}
