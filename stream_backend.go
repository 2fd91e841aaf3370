package deflog

import (
	"encoding/binary"
	"io"
	"sync"
	"sync/atomic"

	"github.com/Javier-varez/deferred-logging/internal/cobs"
)

// RecordDrop describes one record a StreamBackend failed to deliver.
type RecordDrop struct {
	Err     error
	Written int
	Framed  int
}

// StreamStats captures cumulative delivery counters for a StreamBackend.
type StreamStats struct {
	Records uint64
	Dropped uint64
}

// StreamBackend frames each record as a COBS-encoded chunk terminated by a
// 0x00 delimiter and writes it to an io.Writer, the software analog of a
// UART or RTT up-channel. The record payload is the tick count, the
// interned reference, then the argument bytes, all native byte order;
// strings are NUL-terminated.
//
// The backend holds its lock from StartMessage through FinishMessage, so
// several loggers may share one StreamBackend without interleaving
// records. Write failures never surface to the logging call site; the
// record is counted dropped and the optional drop hook runs instead.
type StreamBackend struct {
	mu      sync.Mutex
	dst     io.Writer
	buf     []byte
	frame   []byte
	onDrop  func(RecordDrop)
	records atomic.Uint64
	dropped atomic.Uint64
}

// NewStreamBackend returns a stream backend writing framed records to dst.
func NewStreamBackend(dst io.Writer) *StreamBackend {
	return NewObservedStreamBackend(dst, nil)
}

// NewObservedStreamBackend returns a stream backend that invokes onDrop
// for every record the destination failed to accept.
func NewObservedStreamBackend(dst io.Writer, onDrop func(RecordDrop)) *StreamBackend {
	if dst == nil {
		dst = io.Discard
	}
	return &StreamBackend{dst: dst, onDrop: onDrop}
}

// StartMessage implements Backend. The lock acquired here is released by
// FinishMessage.
func (b *StreamBackend) StartMessage(tick uint64) {
	b.mu.Lock()
	b.buf = binary.NativeEndian.AppendUint64(b.buf[:0], tick)
}

// AppendData implements Backend.
func (b *StreamBackend) AppendData(p []byte) {
	b.buf = append(b.buf, p...)
}

// AppendString implements Backend. Strings travel as their bytes plus a
// terminating NUL, which is what the offline decoder scans for.
func (b *StreamBackend) AppendString(s string) {
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
}

// FinishMessage implements Backend: the staged record is framed and
// written as one chunk.
func (b *StreamBackend) FinishMessage() {
	b.frame = cobs.Encode(b.frame[:0], b.buf)
	n, err := b.dst.Write(b.frame)
	if err == nil && n != len(b.frame) {
		err = io.ErrShortWrite
	}
	if err != nil {
		b.dropped.Add(1)
		if b.onDrop != nil {
			b.onDrop(RecordDrop{Err: err, Written: n, Framed: len(b.frame)})
		}
	} else {
		b.records.Add(1)
	}
	b.mu.Unlock()
}

// Stats returns cumulative delivery counters.
func (b *StreamBackend) Stats() StreamStats {
	return StreamStats{
		Records: b.records.Load(),
		Dropped: b.dropped.Load(),
	}
}
