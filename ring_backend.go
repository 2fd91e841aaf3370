package deflog

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/Javier-varez/deferred-logging/internal/cobs"
)

// RingStats captures occupancy and loss counters for a RingBackend.
type RingStats struct {
	Records int
	Bytes   int
	Evicted uint64
	Dropped uint64
}

// RingBackend keeps the newest records in a fixed-capacity in-memory ring,
// the software analog of a flash log ring. Each record is stored with a
// 16-bit length prefix; when a new record does not fit, the oldest records
// are evicted to admit it. Records larger than the ring (or 64 KiB) are
// counted dropped and never partially stored.
//
// Like StreamBackend, the lock spans StartMessage through FinishMessage so
// the ring can be shared between loggers.
type RingBackend struct {
	mu      sync.Mutex
	buf     []byte
	head    int
	size    int
	records int
	staging []byte
	evicted uint64
	dropped uint64
}

const ringHeaderSize = 2

// NewRingBackend returns a ring holding up to capacity bytes of
// length-prefixed records.
func NewRingBackend(capacity int) *RingBackend {
	if capacity < ringHeaderSize+1 {
		capacity = ringHeaderSize + 1
	}
	return &RingBackend{buf: make([]byte, capacity)}
}

// StartMessage implements Backend. The lock acquired here is released by
// FinishMessage.
func (b *RingBackend) StartMessage(tick uint64) {
	b.mu.Lock()
	b.staging = binary.NativeEndian.AppendUint64(b.staging[:0], tick)
}

// AppendData implements Backend.
func (b *RingBackend) AppendData(p []byte) {
	b.staging = append(b.staging, p...)
}

// AppendString implements Backend, storing the bytes plus a NUL.
func (b *RingBackend) AppendString(s string) {
	b.staging = append(b.staging, s...)
	b.staging = append(b.staging, 0)
}

// FinishMessage implements Backend: the staged record is committed,
// evicting the oldest records when the ring is full.
func (b *RingBackend) FinishMessage() {
	defer b.mu.Unlock()
	need := ringHeaderSize + len(b.staging)
	if need > len(b.buf) || len(b.staging) > 0xffff {
		b.dropped++
		return
	}
	for b.size+need > len(b.buf) {
		b.evictOldest()
	}
	var hdr [ringHeaderSize]byte
	binary.NativeEndian.PutUint16(hdr[:], uint16(len(b.staging)))
	b.write(hdr[:])
	b.write(b.staging)
	b.records++
}

func (b *RingBackend) evictOldest() {
	var hdr [ringHeaderSize]byte
	hdr[0] = b.buf[b.head]
	hdr[1] = b.buf[(b.head+1)%len(b.buf)]
	n := ringHeaderSize + int(binary.NativeEndian.Uint16(hdr[:]))
	b.head = (b.head + n) % len(b.buf)
	b.size -= n
	b.records--
	b.evicted++
}

func (b *RingBackend) write(p []byte) {
	at := (b.head + b.size) % len(b.buf)
	n := copy(b.buf[at:], p)
	copy(b.buf, p[n:])
	b.size += len(p)
}

func (b *RingBackend) readAt(off, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = b.buf[(b.head+off+i)%len(b.buf)]
	}
	return out
}

// Snapshot copies every buffered record payload, oldest first, without
// consuming the ring.
func (b *RingBackend) Snapshot() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([][]byte, 0, b.records)
	off := 0
	for off < b.size {
		hdr := b.readAt(off, ringHeaderSize)
		n := int(binary.NativeEndian.Uint16(hdr))
		out = append(out, b.readAt(off+ringHeaderSize, n))
		off += ringHeaderSize + n
	}
	return out
}

// WriteTo drains the ring to w as COBS-framed records, the same framing
// StreamBackend produces, so a drained ring feeds straight into the
// decoder. It implements io.WriterTo.
func (b *RingBackend) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var total int64
	var frame []byte
	for b.size > 0 {
		hdr := b.readAt(0, ringHeaderSize)
		n := int(binary.NativeEndian.Uint16(hdr))
		frame = cobs.Encode(frame[:0], b.readAt(ringHeaderSize, n))
		written, err := w.Write(frame)
		total += int64(written)
		if err != nil {
			return total, err
		}
		b.head = (b.head + ringHeaderSize + n) % len(b.buf)
		b.size -= ringHeaderSize + n
		b.records--
	}
	return total, nil
}

// Stats returns current occupancy and cumulative loss counters.
func (b *RingBackend) Stats() RingStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return RingStats{
		Records: b.records,
		Bytes:   b.size,
		Evicted: b.evicted,
		Dropped: b.dropped,
	}
}
