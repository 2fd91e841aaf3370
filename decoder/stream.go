package decoder

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/Javier-varez/deferred-logging/internal/cobs"
)

// StreamDecoder consumes a COBS-delimited byte stream, as produced by
// deflog.StreamBackend or a drained RingBackend, and yields decoded
// records one at a time.
type StreamDecoder struct {
	catalog *Catalog
	r       *bufio.Reader
	payload []byte
}

// NewStreamDecoder returns a decoder reading framed records from r.
func NewStreamDecoder(catalog *Catalog, r io.Reader) *StreamDecoder {
	return &StreamDecoder{catalog: catalog, r: bufio.NewReader(r)}
}

// Next returns the next record in the stream. It returns io.EOF once the
// stream is exhausted. A corrupt or mismatched frame returns an error
// without consuming the frames after it, so callers may keep reading.
func (d *StreamDecoder) Next() (Record, error) {
	for {
		frame, err := d.r.ReadBytes(0)
		if err != nil && (len(frame) == 0 || !errors.Is(err, io.EOF)) {
			return Record{}, err
		}
		if len(frame) == 0 || (len(frame) == 1 && frame[0] == 0) {
			if err != nil {
				return Record{}, io.EOF
			}
			// Stray delimiter between frames.
			continue
		}
		d.payload, err = cobs.Decode(d.payload[:0], frame)
		if err != nil {
			return Record{}, err
		}
		return Decode(d.catalog, d.payload)
	}
}

// DecodeStream decodes every record in data. Decoding stops at the first
// corrupt frame; records decoded before it are returned alongside the
// error.
func DecodeStream(catalog *Catalog, data []byte) ([]Record, error) {
	d := NewStreamDecoder(catalog, bytes.NewReader(data))
	var records []Record
	for {
		rec, err := d.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
