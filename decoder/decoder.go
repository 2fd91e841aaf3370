package decoder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	deflog "github.com/Javier-varez/deferred-logging"
)

// ErrRecord reports a record payload that does not match its format
// string, typically a truncated capture or a mismatched argument list.
var ErrRecord = errors.New("decoder: malformed record")

// Record is one decoded log record.
type Record struct {
	// Tick is the raw tick count stamped by the firmware.
	Tick uint64
	// Ref is the interned reference carried on the wire.
	Ref uint32
	// Level is the severity region the reference resolved into. Only
	// meaningful when Known is true.
	Level deflog.Level
	// Known reports whether Ref resolved inside a catalog region. A false
	// value usually means the region was stripped from the catalog.
	Known bool
	// Message is the fully rendered text. Empty when Known is false.
	Message string
}

// recordHeaderSize covers the tick stamp and the interned reference.
const recordHeaderSize = 8 + 4

// Decode renders one record payload (tick, reference, argument bytes)
// against catalog. A reference that resolves outside every region yields a
// Record with Known set to false rather than an error, so captures made
// with stripped catalogs still drain.
func Decode(catalog *Catalog, payload []byte) (Record, error) {
	if len(payload) < recordHeaderSize {
		return Record{}, fmt.Errorf("%w: %d byte payload", ErrRecord, len(payload))
	}
	rec := Record{
		Tick: binary.NativeEndian.Uint64(payload[:8]),
		Ref:  binary.NativeEndian.Uint32(payload[8:recordHeaderSize]),
	}
	format, level, ok := catalog.Lookup(rec.Ref)
	if !ok {
		return rec, nil
	}
	message, err := formatMessage(format, payload[recordHeaderSize:])
	if err != nil {
		return rec, err
	}
	rec.Level = level
	rec.Known = true
	rec.Message = message
	return rec, nil
}

// formatMessage walks the printf-style format, consuming argument bytes at
// the width each directive implies: %d/%u/%x take four bytes, the %ld/%lu/%lx
// variants eight, %f eight, %s scans to the NUL terminator, %% is a literal.
func formatMessage(format string, args []byte) (string, error) {
	var sb strings.Builder
	for len(format) > 0 {
		if format[0] != '%' {
			stop := strings.IndexByte(format, '%')
			if stop < 0 {
				stop = len(format)
			}
			sb.WriteString(format[:stop])
			format = format[stop:]
			continue
		}
		if len(format) < 2 {
			return "", fmt.Errorf("%w: dangling %% in format", ErrRecord)
		}
		spec := format[1]
		width := 4
		consumed := 2
		if spec == 'l' {
			if len(format) < 3 {
				return "", fmt.Errorf("%w: dangling %%l in format", ErrRecord)
			}
			spec = format[2]
			width = 8
			consumed = 3
		}
		switch spec {
		case '%':
			if consumed != 2 {
				return "", fmt.Errorf("%w: unknown format directive %%l%%", ErrRecord)
			}
			sb.WriteByte('%')
		case 's':
			end := bytes.IndexByte(args, 0)
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated string argument", ErrRecord)
			}
			sb.Write(args[:end])
			args = args[end+1:]
		case 'd':
			v, rest, err := takeUint(args, width)
			if err != nil {
				return "", err
			}
			if width == 4 {
				sb.WriteString(strconv.FormatInt(int64(int32(v)), 10))
			} else {
				sb.WriteString(strconv.FormatInt(int64(v), 10))
			}
			args = rest
		case 'u':
			v, rest, err := takeUint(args, width)
			if err != nil {
				return "", err
			}
			sb.WriteString(strconv.FormatUint(v, 10))
			args = rest
		case 'x':
			v, rest, err := takeUint(args, width)
			if err != nil {
				return "", err
			}
			sb.WriteString(strconv.FormatUint(v, 16))
			args = rest
		case 'f':
			v, rest, err := takeUint(args, 8)
			if err != nil {
				return "", err
			}
			sb.WriteString(strconv.FormatFloat(math.Float64frombits(v), 'f', 6, 64))
			args = rest
		default:
			return "", fmt.Errorf("%w: unknown format directive %%%c", ErrRecord, spec)
		}
		format = format[consumed:]
	}
	return sb.String(), nil
}

func takeUint(args []byte, width int) (uint64, []byte, error) {
	if len(args) < width {
		return 0, nil, fmt.Errorf("%w: argument truncated (%d of %d bytes)", ErrRecord, len(args), width)
	}
	if width == 4 {
		return uint64(binary.NativeEndian.Uint32(args[:4])), args[4:], nil
	}
	return binary.NativeEndian.Uint64(args[:8]), args[8:], nil
}
