package deflog

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
)

// appendArg serializes one argument. Exactly two policies exist: strings
// take the backend's AppendString path, everything else is copied raw in
// native byte order at the width of its static type. No tags, no length
// prefixes, no coercion; the decoder recovers widths from the format
// string. int, uint, and uintptr always encode as 8 bytes so the wire
// width does not depend on the platform.
func (l *Logger) appendArg(arg any) {
	switch v := arg.(type) {
	case string:
		l.backend.AppendString(v)
	case bool:
		l.scratch[0] = 0
		if v {
			l.scratch[0] = 1
		}
		l.backend.AppendData(l.scratch[:1])
	case int8:
		l.scratch[0] = byte(v)
		l.backend.AppendData(l.scratch[:1])
	case uint8:
		l.scratch[0] = v
		l.backend.AppendData(l.scratch[:1])
	case int16:
		binary.NativeEndian.PutUint16(l.scratch[:2], uint16(v))
		l.backend.AppendData(l.scratch[:2])
	case uint16:
		binary.NativeEndian.PutUint16(l.scratch[:2], v)
		l.backend.AppendData(l.scratch[:2])
	case int32:
		binary.NativeEndian.PutUint32(l.scratch[:4], uint32(v))
		l.backend.AppendData(l.scratch[:4])
	case uint32:
		binary.NativeEndian.PutUint32(l.scratch[:4], v)
		l.backend.AppendData(l.scratch[:4])
	case int64:
		binary.NativeEndian.PutUint64(l.scratch[:8], uint64(v))
		l.backend.AppendData(l.scratch[:8])
	case uint64:
		binary.NativeEndian.PutUint64(l.scratch[:8], v)
		l.backend.AppendData(l.scratch[:8])
	case int:
		binary.NativeEndian.PutUint64(l.scratch[:8], uint64(v))
		l.backend.AppendData(l.scratch[:8])
	case uint:
		binary.NativeEndian.PutUint64(l.scratch[:8], uint64(v))
		l.backend.AppendData(l.scratch[:8])
	case uintptr:
		binary.NativeEndian.PutUint64(l.scratch[:8], uint64(v))
		l.backend.AppendData(l.scratch[:8])
	case float32:
		binary.NativeEndian.PutUint32(l.scratch[:4], math.Float32bits(v))
		l.backend.AppendData(l.scratch[:4])
	case float64:
		binary.NativeEndian.PutUint64(l.scratch[:8], math.Float64bits(v))
		l.backend.AppendData(l.scratch[:8])
	case InternedString:
		binary.NativeEndian.PutUint32(l.scratch[:4], v.ref)
		l.backend.AppendData(l.scratch[:4])
	case []byte:
		l.backend.AppendData(v)
	default:
		l.appendReflected(arg)
	}
}

// appendReflected handles named types whose underlying kind is a supported
// scalar, e.g. a `type Errno uint16` enum. Anything without a fixed-width
// representation panics: there is no runtime error channel to degrade
// into, and a silent skip would desynchronize the decoder.
func (l *Logger) appendReflected(arg any) {
	rv := reflect.ValueOf(arg)
	switch rv.Kind() {
	case reflect.Bool:
		l.scratch[0] = 0
		if rv.Bool() {
			l.scratch[0] = 1
		}
		l.backend.AppendData(l.scratch[:1])
	case reflect.Int8:
		l.scratch[0] = byte(rv.Int())
		l.backend.AppendData(l.scratch[:1])
	case reflect.Uint8:
		l.scratch[0] = byte(rv.Uint())
		l.backend.AppendData(l.scratch[:1])
	case reflect.Int16:
		binary.NativeEndian.PutUint16(l.scratch[:2], uint16(rv.Int()))
		l.backend.AppendData(l.scratch[:2])
	case reflect.Uint16:
		binary.NativeEndian.PutUint16(l.scratch[:2], uint16(rv.Uint()))
		l.backend.AppendData(l.scratch[:2])
	case reflect.Int32:
		binary.NativeEndian.PutUint32(l.scratch[:4], uint32(rv.Int()))
		l.backend.AppendData(l.scratch[:4])
	case reflect.Uint32:
		binary.NativeEndian.PutUint32(l.scratch[:4], uint32(rv.Uint()))
		l.backend.AppendData(l.scratch[:4])
	case reflect.Int, reflect.Int64:
		binary.NativeEndian.PutUint64(l.scratch[:8], uint64(rv.Int()))
		l.backend.AppendData(l.scratch[:8])
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		binary.NativeEndian.PutUint64(l.scratch[:8], rv.Uint())
		l.backend.AppendData(l.scratch[:8])
	case reflect.Float32:
		binary.NativeEndian.PutUint32(l.scratch[:4], math.Float32bits(float32(rv.Float())))
		l.backend.AppendData(l.scratch[:4])
	case reflect.Float64:
		binary.NativeEndian.PutUint64(l.scratch[:8], math.Float64bits(rv.Float()))
		l.backend.AppendData(l.scratch[:8])
	case reflect.String:
		l.backend.AppendString(rv.String())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			l.backend.AppendData(rv.Bytes())
			return
		}
		panic(fmt.Sprintf("deflog: unsupported argument type %T", arg))
	default:
		panic(fmt.Sprintf("deflog: unsupported argument type %T", arg))
	}
}
