package deflog_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	deflog "github.com/Javier-varez/deferred-logging"
)

var fmtEncode = deflog.InternDebug("encode fixture %d")

// lastArgBytes logs value as the only argument and returns the bytes the
// backend received for it.
func lastArgBytes(t *testing.T, value any) []byte {
	t.Helper()
	rec := &deflog.Recorder{}
	deflog.New(rec).Debug(fmtEncode, value)
	if len(rec.Calls) != 4 {
		t.Fatalf("expected start/ref/arg/finish, got %d calls", len(rec.Calls))
	}
	call := rec.Calls[2]
	if call.Op != deflog.OpAppendData {
		t.Fatalf("argument took the string path: op %v", call.Op)
	}
	return call.Data
}

func TestFixedWidthScalarEncoding(t *testing.T) {
	ne := binary.NativeEndian
	cases := []struct {
		name  string
		value any
		want  []byte
	}{
		{"bool_true", true, []byte{1}},
		{"bool_false", false, []byte{0}},
		{"int8", int8(-5), []byte{0xfb}},
		{"uint8", uint8(0xa7), []byte{0xa7}},
		{"int16", int16(-2), ne.AppendUint16(nil, 0xfffe)},
		{"uint16", uint16(0xbeef), ne.AppendUint16(nil, 0xbeef)},
		{"int32", int32(-70000), ne.AppendUint32(nil, uint32(0xfffeee90))},
		{"uint32", uint32(0xdeadbeef), ne.AppendUint32(nil, 0xdeadbeef)},
		{"int64", int64(-1), ne.AppendUint64(nil, math.MaxUint64)},
		{"uint64", uint64(1) << 40, ne.AppendUint64(nil, 1<<40)},
		{"int", int(123456), ne.AppendUint64(nil, 123456)},
		{"uint", uint(7), ne.AppendUint64(nil, 7)},
		{"uintptr", uintptr(0x1000), ne.AppendUint64(nil, 0x1000)},
		{"float32", float32(1.5), ne.AppendUint32(nil, math.Float32bits(1.5))},
		{"float64", 3.25, ne.AppendUint64(nil, math.Float64bits(3.25))},
		{"bytes", []byte{1, 2, 3}, []byte{1, 2, 3}},
	}
	for _, tc := range cases {
		got := lastArgBytes(t, tc.value)
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("%s: got % x want % x", tc.name, got, tc.want)
		}
	}
}

func TestEncodingIsDeterministic(t *testing.T) {
	first := lastArgBytes(t, int32(-70000))
	for i := 0; i < 10; i++ {
		if got := lastArgBytes(t, int32(-70000)); !bytes.Equal(got, first) {
			t.Fatalf("iteration %d: got % x want % x", i, got, first)
		}
	}
}

func TestInternedStringArgumentEncodesAsItsRef(t *testing.T) {
	other := deflog.InternInfo("encode nested ref")
	want := binary.NativeEndian.AppendUint32(nil, other.Ref())
	if got := lastArgBytes(t, other); !bytes.Equal(got, want) {
		t.Fatalf("got % x want % x", got, want)
	}
}

type encodeErrno uint16

type encodeByteBuf []byte

func TestNamedScalarTypesUseUnderlyingWidth(t *testing.T) {
	want := binary.NativeEndian.AppendUint16(nil, 113)
	if got := lastArgBytes(t, encodeErrno(113)); !bytes.Equal(got, want) {
		t.Fatalf("named uint16: got % x want % x", got, want)
	}
	if got := lastArgBytes(t, encodeByteBuf{9, 8}); !bytes.Equal(got, []byte{9, 8}) {
		t.Fatalf("named byte slice: got % x", got)
	}
}

type encodeName string

func TestStringsNeverTakeFixedWidthPath(t *testing.T) {
	rec := &deflog.Recorder{}
	deflog.New(rec).Debug(fmtEncode, "payload")
	if rec.Calls[2].Op != deflog.OpAppendString || rec.Calls[2].Str != "payload" {
		t.Fatalf("string argument mishandled: %+v", rec.Calls[2])
	}
	rec.Reset()
	deflog.New(rec).Debug(fmtEncode, encodeName("named"))
	if rec.Calls[2].Op != deflog.OpAppendString || rec.Calls[2].Str != "named" {
		t.Fatalf("named string argument mishandled: %+v", rec.Calls[2])
	}
}

func TestUnsupportedArgumentPanics(t *testing.T) {
	rec := &deflog.Recorder{}
	logger := deflog.New(rec)
	assertPanics(t, "map", func() { logger.Debug(fmtEncode, map[string]int{"a": 1}) })
	assertPanics(t, "struct", func() { logger.Debug(fmtEncode, struct{ A *int }{}) })
	assertPanics(t, "int slice", func() { logger.Debug(fmtEncode, []int{1}) })
}
