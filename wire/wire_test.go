package wire

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

func oracle(t *testing.T, f func(*msgpack.Encoder) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := f(msgpack.NewEncoder(&buf)); err != nil {
		t.Fatalf("oracle encode: %v", err)
	}
	return buf.Bytes()
}

func TestIntCompactness(t *testing.T) {
	cases := []struct {
		v    int64
		size int
	}{
		{0, 1}, {127, 1}, {-1, 1}, {-32, 1},
		{128, 2}, {255, 2}, {256, 3}, {65535, 3}, {65536, 5},
		{-33, 2}, {-128, 2}, {-129, 3}, {math.MinInt16, 3}, {math.MinInt16 - 1, 5},
		{math.MaxUint32, 5}, {math.MaxUint32 + 1, 9}, {math.MinInt64, 9}, {math.MaxInt64, 9},
	}
	for _, tc := range cases {
		dst := make([]byte, 16)
		n, ok := TryWriteInt(dst, tc.v)
		if !ok || n != tc.size || IntSize(tc.v) != tc.size {
			t.Fatalf("TryWriteInt(%d): n=%d ok=%v want %d", tc.v, n, ok, tc.size)
		}
		want := oracle(t, func(e *msgpack.Encoder) error { return e.EncodeInt(tc.v) })
		if !bytes.Equal(dst[:n], want) {
			t.Fatalf("TryWriteInt(%d)=%x want %x", tc.v, dst[:n], want)
		}
		got, m, res := TryReadInt64(dst[:n])
		if res != Success || m != n || got != tc.v {
			t.Fatalf("TryReadInt64(%x)=%d,%d,%v", dst[:n], got, m, res)
		}
	}
}

func TestUintRoundTripAgainstOracle(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 255, 256, 65535, 65536, math.MaxUint32, math.MaxUint32 + 1, math.MaxUint64} {
		dst := make([]byte, 9)
		n, ok := TryWriteUint(dst, v)
		if !ok {
			t.Fatalf("TryWriteUint(%d) failed", v)
		}
		want := oracle(t, func(e *msgpack.Encoder) error { return e.EncodeUint(v) })
		if !bytes.Equal(dst[:n], want) {
			t.Fatalf("TryWriteUint(%d)=%x want %x", v, dst[:n], want)
		}
		got, m, res := TryReadUint64(dst[:n])
		if res != Success || m != n || got != v {
			t.Fatalf("TryReadUint64=%d,%d,%v want %d", got, m, res, v)
		}
	}
}

func TestShortDestinationReportsSizeAndWritesNothing(t *testing.T) {
	dst := []byte{0xAA, 0xAA, 0xAA, 0xAA}
	n, ok := TryWriteInt(dst, math.MinInt64)
	if ok || n != 9 {
		t.Fatalf("n=%d ok=%v", n, ok)
	}
	if !bytes.Equal(dst, []byte{0xAA, 0xAA, 0xAA, 0xAA}) {
		t.Fatalf("partial write: %x", dst)
	}
	if n, ok := TryWriteString(dst, "hello"); ok || n != 6 {
		t.Fatalf("TryWriteString n=%d ok=%v", n, ok)
	}
	if n, ok := TryWriteTimestamp(dst, time.Unix(1<<35, 1)); ok || n != 15 {
		t.Fatalf("TryWriteTimestamp n=%d ok=%v", n, ok)
	}
}

func TestNarrowingReadsOverflow(t *testing.T) {
	enc := AppendInt(nil, 300)
	if _, _, res := TryReadInt8(enc); res != Overflow {
		t.Fatalf("int8 from 300: %v", res)
	}
	if _, _, res := TryReadUint8(enc); res != Overflow {
		t.Fatalf("uint8 from 300: %v", res)
	}
	if v, _, res := TryReadInt16(enc); res != Success || v != 300 {
		t.Fatalf("int16 from 300: %d %v", v, res)
	}
	neg := AppendInt(nil, -1)
	if _, _, res := TryReadUint32(neg); res != Overflow {
		t.Fatalf("uint32 from -1: %v", res)
	}
	big := AppendUint(nil, math.MaxUint64)
	if _, _, res := TryReadInt64(big); res != Overflow {
		t.Fatalf("int64 from MaxUint64: %v", res)
	}
	if _, _, res := TryReadInt32(AppendString(nil, "x")); res != TokenMismatch {
		t.Fatalf("int32 from string: %v", res)
	}
}

func TestIntegerTablesCoverEveryCode(t *testing.T) {
	for c := 0; c < 256; c++ {
		src := make([]byte, 9)
		src[0] = byte(c)
		_, n, res := TryReadInt64(src)
		typ := TypeOf(byte(c))
		isInt := typ == TypeInt || typ == TypeUint
		if isInt && res != Success && res != Overflow {
			t.Fatalf("code %#x: %v", c, res)
		}
		if !isInt && (res != TokenMismatch || n != 1) {
			t.Fatalf("code %#x: want mismatch, got %v n=%d", c, res, n)
		}
	}
}

func TestTruncatedIntegerReportsFullSize(t *testing.T) {
	enc := AppendInt(nil, math.MinInt64)
	for i := 1; i < len(enc); i++ {
		_, n, res := TryReadInt64(enc[:i])
		if res != InsufficientBuffer || n != 9 {
			t.Fatalf("prefix %d: n=%d res=%v", i, n, res)
		}
	}
	if _, n, res := TryReadInt64(nil); res != EmptyBuffer || n != 1 {
		t.Fatalf("empty: n=%d res=%v", n, res)
	}
}

func TestFloats(t *testing.T) {
	b := AppendFloat64(nil, math.Pi)
	want := oracle(t, func(e *msgpack.Encoder) error { return e.EncodeFloat64(math.Pi) })
	if !bytes.Equal(b, want) {
		t.Fatalf("float64 %x want %x", b, want)
	}
	if v, n, res := TryReadFloat64(b); res != Success || n != 9 || v != math.Pi {
		t.Fatalf("float64 read %v %d %v", v, n, res)
	}
	f := AppendFloat32(nil, 1.5)
	if v, n, res := TryReadFloat32(f); res != Success || n != 5 || v != 1.5 {
		t.Fatalf("float32 read %v %d %v", v, n, res)
	}
	if v, _, res := TryReadFloat64(f); res != Success || v != 1.5 {
		t.Fatalf("float64 from float32 %v %v", v, res)
	}
	if v, _, res := TryReadFloat64(AppendInt(nil, -70000)); res != Success || v != -70000 {
		t.Fatalf("float64 from int %v %v", v, res)
	}
	if _, _, res := TryReadFloat64(AppendNil(nil)); res != TokenMismatch {
		t.Fatalf("float64 from nil %v", res)
	}
}

func TestHeadersMatchOracle(t *testing.T) {
	for _, n := range []uint32{0, 15, 16, 31, 32, 255, 256, 65535, 65536} {
		arr := AppendArrayHeader(nil, n)
		if want := oracle(t, func(e *msgpack.Encoder) error { return e.EncodeArrayLen(int(n)) }); !bytes.Equal(arr, want) {
			t.Fatalf("array %d: %x want %x", n, arr, want)
		}
		if got, m, res := TryReadArrayHeader(arr); res != Success || got != n || m != len(arr) {
			t.Fatalf("array read %d: %d %d %v", n, got, m, res)
		}
		mp := AppendMapHeader(nil, n)
		if want := oracle(t, func(e *msgpack.Encoder) error { return e.EncodeMapLen(int(n)) }); !bytes.Equal(mp, want) {
			t.Fatalf("map %d: %x want %x", n, mp, want)
		}
		if got, m, res := TryReadMapHeader(mp); res != Success || got != n || m != len(mp) {
			t.Fatalf("map read %d: %d %d %v", n, got, m, res)
		}
		hdr := make([]byte, 5)
		sz, _ := TryWriteStringHeader(hdr, n)
		if got, m, res := TryReadStringHeader(hdr[:sz]); res != Success || got != n || m != sz {
			t.Fatalf("str read %d: %d %d %v", n, got, m, res)
		}
		sz, _ = TryWriteBinHeader(hdr, n)
		if got, m, res := TryReadBinHeader(hdr[:sz]); res != Success || got != n || m != sz {
			t.Fatalf("bin read %d: %d %d %v", n, got, m, res)
		}
	}
	s := string(bytes.Repeat([]byte("s"), 300))
	if want := oracle(t, func(e *msgpack.Encoder) error { return e.EncodeString(s) }); !bytes.Equal(AppendString(nil, s), want) {
		t.Fatalf("string 300 mismatch")
	}
	p := bytes.Repeat([]byte{7}, 70000)
	if want := oracle(t, func(e *msgpack.Encoder) error { return e.EncodeBytes(p) }); !bytes.Equal(AppendBinary(nil, p), want) {
		t.Fatalf("binary 70000 mismatch")
	}
}

func TestExtensionHeaders(t *testing.T) {
	for _, l := range []uint32{1, 2, 3, 4, 8, 16, 17, 255, 256, 65535, 65536} {
		h := ExtensionHeader{Type: 42, Length: l}
		dst := make([]byte, 6)
		n, ok := TryWriteExtensionHeader(dst, h)
		if !ok || n != ExtensionHeaderSize(l) {
			t.Fatalf("len %d: n=%d ok=%v", l, n, ok)
		}
		got, m, res := TryReadExtensionHeader(dst[:n])
		if res != Success || m != n || got != h {
			t.Fatalf("len %d: got %+v m=%d res=%v", l, got, m, res)
		}
		for i := 1; i < n; i++ {
			if _, m, res := TryReadExtensionHeader(dst[:i]); res != InsufficientBuffer || m != n {
				t.Fatalf("len %d prefix %d: m=%d res=%v", l, i, m, res)
			}
		}
	}
	neg := AppendExtension(nil, Extension{Type: -5, Data: []byte{1, 2, 3}})
	if h, _, res := TryReadExtensionHeader(neg); res != Success || h.Type != -5 || h.Length != 3 {
		t.Fatalf("negative type: %+v %v", h, res)
	}
}

func TestTimestampLayouts(t *testing.T) {
	cases := []struct {
		tm   time.Time
		size int
	}{
		{time.Unix(0, 0), 6},
		{time.Unix(math.MaxUint32, 0), 6},
		{time.Unix(1, 1), 10},
		{time.Unix(math.MaxUint32+1, 0), 10},
		{time.Unix(1<<34-1, 999_999_999), 10},
		{time.Unix(1<<34, 0), 15},
		{time.Unix(-1, 500), 15},
		{time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), 15},
		{time.Date(9999, 12, 31, 23, 59, 59, 999_999_999, time.UTC), 15},
	}
	for _, tc := range cases {
		b := AppendTimestamp(nil, tc.tm)
		if len(b) != tc.size || TimestampSize(tc.tm) != tc.size {
			t.Fatalf("%v: size %d want %d", tc.tm, len(b), tc.size)
		}
		want := oracle(t, func(e *msgpack.Encoder) error { return e.EncodeTime(tc.tm) })
		if !bytes.Equal(b, want) {
			t.Fatalf("%v: %x want %x", tc.tm, b, want)
		}
		got, n, res := TryReadTimestamp(b)
		if res != Success || n != tc.size || !got.Equal(tc.tm) || got.Location() != time.UTC {
			t.Fatalf("%v: got %v n=%d res=%v", tc.tm, got, n, res)
		}
	}
}

func TestTimestampCarriesTypeMinusOne(t *testing.T) {
	for _, tm := range []time.Time{time.Unix(1, 0), time.Unix(1, 1), time.Unix(-1, 0)} {
		b := AppendTimestamp(nil, tm)
		h, _, res := TryReadExtensionHeader(b)
		if res != Success || h.Type != TimestampType {
			t.Fatalf("%v: header %+v %v", tm, h, res)
		}
		typeAt := 1
		if b[0] == Ext8 {
			typeAt = 2
		}
		if b[typeAt] != 0xff {
			t.Fatalf("%v: type byte %#x", tm, b[typeAt])
		}
	}
}

func TestTimestampRejectsOtherExtensions(t *testing.T) {
	b := AppendExtension(nil, Extension{Type: 3, Data: make([]byte, 4)})
	if _, _, res := TryReadTimestamp(b); res != TokenMismatch {
		t.Fatalf("want mismatch, got %v", res)
	}
	b = AppendExtension(nil, Extension{Type: TimestampType, Data: make([]byte, 5)})
	if _, _, res := TryReadTimestamp(b); res != TokenMismatch {
		t.Fatalf("want mismatch for 5-byte payload, got %v", res)
	}
}

func TestFixedByteOrder(t *testing.T) {
	dst := make([]byte, 8)
	n, ok := PutFixed(dst, uint32(0x01020304), be)
	if !ok || n != 4 || !bytes.Equal(dst[:4], []byte{1, 2, 3, 4}) {
		t.Fatalf("big endian: %x", dst[:4])
	}
	v, m, res := ReadFixed[uint32](dst, be)
	if res != Success || m != 4 || v != 0x01020304 {
		t.Fatalf("read back %x %d %v", v, m, res)
	}
	if n, ok := PutFixed(dst[:3], -1.25, be); ok || n != 8 {
		t.Fatalf("short float64: n=%d ok=%v", n, ok)
	}
	if _, n, res := ReadFixed[int16](dst[:1], be); res != InsufficientBuffer || n != 2 {
		t.Fatalf("short int16: n=%d res=%v", n, res)
	}
}

func TestTypeOf(t *testing.T) {
	cases := map[byte]Type{
		0x00: TypeUint, 0x7f: TypeUint, 0x80: TypeMap, 0x9f: TypeArray, 0xa5: TypeString,
		Nil: TypeNil, NeverUsed: TypeInvalid, True: TypeBool, Bin16: TypeBinary, Ext32: TypeExtension,
		Float32: TypeFloat, Uint64: TypeUint, Int8: TypeInt, FixExt16: TypeExtension, Str8: TypeString,
		Array32: TypeArray, Map16: TypeMap, 0xe0: TypeInt, 0xff: TypeInt,
	}
	for c, want := range cases {
		if got := TypeOf(c); got != want {
			t.Fatalf("TypeOf(%#x)=%v want %v", c, got, want)
		}
	}
}
