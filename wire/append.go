package wire

import (
	"slices"
	"time"
)

// The Append helpers grow dst as needed and append one token. They suit
// callers that build messages in plain slices rather than in a sink.

func appendToken(dst []byte, size int, put func([]byte) (int, bool)) []byte {
	dst = slices.Grow(dst, size)
	n, _ := put(dst[len(dst) : len(dst)+size])
	return dst[:len(dst)+n]
}

func AppendNil(dst []byte) []byte { return append(dst, Nil) }

func AppendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, True)
	}
	return append(dst, False)
}

func AppendInt(dst []byte, v int64) []byte {
	return appendToken(dst, IntSize(v), func(b []byte) (int, bool) { return TryWriteInt(b, v) })
}

func AppendUint(dst []byte, v uint64) []byte {
	return appendToken(dst, UintSize(v), func(b []byte) (int, bool) { return TryWriteUint(b, v) })
}

func AppendFloat32(dst []byte, v float32) []byte {
	return appendToken(dst, 5, func(b []byte) (int, bool) { return TryWriteFloat32(b, v) })
}

func AppendFloat64(dst []byte, v float64) []byte {
	return appendToken(dst, 9, func(b []byte) (int, bool) { return TryWriteFloat64(b, v) })
}

func AppendString(dst []byte, s string) []byte {
	size := StringHeaderSize(uint32(len(s))) + len(s)
	return appendToken(dst, size, func(b []byte) (int, bool) { return TryWriteString(b, s) })
}

func AppendBinary(dst []byte, p []byte) []byte {
	size := BinHeaderSize(uint32(len(p))) + len(p)
	return appendToken(dst, size, func(b []byte) (int, bool) { return TryWriteBinary(b, p) })
}

func AppendArrayHeader(dst []byte, n uint32) []byte {
	return appendToken(dst, ArrayHeaderSize(n), func(b []byte) (int, bool) { return TryWriteArrayHeader(b, n) })
}

func AppendMapHeader(dst []byte, n uint32) []byte {
	return appendToken(dst, MapHeaderSize(n), func(b []byte) (int, bool) { return TryWriteMapHeader(b, n) })
}

func AppendExtension(dst []byte, e Extension) []byte {
	size := ExtensionHeaderSize(uint32(len(e.Data))) + len(e.Data)
	return appendToken(dst, size, func(b []byte) (int, bool) { return TryWriteExtension(b, e) })
}

func AppendTimestamp(dst []byte, t time.Time) []byte {
	return appendToken(dst, TimestampSize(t), func(b []byte) (int, bool) { return TryWriteTimestamp(b, t) })
}
