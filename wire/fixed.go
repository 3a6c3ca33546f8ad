package wire

import (
	"encoding/binary"
	"math"
)

// Fixed lists the plain fixed-size value types PutFixed and ReadFixed accept.
type Fixed interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// FixedSize is the width of T in bytes.
func FixedSize[T Fixed]() int {
	var zero T
	switch any(zero).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	}
	return 8
}

// PutFixed stores v untagged in the given byte order. Like the token writers it
// reports the required size when dst is too short and writes nothing.
func PutFixed[T Fixed](dst []byte, v T, order binary.ByteOrder) (int, bool) {
	n := FixedSize[T]()
	if len(dst) < n {
		return n, false
	}
	switch x := any(v).(type) {
	case int8:
		dst[0] = byte(x)
	case uint8:
		dst[0] = x
	case int16:
		order.PutUint16(dst, uint16(x))
	case uint16:
		order.PutUint16(dst, x)
	case int32:
		order.PutUint32(dst, uint32(x))
	case uint32:
		order.PutUint32(dst, x)
	case float32:
		order.PutUint32(dst, math.Float32bits(x))
	case int64:
		order.PutUint64(dst, uint64(x))
	case uint64:
		order.PutUint64(dst, x)
	case float64:
		order.PutUint64(dst, math.Float64bits(x))
	}
	return n, true
}

// ReadFixed loads an untagged T in the given byte order.
func ReadFixed[T Fixed](src []byte, order binary.ByteOrder) (T, int, DecodeResult) {
	n := FixedSize[T]()
	var v T
	if len(src) == 0 {
		return v, n, EmptyBuffer
	}
	if len(src) < n {
		return v, n, InsufficientBuffer
	}
	var out any
	switch any(v).(type) {
	case int8:
		out = int8(src[0])
	case uint8:
		out = src[0]
	case int16:
		out = int16(order.Uint16(src))
	case uint16:
		out = order.Uint16(src)
	case int32:
		out = int32(order.Uint32(src))
	case uint32:
		out = order.Uint32(src)
	case float32:
		out = math.Float32frombits(order.Uint32(src))
	case int64:
		out = int64(order.Uint64(src))
	case uint64:
		out = order.Uint64(src)
	case float64:
		out = math.Float64frombits(order.Uint64(src))
	}
	return out.(T), n, Success
}
