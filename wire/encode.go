package wire

import (
	"encoding/binary"
	"math"
)

var be = binary.BigEndian

func TryWriteNil(dst []byte) (int, bool) {
	if len(dst) < 1 {
		return 1, false
	}
	dst[0] = Nil
	return 1, true
}

func TryWriteBool(dst []byte, v bool) (int, bool) {
	if len(dst) < 1 {
		return 1, false
	}
	if v {
		dst[0] = True
	} else {
		dst[0] = False
	}
	return 1, true
}

// UintSize is the encoded size of v in its most compact form.
func UintSize(v uint64) int {
	switch {
	case v <= uint64(PosFixIntMax):
		return 1
	case v <= math.MaxUint8:
		return 2
	case v <= math.MaxUint16:
		return 3
	case v <= math.MaxUint32:
		return 5
	}
	return 9
}

// IntSize is the encoded size of v in its most compact form. Non-negative
// values use the unsigned forms.
func IntSize(v int64) int {
	switch {
	case v >= 0:
		return UintSize(uint64(v))
	case v >= minFixNeg:
		return 1
	case v >= math.MinInt8:
		return 2
	case v >= math.MinInt16:
		return 3
	case v >= math.MinInt32:
		return 5
	}
	return 9
}

// TryWriteUint writes v as a positive fixint or the narrowest uint form.
func TryWriteUint(dst []byte, v uint64) (int, bool) {
	n := UintSize(v)
	if len(dst) < n {
		return n, false
	}
	switch n {
	case 1:
		dst[0] = byte(v)
	case 2:
		dst[0] = Uint8
		dst[1] = byte(v)
	case 3:
		dst[0] = Uint16
		be.PutUint16(dst[1:], uint16(v))
	case 5:
		dst[0] = Uint32
		be.PutUint32(dst[1:], uint32(v))
	default:
		dst[0] = Uint64
		be.PutUint64(dst[1:], v)
	}
	return n, true
}

// TryWriteInt writes v as a fixint or the narrowest int/uint form.
func TryWriteInt(dst []byte, v int64) (int, bool) {
	if v >= 0 {
		return TryWriteUint(dst, uint64(v))
	}
	n := IntSize(v)
	if len(dst) < n {
		return n, false
	}
	switch n {
	case 1:
		dst[0] = byte(int8(v))
	case 2:
		dst[0] = Int8
		dst[1] = byte(int8(v))
	case 3:
		dst[0] = Int16
		be.PutUint16(dst[1:], uint16(int16(v)))
	case 5:
		dst[0] = Int32
		be.PutUint32(dst[1:], uint32(int32(v)))
	default:
		dst[0] = Int64
		be.PutUint64(dst[1:], uint64(v))
	}
	return n, true
}

// The forced writers always use the explicit form of their width, which keeps
// a token's size independent of its value (placeholders, backpatching).

func TryWriteForcedUint8(dst []byte, v uint8) (int, bool) {
	if len(dst) < 2 {
		return 2, false
	}
	dst[0] = Uint8
	dst[1] = v
	return 2, true
}

func TryWriteForcedUint16(dst []byte, v uint16) (int, bool) {
	if len(dst) < 3 {
		return 3, false
	}
	dst[0] = Uint16
	be.PutUint16(dst[1:], v)
	return 3, true
}

func TryWriteForcedUint32(dst []byte, v uint32) (int, bool) {
	if len(dst) < 5 {
		return 5, false
	}
	dst[0] = Uint32
	be.PutUint32(dst[1:], v)
	return 5, true
}

func TryWriteForcedUint64(dst []byte, v uint64) (int, bool) {
	if len(dst) < 9 {
		return 9, false
	}
	dst[0] = Uint64
	be.PutUint64(dst[1:], v)
	return 9, true
}

func TryWriteForcedInt8(dst []byte, v int8) (int, bool) {
	if len(dst) < 2 {
		return 2, false
	}
	dst[0] = Int8
	dst[1] = byte(v)
	return 2, true
}

func TryWriteForcedInt16(dst []byte, v int16) (int, bool) {
	if len(dst) < 3 {
		return 3, false
	}
	dst[0] = Int16
	be.PutUint16(dst[1:], uint16(v))
	return 3, true
}

func TryWriteForcedInt32(dst []byte, v int32) (int, bool) {
	if len(dst) < 5 {
		return 5, false
	}
	dst[0] = Int32
	be.PutUint32(dst[1:], uint32(v))
	return 5, true
}

func TryWriteForcedInt64(dst []byte, v int64) (int, bool) {
	if len(dst) < 9 {
		return 9, false
	}
	dst[0] = Int64
	be.PutUint64(dst[1:], uint64(v))
	return 9, true
}

func TryWriteFloat32(dst []byte, v float32) (int, bool) {
	if len(dst) < 5 {
		return 5, false
	}
	dst[0] = Float32
	be.PutUint32(dst[1:], math.Float32bits(v))
	return 5, true
}

func TryWriteFloat64(dst []byte, v float64) (int, bool) {
	if len(dst) < 9 {
		return 9, false
	}
	dst[0] = Float64
	be.PutUint64(dst[1:], math.Float64bits(v))
	return 9, true
}
