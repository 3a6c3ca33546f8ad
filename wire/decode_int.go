package wire

import "math"

type (
	signedDecoder   func(src []byte) (int64, int, DecodeResult)
	unsignedDecoder func(src []byte) (uint64, int, DecodeResult)
)

// Integer decoding is dispatched on the leading byte. Each table maps all 256
// codes to the decoder for that code's meaning when the caller wants a signed
// or an unsigned result; codes that are not integers map to an entry that
// reports TokenMismatch.
var (
	signedDecoders   [256]signedDecoder
	unsignedDecoders [256]unsignedDecoder
)

func init() {
	for c := 0; c < 256; c++ {
		signedDecoders[c] = invalidSigned
		unsignedDecoders[c] = invalidUnsigned
	}
	for c := int(PosFixIntMin); c <= int(PosFixIntMax); c++ {
		signedDecoders[c] = posFixSigned
		unsignedDecoders[c] = posFixUnsigned
	}
	for c := int(NegFixIntMin); c <= int(NegFixIntMax); c++ {
		signedDecoders[c] = negFixSigned
		unsignedDecoders[c] = negativeUnsigned
	}

	signedDecoders[Uint8] = u8Signed
	signedDecoders[Uint16] = u16Signed
	signedDecoders[Uint32] = u32Signed
	signedDecoders[Uint64] = u64Signed
	signedDecoders[Int8] = i8Signed
	signedDecoders[Int16] = i16Signed
	signedDecoders[Int32] = i32Signed
	signedDecoders[Int64] = i64Signed

	unsignedDecoders[Uint8] = u8Unsigned
	unsignedDecoders[Uint16] = u16Unsigned
	unsignedDecoders[Uint32] = u32Unsigned
	unsignedDecoders[Uint64] = u64Unsigned
	unsignedDecoders[Int8] = i8Unsigned
	unsignedDecoders[Int16] = i16Unsigned
	unsignedDecoders[Int32] = i32Unsigned
	unsignedDecoders[Int64] = i64Unsigned
}

func invalidSigned([]byte) (int64, int, DecodeResult)    { return 0, 1, TokenMismatch }
func invalidUnsigned([]byte) (uint64, int, DecodeResult) { return 0, 1, TokenMismatch }

func posFixSigned(src []byte) (int64, int, DecodeResult)    { return int64(src[0]), 1, Success }
func posFixUnsigned(src []byte) (uint64, int, DecodeResult) { return uint64(src[0]), 1, Success }
func negFixSigned(src []byte) (int64, int, DecodeResult)    { return int64(int8(src[0])), 1, Success }
func negativeUnsigned([]byte) (uint64, int, DecodeResult)   { return 0, 1, Overflow }

// raw reads the big-endian field following the tag, n bytes wide.
func raw(src []byte, n int) (uint64, bool) {
	if len(src) < n+1 {
		return 0, false
	}
	p := src[1 : n+1]
	switch n {
	case 1:
		return uint64(p[0]), true
	case 2:
		return uint64(be.Uint16(p)), true
	case 4:
		return uint64(be.Uint32(p)), true
	}
	return be.Uint64(p), true
}

func u8Signed(src []byte) (int64, int, DecodeResult) {
	v, ok := raw(src, 1)
	if !ok {
		return 0, 2, InsufficientBuffer
	}
	return int64(v), 2, Success
}

func u16Signed(src []byte) (int64, int, DecodeResult) {
	v, ok := raw(src, 2)
	if !ok {
		return 0, 3, InsufficientBuffer
	}
	return int64(v), 3, Success
}

func u32Signed(src []byte) (int64, int, DecodeResult) {
	v, ok := raw(src, 4)
	if !ok {
		return 0, 5, InsufficientBuffer
	}
	return int64(v), 5, Success
}

func u64Signed(src []byte) (int64, int, DecodeResult) {
	v, ok := raw(src, 8)
	if !ok {
		return 0, 9, InsufficientBuffer
	}
	if v > math.MaxInt64 {
		return 0, 9, Overflow
	}
	return int64(v), 9, Success
}

func i8Signed(src []byte) (int64, int, DecodeResult) {
	v, ok := raw(src, 1)
	if !ok {
		return 0, 2, InsufficientBuffer
	}
	return int64(int8(v)), 2, Success
}

func i16Signed(src []byte) (int64, int, DecodeResult) {
	v, ok := raw(src, 2)
	if !ok {
		return 0, 3, InsufficientBuffer
	}
	return int64(int16(v)), 3, Success
}

func i32Signed(src []byte) (int64, int, DecodeResult) {
	v, ok := raw(src, 4)
	if !ok {
		return 0, 5, InsufficientBuffer
	}
	return int64(int32(v)), 5, Success
}

func i64Signed(src []byte) (int64, int, DecodeResult) {
	v, ok := raw(src, 8)
	if !ok {
		return 0, 9, InsufficientBuffer
	}
	return int64(v), 9, Success
}

func u8Unsigned(src []byte) (uint64, int, DecodeResult) {
	v, ok := raw(src, 1)
	if !ok {
		return 0, 2, InsufficientBuffer
	}
	return v, 2, Success
}

func u16Unsigned(src []byte) (uint64, int, DecodeResult) {
	v, ok := raw(src, 2)
	if !ok {
		return 0, 3, InsufficientBuffer
	}
	return v, 3, Success
}

func u32Unsigned(src []byte) (uint64, int, DecodeResult) {
	v, ok := raw(src, 4)
	if !ok {
		return 0, 5, InsufficientBuffer
	}
	return v, 5, Success
}

func u64Unsigned(src []byte) (uint64, int, DecodeResult) {
	v, ok := raw(src, 8)
	if !ok {
		return 0, 9, InsufficientBuffer
	}
	return v, 9, Success
}

// The int forms decode into an unsigned target only when non-negative.

func i8Unsigned(src []byte) (uint64, int, DecodeResult) {
	v, n, res := i8Signed(src)
	return toUnsigned(v, n, res)
}

func i16Unsigned(src []byte) (uint64, int, DecodeResult) {
	v, n, res := i16Signed(src)
	return toUnsigned(v, n, res)
}

func i32Unsigned(src []byte) (uint64, int, DecodeResult) {
	v, n, res := i32Signed(src)
	return toUnsigned(v, n, res)
}

func i64Unsigned(src []byte) (uint64, int, DecodeResult) {
	v, n, res := i64Signed(src)
	return toUnsigned(v, n, res)
}

func toUnsigned(v int64, n int, res DecodeResult) (uint64, int, DecodeResult) {
	if res != Success {
		return 0, n, res
	}
	if v < 0 {
		return 0, n, Overflow
	}
	return uint64(v), n, Success
}

// TryReadInt64 reads any integer token into an int64.
func TryReadInt64(src []byte) (int64, int, DecodeResult) {
	if len(src) == 0 {
		return 0, 1, EmptyBuffer
	}
	return signedDecoders[src[0]](src)
}

// TryReadUint64 reads any non-negative integer token into a uint64.
func TryReadUint64(src []byte) (uint64, int, DecodeResult) {
	if len(src) == 0 {
		return 0, 1, EmptyBuffer
	}
	return unsignedDecoders[src[0]](src)
}

func narrowSigned[T int8 | int16 | int32](src []byte, lo, hi int64) (T, int, DecodeResult) {
	v, n, res := TryReadInt64(src)
	if res != Success {
		return 0, n, res
	}
	if v < lo || v > hi {
		return 0, n, Overflow
	}
	return T(v), n, Success
}

func narrowUnsigned[T uint8 | uint16 | uint32](src []byte, hi uint64) (T, int, DecodeResult) {
	v, n, res := TryReadUint64(src)
	if res != Success {
		return 0, n, res
	}
	if v > hi {
		return 0, n, Overflow
	}
	return T(v), n, Success
}

func TryReadInt8(src []byte) (int8, int, DecodeResult) {
	return narrowSigned[int8](src, math.MinInt8, math.MaxInt8)
}

func TryReadInt16(src []byte) (int16, int, DecodeResult) {
	return narrowSigned[int16](src, math.MinInt16, math.MaxInt16)
}

func TryReadInt32(src []byte) (int32, int, DecodeResult) {
	return narrowSigned[int32](src, math.MinInt32, math.MaxInt32)
}

func TryReadUint8(src []byte) (uint8, int, DecodeResult) {
	return narrowUnsigned[uint8](src, math.MaxUint8)
}

func TryReadUint16(src []byte) (uint16, int, DecodeResult) {
	return narrowUnsigned[uint16](src, math.MaxUint16)
}

func TryReadUint32(src []byte) (uint32, int, DecodeResult) {
	return narrowUnsigned[uint32](src, math.MaxUint32)
}
