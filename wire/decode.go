package wire

import "math"

func TryReadNil(src []byte) (int, DecodeResult) {
	if len(src) == 0 {
		return 1, EmptyBuffer
	}
	if src[0] != Nil {
		return 1, TokenMismatch
	}
	return 1, Success
}

func TryReadBool(src []byte) (bool, int, DecodeResult) {
	if len(src) == 0 {
		return false, 1, EmptyBuffer
	}
	switch src[0] {
	case True:
		return true, 1, Success
	case False:
		return false, 1, Success
	}
	return false, 1, TokenMismatch
}

// TryReadFloat64 reads a float32 or float64 token, or widens any integer token.
func TryReadFloat64(src []byte) (float64, int, DecodeResult) {
	if len(src) == 0 {
		return 0, 1, EmptyBuffer
	}
	switch src[0] {
	case Float32:
		if len(src) < 5 {
			return 0, 5, InsufficientBuffer
		}
		return float64(math.Float32frombits(be.Uint32(src[1:]))), 5, Success
	case Float64:
		if len(src) < 9 {
			return 0, 9, InsufficientBuffer
		}
		return math.Float64frombits(be.Uint64(src[1:])), 9, Success
	}
	switch TypeOf(src[0]) {
	case TypeUint:
		v, n, res := unsignedDecoders[src[0]](src)
		return float64(v), n, res
	case TypeInt:
		v, n, res := signedDecoders[src[0]](src)
		return float64(v), n, res
	}
	return 0, 1, TokenMismatch
}

// TryReadFloat32 is TryReadFloat64 rounded to float32.
func TryReadFloat32(src []byte) (float32, int, DecodeResult) {
	if len(src) > 0 && src[0] == Float32 {
		if len(src) < 5 {
			return 0, 5, InsufficientBuffer
		}
		return math.Float32frombits(be.Uint32(src[1:])), 5, Success
	}
	v, n, res := TryReadFloat64(src)
	return float32(v), n, res
}

// sized reads an 8/16/32-bit length following a one-byte tag.
func sized(src []byte, width int) (uint32, int, DecodeResult) {
	size := 1 + width
	if len(src) < size {
		return 0, size, InsufficientBuffer
	}
	switch width {
	case 1:
		return uint32(src[1]), size, Success
	case 2:
		return uint32(be.Uint16(src[1:])), size, Success
	}
	return be.Uint32(src[1:]), size, Success
}

// TryReadStringHeader returns the byte length of the string that follows.
func TryReadStringHeader(src []byte) (uint32, int, DecodeResult) {
	if len(src) == 0 {
		return 0, 1, EmptyBuffer
	}
	c := src[0]
	switch {
	case c >= FixStrMin && c <= FixStrMax:
		return uint32(c & fixStrMask), 1, Success
	case c == Str8:
		return sized(src, 1)
	case c == Str16:
		return sized(src, 2)
	case c == Str32:
		return sized(src, 4)
	}
	return 0, 1, TokenMismatch
}

func TryReadBinHeader(src []byte) (uint32, int, DecodeResult) {
	if len(src) == 0 {
		return 0, 1, EmptyBuffer
	}
	switch src[0] {
	case Bin8:
		return sized(src, 1)
	case Bin16:
		return sized(src, 2)
	case Bin32:
		return sized(src, 4)
	}
	return 0, 1, TokenMismatch
}

// TryReadArrayHeader returns the element count of the array that follows.
func TryReadArrayHeader(src []byte) (uint32, int, DecodeResult) {
	if len(src) == 0 {
		return 0, 1, EmptyBuffer
	}
	c := src[0]
	switch {
	case c >= FixArrayMin && c <= FixArrayMax:
		return uint32(c & fixArrayMask), 1, Success
	case c == Array16:
		return sized(src, 2)
	case c == Array32:
		return sized(src, 4)
	}
	return 0, 1, TokenMismatch
}

// TryReadMapHeader returns the number of key/value pairs that follow.
func TryReadMapHeader(src []byte) (uint32, int, DecodeResult) {
	if len(src) == 0 {
		return 0, 1, EmptyBuffer
	}
	c := src[0]
	switch {
	case c >= FixMapMin && c <= FixMapMax:
		return uint32(c & fixMapMask), 1, Success
	case c == Map16:
		return sized(src, 2)
	case c == Map32:
		return sized(src, 4)
	}
	return 0, 1, TokenMismatch
}

// TryReadExtensionHeader derives the payload length from the leading byte,
// then reads the trailing type code. The returned size covers the header only.
func TryReadExtensionHeader(src []byte) (ExtensionHeader, int, DecodeResult) {
	if len(src) == 0 {
		return ExtensionHeader{}, 1, EmptyBuffer
	}
	var (
		length uint32
		size   int
	)
	switch src[0] {
	case FixExt1:
		length, size = 1, 2
	case FixExt2:
		length, size = 2, 2
	case FixExt4:
		length, size = 4, 2
	case FixExt8:
		length, size = 8, 2
	case FixExt16:
		length, size = 16, 2
	case Ext8, Ext16, Ext32:
		width := 1 << (src[0] - Ext8) // 1, 2, 4
		n, _, res := sized(src, width)
		size = 2 + width
		if res != Success || len(src) < size {
			return ExtensionHeader{}, size, InsufficientBuffer
		}
		length = n
	default:
		return ExtensionHeader{}, 1, TokenMismatch
	}
	if len(src) < size {
		return ExtensionHeader{}, size, InsufficientBuffer
	}
	return ExtensionHeader{Type: int8(src[size-1]), Length: length}, size, Success
}
