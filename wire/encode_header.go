package wire

import "math"

func StringHeaderSize(n uint32) int {
	switch {
	case n <= maxFixStr:
		return 1
	case n <= math.MaxUint8:
		return 2
	case n <= math.MaxUint16:
		return 3
	}
	return 5
}

func BinHeaderSize(n uint32) int {
	switch {
	case n <= math.MaxUint8:
		return 2
	case n <= math.MaxUint16:
		return 3
	}
	return 5
}

func ArrayHeaderSize(n uint32) int {
	switch {
	case n <= maxFixArray:
		return 1
	case n <= math.MaxUint16:
		return 3
	}
	return 5
}

func MapHeaderSize(n uint32) int {
	switch {
	case n <= maxFixMap:
		return 1
	case n <= math.MaxUint16:
		return 3
	}
	return 5
}

func ExtensionHeaderSize(length uint32) int {
	switch length {
	case 1, 2, 4, 8, 16:
		return 2
	}
	switch {
	case length <= math.MaxUint8:
		return 3
	case length <= math.MaxUint16:
		return 4
	}
	return 6
}

// putSized writes a one-byte tag followed by n as an 8/16/32-bit length,
// picking the width from size (2, 3 or 5).
func putSized(dst []byte, size int, c8, c16, c32 byte, n uint32) {
	switch size {
	case 2:
		dst[0] = c8
		dst[1] = byte(n)
	case 3:
		dst[0] = c16
		be.PutUint16(dst[1:], uint16(n))
	default:
		dst[0] = c32
		be.PutUint32(dst[1:], n)
	}
}

// TryWriteStringHeader writes the header of a UTF-8 string of n bytes. The
// payload is written separately.
func TryWriteStringHeader(dst []byte, n uint32) (int, bool) {
	size := StringHeaderSize(n)
	if len(dst) < size {
		return size, false
	}
	if size == 1 {
		dst[0] = FixStrMin | byte(n)
	} else {
		putSized(dst, size, Str8, Str16, Str32, n)
	}
	return size, true
}

func TryWriteBinHeader(dst []byte, n uint32) (int, bool) {
	size := BinHeaderSize(n)
	if len(dst) < size {
		return size, false
	}
	putSized(dst, size, Bin8, Bin16, Bin32, n)
	return size, true
}

func TryWriteArrayHeader(dst []byte, n uint32) (int, bool) {
	size := ArrayHeaderSize(n)
	if len(dst) < size {
		return size, false
	}
	if size == 1 {
		dst[0] = FixArrayMin | byte(n)
	} else {
		putSized(dst, size, 0, Array16, Array32, n)
	}
	return size, true
}

func TryWriteMapHeader(dst []byte, n uint32) (int, bool) {
	size := MapHeaderSize(n)
	if len(dst) < size {
		return size, false
	}
	if size == 1 {
		dst[0] = FixMapMin | byte(n)
	} else {
		putSized(dst, size, 0, Map16, Map32, n)
	}
	return size, true
}

func TryWriteExtensionHeader(dst []byte, h ExtensionHeader) (int, bool) {
	size := ExtensionHeaderSize(h.Length)
	if len(dst) < size {
		return size, false
	}
	if size == 2 {
		switch h.Length {
		case 1:
			dst[0] = FixExt1
		case 2:
			dst[0] = FixExt2
		case 4:
			dst[0] = FixExt4
		case 8:
			dst[0] = FixExt8
		default:
			dst[0] = FixExt16
		}
		dst[1] = byte(h.Type)
		return 2, true
	}
	switch size {
	case 3:
		dst[0] = Ext8
		dst[1] = byte(h.Length)
	case 4:
		dst[0] = Ext16
		be.PutUint16(dst[1:], uint16(h.Length))
	default:
		dst[0] = Ext32
		be.PutUint32(dst[1:], h.Length)
	}
	dst[size-1] = byte(h.Type)
	return size, true
}

// TryWriteString writes header and payload. len(s) must fit in 32 bits.
func TryWriteString(dst []byte, s string) (int, bool) {
	hs := StringHeaderSize(uint32(len(s)))
	total := hs + len(s)
	if len(dst) < total {
		return total, false
	}
	TryWriteStringHeader(dst, uint32(len(s)))
	copy(dst[hs:], s)
	return total, true
}

// TryWriteBinary writes header and payload. len(b) must fit in 32 bits.
func TryWriteBinary(dst []byte, b []byte) (int, bool) {
	hs := BinHeaderSize(uint32(len(b)))
	total := hs + len(b)
	if len(dst) < total {
		return total, false
	}
	TryWriteBinHeader(dst, uint32(len(b)))
	copy(dst[hs:], b)
	return total, true
}

// TryWriteExtension writes header and payload.
func TryWriteExtension(dst []byte, e Extension) (int, bool) {
	h := ExtensionHeader{Type: e.Type, Length: uint32(len(e.Data))}
	hs := ExtensionHeaderSize(h.Length)
	total := hs + len(e.Data)
	if len(dst) < total {
		return total, false
	}
	TryWriteExtensionHeader(dst, h)
	copy(dst[hs:], e.Data)
	return total, true
}
