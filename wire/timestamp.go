package wire

import "time"

const (
	ts32Size = 6  // fixext4: 32-bit seconds
	ts64Size = 10 // fixext8: 30-bit nanoseconds | 34-bit seconds
	ts96Size = 15 // ext8(12): 32-bit nanoseconds + signed 64-bit seconds

	secs34Mask = 1<<34 - 1
)

// TimestampSize is the encoded size of t: 6, 10 or 15 bytes.
func TimestampSize(t time.Time) int {
	secs := t.Unix()
	if uint64(secs)>>34 != 0 {
		return ts96Size
	}
	if t.Nanosecond() == 0 && uint64(secs)>>32 == 0 {
		return ts32Size
	}
	return ts64Size
}

// TryWriteTimestamp writes t, converted to UTC, in the smallest timestamp
// layout that holds it.
func TryWriteTimestamp(dst []byte, t time.Time) (int, bool) {
	t = t.UTC()
	size := TimestampSize(t)
	if len(dst) < size {
		return size, false
	}
	secs := t.Unix()
	nsec := uint32(t.Nanosecond())
	switch size {
	case ts32Size:
		dst[0] = FixExt4
		dst[1] = timestampCode
		be.PutUint32(dst[2:], uint32(secs))
	case ts64Size:
		dst[0] = FixExt8
		dst[1] = timestampCode
		be.PutUint64(dst[2:], uint64(nsec)<<34|uint64(secs))
	default:
		dst[0] = Ext8
		dst[1] = 12
		dst[2] = timestampCode
		be.PutUint32(dst[3:], nsec)
		be.PutUint64(dst[7:], uint64(secs))
	}
	return size, true
}

// TryReadTimestamp reads an extension token of type TimestampType carrying a
// 4, 8 or 12 byte payload. The result is in UTC.
func TryReadTimestamp(src []byte) (time.Time, int, DecodeResult) {
	h, hs, res := TryReadExtensionHeader(src)
	if res != Success {
		return time.Time{}, hs, res
	}
	if h.Type != TimestampType {
		return time.Time{}, hs, TokenMismatch
	}
	total := hs + int(h.Length)
	switch h.Length {
	case 4, 8, 12:
	default:
		return time.Time{}, total, TokenMismatch
	}
	if len(src) < total {
		return time.Time{}, total, InsufficientBuffer
	}
	p := src[hs:total]
	var (
		secs int64
		nsec int64
	)
	switch h.Length {
	case 4:
		secs = int64(be.Uint32(p))
	case 8:
		v := be.Uint64(p)
		nsec = int64(v >> 34)
		secs = int64(v & secs34Mask)
	default:
		nsec = int64(be.Uint32(p))
		secs = int64(be.Uint64(p[4:]))
	}
	if nsec > 999_999_999 {
		return time.Time{}, total, TokenMismatch
	}
	return time.Unix(secs, nsec).UTC(), total, Success
}
