package wire

// DecodeResult classifies an attempt to read one token.
type DecodeResult uint8

const (
	Success DecodeResult = iota
	// TokenMismatch: the leading byte is not the requested shape.
	TokenMismatch
	// EmptyBuffer: no bytes at all were available.
	EmptyBuffer
	// InsufficientBuffer: the token is longer than the bytes available.
	InsufficientBuffer
	// Overflow: the token is well formed but its value does not fit the
	// requested Go type.
	Overflow
)

func (r DecodeResult) String() string {
	switch r {
	case Success:
		return "success"
	case TokenMismatch:
		return "token mismatch"
	case EmptyBuffer:
		return "empty buffer"
	case InsufficientBuffer:
		return "insufficient buffer"
	case Overflow:
		return "overflow"
	}
	return "unknown"
}

// NeedsMoreData reports whether more input could turn r into Success.
func (r DecodeResult) NeedsMoreData() bool {
	return r == EmptyBuffer || r == InsufficientBuffer
}
