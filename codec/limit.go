package codec

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/sink"
)

var ErrTooLarge = errors.New("codec: payload too large")

// Limit wraps another codec to enforce a maximum payload size at Decode time.
// Encode is forwarded to Inner unchanged. If MaxDecode <= 0, size limiting is
// disabled.
//
// Typical use: protect against oversized/malicious inputs coming from a
// shared store or untrusted source.
type Limit[V any] struct {
	Inner     Codec[V]
	MaxDecode int
}

func (c Limit[V]) Encode(s *sink.Sink, v V) error { return c.Inner.Encode(s, v) }
func (c Limit[V]) Decode(src seq.Sequence) (V, error) {
	if c.MaxDecode > 0 && src.Len() > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("%w: %d > %d", ErrTooLarge, src.Len(), c.MaxDecode)
	}
	return c.Inner.Decode(src)
}
