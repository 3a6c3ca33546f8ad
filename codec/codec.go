// Package codec turns typed values into wire bytes written to a sink and back
// from a (possibly segmented) sequence.
package codec

import (
	"github.com/unkn0wn-root/wirebuf"
	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/sink"
)

// Codec encodes values V into a sink and decodes them from a sequence.
type Codec[V any] interface {
	Encode(s *sink.Sink, v V) error
	Decode(src seq.Sequence) (V, error)
}

// Marshal encodes v into a sink borrowed from p and returns a copy of the
// committed bytes. The sink goes back to p before Marshal returns.
func Marshal[V any](c Codec[V], p wirebuf.Provider, v V) ([]byte, error) {
	s := p.GetSink(0)
	if err := c.Encode(s, v); err != nil {
		_ = p.Release(s)
		return nil, err
	}
	out := s.ToArray()
	return out, p.Release(s)
}

// Unmarshal decodes a contiguous buffer.
func Unmarshal[V any](c Codec[V], b []byte) (V, error) {
	return c.Decode(seq.Of(b))
}
