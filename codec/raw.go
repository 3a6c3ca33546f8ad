package codec

import (
	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/sink"
)

// Bytes is an identity codec for []byte values. Decode copies so the result
// outlives the sequence's backing buffers.
type Bytes struct{}

func (Bytes) Encode(s *sink.Sink, b []byte) error {
	_, err := s.Write(b)
	return err
}

func (Bytes) Decode(src seq.Sequence) ([]byte, error) {
	out := make([]byte, src.Len())
	src.CopyTo(out)
	return out, nil
}

// String is a trivial codec for Go string values. By convention this assumes
// UTF-8 and performs no validation.
type String struct{}

func (String) Encode(s *sink.Sink, v string) error {
	_, err := s.WriteString(v)
	return err
}

func (String) Decode(src seq.Sequence) (string, error) { return string(src.Bytes()), nil }
