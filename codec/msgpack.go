package codec

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/sink"
)

// Msgpack is a Codec that serializes values using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Its output is readable by reader.Reader and Value, and it decodes anything
// writer.Writer produces. Use `msgpack:"fieldName"` tags to control field names.
type Msgpack[V any] struct{}

var _ Codec[struct{}] = Msgpack[struct{}]{}

func (Msgpack[V]) Encode(s *sink.Sink, v V) error {
	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)
	enc.Reset(s)
	return enc.Encode(v)
}

// Decode expects exactly one value. The decoder reads the stream byte-exact,
// so anything it leaves behind is trailing data.
func (Msgpack[V]) Decode(src seq.Sequence) (V, error) {
	var v V
	in := seq.NewStream(src)
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)
	dec.Reset(in)
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	if n := in.Consumed(); n != src.Len() {
		return v, fmt.Errorf("%w: %d bytes", ErrTrailingData, src.Len()-n)
	}
	return v, nil
}
