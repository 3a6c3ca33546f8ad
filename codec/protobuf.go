package codec

import (
	"google.golang.org/protobuf/proto"

	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/sink"
)

// Protobuf marshals straight into the sink's writable view.
type Protobuf[T proto.Message] struct {
	new func() T // constructor for a concrete message (e.g., func() *mypb.User { return &mypb.User{} })
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

var marshalOpts = proto.MarshalOptions{}

func (c Protobuf[T]) Encode(s *sink.Sink, v T) error {
	size := marshalOpts.Size(v)
	view, err := s.GetWritableView(size)
	if err != nil {
		return err
	}
	out, err := marshalOpts.MarshalAppend(view[:0:len(view)], v)
	if err != nil {
		return err
	}
	if len(out) > len(view) {
		// Size and MarshalAppend disagreed; fall back to a plain copy.
		_, err = s.Write(out)
		return err
	}
	return s.Advance(len(out))
}

func (c Protobuf[T]) Decode(src seq.Sequence) (T, error) {
	m := c.new()
	err := proto.Unmarshal(src.Bytes(), m)
	return m, err
}
