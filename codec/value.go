package codec

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/unkn0wn-root/wirebuf/reader"
	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/sink"
	"github.com/unkn0wn-root/wirebuf/wire"
	"github.com/unkn0wn-root/wirebuf/writer"
)

var (
	ErrUnsupportedType = errors.New("codec: unsupported value type")
	ErrTrailingData    = errors.New("codec: trailing data after value")
	ErrTooDeep         = errors.New("codec: nesting too deep")
)

const maxDepth = 512

// Value encodes dynamic values with the native writer and reader, no
// reflection involved. Supported: nil, bool, all int/uint widths, float32,
// float64, string, []byte, time.Time, wire.Extension, []any and map[string]any.
//
// Decoding yields int64 for every integer that fits, uint64 above MaxInt64,
// float32/float64 by token width, time.Time for timestamp extensions and
// wire.Extension for any other extension. Map keys must be strings.
type Value struct{}

var _ Codec[any] = Value{}

func (Value) Encode(s *sink.Sink, v any) error {
	return encodeValue(writer.New(s), v, 0)
}

func encodeValue(w *writer.Writer, v any, depth int) error {
	if depth > maxDepth {
		return ErrTooDeep
	}
	switch x := v.(type) {
	case nil:
		return w.WriteNil()
	case bool:
		return w.WriteBool(x)
	case int:
		return w.WriteInt(int64(x))
	case int8:
		return w.WriteInt(int64(x))
	case int16:
		return w.WriteInt(int64(x))
	case int32:
		return w.WriteInt(int64(x))
	case int64:
		return w.WriteInt(x)
	case uint:
		return w.WriteUint(uint64(x))
	case uint8:
		return w.WriteUint(uint64(x))
	case uint16:
		return w.WriteUint(uint64(x))
	case uint32:
		return w.WriteUint(uint64(x))
	case uint64:
		return w.WriteUint(x)
	case float32:
		return w.WriteFloat32(x)
	case float64:
		return w.WriteFloat64(x)
	case string:
		return w.WriteString(x)
	case []byte:
		return w.WriteBinary(x)
	case time.Time:
		return w.WriteTimestamp(x)
	case wire.Extension:
		return w.WriteExtension(x)
	case []any:
		if err := w.WriteArrayHeader(len(x)); err != nil {
			return err
		}
		for _, e := range x {
			if err := encodeValue(w, e, depth+1); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		if err := w.WriteMapHeader(len(x)); err != nil {
			return err
		}
		for k, e := range x {
			if err := w.WriteString(k); err != nil {
				return err
			}
			if err := encodeValue(w, e, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

func (Value) Decode(src seq.Sequence) (any, error) {
	r := reader.New(src)
	v, err := DecodeValue(r)
	if err != nil {
		return nil, err
	}
	if !r.End() {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, r.Remaining())
	}
	return v, nil
}

// DecodeValue reads the next token, containers included, from r.
func DecodeValue(r *reader.Reader) (any, error) {
	return decodeValue(r, 0)
}

func decodeValue(r *reader.Reader, depth int) (any, error) {
	if depth > maxDepth {
		return nil, ErrTooDeep
	}
	code, err := r.NextCode()
	if err != nil {
		return nil, err
	}
	switch wire.TypeOf(code) {
	case wire.TypeNil:
		return nil, r.ReadNil()
	case wire.TypeBool:
		return r.ReadBool()
	case wire.TypeInt:
		return r.ReadInt64()
	case wire.TypeUint:
		u, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		if u > math.MaxInt64 {
			return u, nil
		}
		return int64(u), nil
	case wire.TypeFloat:
		if code == wire.Float32 {
			return r.ReadFloat32()
		}
		return r.ReadFloat64()
	case wire.TypeString:
		return r.ReadString()
	case wire.TypeBinary:
		return r.ReadBytes()
	case wire.TypeArray:
		n, err := r.ReadArrayHeader()
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, min(n, r.Remaining()))
		for i := 0; i < n; i++ {
			e, err := decodeValue(r, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	case wire.TypeMap:
		n, err := r.ReadMapHeader()
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, min(n, r.Remaining()/2))
		for i := 0; i < n; i++ {
			k, err := r.ReadString()
			if err != nil {
				return nil, fmt.Errorf("codec: map key: %w", err)
			}
			e, err := decodeValue(r, depth+1)
			if err != nil {
				return nil, err
			}
			out[k] = e
		}
		return out, nil
	case wire.TypeExtension:
		probe := r.Clone()
		h, err := probe.ReadExtensionHeader()
		if err != nil {
			return nil, err
		}
		if h.Type == wire.TimestampType {
			return r.ReadTimestamp()
		}
		return r.ReadExtension()
	}
	return nil, fmt.Errorf("%w: leading byte 0x%02x", reader.ErrUnknownToken, code)
}
