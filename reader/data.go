package reader

import (
	"encoding/binary"

	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/wire"
)

// ReadString reads a string token and copies its payload.
func (r *Reader) ReadString() (string, error) {
	m := r.mark()
	n, err := r.ReadStringHeader()
	if err != nil {
		return "", err
	}
	if cur := r.current(); len(cur) >= n {
		s := string(cur[:n])
		r.advance(n)
		return s, nil
	}
	b, err := r.copyPayload(n)
	if err != nil {
		r.restore(m)
		return "", err
	}
	return string(b), nil
}

// TryReadStringSpan returns the payload of the next string without copying
// when it lies within one segment. ok is false, and the cursor unchanged, when
// the payload spans segments; fall back to ReadString then.
func (r *Reader) TryReadStringSpan() (span []byte, ok bool, err error) {
	m := r.mark()
	n, err := r.ReadStringHeader()
	if err != nil {
		return nil, false, err
	}
	cur := r.current()
	if len(cur) < n {
		if n > r.Remaining() {
			err = r.endOfStream(n)
		}
		r.restore(m)
		return nil, false, err
	}
	r.advance(n)
	return cur[:n:n], true, nil
}

// ReadBytes reads a binary token (or a string token, see ReadBinHeader) and
// copies its payload.
func (r *Reader) ReadBytes() ([]byte, error) {
	m := r.mark()
	n, err := r.ReadBinHeader()
	if err != nil {
		return nil, err
	}
	b, err := r.copyPayload(n)
	if err != nil {
		r.restore(m)
		return nil, err
	}
	return b, nil
}

// ReadExtension reads an extension token and copies its payload.
func (r *Reader) ReadExtension() (wire.Extension, error) {
	m := r.mark()
	h, err := r.ReadExtensionHeader()
	if err != nil {
		return wire.Extension{}, err
	}
	b, err := r.copyPayload(int(h.Length))
	if err != nil {
		r.restore(m)
		return wire.Extension{}, err
	}
	return wire.Extension{Type: h.Type, Data: b}, nil
}

func (r *Reader) copyPayload(n int) ([]byte, error) {
	if n > r.Remaining() {
		return nil, r.endOfStream(n)
	}
	b := make([]byte, n)
	r.peek(b)
	r.advance(n)
	return b, nil
}

// ReadRaw returns the next n bytes as a sub-sequence, without copying.
func (r *Reader) ReadRaw(n int) (seq.Sequence, error) {
	if n < 0 || n > r.Remaining() {
		return seq.Sequence{}, r.endOfStream(n)
	}
	out, err := r.seq.Slice(r.pos, n)
	if err != nil {
		return seq.Sequence{}, err
	}
	r.advance(n)
	return out, nil
}

// ReadRawToken returns the bytes of the next complete token, containers
// included, without copying.
func (r *Reader) ReadRawToken() (seq.Sequence, error) {
	probe := r.Clone()
	if err := probe.Skip(); err != nil {
		return seq.Sequence{}, err
	}
	return r.ReadRaw(probe.pos - r.pos)
}

// ReadFixed reads an untagged fixed-size value in the given byte order.
func ReadFixed[T wire.Fixed](r *Reader, order binary.ByteOrder) (T, error) {
	return read(r, "fixed", func(b []byte) (T, int, wire.DecodeResult) {
		return wire.ReadFixed[T](b, order)
	})
}

// Skip advances past the next token. Containers are skipped with all their
// children. On error the cursor is left where it was.
func (r *Reader) Skip() error {
	m := r.mark()
	if err := r.skip(); err != nil {
		r.restore(m)
		return err
	}
	return nil
}

// TrySkip is Skip that reports failure as false.
func (r *Reader) TrySkip() bool { return r.Skip() == nil }

func (r *Reader) skip() error {
	for pending := uint64(1); pending > 0; pending-- {
		code, err := r.NextCode()
		if err != nil {
			return err
		}
		if size := scalarSize(code); size > 0 {
			if err := r.skipBytes(size); err != nil {
				return err
			}
			continue
		}
		switch wire.TypeOf(code) {
		case wire.TypeArray:
			n, err := r.ReadArrayHeader()
			if err != nil {
				return err
			}
			pending += uint64(n)
		case wire.TypeMap:
			n, err := r.ReadMapHeader()
			if err != nil {
				return err
			}
			pending += 2 * uint64(n)
		case wire.TypeString:
			n, err := r.ReadStringHeader()
			if err != nil {
				return err
			}
			if err := r.skipBytes(n); err != nil {
				return err
			}
		case wire.TypeBinary:
			n, err := r.ReadBinHeader()
			if err != nil {
				return err
			}
			if err := r.skipBytes(n); err != nil {
				return err
			}
		case wire.TypeExtension:
			h, err := r.ReadExtensionHeader()
			if err != nil {
				return err
			}
			if err := r.skipBytes(int(h.Length)); err != nil {
				return err
			}
		default:
			return &TokenError{Offset: r.pos, Code: code, Want: "any token", Err: ErrUnknownToken}
		}
	}
	return nil
}

// scalarSize is the full size of fixed-width tokens, or 0 for tokens that
// carry a length.
func scalarSize(code byte) int {
	switch {
	case code <= wire.PosFixIntMax, code >= wire.NegFixIntMin:
		return 1
	}
	switch code {
	case wire.Nil, wire.False, wire.True:
		return 1
	case wire.Uint8, wire.Int8:
		return 2
	case wire.Uint16, wire.Int16:
		return 3
	case wire.Uint32, wire.Int32, wire.Float32:
		return 5
	case wire.Uint64, wire.Int64, wire.Float64:
		return 9
	}
	return 0
}

func (r *Reader) skipBytes(n int) error {
	if n > r.Remaining() {
		return r.endOfStream(n)
	}
	r.advance(n)
	return nil
}
