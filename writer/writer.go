// Package writer appends wire tokens to a sink.
//
// Each write asks the sink for a view large enough for the token, encodes into
// it and commits exactly the encoded size. Errors come from the sink (frozen,
// released) or from values the format cannot represent.
package writer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/sink"
	"github.com/unkn0wn-root/wirebuf/wire"
)

var ErrTooLarge = errors.New("writer: length exceeds 32 bits")

type Writer struct {
	s *sink.Sink
}

func New(s *sink.Sink) *Writer { return &Writer{s: s} }

func (w *Writer) Sink() *sink.Sink { return w.s }

// token reserves size bytes, encodes with put and commits what put wrote.
func (w *Writer) token(size int, put func([]byte) (int, bool)) error {
	view, err := w.s.GetWritableView(size)
	if err != nil {
		return err
	}
	n, ok := put(view)
	if !ok {
		return fmt.Errorf("writer: view of %d bytes for %d byte token", len(view), n)
	}
	return w.s.Advance(n)
}

func (w *Writer) WriteNil() error {
	return w.token(1, wire.TryWriteNil)
}

func (w *Writer) WriteBool(v bool) error {
	return w.token(1, func(b []byte) (int, bool) { return wire.TryWriteBool(b, v) })
}

func (w *Writer) WriteInt(v int64) error {
	return w.token(wire.IntSize(v), func(b []byte) (int, bool) { return wire.TryWriteInt(b, v) })
}

func (w *Writer) WriteUint(v uint64) error {
	return w.token(wire.UintSize(v), func(b []byte) (int, bool) { return wire.TryWriteUint(b, v) })
}

func (w *Writer) WriteFloat32(v float32) error {
	return w.token(5, func(b []byte) (int, bool) { return wire.TryWriteFloat32(b, v) })
}

func (w *Writer) WriteFloat64(v float64) error {
	return w.token(9, func(b []byte) (int, bool) { return wire.TryWriteFloat64(b, v) })
}

func (w *Writer) WriteTimestamp(t time.Time) error {
	return w.token(wire.TimestampSize(t), func(b []byte) (int, bool) { return wire.TryWriteTimestamp(b, t) })
}

func length(n int) (uint32, error) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d", ErrTooLarge, n)
	}
	return uint32(n), nil
}

func (w *Writer) WriteArrayHeader(n int) error {
	l, err := length(n)
	if err != nil {
		return err
	}
	return w.token(wire.ArrayHeaderSize(l), func(b []byte) (int, bool) { return wire.TryWriteArrayHeader(b, l) })
}

func (w *Writer) WriteMapHeader(n int) error {
	l, err := length(n)
	if err != nil {
		return err
	}
	return w.token(wire.MapHeaderSize(l), func(b []byte) (int, bool) { return wire.TryWriteMapHeader(b, l) })
}

func (w *Writer) WriteStringHeader(n int) error {
	l, err := length(n)
	if err != nil {
		return err
	}
	return w.token(wire.StringHeaderSize(l), func(b []byte) (int, bool) { return wire.TryWriteStringHeader(b, l) })
}

func (w *Writer) WriteBinHeader(n int) error {
	l, err := length(n)
	if err != nil {
		return err
	}
	return w.token(wire.BinHeaderSize(l), func(b []byte) (int, bool) { return wire.TryWriteBinHeader(b, l) })
}

func (w *Writer) WriteExtensionHeader(h wire.ExtensionHeader) error {
	return w.token(wire.ExtensionHeaderSize(h.Length), func(b []byte) (int, bool) { return wire.TryWriteExtensionHeader(b, h) })
}

// WriteString writes a string header followed by the payload.
func (w *Writer) WriteString(s string) error {
	if err := w.WriteStringHeader(len(s)); err != nil {
		return err
	}
	_, err := w.s.WriteString(s)
	return err
}

func (w *Writer) WriteBinary(p []byte) error {
	if err := w.WriteBinHeader(len(p)); err != nil {
		return err
	}
	_, err := w.s.Write(p)
	return err
}

func (w *Writer) WriteExtension(e wire.Extension) error {
	l, err := length(len(e.Data))
	if err != nil {
		return err
	}
	if err := w.WriteExtensionHeader(wire.ExtensionHeader{Type: e.Type, Length: l}); err != nil {
		return err
	}
	_, err = w.s.Write(e.Data)
	return err
}

// WriteRaw copies already encoded tokens verbatim.
func (w *Writer) WriteRaw(src seq.Sequence) error {
	return w.s.WriteSequence(src)
}

// WriteFixed appends v untagged in the given byte order.
func WriteFixed[T wire.Fixed](w *Writer, v T, order binary.ByteOrder) error {
	return w.token(wire.FixedSize[T](), func(b []byte) (int, bool) { return wire.PutFixed(b, v, order) })
}

// ReserveUint32 writes a forced-width uint32 placeholder and returns its
// offset for PatchUint32. Useful when a count is only known after the payload
// has been written.
func (w *Writer) ReserveUint32() (int, error) {
	off := w.s.Committed()
	err := w.token(5, func(b []byte) (int, bool) { return wire.TryWriteForcedUint32(b, 0) })
	return off, err
}

// PatchUint32 rewrites a placeholder written by ReserveUint32.
func (w *Writer) PatchUint32(offset int, v uint32) error {
	var tok [5]byte
	wire.TryWriteForcedUint32(tok[:], v)
	return w.s.UpdateCommitted(tok[:], offset)
}
