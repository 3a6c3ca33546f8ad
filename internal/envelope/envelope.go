// Package envelope frames a stored document so corrupt or foreign entries can
// be told apart from values the codec merely fails to decode.
//
// Layout:
//
//	magic(4, raw "WBUF") | ver(1, raw) | stored-at (timestamp token) | vlen (uint32 token, 5 bytes) | payload(vlen)
//
// vlen is reserved before the payload is encoded and patched afterwards, so the
// payload streams straight into the sink.
package envelope

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/unkn0wn-root/wirebuf/reader"
	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/writer"
)

const (
	magic   uint32 = 'W'<<24 | 'B'<<16 | 'U'<<8 | 'F'
	version byte   = 1
)

var ErrCorrupt = errors.New("store: corrupt entry")

type Header struct {
	StoredAt time.Time
}

// Frame is an open envelope; the payload goes into the writer's sink between
// Begin and Close.
type Frame struct {
	w      *writer.Writer
	lenOff int
	start  int
}

func Begin(w *writer.Writer, h Header) (*Frame, error) {
	if err := writer.WriteFixed(w, magic, binary.BigEndian); err != nil {
		return nil, err
	}
	if err := w.Sink().WriteByte(version); err != nil {
		return nil, err
	}
	if err := w.WriteTimestamp(h.StoredAt); err != nil {
		return nil, err
	}
	off, err := w.ReserveUint32()
	if err != nil {
		return nil, err
	}
	return &Frame{w: w, lenOff: off, start: w.Sink().Committed()}, nil
}

// Close patches the payload length.
func (f *Frame) Close() error {
	n := f.w.Sink().Committed() - f.start
	if uint64(n) > uint64(^uint32(0)) {
		return fmt.Errorf("%w: %d", writer.ErrTooLarge, n)
	}
	return f.w.PatchUint32(f.lenOff, uint32(n))
}

// Open validates the envelope and returns the payload as a sub-sequence of
// src, without copying.
func Open(src seq.Sequence) (Header, seq.Sequence, error) {
	r := reader.New(src)
	m, err := reader.ReadFixed[uint32](r, binary.BigEndian)
	if err != nil || m != magic {
		return Header{}, seq.Sequence{}, ErrCorrupt
	}
	v, err := reader.ReadFixed[uint8](r, binary.BigEndian)
	if err != nil || v != version {
		return Header{}, seq.Sequence{}, ErrCorrupt
	}
	at, err := r.ReadTimestamp()
	if err != nil {
		return Header{}, seq.Sequence{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	n, err := r.ReadUint32()
	if err != nil || int64(n) != int64(r.Remaining()) {
		return Header{}, seq.Sequence{}, ErrCorrupt
	}
	payload, err := r.ReadRaw(int(n))
	if err != nil {
		return Header{}, seq.Sequence{}, ErrCorrupt
	}
	return Header{StoredAt: at}, payload, nil
}
