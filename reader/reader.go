// Package reader pulls wire tokens out of a segmented byte sequence.
//
// Every read first decodes against the contiguous bytes left in the current
// segment. When a token straddles a segment boundary the reader copies exactly
// the bytes the decoder asked for into a small scratch buffer and decodes once
// more from there, so the common case stays copy-free.
package reader

import (
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/wire"
)

// An extension header whose length field straddles a boundary can need a
// second copy once its payload length is known.
const maxScratchRetries = 2

type Reader struct {
	seq     seq.Sequence
	seg     int
	off     int
	pos     int
	scratch [wire.MaxTokenHeader + 1]byte
}

type position struct{ seg, off, pos int }

func New(s seq.Sequence) *Reader { return &Reader{seq: s} }

// NewBytes is New over a single contiguous slice.
func NewBytes(b []byte) *Reader { return New(seq.Of(b)) }

// Clone returns an independent reader at the same position.
func (r *Reader) Clone() *Reader {
	c := *r
	return &c
}

func (r *Reader) Sequence() seq.Sequence { return r.seq }
func (r *Reader) Consumed() int          { return r.pos }
func (r *Reader) Remaining() int         { return r.seq.Len() - r.pos }
func (r *Reader) End() bool              { return r.pos >= r.seq.Len() }

func (r *Reader) current() []byte {
	if r.seg >= r.seq.SegmentCount() {
		return nil
	}
	return r.seq.Segment(r.seg)[r.off:]
}

func (r *Reader) mark() position     { return position{r.seg, r.off, r.pos} }
func (r *Reader) restore(p position) { r.seg, r.off, r.pos = p.seg, p.off, p.pos }

// advance moves the cursor n bytes forward; callers check Remaining first.
func (r *Reader) advance(n int) {
	r.pos += n
	for n > 0 {
		rem := len(r.seq.Segment(r.seg)) - r.off
		if n < rem {
			r.off += n
			return
		}
		n -= rem
		r.seg++
		r.off = 0
	}
}

// peek copies len(dst) bytes from the cursor without moving it.
func (r *Reader) peek(dst []byte) bool {
	if len(dst) > r.Remaining() {
		return false
	}
	n, seg, off := 0, r.seg, r.off
	for n < len(dst) {
		c := copy(dst[n:], r.seq.Segment(seg)[off:])
		n += c
		seg++
		off = 0
	}
	return true
}

func (r *Reader) endOfStream(need int) error {
	return fmt.Errorf("%w: need %d at offset %d, %d remaining", ErrEndOfStream, need, r.pos, r.Remaining())
}

func (r *Reader) fail(res wire.DecodeResult, want string, need int) error {
	switch res {
	case wire.EmptyBuffer, wire.InsufficientBuffer:
		return r.endOfStream(need)
	}
	code := byte(0)
	if cur := r.current(); len(cur) > 0 {
		code = cur[0]
	}
	err := ErrUnregisteredToken
	if res == wire.Overflow {
		err = ErrOverflow
	}
	return &TokenError{Offset: r.pos, Code: code, Want: want, Err: err}
}

// read runs one decode against the current segment and falls back to the
// scratch buffer when the token is cut by a segment boundary.
func read[T any](r *Reader, want string, dec func([]byte) (T, int, wire.DecodeResult)) (T, error) {
	v, n, res := dec(r.current())
	if res == wire.Success {
		r.advance(n)
		return v, nil
	}
	for try := 0; res.NeedsMoreData() && try < maxScratchRetries; try++ {
		if n > len(r.scratch) || !r.peek(r.scratch[:n]) {
			var zero T
			return zero, r.endOfStream(n)
		}
		var m int
		v, m, res = dec(r.scratch[:n])
		if res == wire.Success {
			r.advance(m)
			return v, nil
		}
		n = m
	}
	var zero T
	return zero, r.fail(res, want, n)
}

// NextCode returns the leading byte of the next token without consuming it.
func (r *Reader) NextCode() (byte, error) {
	cur := r.current()
	if len(cur) == 0 {
		return 0, r.endOfStream(1)
	}
	return cur[0], nil
}

func (r *Reader) NextType() (wire.Type, error) {
	c, err := r.NextCode()
	if err != nil {
		return wire.TypeInvalid, err
	}
	return wire.TypeOf(c), nil
}

func (r *Reader) IsNil() bool {
	c, err := r.NextCode()
	return err == nil && c == wire.Nil
}

// TryReadNil consumes a nil token if one is next.
func (r *Reader) TryReadNil() bool {
	if r.IsNil() {
		r.advance(1)
		return true
	}
	return false
}

func (r *Reader) ReadNil() error {
	_, err := read(r, "nil", func(b []byte) (struct{}, int, wire.DecodeResult) {
		n, res := wire.TryReadNil(b)
		return struct{}{}, n, res
	})
	return err
}

func (r *Reader) ReadBool() (bool, error)       { return read(r, "bool", wire.TryReadBool) }
func (r *Reader) ReadInt8() (int8, error)       { return read(r, "int8", wire.TryReadInt8) }
func (r *Reader) ReadInt16() (int16, error)     { return read(r, "int16", wire.TryReadInt16) }
func (r *Reader) ReadInt32() (int32, error)     { return read(r, "int32", wire.TryReadInt32) }
func (r *Reader) ReadInt64() (int64, error)     { return read(r, "int64", wire.TryReadInt64) }
func (r *Reader) ReadUint8() (uint8, error)     { return read(r, "uint8", wire.TryReadUint8) }
func (r *Reader) ReadUint16() (uint16, error)   { return read(r, "uint16", wire.TryReadUint16) }
func (r *Reader) ReadUint32() (uint32, error)   { return read(r, "uint32", wire.TryReadUint32) }
func (r *Reader) ReadUint64() (uint64, error)   { return read(r, "uint64", wire.TryReadUint64) }
func (r *Reader) ReadFloat32() (float32, error) { return read(r, "float32", wire.TryReadFloat32) }
func (r *Reader) ReadFloat64() (float64, error) { return read(r, "float64", wire.TryReadFloat64) }

func (r *Reader) ReadTimestamp() (time.Time, error) {
	return read(r, "timestamp", wire.TryReadTimestamp)
}

// ReadInt reads an integer token into the platform int.
func (r *Reader) ReadInt() (int, error) {
	if strconv.IntSize == 64 {
		v, err := r.ReadInt64()
		return int(v), err
	}
	v, err := r.ReadInt32()
	return int(v), err
}

func (r *Reader) ReadUint() (uint, error) {
	if strconv.IntSize == 64 {
		v, err := r.ReadUint64()
		return uint(v), err
	}
	v, err := r.ReadUint32()
	return uint(v), err
}

// ReadChar reads an integer token holding a Unicode code point.
func (r *Reader) ReadChar() (rune, error) {
	return read(r, "rune", func(b []byte) (rune, int, wire.DecodeResult) {
		v, n, res := wire.TryReadInt32(b)
		if res == wire.Success && !utf8.ValidRune(v) {
			return 0, n, wire.Overflow
		}
		return v, n, res
	})
}

// Header reads. Lengths are returned as int; 32-bit platforms reject counts
// that do not fit.

func (r *Reader) ReadArrayHeader() (int, error) {
	return r.header("array header", wire.TryReadArrayHeader)
}

func (r *Reader) ReadMapHeader() (int, error) {
	return r.header("map header", wire.TryReadMapHeader)
}

func (r *Reader) ReadStringHeader() (int, error) {
	return r.header("string header", wire.TryReadStringHeader)
}

// ReadBinHeader reads a bin8/16/32 header. Older producers wrote binary blobs
// as raw strings, so a string header is accepted in its place.
func (r *Reader) ReadBinHeader() (int, error) {
	n, err := r.header("binary header", wire.TryReadBinHeader)
	if err == nil {
		return n, nil
	}
	if te, ok := err.(*TokenError); ok && te.Err == ErrUnregisteredToken {
		return r.header("binary header", wire.TryReadStringHeader)
	}
	return 0, err
}

func (r *Reader) ReadExtensionHeader() (wire.ExtensionHeader, error) {
	return read(r, "extension header", wire.TryReadExtensionHeader)
}

func (r *Reader) header(want string, dec func([]byte) (uint32, int, wire.DecodeResult)) (int, error) {
	v, err := read(r, want, dec)
	if err != nil {
		return 0, err
	}
	if uint64(v) > math.MaxInt {
		return 0, &TokenError{Offset: r.pos, Want: want, Err: ErrOverflow}
	}
	return int(v), nil
}
