package seq

import (
	"errors"
	"io"
)

var ErrInvalidUnread = errors.New("seq: UnreadByte must follow ReadByte")

// Stream adapts a Sequence to io.Reader for decoders that consume a byte
// stream (msgpack, cbor). It also implements io.ByteScanner so those decoders
// do not wrap it in an extra bufio layer.
type Stream struct {
	s     Sequence
	seg   int
	off   int
	last  int // segment of the last ReadByte, -1 when UnreadByte is not allowed
	total int
}

var (
	_ io.Reader      = (*Stream)(nil)
	_ io.ByteScanner = (*Stream)(nil)
)

func NewStream(s Sequence) *Stream { return &Stream{s: s, last: -1} }

// Consumed reports how many bytes have been read so far.
func (r *Stream) Consumed() int { return r.total }

func (r *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := 0
	for n < len(p) && r.seg < len(r.s.segs) {
		seg := r.s.segs[r.seg]
		c := copy(p[n:], seg[r.off:])
		n += c
		r.off += c
		if r.off == len(seg) {
			r.seg++
			r.off = 0
		}
	}
	r.total += n
	r.last = -1
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (r *Stream) ReadByte() (byte, error) {
	if r.seg >= len(r.s.segs) {
		return 0, io.EOF
	}
	seg := r.s.segs[r.seg]
	b := seg[r.off]
	r.last = r.seg
	r.off++
	if r.off == len(seg) {
		r.seg++
		r.off = 0
	}
	r.total++
	return b, nil
}

func (r *Stream) UnreadByte() error {
	if r.last < 0 {
		return ErrInvalidUnread
	}
	if r.seg != r.last {
		r.seg = r.last
		r.off = len(r.s.segs[r.seg])
	}
	r.off--
	r.total--
	r.last = -1
	return nil
}
