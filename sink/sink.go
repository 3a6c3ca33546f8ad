// Package sink implements an append-only, growable byte destination.
//
// A Sink hands out writable views at its cursor, commits what the caller
// wrote into them and keeps the committed region readable as one contiguous
// slice. Two re-entrant guards protect it: a write-freeze that blocks every
// mutation, and a pin that additionally promises the backing array will not
// move while external code holds its address.
//
// A Sink is single-owner. The freeze and pin counters are atomic, but writes,
// growth and release are not synchronized; serialize access per instance.
package sink

import (
	"fmt"
	"io"
	"iter"
	"sync/atomic"

	"github.com/unkn0wn-root/wirebuf/seq"
)

const minGrow = 64

// Recycler takes back sinks whose owner released them. Providers implement it
// to pool backing storage.
type Recycler interface {
	Recycle(s *Sink)
}

type Sink struct {
	buf       []byte // len(buf) == capacity
	committed int
	viewLen   int // writable bytes handed out by the last GetWritableView

	freezes atomic.Int32
	pins    atomic.Int32
	pin     *PinHandle

	version  uint64
	observer Observer

	recycler Recycler
	released bool
}

var (
	_ io.Writer       = (*Sink)(nil)
	_ io.ByteWriter   = (*Sink)(nil)
	_ io.StringWriter = (*Sink)(nil)
)

// New allocates a standalone sink with the given initial capacity.
func New(capacity int) *Sink {
	if capacity < 0 {
		capacity = 0
	}
	return &Sink{buf: make([]byte, capacity)}
}

// NewPooled allocates a sink that hands itself to r when released.
func NewPooled(capacity int, r Recycler) *Sink {
	s := New(capacity)
	s.recycler = r
	return s
}

func (s *Sink) Capacity() int  { return len(s.buf) }
func (s *Sink) Committed() int { return s.committed }
func (s *Sink) Available() int { return len(s.buf) - s.committed }

// Bytes returns the committed region without copying. The slice is only valid
// until the next growth of the sink.
func (s *Sink) Bytes() []byte { return s.buf[:s.committed:s.committed] }

// Sequence exposes the committed region as a single-segment sequence.
func (s *Sink) Sequence() seq.Sequence { return seq.Of(s.Bytes()) }

// writable reports why the sink cannot be mutated, if it cannot.
func (s *Sink) writable() error {
	if s.released {
		return ErrReleased
	}
	if s.Frozen() {
		return ErrFrozen
	}
	return nil
}

// GetWritableView returns at least max(sizeHint, 1) writable bytes at the
// cursor. It does not advance; call Advance with the number of bytes used.
func (s *Sink) GetWritableView(sizeHint int) ([]byte, error) {
	if err := s.writable(); err != nil {
		return nil, err
	}
	if sizeHint < 1 {
		sizeHint = 1
	}
	if s.Available() < sizeHint {
		s.grow(sizeHint)
	}
	view := s.buf[s.committed:]
	s.viewLen = len(view)
	return view, nil
}

func (s *Sink) grow(need int) {
	c := max(len(s.buf)*2, s.committed+need, minGrow)
	nb := make([]byte, c)
	copy(nb, s.buf[:s.committed])
	s.buf = nb
}

// Advance commits count bytes of the most recent writable view.
func (s *Sink) Advance(count int) error {
	if err := s.writable(); err != nil {
		return err
	}
	if count < 0 || count > s.viewLen {
		return fmt.Errorf("%w: advance %d with %d writable", ErrOutOfRange, count, s.viewLen)
	}
	s.viewLen -= count
	s.setCommitted(s.committed + count)
	return nil
}

func (s *Sink) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, s.writable()
	}
	view, err := s.GetWritableView(len(p))
	if err != nil {
		return 0, err
	}
	n := copy(view, p)
	if err := s.Advance(n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Sink) WriteByte(b byte) error {
	view, err := s.GetWritableView(1)
	if err != nil {
		return err
	}
	view[0] = b
	return s.Advance(1)
}

func (s *Sink) WriteString(str string) (int, error) {
	if err := s.writable(); err != nil {
		return 0, err
	}
	view, err := s.GetWritableView(len(str))
	if err != nil {
		return 0, err
	}
	n := copy(view, str)
	if err := s.Advance(n); err != nil {
		return 0, err
	}
	return n, nil
}

// WriteSequence appends every segment of src.
func (s *Sink) WriteSequence(src seq.Sequence) error {
	view, err := s.GetWritableView(src.Len())
	if err != nil {
		return err
	}
	return s.Advance(src.CopyTo(view))
}

// WriteSeq appends bytes produced by an iterator, growing as needed.
func (s *Sink) WriteSeq(src iter.Seq[byte]) error {
	if err := s.writable(); err != nil {
		return err
	}
	for b := range src {
		if err := s.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// UpdateCommitted overwrites already committed bytes starting at offset.
// It is meant for backpatching length prefixes.
func (s *Sink) UpdateCommitted(patch []byte, offset int) error {
	if err := s.writable(); err != nil {
		return err
	}
	if offset < 0 || offset > s.committed || len(patch) > s.committed-offset {
		return fmt.Errorf("%w: patch [%d,%d) past committed %d", ErrOutOfRange, offset, offset+len(patch), s.committed)
	}
	copy(s.buf[offset:], patch)
	return nil
}

// Clear drops committed data, keeping the backing storage.
func (s *Sink) Clear() error {
	if err := s.writable(); err != nil {
		return err
	}
	s.viewLen = 0
	s.setCommitted(0)
	return nil
}

// ToArray copies the committed bytes into a fresh slice.
func (s *Sink) ToArray() []byte {
	out := make([]byte, s.committed)
	copy(out, s.buf)
	return out
}

func (s *Sink) String() string {
	return fmt.Sprintf("sink{committed=%d capacity=%d freezes=%d pins=%d}",
		s.committed, len(s.buf), s.freezes.Load(), s.pins.Load())
}
