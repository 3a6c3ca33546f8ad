package sink

import "fmt"

// TryRelease reclaims the sink unless it is pinned or write-frozen. Releasing
// an already released sink succeeds and does nothing. Once released, every
// mutation fails with ErrReleased. A pooled sink may be handed to a new owner
// as soon as it is recycled, so the previous owner must drop its reference.
func (s *Sink) TryRelease() bool {
	if s.released {
		return true
	}
	if s.pins.Load() > 0 || s.freezes.Load() > 0 {
		return false
	}
	s.released = true
	s.viewLen = 0
	s.setCommitted(0)
	s.observer = nil
	if s.recycler != nil {
		s.recycler.Recycle(s)
		return true
	}
	s.buf = nil
	return true
}

// Release is TryRelease that reports a busy sink as ErrBusy.
func (s *Sink) Release() error {
	if s.TryRelease() {
		return nil
	}
	return fmt.Errorf("%w: pins=%d freezes=%d", ErrBusy, s.pins.Load(), s.freezes.Load())
}

func (s *Sink) Released() bool { return s.released }

// Recycler returns the owner a released sink goes back to, or nil.
func (s *Sink) Recycler() Recycler { return s.recycler }

// Reacquire marks a recycled sink live again. Providers call it before handing
// a pooled sink out.
func (s *Sink) Reacquire() {
	s.released = false
	s.viewLen = 0
	s.committed = 0
}

// Slice returns a sink over committed bytes [start, start+length). It shares
// the backing storage but keeps its own cursor: its committed length starts at
// length and growing it detaches from the receiver. Slice(0, 0) is the
// receiver itself.
//
// The slice borrows the receiver's storage: it is valid only while the
// receiver is live. Once a pooled receiver is released its storage goes back
// to the pool and is overwritten by the next owner; use Clone for data that
// must outlive it.
func (s *Sink) Slice(start, length int) (*Sink, error) {
	if start == 0 && length == 0 {
		return s, nil
	}
	if start < 0 || length < 0 || start > s.committed || length > s.committed-start {
		return nil, fmt.Errorf("%w: slice [%d,%d) of committed %d", ErrOutOfRange, start, start+length, s.committed)
	}
	end := start + length
	return &Sink{buf: s.buf[start:end:end], committed: length}, nil
}

// Clone returns an independent sink with the same committed bytes and
// capacity. Later writes to either side do not affect the other.
func (s *Sink) Clone() *Sink {
	c := New(len(s.buf))
	copy(c.buf, s.buf[:s.committed])
	c.committed = s.committed
	return c
}
