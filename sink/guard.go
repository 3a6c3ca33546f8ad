package sink

import "fmt"

// FreezeWrite takes one level of the write lock. Every mutation fails with
// ErrFrozen until each FreezeWrite is matched by UnfreezeWrite.
func (s *Sink) FreezeWrite() { s.freezes.Add(1) }

func (s *Sink) UnfreezeWrite() error {
	for {
		n := s.freezes.Load()
		if n <= 0 {
			return ErrNotFrozen
		}
		if s.freezes.CompareAndSwap(n, n-1) {
			return nil
		}
	}
}

func (s *Sink) Frozen() bool     { return s.freezes.Load() > 0 }
func (s *Sink) FreezeCount() int { return int(s.freezes.Load()) }
func (s *Sink) PinCount() int    { return int(s.pins.Load()) }
func (s *Sink) Pinned() bool     { return s.pins.Load() > 0 }

// PinHandle is the address-stability token returned by Pin. The backing array
// it points into does not move until the matching Unpin.
type PinHandle struct {
	sink  *Sink
	index int
}

func (h *PinHandle) Index() int { return h.index }

// Addr returns the address of the pinned element.
func (h *PinHandle) Addr() *byte { return &h.sink.buf[h.index] }

// Bytes returns the backing storage from the pinned element to the end of the
// capacity.
func (h *PinHandle) Bytes() []byte { return h.sink.buf[h.index:] }

// Pin guards the backing array against relocation. The first pin also
// write-freezes the sink; nested pins return the handle created by the first.
func (s *Sink) Pin(index int) (*PinHandle, error) {
	if s.released {
		return nil, ErrReleased
	}
	if s.pins.Load() > 0 {
		s.pins.Add(1)
		return s.pin, nil
	}
	if index < 0 || index >= len(s.buf) {
		return nil, fmt.Errorf("%w: pin index %d capacity %d", ErrOutOfRange, index, len(s.buf))
	}
	s.FreezeWrite()
	s.pin = &PinHandle{sink: s, index: index}
	s.pins.Add(1)
	return s.pin, nil
}

// Unpin releases one pin level. The handle and the implicit write-freeze are
// dropped when the last level goes.
func (s *Sink) Unpin() error {
	for {
		n := s.pins.Load()
		if n <= 0 {
			return ErrNotPinned
		}
		if !s.pins.CompareAndSwap(n, n-1) {
			continue
		}
		if n == 1 {
			s.pin = nil
			return s.UnfreezeWrite()
		}
		return nil
	}
}
