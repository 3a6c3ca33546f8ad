// Package seq models a logical byte stream backed by several non-contiguous
// chunks, e.g. the slices handed back by successive network reads.
//
// A Sequence never copies on construction or slicing. Empty chunks are dropped
// so every segment a caller sees holds at least one byte.
package seq

import (
	"errors"
	"fmt"
)

var ErrOutOfRange = errors.New("seq: range out of bounds")

// Sequence is an immutable view over ordered byte segments.
// The zero value is an empty sequence.
type Sequence struct {
	segs [][]byte
	n    int
}

// Of builds a sequence over segs without copying them.
func Of(segs ...[]byte) Sequence {
	var s Sequence
	for _, b := range segs {
		if len(b) == 0 {
			continue
		}
		s.segs = append(s.segs, b)
		s.n += len(b)
	}
	return s
}

// Split cuts b at the given ascending offsets. Offsets outside (0, len(b)) and
// duplicates are ignored.
func Split(b []byte, offsets ...int) Sequence {
	segs := make([][]byte, 0, len(offsets)+1)
	prev := 0
	for _, off := range offsets {
		if off <= prev || off >= len(b) {
			continue
		}
		segs = append(segs, b[prev:off])
		prev = off
	}
	segs = append(segs, b[prev:])
	return Of(segs...)
}

func (s Sequence) Len() int              { return s.n }
func (s Sequence) IsEmpty() bool         { return s.n == 0 }
func (s Sequence) IsSingleSegment() bool { return len(s.segs) <= 1 }
func (s Sequence) SegmentCount() int     { return len(s.segs) }
func (s Sequence) Segment(i int) []byte  { return s.segs[i] }
func (s Sequence) Segments() [][]byte    { return s.segs }

// First returns the first segment, or nil for an empty sequence.
func (s Sequence) First() []byte {
	if len(s.segs) == 0 {
		return nil
	}
	return s.segs[0]
}

// Slice returns the sub-sequence [start, start+length).
func (s Sequence) Slice(start, length int) (Sequence, error) {
	if start < 0 || length < 0 || start > s.n || length > s.n-start {
		return Sequence{}, fmt.Errorf("%w: start=%d length=%d len=%d", ErrOutOfRange, start, length, s.n)
	}
	var out Sequence
	if length == 0 {
		return out, nil
	}
	end := start + length
	pos := 0
	for _, seg := range s.segs {
		segEnd := pos + len(seg)
		if segEnd <= start {
			pos = segEnd
			continue
		}
		if pos >= end {
			break
		}
		lo := max(start-pos, 0)
		hi := min(end-pos, len(seg))
		out.segs = append(out.segs, seg[lo:hi])
		out.n += hi - lo
		pos = segEnd
	}
	return out, nil
}

// CopyTo copies as many bytes as fit into dst and reports how many were copied.
func (s Sequence) CopyTo(dst []byte) int {
	n := 0
	for _, seg := range s.segs {
		if n == len(dst) {
			break
		}
		n += copy(dst[n:], seg)
	}
	return n
}

// Bytes returns the sequence as one contiguous slice. A single-segment sequence
// is returned as is; anything else is flattened into a fresh slice.
func (s Sequence) Bytes() []byte {
	switch len(s.segs) {
	case 0:
		return nil
	case 1:
		return s.segs[0]
	}
	out := make([]byte, s.n)
	s.CopyTo(out)
	return out
}
