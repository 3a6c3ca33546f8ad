package wirebuf

import (
	"errors"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/wirebuf/sink"
)

const minClassShift = 6

const minClassSize = 1 << minClassShift

// Pool is a Provider that keeps released sinks in power-of-two size classes.
// A sink sits in class k when its capacity is at least 1<<k, so any sink
// taken from the class satisfies every hint up to 1<<k. Safe for concurrent use.
type Pool struct {
	classes     []sync.Pool
	defaultSize int
	maxRetained int

	log   Logger
	hooks Hooks

	allocated atomic.Uint64
	reused    atomic.Uint64
	recycled  atomic.Uint64
	discarded atomic.Uint64
	rejected  atomic.Uint64
}

// Stats is a point-in-time copy of the pool counters.
type Stats struct {
	Allocated uint64
	Reused    uint64
	Recycled  uint64
	Discarded uint64
	Rejected  uint64
}

func newPool(defaultSize, maxRetained int, log Logger, hooks Hooks) *Pool {
	top := bits.Len(uint(maxRetained)) - 1 // floor(log2)
	return &Pool{
		classes:     make([]sync.Pool, top-minClassShift+1),
		defaultSize: defaultSize,
		maxRetained: maxRetained,
		log:         log,
		hooks:       hooks,
	}
}

// ceilClass returns the smallest class whose sinks hold n bytes, or -1 when n
// is beyond the largest class.
func (p *Pool) ceilClass(n int) int {
	if n <= minClassSize {
		return 0
	}
	c := bits.Len(uint(n-1)) - minClassShift
	if c >= len(p.classes) {
		return -1
	}
	return c
}

// floorClass returns the class a sink of capacity n is filed under, or -1
// when it should not be retained.
func (p *Pool) floorClass(n int) int {
	if n < minClassSize || n > p.maxRetained {
		return -1
	}
	return min(bits.Len(uint(n))-1-minClassShift, len(p.classes)-1)
}

func (p *Pool) GetSink(sizeHint int) *sink.Sink {
	if sizeHint <= 0 {
		sizeHint = p.defaultSize
	}
	c := p.ceilClass(sizeHint)
	if c < 0 {
		p.allocated.Add(1)
		p.hooks.SinkAllocated(sizeHint, sizeHint)
		p.log.Debug("sink beyond size classes", Fields{"size_hint": sizeHint})
		return sink.NewPooled(sizeHint, p)
	}
	if v := p.classes[c].Get(); v != nil {
		s := v.(*sink.Sink)
		s.Reacquire()
		p.reused.Add(1)
		p.hooks.SinkReused(s.Capacity())
		return s
	}
	capacity := minClassSize << c
	p.allocated.Add(1)
	p.hooks.SinkAllocated(sizeHint, capacity)
	return sink.NewPooled(capacity, p)
}

// Release hands s back. Sinks owned by another provider, or standalone ones,
// are released through their own owner.
func (p *Pool) Release(s *sink.Sink) error {
	if s == nil {
		return ErrNilSink
	}
	if err := s.Release(); err != nil {
		if errors.Is(err, sink.ErrBusy) {
			p.rejected.Add(1)
			p.hooks.ReleaseRejected(s.PinCount(), s.FreezeCount(), err)
			p.log.Warn("release rejected", Fields{"pins": s.PinCount(), "freezes": s.FreezeCount()})
		}
		return err
	}
	return nil
}

// Recycle implements sink.Recycler. Sinks call it from Release once they are
// reset.
func (p *Pool) Recycle(s *sink.Sink) {
	capacity := s.Capacity()
	c := p.floorClass(capacity)
	if c < 0 {
		p.discarded.Add(1)
		p.hooks.SinkDiscarded(capacity)
		return
	}
	p.recycled.Add(1)
	p.hooks.SinkRecycled(capacity)
	p.classes[c].Put(s)
}

func (p *Pool) Stats() Stats {
	return Stats{
		Allocated: p.allocated.Load(),
		Reused:    p.reused.Load(),
		Recycled:  p.recycled.Load(),
		Discarded: p.discarded.Load(),
		Rejected:  p.rejected.Load(),
	}
}

var _ sink.Recycler = (*Pool)(nil)
