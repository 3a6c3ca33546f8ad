// Package asynchook moves wirebuf.Hooks calls off the hot path.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    AllocatedEvery: 100, // sample ~every 100th allocation
//	    SelfHealEvery:  1,   // log every self-heal
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	pool, _ := wirebuf.New(wirebuf.Options{Hooks: hooks})
//
// Events are dropped, and counted, when the queue is full.
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/wirebuf"
)

type Hooks struct {
	inner   wirebuf.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards q against send-after-close
	closed  bool
	dropped atomic.Uint64
}

var _ wirebuf.Hooks = (*Hooks)(nil)

func New(inner wirebuf.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events after Close are
// dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) SinkAllocated(hint, c int) { h.try(func() { h.inner.SinkAllocated(hint, c) }) }
func (h *Hooks) SinkReused(c int)          { h.try(func() { h.inner.SinkReused(c) }) }
func (h *Hooks) SinkRecycled(c int)        { h.try(func() { h.inner.SinkRecycled(c) }) }
func (h *Hooks) SinkDiscarded(c int)       { h.try(func() { h.inner.SinkDiscarded(c) }) }
func (h *Hooks) StoreSetRejected(k string) { h.try(func() { h.inner.StoreSetRejected(k) }) }
func (h *Hooks) StoreSelfHeal(k, r string) { h.try(func() { h.inner.StoreSelfHeal(k, r) }) }
func (h *Hooks) ReleaseRejected(pins, freezes int, err error) {
	h.try(func() { h.inner.ReleaseRejected(pins, freezes, err) })
}
