package asynchook

import (
	"sync"
	"testing"

	"github.com/unkn0wn-root/wirebuf"
)

type countHooks struct {
	wirebuf.NopHooks
	mu      sync.Mutex
	reused  int
	healed  []string
	blocker chan struct{}
}

func (c *countHooks) SinkReused(int) {
	if c.blocker != nil {
		<-c.blocker
	}
	c.mu.Lock()
	c.reused++
	c.mu.Unlock()
}

func (c *countHooks) StoreSelfHeal(k, r string) {
	c.mu.Lock()
	c.healed = append(c.healed, k+"|"+r)
	c.mu.Unlock()
}

func TestDeliversBeforeClose(t *testing.T) {
	inner := &countHooks{}
	h := New(inner, 2, 64)
	for i := 0; i < 10; i++ {
		h.SinkReused(64)
	}
	h.StoreSelfHeal("doc:a:b", "value_decode")
	h.Close()
	h.Close()

	if inner.reused != 10 || len(inner.healed) != 1 || inner.healed[0] != "doc:a:b|value_decode" {
		t.Fatalf("reused=%d healed=%v", inner.reused, inner.healed)
	}
	h.SinkReused(64) // after Close: dropped, no panic
	if h.Dropped() != 1 {
		t.Fatalf("dropped=%d", h.Dropped())
	}
}

func TestDropsWhenFull(t *testing.T) {
	inner := &countHooks{blocker: make(chan struct{})}
	h := New(inner, 1, 1)
	for i := 0; i < 5; i++ {
		h.SinkReused(64)
	}
	close(inner.blocker)
	h.Close()
	if h.Dropped() == 0 || uint64(inner.reused)+h.Dropped() != 5 {
		t.Fatalf("reused=%d dropped=%d", inner.reused, h.Dropped())
	}
}
