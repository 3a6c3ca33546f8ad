package bigcache

import (
	"context"
	"testing"
	"time"

	"github.com/unkn0wn-root/wirebuf/codec"
	"github.com/unkn0wn-root/wirebuf/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), Config{LifeWindow: time.Minute, MaxEntriesInWindow: 64, MaxEntrySize: 64})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestGetSetDel(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("miss: ok=%v err=%v", ok, err)
	}
	v := []byte("value")
	if ok, err := s.Set(ctx, "k", v, 1, 0); !ok || err != nil {
		t.Fatalf("Set: %v %v", ok, err)
	}
	v[0] = 'X'
	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(got) != "value" {
		t.Fatalf("Get: %q %v %v", got, ok, err)
	}
	if err := s.Del(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("deleting a missing key: %v", err)
	}
}

func TestOversizedRejectedAndCounted(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, Config{LifeWindow: time.Minute, MaxEntriesInWindow: 64, MaxEntrySize: 64, MaxValueSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	if ok, err := s.Set(ctx, "big", make([]byte, 9), 1, 0); ok || err != nil {
		t.Fatalf("Set: ok=%v err=%v; want rejection", ok, err)
	}
	if ok, err := s.Set(ctx, "fits", make([]byte, 8), 1, 0); !ok || err != nil {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	_, _, _ = s.Get(ctx, "big")
	_, _, _ = s.Get(ctx, "fits")
	st := s.Stats()
	if st.Hits != 1 || st.Misses != 1 || s.Len() != 1 {
		t.Fatalf("stats=%+v len=%d", st, s.Len())
	}
}

func TestDocumentsOverBigCache(t *testing.T) {
	ctx := context.Background()
	d, err := store.NewDocuments(store.Options[any]{Namespace: "v", Store: newTestStore(t), Codec: codec.Value{}})
	if err != nil {
		t.Fatal(err)
	}
	in := map[string]any{"n": int64(1), "s": "x"}
	if err := d.Put(ctx, "a", in, 0); err != nil {
		t.Fatal(err)
	}
	out, ok, err := d.Get(ctx, "a")
	if err != nil || !ok {
		t.Fatalf("Get: %v %v", ok, err)
	}
	m := out.(map[string]any)
	if m["n"] != int64(1) || m["s"] != "x" {
		t.Fatalf("got %v", m)
	}
}
