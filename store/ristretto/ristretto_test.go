package ristretto

import (
	"context"
	"errors"
	"testing"

	"github.com/unkn0wn-root/wirebuf/codec"
	"github.com/unkn0wn-root/wirebuf/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestInvalidConfig(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestDocumentsOverRistretto(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	d, err := store.NewDocuments(store.Options[string]{
		Namespace:   "s",
		Store:       s,
		Codec:       codec.String{},
		ComputeCost: func(_ string, raw []byte) int64 { return int64(len(raw)) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Put(ctx, "k", "hello", 0); err != nil {
		t.Fatal(err)
	}
	s.Wait()
	v, ok, err := d.Get(ctx, "k")
	if err != nil || !ok || v != "hello" {
		t.Fatalf("Get: %q %v %v", v, ok, err)
	}
	if err := d.Del(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := d.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after Del")
	}
}

func TestOversizedAndCostDefault(t *testing.T) {
	ctx := context.Background()
	s, err := New(Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64, Metrics: true, MaxValueSize: 16})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	if ok, err := s.Set(ctx, "big", make([]byte, 17), 1, 0); ok || err != nil {
		t.Fatalf("Set: ok=%v err=%v; want rejection", ok, err)
	}
	if ok, err := s.Set(ctx, "small", []byte("abc"), 0, 0); !ok || err != nil {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	s.Wait()
	if got := s.Metrics().CostAdded(); got != 3 {
		t.Fatalf("cost added=%d, want len(value)", got)
	}
	if _, ok, _ := s.Get(ctx, "big"); ok {
		t.Fatalf("rejected entry must miss")
	}
}

func TestDocumentsDefaultCostIsPayloadLength(t *testing.T) {
	ctx := context.Background()
	s, err := New(Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64, Metrics: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })
	d, err := store.NewDocuments(store.Options[string]{Namespace: "s", Store: s, Codec: codec.String{}})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Put(ctx, "k", "priced by size", 0); err != nil {
		t.Fatal(err)
	}
	s.Wait()
	raw, ok, err := s.Get(ctx, "doc:s:k")
	if err != nil || !ok {
		t.Fatalf("Get: %v %v", ok, err)
	}
	if got := s.Metrics().CostAdded(); got != uint64(len(raw)) {
		t.Fatalf("cost added=%d, want %d", got, len(raw))
	}
}
