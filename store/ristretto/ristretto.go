// Package ristretto keeps encoded documents in a dgraph-io/ristretto cache,
// admitted and evicted by cost.
package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/wirebuf/store"
)

var ErrInvalidConfig = errors.New("ristretto store: invalid config")

// Store retains the slice passed to Set. It does not implement store.Copier,
// so Documents always hands it a private copy.
type Store struct {
	c        *rc.Cache
	maxValue int
}

var _ store.Store = (*Store)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool

	// MaxValueSize rejects larger entries with Set(ok=false). 0 means no limit.
	MaxValueSize int
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 || cfg.MaxValueSize < 0 {
		return nil, ErrInvalidConfig
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
		// Costs are payload bytes; the per-item bookkeeping is not charged.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c, maxValue: cfg.MaxValueSize}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		s.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set is asynchronous: the entry becomes visible once the write buffer drains
// (see Wait). A non-positive cost is replaced by the value's length. ok=false
// means the admission policy or MaxValueSize dropped the entry.
func (s *Store) Set(_ context.Context, key string, value []byte, cost int64, ttl time.Duration) (bool, error) {
	if s.maxValue > 0 && len(value) > s.maxValue {
		return false, nil
	}
	if cost <= 0 {
		cost = int64(len(value))
	}
	if ttl < 0 {
		ttl = 0
	}
	return s.c.SetWithTTL(key, value, cost, ttl), nil
}

func (s *Store) Del(_ context.Context, key string) error {
	s.c.Del(key)
	return nil
}

// Wait blocks until buffered writes are applied.
func (s *Store) Wait() { s.c.Wait() }

func (s *Store) Close(_ context.Context) error {
	s.c.Wait()
	s.c.Close()
	return nil
}

// Metrics is nil unless Config.Metrics was set.
func (s *Store) Metrics() *rc.Metrics { return s.c.Metrics }
