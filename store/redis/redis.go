// Package redis keeps encoded documents in Redis through go-redis.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/wirebuf/store"
)

var ErrNilClient = errors.New("redis store: nil client")

// Store writes each entry as a plain string value under Prefix+key.
type Store struct {
	rdb         goredis.UniversalClient
	prefix      string
	maxValue    int
	closeClient bool
}

var (
	_ store.Store  = (*Store)(nil)
	_ store.Copier = (*Store)(nil)
)

type Config struct {
	Client goredis.UniversalClient

	// Prefix is prepended to every key, for databases shared with other
	// applications.
	Prefix string

	// MaxValueSize rejects larger entries before they reach the network.
	// Rejections surface as Set(ok=false). 0 means no limit.
	MaxValueSize int

	CloseClient bool // set only when the store owns the client
}

func New(cfg Config) (*Store, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Store{
		rdb:         cfg.Client,
		prefix:      cfg.Prefix,
		maxValue:    cfg.MaxValueSize,
		closeClient: cfg.CloseClient,
	}, nil
}

func (s *Store) key(k string) string { return s.prefix + k }

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return b, true, nil
}

// Set stores value with ttl; ttl <= 0 keeps the key until deleted.
func (s *Store) Set(ctx context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if s.maxValue > 0 && len(value) > s.maxValue {
		return false, nil
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := s.rdb.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.key(key)).Err()
}

// CopiesOnSet is true: the command is written to the connection before Set
// returns, so the value may be reused afterwards.
func (s *Store) CopiesOnSet() bool { return true }

// Close closes the client only when the store owns it. Repeated calls are
// no-ops.
func (s *Store) Close(context.Context) error {
	if !s.closeClient {
		return nil
	}
	if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}
