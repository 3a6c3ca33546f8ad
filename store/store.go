// Package store keeps encoded documents in a key/value byte store.
//
// Store implementations MUST be byte-for-byte transparent: Get returns exactly
// the bytes previously passed to Set for a key (no prepended/appended metadata,
// no re-encoding, no mutation).
//
// The keyspace "doc:<ns>:" is owned by Documents. External code MUST NOT write
// under it; entries that fail to decode there are deleted on read.
package store

import (
	"context"
	"time"
)

// Store is a minimal byte store with TTLs. Must be safe for concurrent use.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. May ignore cost if unsupported;
	// cost <= 0 asks the store for its default price.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}

// Copier is implemented by stores whose Set copies value before returning.
// Documents hands such stores the sink's committed bytes directly, frozen for
// the duration of the call, instead of a private copy.
type Copier interface {
	CopiesOnSet() bool
}

func copiesOnSet(s Store) bool {
	c, ok := s.(Copier)
	return ok && c.CopiesOnSet()
}
