package store

import (
	"context"
	"errors"
	"time"

	"github.com/unkn0wn-root/wirebuf"
	"github.com/unkn0wn-root/wirebuf/codec"
	"github.com/unkn0wn-root/wirebuf/internal/envelope"
	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/writer"
)

const defaultTTL = 10 * time.Minute

// CostFunc prices an entry for stores that evict by cost (Ristretto). A
// non-positive cost leaves pricing to the store.
type CostFunc func(storageKey string, raw []byte) int64

// Options configure Documents. Only Namespace, Store and Codec are required.
type Options[V any] struct {
	Namespace string // logical namespace to avoid collisions. e.g. "user", "order"
	Store     Store
	Codec     codec.Codec[V]

	Provider    wirebuf.Provider // sinks for encoding; nil => a private Pool
	Logger      wirebuf.Logger   // if nil, NopLogger is used
	Hooks       wirebuf.Hooks    // if nil, NopHooks is used
	DefaultTTL  time.Duration    // 0 => 10m
	SizeHint    int              // initial sink size for Put; 0 => provider default
	ComputeCost CostFunc         // nil => 0, the store's own default
	Disabled    bool             // default false (enabled)
	Now         func() time.Time // stored-at clock; nil => time.Now
}

// Info is the metadata kept next to a document.
type Info struct {
	StoredAt time.Time
}

// Documents stores values of type V under "doc:<ns>:<key>", encoding each
// one into a pooled sink.
type Documents[V any] struct {
	ns         string
	store      Store
	codec      codec.Codec[V]
	sinks      wirebuf.Provider
	log        wirebuf.Logger
	hooks      wirebuf.Hooks
	defaultTTL time.Duration
	sizeHint   int
	cost       CostFunc
	enabled    bool
	zeroCopy   bool
	now        func() time.Time
}

func NewDocuments[V any](opts Options[V]) (*Documents[V], error) {
	if opts.Store == nil {
		return nil, errors.New("store: store is required")
	}
	if opts.Codec == nil {
		return nil, errors.New("store: codec is required")
	}
	if opts.Namespace == "" {
		return nil, errors.New("store: namespace is required")
	}

	d := &Documents[V]{
		ns:       opts.Namespace,
		store:    opts.Store,
		codec:    opts.Codec,
		sizeHint: opts.SizeHint,
		enabled:  !opts.Disabled,
		zeroCopy: copiesOnSet(opts.Store),
	}

	d.log = coalesce[wirebuf.Logger](opts.Logger, wirebuf.NopLogger{})
	d.hooks = coalesce[wirebuf.Hooks](opts.Hooks, wirebuf.NopHooks{})
	d.defaultTTL = coalesce(opts.DefaultTTL, defaultTTL)

	d.now = time.Now
	if opts.Now != nil {
		d.now = opts.Now
	}

	if opts.ComputeCost != nil {
		d.cost = opts.ComputeCost
	} else {
		d.cost = func(string, []byte) int64 { return 0 }
	}

	if opts.Provider != nil {
		d.sinks = opts.Provider
	} else {
		p, err := wirebuf.New(wirebuf.Options{Logger: d.log, Hooks: d.hooks})
		if err != nil {
			return nil, err
		}
		d.sinks = p
	}
	return d, nil
}

func (d *Documents[V]) Enabled() bool { return d.enabled }

func (d *Documents[V]) key(k string) string { return "doc:" + d.ns + ":" + k }

// Put encodes v and stores it. ttl <= 0 uses DefaultTTL. A store that rejects
// the write under pressure is not an error; it is reported to Hooks.
func (d *Documents[V]) Put(ctx context.Context, key string, v V, ttl time.Duration) error {
	if !d.enabled {
		return nil
	}
	if ttl <= 0 {
		ttl = d.defaultTTL
	}
	k := d.key(key)

	s := d.sinks.GetSink(d.sizeHint)
	defer func() {
		if err := d.sinks.Release(s); err != nil {
			d.log.Error("sink release failed", wirebuf.Fields{"key": key, "err": err})
		}
	}()
	frame, err := envelope.Begin(writer.New(s), envelope.Header{StoredAt: d.now()})
	if err != nil {
		return err
	}
	if err := d.codec.Encode(s, v); err != nil {
		return err
	}
	if err := frame.Close(); err != nil {
		return err
	}

	s.FreezeWrite()
	defer func() { _ = s.UnfreezeWrite() }()
	raw := s.Bytes()
	if !d.zeroCopy {
		raw = s.ToArray()
	}
	ok, err := d.store.Set(ctx, k, raw, d.cost(k, raw), ttl)
	if err != nil {
		return err
	}
	if !ok {
		d.hooks.StoreSetRejected(k)
		d.log.Debug("Put rejected by store (pressure)", wirebuf.Fields{"key": key})
	}
	return nil
}

// Get returns (v, true, nil) on hit. Entries that cannot be decoded are
// deleted and reported as a miss.
func (d *Documents[V]) Get(ctx context.Context, key string) (V, bool, error) {
	v, _, ok, err := d.GetWithInfo(ctx, key)
	return v, ok, err
}

// GetWithInfo is Get that also returns the entry's metadata.
func (d *Documents[V]) GetWithInfo(ctx context.Context, key string) (V, Info, bool, error) {
	var zero V
	if !d.enabled {
		return zero, Info{}, false, nil
	}
	k := d.key(key)
	raw, ok, err := d.store.Get(ctx, k)
	if err != nil || !ok {
		return zero, Info{}, false, err
	}
	hdr, payload, err := envelope.Open(seq.Of(raw))
	if err != nil {
		d.selfHeal(ctx, k, "corrupt", err)
		return zero, Info{}, false, nil
	}
	v, err := d.codec.Decode(payload)
	if err != nil {
		d.selfHeal(ctx, k, "value_decode", err)
		return zero, Info{}, false, nil
	}
	return v, Info{StoredAt: hdr.StoredAt}, true, nil
}

func (d *Documents[V]) selfHeal(ctx context.Context, k, reason string, cause error) {
	_ = d.store.Del(ctx, k)
	d.hooks.StoreSelfHeal(k, reason)
	d.log.Warn("dropped undecodable entry", wirebuf.Fields{"key": k, "reason": reason, "err": cause})
}

func (d *Documents[V]) Del(ctx context.Context, key string) error {
	if !d.enabled {
		return nil
	}
	return d.store.Del(ctx, d.key(key))
}

func (d *Documents[V]) Close(ctx context.Context) error {
	return d.store.Close(ctx)
}

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
