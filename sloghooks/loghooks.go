// Package sloghooks implements wirebuf.Hooks on top of log/slog with
// per-event sampling and storage-key redaction.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/wirebuf"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	AllocatedEvery uint64
	ReusedEvery    uint64
	RecycledEvery  uint64
	SelfHealEvery  uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	allocatedCtr atomic.Uint64
	reusedCtr    atomic.Uint64
	recycledCtr  atomic.Uint64
	selfHealCtr  atomic.Uint64
}

var _ wirebuf.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) SinkAllocated(sizeHint, capacity int) {
	if h.l == nil || !sample(h.opts.AllocatedEvery, &h.allocatedCtr) {
		return
	}
	h.l.Debug("wirebuf.sink_allocated",
		"size_hint", sizeHint,
		"capacity", capacity)
}

func (h *Hooks) SinkReused(capacity int) {
	if h.l == nil || !sample(h.opts.ReusedEvery, &h.reusedCtr) {
		return
	}
	h.l.Debug("wirebuf.sink_reused", "capacity", capacity)
}

func (h *Hooks) SinkRecycled(capacity int) {
	if h.l == nil || !sample(h.opts.RecycledEvery, &h.recycledCtr) {
		return
	}
	h.l.Debug("wirebuf.sink_recycled", "capacity", capacity)
}

func (h *Hooks) SinkDiscarded(capacity int) {
	if h.l == nil {
		return
	}
	h.l.Info("wirebuf.sink_discarded", "capacity", capacity)
}

func (h *Hooks) ReleaseRejected(pins, freezes int, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("wirebuf.release_rejected",
		"pins", pins,
		"freezes", freezes,
		"err", err)
}

func (h *Hooks) StoreSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("wirebuf.store_set_rejected", "key", h.redact(storageKey))
}

func (h *Hooks) StoreSelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("wirebuf.store_self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}
