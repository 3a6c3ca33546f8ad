package wirebuf

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; pools and stores call them
// on hot paths. Wrap slow hooks with hooks/async.
type Hooks interface {
	// A sink was freshly allocated because its size class had nothing pooled.
	SinkAllocated(sizeHint, capacity int)

	// A pooled sink was handed out again.
	SinkReused(capacity int)

	// A released sink went back into its size class.
	SinkRecycled(capacity int)

	// A released sink was dropped instead of pooled (too large or too small).
	SinkDiscarded(capacity int)

	// Release refused a sink that is still pinned or write-frozen.
	ReleaseRejected(pins, freezes int, err error)

	// The store returned ok=false on Set (backpressure/eviction).
	StoreSetRejected(storageKey string)

	// An undecodable entry was deleted on read.
	// reason ∈ {"corrupt", "value_decode"}
	StoreSelfHeal(storageKey, reason string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SinkAllocated(int, int)          {}
func (NopHooks) SinkReused(int)                  {}
func (NopHooks) SinkRecycled(int)                {}
func (NopHooks) SinkDiscarded(int)               {}
func (NopHooks) ReleaseRejected(int, int, error) {}
func (NopHooks) StoreSetRejected(string)         {}
func (NopHooks) StoreSelfHeal(string, string)    {}
