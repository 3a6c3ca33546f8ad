package wirebuf

import (
	"fmt"

	"github.com/unkn0wn-root/wirebuf/sink"
)

// Provider hands out sinks and takes them back.
//
// GetSink never fails: a sizeHint <= 0 means "provider default". The returned
// sink is empty, unfrozen and unpinned, with capacity >= sizeHint. Release
// returns ErrNilSink for nil, wraps sink.ErrBusy for a sink that is still
// pinned or frozen, and is a no-op for a sink already released.
type Provider interface {
	GetSink(sizeHint int) *sink.Sink
	Release(s *sink.Sink) error
}

// Options tune a Pool. The zero value is usable.
type Options struct {
	DefaultSize int    // capacity for sizeHint <= 0; 0 => 256
	MaxRetained int    // sinks that grew beyond this are dropped on release; 0 => 1 MiB
	Logger      Logger // if nil, NopLogger is used
	Hooks       Hooks  // if nil, NopHooks is used
}

const (
	defaultSinkSize    = 256
	defaultMaxRetained = 1 << 20
)

func New(opts Options) (*Pool, error) {
	if opts.DefaultSize < 0 || opts.MaxRetained < 0 {
		return nil, fmt.Errorf("%w: negative size", ErrInvalidOptions)
	}
	def := coalesce(opts.DefaultSize, defaultSinkSize)
	maxRetained := coalesce(opts.MaxRetained, defaultMaxRetained)
	if maxRetained < minClassSize {
		return nil, fmt.Errorf("%w: MaxRetained %d below smallest size class %d", ErrInvalidOptions, maxRetained, minClassSize)
	}
	if def > maxRetained {
		return nil, fmt.Errorf("%w: DefaultSize %d exceeds MaxRetained %d", ErrInvalidOptions, def, maxRetained)
	}
	return newPool(def, maxRetained,
		coalesce[Logger](opts.Logger, NopLogger{}),
		coalesce[Hooks](opts.Hooks, NopHooks{})), nil
}

var _ Provider = (*Pool)(nil)
