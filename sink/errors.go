package sink

import "errors"

var (
	ErrFrozen     = errors.New("sink: write-frozen")
	ErrOutOfRange = errors.New("sink: argument out of range")
	ErrBusy       = errors.New("sink: pinned or write-frozen")
	ErrNotFrozen  = errors.New("sink: unfreeze without matching freeze")
	ErrNotPinned  = errors.New("sink: unpin without matching pin")
	ErrReleased   = errors.New("sink: use after release")
)
