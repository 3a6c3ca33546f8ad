package wirebuf

import "errors"

var (
	// ErrNilSink is returned when a nil sink is handed back to a provider.
	ErrNilSink = errors.New("wirebuf: nil sink")

	ErrInvalidOptions = errors.New("wirebuf: invalid options")
)
