package reader

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/wirebuf/wire"
)

var (
	// ErrUnregisteredToken: the next token is not of the requested shape.
	ErrUnregisteredToken = errors.New("reader: unexpected token")
	// ErrUnknownToken: the leading byte is not assigned by the format.
	ErrUnknownToken = errors.New("reader: unknown token")
	// ErrEndOfStream: the sequence ends inside the token being read.
	ErrEndOfStream = errors.New("reader: not enough bytes")
	// ErrOverflow: the token's value does not fit the requested type.
	ErrOverflow = errors.New("reader: value out of range")
)

// TokenError describes a token the reader could not interpret. It unwraps to
// ErrUnregisteredToken, ErrUnknownToken or ErrOverflow.
type TokenError struct {
	Offset int
	Code   byte
	Want   string
	Err    error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%v: %s at offset %d (code %#02x, %s)", e.Err, e.Want, e.Offset, e.Code, wire.TypeOf(e.Code))
}

func (e *TokenError) Unwrap() error { return e.Err }
