package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/sink"
)

// CBOROptions tune a CBOR codec. Zero values select the library defaults.
type CBOROptions struct {
	// Deterministic selects RFC 8949 Core Deterministic encoding, for
	// byte-for-byte stable output (hashing, content addressing).
	Deterministic bool

	// Decode limits; see cbor.DecOptions for the accepted ranges.
	MaxNestedLevels  int
	MaxArrayElements int
	MaxMapPairs      int
}

// CBOR is a Codec backed by fxamacker/cbor. Time values are encoded as
// RFC3339Nano. The zero value is not usable; construct with NewCBOR or MustCBOR.
type CBOR[V any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec[struct{}] = CBOR[struct{}]{}

func NewCBOR[V any](opts CBOROptions) (CBOR[V], error) {
	eo := cbor.PreferredUnsortedEncOptions()
	if opts.Deterministic {
		eo = cbor.CoreDetEncOptions()
	}
	eo.Time = cbor.TimeRFC3339Nano
	em, err := eo.EncMode()
	if err != nil {
		return CBOR[V]{}, fmt.Errorf("codec: cbor encode options: %w", err)
	}

	dm, err := cbor.DecOptions{
		MaxNestedLevels:  opts.MaxNestedLevels,
		MaxArrayElements: opts.MaxArrayElements,
		MaxMapPairs:      opts.MaxMapPairs,
	}.DecMode()
	if err != nil {
		return CBOR[V]{}, fmt.Errorf("codec: cbor decode options: %w", err)
	}
	return CBOR[V]{enc: em, dec: dm}, nil
}

// MustCBOR is NewCBOR that panics on invalid options.
func MustCBOR[V any](opts CBOROptions) CBOR[V] {
	c, err := NewCBOR[V](opts)
	if err != nil {
		panic(err)
	}
	return c
}

// Encode streams the item into s; the encoder writes it in one call.
func (c CBOR[V]) Encode(s *sink.Sink, v V) error {
	return c.enc.NewEncoder(s).Encode(v)
}

// Decode expects exactly one data item. Contiguous input goes through
// Unmarshal; segmented input is streamed and checked for leftover bytes.
func (c CBOR[V]) Decode(src seq.Sequence) (V, error) {
	var v V
	if src.IsSingleSegment() {
		err := c.dec.Unmarshal(src.First(), &v)
		return v, err
	}
	d := c.dec.NewDecoder(seq.NewStream(src))
	if err := d.Decode(&v); err != nil {
		return v, err
	}
	if n := d.NumBytesRead(); n != src.Len() {
		return v, fmt.Errorf("%w: %d bytes", ErrTrailingData, src.Len()-n)
	}
	return v, nil
}
