package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/sink"
)

type JSON[V any] struct{}

func (JSON[V]) Encode(s *sink.Sink, v V) error { return json.NewEncoder(s).Encode(v) }

// Decode expects exactly one JSON value; surrounding whitespace is allowed.
func (JSON[V]) Decode(src seq.Sequence) (V, error) {
	var v V
	dec := json.NewDecoder(seq.NewStream(src))
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return v, fmt.Errorf("%w: after offset %d", ErrTrailingData, dec.InputOffset())
	}
	return v, nil
}
