package envelope

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/sink"
	"github.com/unkn0wn-root/wirebuf/writer"
)

var at = time.Date(2030, 5, 6, 7, 8, 9, 0, time.UTC)

func mustSeal(t *testing.T, payload []byte) []byte {
	t.Helper()
	w := writer.New(sink.New(0))
	f, err := Begin(w, Header{StoredAt: at})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := w.Sink().Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return w.Sink().ToArray()
}

func mustOpen(t *testing.T, src seq.Sequence) (Header, []byte) {
	t.Helper()
	h, p, err := Open(src)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	return h, p.Bytes()
}

func TestRoundTripEmptyAndNonEmpty(t *testing.T) {
	for _, payload := range [][]byte{nil, []byte("hello"), bytes.Repeat([]byte{7}, 70000)} {
		enc := mustSeal(t, payload)
		h, p := mustOpen(t, seq.Of(enc))
		if !h.StoredAt.Equal(at) {
			t.Fatalf("stored-at mismatch: %v", h.StoredAt)
		}
		if !bytes.Equal(p, payload) {
			t.Fatalf("payload mismatch: got %d bytes want %d", len(p), len(payload))
		}
	}
}

func TestOpenAcrossSegments(t *testing.T) {
	enc := mustSeal(t, []byte("segmented"))
	for cut := 1; cut < len(enc); cut++ {
		_, p := mustOpen(t, seq.Split(enc, cut))
		if string(p) != "segmented" {
			t.Fatalf("cut %d: payload %q", cut, p)
		}
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := append(mustSeal(t, []byte("x")), 0xDE, 0xAD)
	if _, _, err := Open(seq.Of(enc)); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on trailing bytes, got %v", err)
	}
}

func TestCorruptHeadersAndLengths(t *testing.T) {
	enc := mustSeal(t, []byte("abc"))
	corrupt := func(name string, mut func(b []byte) []byte) {
		t.Helper()
		b := mut(append([]byte(nil), enc...))
		if _, _, err := Open(seq.Of(b)); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("%s: expected ErrCorrupt, got %v", name, err)
		}
	}
	corrupt("bad magic", func(b []byte) []byte { b[0] = 'X'; return b })
	corrupt("bad version", func(b []byte) []byte { b[4] = version + 1; return b })
	corrupt("bad timestamp", func(b []byte) []byte { b[5] = 0xc0; return b })
	// vlen token sits right before the payload.
	corrupt("vlen too large", func(b []byte) []byte { b[len(b)-4]++; return b })
	corrupt("truncated", func(b []byte) []byte { return b[:len(b)-1] })
	corrupt("empty", func([]byte) []byte { return nil })
}

func TestZeroCopyPayload(t *testing.T) {
	enc := mustSeal(t, []byte("Z"))
	_, p := mustOpen(t, seq.Of(enc))
	p[0] = 'Q'
	_, p2 := mustOpen(t, seq.Of(enc))
	if p2[0] != 'Q' {
		t.Fatalf("expected zero-copy slice into enc buffer")
	}
}
