package writer

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/wirebuf/reader"
	"github.com/unkn0wn-root/wirebuf/seq"
	"github.com/unkn0wn-root/wirebuf/sink"
	"github.com/unkn0wn-root/wirebuf/wire"
)

func TestWriteThenRead(t *testing.T) {
	s := sink.New(4)
	w := New(s)
	when := time.Date(2024, 2, 29, 12, 0, 0, 5, time.FixedZone("x", 3600))

	require.NoError(t, w.WriteArrayHeader(9))
	require.NoError(t, w.WriteNil())
	require.NoError(t, w.WriteBool(false))
	require.NoError(t, w.WriteInt(-40000))
	require.NoError(t, w.WriteUint(math.MaxUint32))
	require.NoError(t, w.WriteFloat32(0.25))
	require.NoError(t, w.WriteString("héllo"))
	require.NoError(t, w.WriteBinary([]byte{0, 1}))
	require.NoError(t, w.WriteExtension(wire.Extension{Type: 1, Data: []byte("abc")}))
	require.NoError(t, w.WriteTimestamp(when))

	r := reader.New(s.Sequence())
	n, err := r.ReadArrayHeader()
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	require.NoError(t, r.ReadNil())
	b, err := r.ReadBool()
	require.NoError(t, err)
	assert.False(t, b)
	i, err := r.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-40000), i)
	u, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint32), u)
	f, err := r.ReadFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(0.25), f)
	str, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "héllo", str)
	bin, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1}, bin)
	ext, err := r.ReadExtension()
	require.NoError(t, err)
	assert.Equal(t, int8(1), ext.Type)
	tm, err := r.ReadTimestamp()
	require.NoError(t, err)
	assert.True(t, when.Equal(tm))
	assert.Equal(t, time.UTC, tm.Location())
	assert.True(t, r.End())
}

func TestLengthBackpatchMatchesUpFront(t *testing.T) {
	payload := func(w *Writer) int {
		items := []string{"alpha", "beta", "gamma", "delta"}
		for _, it := range items {
			require.NoError(t, w.WriteString(it))
		}
		return len(items)
	}

	patched := New(sink.New(0))
	off, err := patched.ReserveUint32()
	require.NoError(t, err)
	count := payload(patched)
	require.NoError(t, patched.PatchUint32(off, uint32(count)))

	upfront := New(sink.New(0))
	var tok [5]byte
	wire.TryWriteForcedUint32(tok[:], uint32(count))
	_, err = upfront.Sink().Write(tok[:])
	require.NoError(t, err)
	payload(upfront)

	assert.Equal(t, upfront.Sink().ToArray(), patched.Sink().ToArray())

	r := reader.New(seq.Split(patched.Sink().Bytes(), 2))
	c, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), c)
}

func TestRawLengthPrefixBackpatch(t *testing.T) {
	w := New(sink.New(0))
	require.NoError(t, WriteFixed(w, uint32(0), binary.BigEndian))
	start := w.Sink().Committed()
	require.NoError(t, w.WriteString("variable payload"))
	size := uint32(w.Sink().Committed() - start)

	var patch [4]byte
	binary.BigEndian.PutUint32(patch[:], size)
	require.NoError(t, w.Sink().UpdateCommitted(patch[:], 0))

	want := New(sink.New(0))
	require.NoError(t, WriteFixed(want, size, binary.BigEndian))
	require.NoError(t, want.WriteString("variable payload"))
	assert.Equal(t, want.Sink().ToArray(), w.Sink().ToArray())
}

func TestFrozenSinkRejectsTokens(t *testing.T) {
	s := sink.New(16)
	w := New(s)
	s.FreezeWrite()
	require.ErrorIs(t, w.WriteInt(1), sink.ErrFrozen)
	require.ErrorIs(t, w.WriteString("x"), sink.ErrFrozen)
	assert.Equal(t, 0, s.Committed())
	require.NoError(t, s.UnfreezeWrite())
	require.NoError(t, w.WriteInt(1))
	assert.Equal(t, []byte{1}, s.ToArray())
}

func TestReleasedSinkRejectsTokens(t *testing.T) {
	s := sink.New(16)
	w := New(s)
	require.NoError(t, s.Release())
	require.ErrorIs(t, w.WriteInt(42), sink.ErrReleased)
	require.ErrorIs(t, w.WriteString("x"), sink.ErrReleased)
	assert.Equal(t, 0, s.Committed())
}

func TestPatchOutOfRange(t *testing.T) {
	w := New(sink.New(0))
	require.NoError(t, w.WriteNil())
	require.ErrorIs(t, w.PatchUint32(0, 1), sink.ErrOutOfRange)
}
