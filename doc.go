// Package wirebuf is a MessagePack-compatible wire codec built around pooled,
// freeze- and pin-aware byte sinks.
//
// Components:
//   - sink.Sink: append-only growable destination with write-freeze and pin guards.
//   - Provider: hands out sinks and takes them back (Pool is the default).
//   - wire: pure encode/decode routines over byte slices.
//   - writer.Writer / reader.Reader: token streams over a sink and over a
//     segmented seq.Sequence, which may arrive in arbitrary chunks.
//   - codec.Codec[V] and store.Documents[V]: typed values encoded into pooled
//     sinks and kept in a byte store (bigcache, ristretto, redis).
//
// Typical flow:
//
//	s := pool.GetSink(0)
//	w := writer.New(s)
//	_ = w.WriteMapHeader(1)
//	_ = w.WriteString("id")
//	_ = w.WriteInt(42)
//	out := s.ToArray()
//	_ = pool.Release(s)
//
//	r := reader.New(seq.Split(out, 3)) // any chunking decodes the same
package wirebuf
