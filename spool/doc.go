// Package spool provides a write-then-read byte buffer with bounded
// memory use: bytes stay resident below a configurable threshold and
// transparently spill to a temporary file above it.
//
// The network transport uses a [Buffer] to hold response bodies, so a
// multi-gigabyte download never holds more than the threshold in memory:
//
//	buf := spool.NewBuffer(2 << 20)
//	defer buf.Close()
//	if _, err := io.Copy(buf, src); err != nil { ... }
//	data, err := io.ReadAll(buf)
//
// A Buffer is not safe for concurrent use.
package spool
