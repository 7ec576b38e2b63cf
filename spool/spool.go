package spool

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultThreshold is the spill point used when NewBuffer is given a
// non-positive threshold.
const DefaultThreshold = 2 << 20 // 2 MiB

// ErrWriteAfterRead is returned when a write arrives after the buffer has
// switched to the read side.
var ErrWriteAfterRead = errors.New("spool: write after read")

// Buffer accumulates bytes in memory until the threshold is crossed, then
// moves everything written so far to a temporary file and keeps writing
// there. Reading drains the buffer from the start; the first Read ends
// the write phase.
type Buffer struct {
	threshold int64
	size      int64
	mem       bytes.Buffer
	file      *os.File
	reading   bool
}

// NewBuffer returns a Buffer that spills to disk once more than
// threshold bytes have been written. A non-positive threshold selects
// [DefaultThreshold].
func NewBuffer(threshold int64) *Buffer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Buffer{threshold: threshold}
}

// Write implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	if b.reading {
		return 0, ErrWriteAfterRead
	}

	if b.file == nil && b.size+int64(len(p)) > b.threshold {
		if err := b.spill(); err != nil {
			return 0, err
		}
	}

	var n int
	var err error
	if b.file != nil {
		n, err = b.file.Write(p)
	} else {
		n, err = b.mem.Write(p)
	}
	b.size += int64(n)
	if err != nil {
		return n, fmt.Errorf("spool: writing: %w", err)
	}
	return n, nil
}

// spill moves the in-memory bytes to a fresh temporary file and directs
// subsequent writes there.
func (b *Buffer) spill() error {
	f, err := os.CreateTemp("", "shuttle-spool-*")
	if err != nil {
		return fmt.Errorf("spool: creating temp file: %w", err)
	}
	if _, err := f.Write(b.mem.Bytes()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("spool: spilling to temp file: %w", err)
	}
	b.mem.Reset()
	b.file = f
	return nil
}

// Read implements io.Reader, draining the buffer from the start. The
// first call ends the write phase.
func (b *Buffer) Read(p []byte) (int, error) {
	if !b.reading {
		if err := b.beginRead(); err != nil {
			return 0, err
		}
	}
	if b.file != nil {
		return b.file.Read(p)
	}
	return b.mem.Read(p)
}

func (b *Buffer) beginRead() error {
	b.reading = true
	if b.file != nil {
		if _, err := b.file.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("spool: rewinding temp file: %w", err)
		}
	}
	return nil
}

// Rewind positions the read side back at the start, so the contents can
// be consumed again.
func (b *Buffer) Rewind() error {
	b.reading = true
	if b.file != nil {
		if _, err := b.file.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("spool: rewinding temp file: %w", err)
		}
		return nil
	}
	// bytes.Buffer cannot rewind; nothing to do when fully unread.
	if b.mem.Len() != int(b.size) {
		return errors.New("spool: in-memory buffer partially consumed, cannot rewind")
	}
	return nil
}

// Len returns the total number of bytes written.
func (b *Buffer) Len() int64 {
	return b.size
}

// Spilled reports whether the contents live in a temporary file rather
// than in memory.
func (b *Buffer) Spilled() bool {
	return b.file != nil
}

// Close releases the temporary file, if any. It is safe to call on a
// purely in-memory buffer and safe to call more than once.
func (b *Buffer) Close() error {
	if b.file == nil {
		return nil
	}
	name := b.file.Name()
	closeErr := b.file.Close()
	removeErr := os.Remove(name)
	b.file = nil
	if closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
		return fmt.Errorf("spool: closing temp file: %w", closeErr)
	}
	if removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
		return fmt.Errorf("spool: removing temp file: %w", removeErr)
	}
	return nil
}
