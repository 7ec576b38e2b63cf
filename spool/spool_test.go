package spool_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuttlehttp/shuttle/spool"
)

func TestBufferStaysInMemoryBelowThreshold(t *testing.T) {
	buf := spool.NewBuffer(64)
	t.Cleanup(func() { buf.Close() })

	n, err := buf.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.False(t, buf.Spilled())
	assert.Equal(t, int64(5), buf.Len())

	out, err := io.ReadAll(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))
}

func TestBufferSpillsAboveThreshold(t *testing.T) {
	buf := spool.NewBuffer(8)
	t.Cleanup(func() { buf.Close() })

	payload := strings.Repeat("abc", 10)
	_, err := io.Copy(buf, strings.NewReader(payload))
	require.NoError(t, err)

	assert.True(t, buf.Spilled())
	assert.Equal(t, int64(len(payload)), buf.Len())

	out, err := io.ReadAll(buf)
	require.NoError(t, err)
	assert.Equal(t, payload, string(out))
}

func TestBufferSpillPreservesBytesAcrossBoundary(t *testing.T) {
	buf := spool.NewBuffer(10)
	t.Cleanup(func() { buf.Close() })

	// First write fits; the second crosses the threshold mid-stream.
	_, err := buf.Write([]byte("0123456789"))
	require.NoError(t, err)
	assert.False(t, buf.Spilled())

	_, err = buf.Write([]byte("abcdef"))
	require.NoError(t, err)
	assert.True(t, buf.Spilled())

	out, err := io.ReadAll(buf)
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", string(out))
}

func TestBufferWriteAfterReadFails(t *testing.T) {
	buf := spool.NewBuffer(64)
	t.Cleanup(func() { buf.Close() })

	_, err := buf.Write([]byte("data"))
	require.NoError(t, err)

	var b [2]byte
	_, err = buf.Read(b[:])
	require.NoError(t, err)

	_, err = buf.Write([]byte("more"))
	assert.ErrorIs(t, err, spool.ErrWriteAfterRead)
}

func TestBufferRewind(t *testing.T) {
	buf := spool.NewBuffer(4)
	t.Cleanup(func() { buf.Close() })

	payload := "0123456789"
	_, err := io.Copy(buf, strings.NewReader(payload))
	require.NoError(t, err)
	require.True(t, buf.Spilled())

	first, err := io.ReadAll(buf)
	require.NoError(t, err)
	require.Equal(t, payload, string(first))

	require.NoError(t, buf.Rewind())
	second, err := io.ReadAll(buf)
	require.NoError(t, err)
	assert.Equal(t, payload, string(second))
}

func TestBufferCloseIdempotent(t *testing.T) {
	buf := spool.NewBuffer(2)

	_, err := io.Copy(buf, bytes.NewReader([]byte("spill me")))
	require.NoError(t, err)
	require.True(t, buf.Spilled())

	require.NoError(t, buf.Close())
	require.NoError(t, buf.Close())
	assert.False(t, buf.Spilled())
}

func TestBufferDefaultThreshold(t *testing.T) {
	buf := spool.NewBuffer(0)
	t.Cleanup(func() { buf.Close() })

	_, err := buf.Write([]byte("tiny"))
	require.NoError(t, err)
	assert.False(t, buf.Spilled())
}
