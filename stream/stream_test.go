package stream

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fxt/errs"
)

// failWriter fails every write with a fixed error.
type failWriter struct {
	err error
}

func (w *failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

// shortWriter accepts only the first byte of each write.
type shortWriter struct{}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	return 1, nil
}

func TestStream_WriteWord(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	require.NoError(t, s.WriteWord(0x0102030405060708))
	require.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, buf.Bytes())
	require.Equal(t, uint64(8), s.BytesWritten())
}

func TestStream_WriteBytes(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	require.NoError(t, s.WriteBytes([]byte("abc")))
	require.Equal(t, []byte("abc"), buf.Bytes())
	require.Equal(t, uint64(3), s.BytesWritten())
}

func TestStream_WritePadding(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	require.NoError(t, s.WritePadding(0))
	require.Equal(t, 0, buf.Len())

	require.NoError(t, s.WritePadding(13))
	require.Equal(t, make([]byte, 13), buf.Bytes())
	require.Equal(t, uint64(13), s.BytesWritten())
}

func TestStream_WritePaddedBytes(t *testing.T) {
	t.Run("Pads to word boundary", func(t *testing.T) {
		var buf bytes.Buffer
		s := New(&buf)

		require.NoError(t, s.WritePaddedBytes([]byte("foo")))
		require.Equal(t, []byte{'f', 'o', 'o', 0, 0, 0, 0, 0}, buf.Bytes())
	})

	t.Run("Exact multiple gets no padding", func(t *testing.T) {
		var buf bytes.Buffer
		s := New(&buf)

		require.NoError(t, s.WritePaddedBytes([]byte("12345678")))
		require.Equal(t, 8, buf.Len())
	})

	t.Run("Empty writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		s := New(&buf)

		require.NoError(t, s.WritePaddedBytes(nil))
		require.Equal(t, 0, buf.Len())
	})
}

func TestStream_WriteFailure(t *testing.T) {
	cause := errors.New("disk full")
	s := New(&failWriter{err: cause})

	err := s.WriteWord(1)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrWriteToStreamFailed)
	require.ErrorIs(t, err, cause)
	require.Equal(t, -3000, errs.Code(err))
}

func TestStream_ShortWrite(t *testing.T) {
	s := New(&shortWriter{})

	err := s.WriteWord(1)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrWriteToStreamFailed)

	// The byte the destination accepted is still counted.
	require.Equal(t, uint64(1), s.BytesWritten())
}
