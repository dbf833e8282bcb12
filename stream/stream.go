// Package stream implements the byte-sink adapter the record encoders write
// through: little-endian 64-bit words, raw byte ranges, and zero padding,
// forwarded to a destination io.Writer without any internal buffering.
package stream

import (
	"fmt"
	"io"

	"github.com/arloliu/fxt/endian"
	"github.com/arloliu/fxt/errs"
	"github.com/arloliu/fxt/internal/field"
)

var zeros [8]byte

// Stream adapts a destination io.Writer to the word-oriented writes the
// record encoders perform.
//
// Stream does no buffering and no retries: every call forwards directly to
// the destination and fails on the first error. Once a byte has been handed
// to the destination it is committed; a failure mid-record leaves the
// stream truncated.
//
// Note: Stream is NOT thread-safe. Callers serialize access.
type Stream struct {
	w       io.Writer
	engine  endian.EndianEngine
	written uint64
}

// New creates a Stream writing to w.
func New(w io.Writer) *Stream {
	return &Stream{
		w:      w,
		engine: endian.GetLittleEndianEngine(),
	}
}

// WriteWord writes the 8 bytes of word in little-endian order.
func (s *Stream) WriteWord(word uint64) error {
	var buf [8]byte
	s.engine.PutUint64(buf[:], word)

	return s.WriteBytes(buf[:])
}

// WriteBytes writes p verbatim.
//
// A destination error, or a short write, is reported as
// errs.ErrWriteToStreamFailed wrapping the underlying cause.
func (s *Stream) WriteBytes(p []byte) error {
	n, err := s.w.Write(p)
	if n > 0 {
		s.written += uint64(n)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrWriteToStreamFailed, err)
	}
	if n != len(p) {
		return fmt.Errorf("%w: %w", errs.ErrWriteToStreamFailed, io.ErrShortWrite)
	}

	return nil
}

// WritePadding writes count zero bytes.
func (s *Stream) WritePadding(count int) error {
	for count > 0 {
		n := min(count, len(zeros))
		if err := s.WriteBytes(zeros[:n]); err != nil {
			return err
		}
		count -= n
	}

	return nil
}

// WritePaddedBytes writes p followed by zero padding up to the next 8-byte
// boundary. Nothing is written for an empty p.
func (s *Stream) WritePaddedBytes(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := s.WriteBytes(p); err != nil {
		return err
	}

	return s.WritePadding(field.Pad(len(p)) - len(p))
}

// BytesWritten returns the total number of bytes handed to the destination
// so far, including bytes written by a call that subsequently failed.
func (s *Stream) BytesWritten() uint64 {
	return s.written
}
