package sink

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Writer is an io.WriteCloser that buffers a complete FXT stream and writes
// one compressed payload to the destination on Close.
//
// Whole-payload compression is deliberate: the intern tables make the
// stream stateful, so a reader needs the entire prefix anyway, and a single
// compression frame yields a better ratio than chunking.
//
//	f, _ := os.Create("trace.fxt.zst")
//	cw, _ := sink.NewWriter(f, sink.CompressionZstd)
//	w := fxt.NewWriter(cw)
//	// ... emit records ...
//	cw.Close()
//
// Note: Writer is NOT thread-safe, matching the fxt.Writer in front of it.
type Writer struct {
	dst    io.Writer
	codec  Codec
	buf    bytes.Buffer
	closed bool
}

// NewWriter creates a compressed sink writing to dst with the given
// compression kind.
func NewWriter(dst io.Writer, compression Compression) (*Writer, error) {
	codec, err := CreateCodec(compression)
	if err != nil {
		return nil, err
	}

	return &Writer{dst: dst, codec: codec}, nil
}

// Write buffers p. It never fails before Close.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errors.New("sink: write after Close")
	}

	return w.buf.Write(p)
}

// Close compresses the buffered stream and writes it to the destination.
// If the destination is an io.Closer it is NOT closed; that remains the
// caller's responsibility.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	compressed, err := w.codec.Compress(w.buf.Bytes())
	if err != nil {
		return fmt.Errorf("sink: compress: %w", err)
	}
	if len(compressed) == 0 {
		return nil
	}
	if _, err := w.dst.Write(compressed); err != nil {
		return fmt.Errorf("sink: write: %w", err)
	}

	return nil
}
