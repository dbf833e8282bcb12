// Package sink provides optional compressed destinations for FXT streams.
//
// An FXT stream is a sequence of packed header words and small interned
// references, which makes it highly repetitive and very compressible; traces
// are routinely stored compressed at rest. The Writer in this package
// buffers the stream a fxt.Writer produces and writes one compressed
// payload to the underlying destination on Close.
//
// The encoding core never sees any of this: a compressed sink is just
// another io.Writer handed to fxt.NewWriter.
package sink

import "fmt"

// Compression selects the codec a compressed sink uses.
type Compression uint8

const (
	CompressionNone Compression = 0x1 // CompressionNone passes bytes through unchanged.
	CompressionZstd Compression = 0x2 // CompressionZstd uses Zstandard compression.
	CompressionS2   Compression = 0x3 // CompressionS2 uses S2 compression.
	CompressionLZ4  Compression = 0x4 // CompressionLZ4 uses LZ4 frame compression.
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses a complete trace payload.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	// The returned slice is owned by the caller; the input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a complete trace payload.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// result. It returns an error if the data is corrupted or was produced
	// by a different codec.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns the Codec for the given compression kind.
func CreateCodec(compression Compression) (Codec, error) {
	switch compression {
	case CompressionNone:
		return NewNoOpCompressor(), nil
	case CompressionZstd:
		return NewZstdCompressor(), nil
	case CompressionS2:
		return NewS2Compressor(), nil
	case CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %s", compression)
	}
}
