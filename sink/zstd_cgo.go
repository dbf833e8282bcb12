//go:build gozstd

package sink

import (
	"github.com/valyala/gozstd"
)

// zstdLevel is libzstd's default compression level; trace streams compress
// so well that higher levels buy little.
const zstdLevel = 3

// Compress compresses the input data using libzstd via cgo.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decompresses Zstd-compressed data using libzstd via cgo.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
