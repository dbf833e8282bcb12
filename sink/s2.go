package sink

import "github.com/klauspost/compress/s2"

// S2Compressor compresses trace payloads with S2, a Snappy-compatible
// codec.
//
// The better-ratio encoding mode is used: a sink compresses each trace
// exactly once, so the extra encode cost is paid once while the smaller
// output is kept for the life of the file.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data using S2 in better-ratio mode.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decompresses S2- or Snappy-compressed data.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
