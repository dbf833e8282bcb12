package sink

// NoOpCompressor passes trace payloads through unchanged, for destinations
// that compress on their own or for measuring encoding overhead in
// isolation. Both directions return the input slice as-is, without
// copying, so callers must not modify the input afterwards.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
