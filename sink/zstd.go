package sink

// ZstdCompressor compresses trace payloads with Zstandard. The best choice
// when traces are archived or shipped over constrained links: ratio over
// speed. The pure-Go encoder also stores a content checksum in the frame
// so corrupted archives are detected at read time.
//
// Two implementations back this type: a pure-Go one (default) and a cgo one
// bound to libzstd, selected with the "gozstd" build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
