package compress

// ZstdCompressor compresses block payloads with Zstandard.
//
// The default build uses the pure Go klauspost/compress/zstd implementation.
// Building with the gozstd tag switches to the cgo valyala/gozstd bindings;
// both produce standard Zstandard frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
