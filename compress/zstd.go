package compress

// ZstdCompressor compresses index bodies with Zstandard.
//
// It gives the smallest files of the built-in codecs and is the usual choice for
// position indices over many haplotype paths, where segment names repeat heavily.
// The implementation is selected at build time, see zstd_pure.go and zstd_cgo.go.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
