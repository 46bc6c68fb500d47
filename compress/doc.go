// Package compress provides the codecs that may be applied to the body of a gfaidx
// index file.
//
// The index header stays uncompressed so readers can check the magic, version and
// source fingerprint before touching the body. The body (segment, path and position
// sections) is passed through one Codec chosen at save time and recorded in the
// header's compression byte:
//
//	format.CompressionNone  no compression, the layout is readable as documented
//	format.CompressionZstd  best ratio, good for large position indices
//	format.CompressionS2    fast, moderate ratio
//	format.CompressionLZ4   fastest decode
//
// Zstandard uses the pure Go klauspost/compress implementation. Building with
// `-tags gozstd` (and cgo enabled) switches to the valyala/gozstd bindings instead;
// both produce standard zstd frames so either build can read the other's files.
//
// Index bodies are dominated by repeated segment names, which all four codecs
// handle well:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//		return err
//	}
//	stored, err := codec.Compress(body)
package compress
