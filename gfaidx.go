// Package gfaidx reads, indexes and queries GFA 1.x pangenome graphs.
//
// A GFA file of a whole-genome pangenome can be tens of gigabytes. gfaidx builds a
// compact index over it in two streaming passes and then answers queries by seeking
// to the byte offset of the record they need, without loading the graph.
//
// # Core Features
//
//   - Segment index: name to byte offset, line length and sequence length
//   - Path index: name to byte offset, step count and total length (walks included)
//   - Position index: per-path coordinate intervals, binary searched per query
//   - Optional body compression (None, Zstd, S2, LZ4) and a 64-bit xxHash checksum
//   - Source fingerprint (size, mtime, head hash) to detect a changed source
//
// # Basic Usage
//
// Building and saving an index:
//
//	import "github.com/arloliu/gfaidx"
//
//	idx, err := gfaidx.IndexFile("graph.gfa", "graph.gfaidx", format.IndexFull)
//
// Querying:
//
//	eng, err := gfaidx.Open("graph.gfa", "graph.gfaidx")
//	defer eng.Close()
//
//	seg, ok, err := eng.GetSegment("s1")
//	entry, ok := eng.QueryPosition("HG002#1#chr1", 120_000)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the index and query
// packages. For whole-graph work (statistics, validation) load a graph.Graph with
// LoadGraph; for fine-grained control use the index and query packages directly.
package gfaidx

import (
	"github.com/arloliu/gfaidx/format"
	"github.com/arloliu/gfaidx/graph"
	"github.com/arloliu/gfaidx/index"
	"github.com/arloliu/gfaidx/query"
)

var defaultEncodeOptions = []index.EncodeOption{
	index.WithLittleEndian(),
	index.WithCompression(format.CompressionNone),
}

// BuildIndex builds an index of the given types over the GFA file at sourcePath.
//
// Undefined path segments fail the build unless index.WithLenientReferences() is
// given. Compressed (gzip) sources are rejected.
func BuildIndex(sourcePath string, types format.IndexType, opts ...index.BuildOption) (*index.Index, error) {
	return index.Build(sourcePath, types, opts...)
}

// SaveIndex writes idx to path. Without options the body is stored uncompressed and
// little-endian; opts are applied after those defaults.
func SaveIndex(idx *index.Index, path string, opts ...index.EncodeOption) error {
	all := make([]index.EncodeOption, 0, len(defaultEncodeOptions)+len(opts))
	all = append(all, defaultEncodeOptions...)
	all = append(all, opts...)

	return index.Save(idx, path, all...)
}

// LoadIndex reads and verifies an index file.
func LoadIndex(path string) (*index.Index, error) {
	return index.Load(path)
}

// IndexFile builds an index over sourcePath and saves it to indexPath.
//
// Parameters:
//   - sourcePath: uncompressed GFA file
//   - indexPath: destination, replaced atomically
//   - types: sub-indices to build
//   - opts: build options
//
// Returns the index that was saved.
func IndexFile(sourcePath, indexPath string, types format.IndexType, opts ...index.BuildOption) (*index.Index, error) {
	idx, err := BuildIndex(sourcePath, types, opts...)
	if err != nil {
		return nil, err
	}

	if err := SaveIndex(idx, indexPath); err != nil {
		return nil, err
	}

	return idx, nil
}

// Open loads the index at indexPath and opens sourcePath for queries. The caller must
// Close the returned engine.
func Open(sourcePath, indexPath string, opts ...query.Option) (*query.Engine, error) {
	return query.Open(indexPath, sourcePath, opts...)
}

// LoadGraph reads a whole GFA file, plain or gzip, into memory.
func LoadGraph(path string, opts ...graph.LoadOption) (*graph.Graph, error) {
	return graph.LoadFile(path, opts...)
}
