// Package format holds the small enumerations shared by the index builder, the
// on-disk layout and the CLI.
package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/gfaidx/errs"
)

type (
	// IndexType is a bitmask selecting which sub-indices an index holds.
	IndexType uint8
	// CompressionType identifies the codec applied to an index body.
	CompressionType uint8
)

const (
	IndexSegment  IndexType = 0x1 // IndexSegment selects the segment name index.
	IndexPath     IndexType = 0x2 // IndexPath selects the path name index.
	IndexPosition IndexType = 0x4 // IndexPosition selects the per-path coordinate index.

	IndexFull = IndexSegment | IndexPath | IndexPosition // IndexFull selects every sub-index.

	indexMask = IndexFull
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores the body as is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

// Has reports whether every bit of other is set in t.
func (t IndexType) Has(other IndexType) bool {
	return other != 0 && t&other == other
}

// Valid reports whether t selects at least one known sub-index and nothing else.
func (t IndexType) Valid() bool {
	return t != 0 && t&^indexMask == 0
}

// NeedsPaths reports whether building t requires the second (path) pass.
func (t IndexType) NeedsPaths() bool {
	return t&(IndexPath|IndexPosition) != 0
}

func (t IndexType) String() string {
	switch t {
	case IndexSegment:
		return "segment"
	case IndexPath:
		return "path"
	case IndexPosition:
		return "position"
	case IndexFull:
		return "full"
	case 0:
		return "none"
	}

	if !t.Valid() {
		return "unknown"
	}

	parts := make([]string, 0, 3)
	for _, bit := range []IndexType{IndexSegment, IndexPath, IndexPosition} {
		if t.Has(bit) {
			parts = append(parts, bit.String())
		}
	}

	return strings.Join(parts, "+")
}

// ParseIndexType parses an index type name. Combinations may be joined with '+' or ','.
func ParseIndexType(s string) (IndexType, error) {
	var t IndexType
	for _, part := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return r == '+' || r == ',' }) {
		switch strings.TrimSpace(part) {
		case "segment", "seg", "s":
			t |= IndexSegment
		case "path", "p":
			t |= IndexPath
		case "position", "pos":
			t |= IndexPosition
		case "full", "all", "f":
			t |= IndexFull
		default:
			return 0, fmt.Errorf("%w: %q (valid types: segment, path, position, full)", errs.ErrInvalidIndexType, part)
		}
	}

	if t == 0 {
		return 0, fmt.Errorf("%w: empty selection", errs.ErrInvalidIndexType)
	}

	return t, nil
}

func (c CompressionType) String() string {
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

// Valid reports whether c is a known compression type.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// ParseCompressionType parses a compression name such as "zstd" or "none".
func ParseCompressionType(s string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, s)
	}
}
