package section

import (
	"fmt"
	"unsafe"

	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/format"
)

// Header is the fixed-size section at the start of an index file.
type Header struct {
	// Version is the format version. Parse rejects anything but Version.
	Version uint32 // byte offset 4-7
	// SourceSize is the byte size of the source GFA file when it was indexed.
	SourceSize uint64 // byte offset 8-15
	// SourceModTime is the source modification time in unix nanoseconds.
	SourceModTime int64 // byte offset 16-23
	// HeadHash is the xxHash64 of the first 64 KiB of the source.
	HeadHash uint64 // byte offset 24-31
	// Flag holds the index types, the compression and the byte order.
	Flag Flag // byte offset 32-35
	// BodyLength is the stored body length, which is what follows the header on disk.
	BodyLength uint64 // byte offset 36-43
	// RawLength is the body length after decompression.
	RawLength uint64 // byte offset 44-51
	// Checksum is the xxHash64 of the stored body.
	Checksum uint64 // byte offset 52-59
}

// NewHeader creates a header of the current version. Lengths and the checksum are set
// by the encoder once the body is built.
func NewHeader(types format.IndexType, compression format.CompressionType) *Header {
	return &Header{
		Version: Version,
		Flag:    NewFlag(types, compression),
	}
}

// Parse parses the header from a byte slice.
//
// Returns:
//   - error: ErrTruncated if data is shorter than HeaderSize, ErrBadMagic,
//     ErrUnsupportedVersion, or ErrInvalidHeaderFlags
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, got %d", errs.ErrTruncated, HeaderSize, len(data))
	}

	if [4]byte(data[0:4]) != Magic {
		return fmt.Errorf("%w: %q", errs.ErrBadMagic, data[0:4])
	}

	// The options byte decides the byte order of everything else.
	h.Flag.Options = data[34]
	engine := h.Flag.GetEndianEngine()

	h.Version = engine.Uint32(data[4:8])
	if h.Version == 0 || h.Version > Version {
		return fmt.Errorf("%w: %d (supported: %d)", errs.ErrUnsupportedVersion, h.Version, Version)
	}

	h.SourceSize = engine.Uint64(data[8:16])
	modTime := engine.Uint64(data[16:24])
	h.SourceModTime = *(*int64)(unsafe.Pointer(&modTime))
	h.HeadHash = engine.Uint64(data[24:32])
	h.Flag.Index = data[32]
	h.Flag.Compression = data[33]
	h.BodyLength = engine.Uint64(data[36:44])
	h.RawLength = engine.Uint64(data[44:52])
	h.Checksum = engine.Uint64(data[52:60])

	return h.Flag.Validate()
}

// Bytes serializes the header into a HeaderSize byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	copy(b[0:4], Magic[:])
	engine.PutUint32(b[4:8], h.Version)
	engine.PutUint64(b[8:16], h.SourceSize)
	// Use bitwise conversion to store negative (pre-epoch) times as is.
	engine.PutUint64(b[16:24], *(*uint64)(unsafe.Pointer(&h.SourceModTime)))
	engine.PutUint64(b[24:32], h.HeadHash)
	b[32] = h.Flag.Index
	b[33] = h.Flag.Compression
	b[34] = h.Flag.Options
	engine.PutUint64(b[36:44], h.BodyLength)
	engine.PutUint64(b[44:52], h.RawLength)
	engine.PutUint64(b[52:60], h.Checksum)

	return b
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	h := Header{}
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
