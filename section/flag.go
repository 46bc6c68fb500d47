package section

import (
	"fmt"

	"github.com/arloliu/gfaidx/endian"
	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/format"
)

// Flag is the packed descriptor of an index body: which sub-indices it holds, how it is
// compressed and in which byte order it is written.
type Flag struct {
	// Index is the format.IndexType bitmask of the sub-indices present.
	Index uint8
	// Compression is the format.CompressionType applied to the body.
	Compression uint8
	// Options is a packed field. Bit 0 is the endianness flag, 0 means little-endian,
	// 1 means big-endian. Bits 1-7 are reserved and must be 0.
	Options uint8
}

// NewFlag creates a little-endian Flag for the given index types and compression.
func NewFlag(types format.IndexType, compression format.CompressionType) Flag {
	return Flag{
		Index:       uint8(types),
		Compression: uint8(compression),
	}
}

// IndexType returns the sub-index selection.
func (f Flag) IndexType() format.IndexType {
	return format.IndexType(f.Index)
}

// CompressionType returns the body compression.
func (f Flag) CompressionType() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// IsBigEndian returns whether the data is big-endian.
func (f Flag) IsBigEndian() bool {
	return f.Options&OptionBigEndian != 0
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= OptionBigEndian
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= OptionBigEndian
}

// GetEndianEngine returns the endian engine matching the flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	return endian.ForBigEndian(f.IsBigEndian())
}

// Validate checks that every field holds a known value.
func (f Flag) Validate() error {
	if !f.IndexType().Valid() {
		return fmt.Errorf("%w: index types 0x%02x", errs.ErrInvalidHeaderFlags, f.Index)
	}

	if !f.CompressionType().Valid() {
		return fmt.Errorf("%w: compression %d", errs.ErrInvalidHeaderFlags, f.Compression)
	}

	if f.Options&optionsReservedMask != 0 {
		return fmt.Errorf("%w: reserved option bits 0x%02x", errs.ErrInvalidHeaderFlags, f.Options)
	}

	return nil
}
