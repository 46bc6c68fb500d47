package section

import "math"

// Magic identifies a gfaidx index file.
var Magic = [4]byte{'G', 'F', 'A', 'I'}

const (
	// Version is the index format version written by this package.
	Version uint32 = 1

	HeaderSize  = 64             // fixed header size in bytes
	MaxNameLen  = math.MaxUint16 // longest name that fits the u16 length prefix
	MaxByteLen  = math.MaxUint32 // longest record line that fits a u32 byte length
	MaxCount    = math.MaxUint32 // largest entry count of a section
	NamePrefix  = 2              // size of a name length prefix
	CountSize   = 4              // size of a section or entry count
	segmentTail = 8 + 4 + 8      // offset, byte_len, seq_len
	pathTail    = 8 + 4 + 4 + 8  // offset, byte_len, step_count, total_len
	recordTail  = 1 + 8 + 8      // orientation, start, end
)

const (
	// OptionBigEndian marks a body and header written in big-endian byte order.
	OptionBigEndian uint8 = 0x01

	optionsReservedMask = ^OptionBigEndian
)
