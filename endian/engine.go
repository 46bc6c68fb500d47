// Package endian provides the byte order used by the gfaidx index codecs.
//
// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so the index
// encoder can append fixed-width fields directly to its buffer while the decoder reads
// them back from a slice:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, entry.Offset)
//	offset := engine.Uint64(buf[pos:])
//
// Index files are little-endian unless written with index.WithBigEndian(); the header
// records the choice so readers pick the matching engine.
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
)

// EndianEngine is a byte order that can both read fixed-width integers and append them.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForBigEndian returns the big-endian engine when big is true, otherwise little-endian.
func ForBigEndian(big bool) EndianEngine {
	if big {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	var b [2]byte
	engine.PutUint16(b[:], 0x0100)

	return b[0] == 0x01
}
