// Package section defines the low-level binary structures of the gfaidx index file.
//
// An index file is a fixed 64-byte header followed by a body holding one section per
// sub-index selected in the header flags:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (64 bytes, fixed)                                │
//	│  - magic "GFAI", version                                │
//	│  - source fingerprint: size, mtime, head hash           │
//	│  - Flag: index types, compression, options              │
//	│  - body lengths (stored / raw) and body checksum        │
//	├─────────────────────────────────────────────────────────┤
//	│ Body (optionally compressed)                            │
//	│  [SEGMENT]  count + segment entries                     │
//	│  [PATH]     count + path entries                        │
//	│  [POSITION] path count + per path position records      │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field          | Type    | Description
//	-------|----------------|---------|-------------------------------------------
//	0-3    | Magic          | [4]byte | "GFAI", raw bytes
//	4-7    | Version        | uint32  | format version, currently 1
//	8-15   | SourceSize     | uint64  | byte size of the indexed GFA file
//	16-23  | SourceModTime  | int64   | mtime of the indexed file, unix nanoseconds
//	24-31  | HeadHash       | uint64  | xxHash64 of the first 64 KiB of the source
//	32     | Flag.Index     | uint8   | SEGMENT=1, PATH=2, POSITION=4
//	33     | Flag.Compress  | uint8   | body compression (format.CompressionType)
//	34     | Flag.Options   | uint8   | bit 0: big-endian
//	35     | reserved       | uint8   | must be 0
//	36-43  | BodyLength     | uint64  | stored (possibly compressed) body length
//	44-51  | RawLength      | uint64  | body length after decompression
//	52-59  | Checksum       | uint64  | xxHash64 of the stored body
//	60-63  | reserved       | [4]byte | must be 0
//
// Every multi-byte field uses the byte order selected by bit 0 of Flag.Options, which
// is the only field read before the byte order is known.
//
// # Entry Formats
//
// Names are length-prefixed with a uint16:
//
//	SegmentEntry:   name_len u16 | name | offset u64 | byte_len u32 | seq_len u64
//	PathEntry:      name_len u16 | name | offset u64 | byte_len u32 | step_count u32 | total_len u64
//	PositionRecord: name_len u16 | name | orientation u8 | start u64 | end u64
//
// Decoding never reads past the end of its input: any declared length that does
// not fit returns errs.ErrTruncated.
package section
