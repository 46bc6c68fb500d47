package section

import (
	"fmt"

	"github.com/arloliu/gfaidx/endian"
	"github.com/arloliu/gfaidx/errs"
)

// SegmentEntry locates one segment record in the source file.
type SegmentEntry struct {
	Name           string
	Offset         uint64 // byte offset of the S line
	ByteLength     uint32 // length of the S line, terminator excluded
	SequenceLength uint64 // length of the sequence, or LN for '*' sequences
}

// PathEntry locates one path (or walk) record in the source file.
type PathEntry struct {
	Name        string
	Offset      uint64 // byte offset of the P or W line
	ByteLength  uint32 // length of the line, terminator excluded
	StepCount   uint32
	TotalLength uint64 // sum of the sequence lengths of all steps
}

// PositionRecord is one step of a path as stored on disk. The path name and the step
// index are implied by where the record sits in the position section.
type PositionRecord struct {
	SegmentName string
	Orientation uint8
	Start       uint64
	End         uint64
}

// AppendName appends a u16 length-prefixed name.
func AppendName(b []byte, engine endian.EndianEngine, name string) ([]byte, error) {
	if len(name) > MaxNameLen {
		return b, fmt.Errorf("%w: %d bytes (max %d)", errs.ErrNameTooLong, len(name), MaxNameLen)
	}

	b = engine.AppendUint16(b, uint16(len(name))) //nolint: gosec
	b = append(b, name...)

	return b, nil
}

// AppendCount appends a u32 section or entry count.
func AppendCount(b []byte, engine endian.EndianEngine, n int) ([]byte, error) {
	if n < 0 || uint64(n) > MaxCount {
		return b, fmt.Errorf("section: count %d does not fit u32", n)
	}

	return engine.AppendUint32(b, uint32(n)), nil
}

// AppendTo appends the encoded entry to b.
func (e *SegmentEntry) AppendTo(b []byte, engine endian.EndianEngine) ([]byte, error) {
	b, err := AppendName(b, engine, e.Name)
	if err != nil {
		return b, fmt.Errorf("segment %.32q: %w", e.Name, err)
	}

	b = engine.AppendUint64(b, e.Offset)
	b = engine.AppendUint32(b, e.ByteLength)
	b = engine.AppendUint64(b, e.SequenceLength)

	return b, nil
}

// AppendTo appends the encoded entry to b.
func (e *PathEntry) AppendTo(b []byte, engine endian.EndianEngine) ([]byte, error) {
	b, err := AppendName(b, engine, e.Name)
	if err != nil {
		return b, fmt.Errorf("path %.32q: %w", e.Name, err)
	}

	b = engine.AppendUint64(b, e.Offset)
	b = engine.AppendUint32(b, e.ByteLength)
	b = engine.AppendUint32(b, e.StepCount)
	b = engine.AppendUint64(b, e.TotalLength)

	return b, nil
}

// AppendTo appends the encoded record to b.
func (e *PositionRecord) AppendTo(b []byte, engine endian.EndianEngine) ([]byte, error) {
	b, err := AppendName(b, engine, e.SegmentName)
	if err != nil {
		return b, fmt.Errorf("position segment %.32q: %w", e.SegmentName, err)
	}

	b = append(b, e.Orientation)
	b = engine.AppendUint64(b, e.Start)
	b = engine.AppendUint64(b, e.End)

	return b, nil
}

// Reader decodes fixed-width fields from an index body, checking bounds on every read.
//
// Note: Reader is NOT thread-safe.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader creates a Reader over data.
func NewReader(data []byte, engine endian.EndianEngine) *Reader {
	return &Reader{data: data, engine: engine}
}

// Pos returns the number of bytes consumed.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

func (r *Reader) take(n int, what string) ([]byte, error) {
	if n > r.Remaining() {
		return nil, fmt.Errorf("%w: %s needs %d bytes at body offset %d, %d left",
			errs.ErrTruncated, what, n, r.pos, r.Remaining())
	}

	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// Uint8 reads one byte.
func (r *Reader) Uint8(what string) (uint8, error) {
	b, err := r.take(1, what)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// Uint32 reads a u32.
func (r *Reader) Uint32(what string) (uint32, error) {
	b, err := r.take(4, what)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

// Uint64 reads a u64.
func (r *Reader) Uint64(what string) (uint64, error) {
	b, err := r.take(8, what)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

// Name reads a u16 length-prefixed name.
func (r *Reader) Name(what string) (string, error) {
	b, err := r.take(NamePrefix, what+" length")
	if err != nil {
		return "", err
	}

	b, err = r.take(int(r.engine.Uint16(b)), what)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Count reads a u32 count of entries that take at least minSize bytes each. A count
// that cannot fit in the remaining bytes is reported as truncation before anything is
// allocated for it.
func (r *Reader) Count(what string, minSize int) (int, error) {
	n, err := r.Uint32(what + " count")
	if err != nil {
		return 0, err
	}

	if minSize > 0 && uint64(n)*uint64(minSize) > uint64(r.Remaining()) { //nolint: gosec
		return 0, fmt.Errorf("%w: %d %s entries declared, only %d bytes left",
			errs.ErrTruncated, n, what, r.Remaining())
	}

	return int(n), nil
}

// ParseSegmentEntry reads one SegmentEntry.
func ParseSegmentEntry(r *Reader) (SegmentEntry, error) {
	var (
		e   SegmentEntry
		err error
	)

	if e.Name, err = r.Name("segment name"); err != nil {
		return e, err
	}
	if e.Offset, err = r.Uint64("segment offset"); err != nil {
		return e, err
	}
	if e.ByteLength, err = r.Uint32("segment byte length"); err != nil {
		return e, err
	}
	if e.SequenceLength, err = r.Uint64("segment sequence length"); err != nil {
		return e, err
	}

	return e, nil
}

// ParsePathEntry reads one PathEntry.
func ParsePathEntry(r *Reader) (PathEntry, error) {
	var (
		e   PathEntry
		err error
	)

	if e.Name, err = r.Name("path name"); err != nil {
		return e, err
	}
	if e.Offset, err = r.Uint64("path offset"); err != nil {
		return e, err
	}
	if e.ByteLength, err = r.Uint32("path byte length"); err != nil {
		return e, err
	}
	if e.StepCount, err = r.Uint32("path step count"); err != nil {
		return e, err
	}
	if e.TotalLength, err = r.Uint64("path total length"); err != nil {
		return e, err
	}

	return e, nil
}

// ParsePositionRecord reads one PositionRecord.
func ParsePositionRecord(r *Reader) (PositionRecord, error) {
	var (
		e   PositionRecord
		err error
	)

	if e.SegmentName, err = r.Name("position segment name"); err != nil {
		return e, err
	}
	if e.Orientation, err = r.Uint8("position orientation"); err != nil {
		return e, err
	}
	if e.Start, err = r.Uint64("position start"); err != nil {
		return e, err
	}
	if e.End, err = r.Uint64("position end"); err != nil {
		return e, err
	}

	return e, nil
}

// Minimum encoded sizes, used to bound declared counts.
const (
	MinSegmentEntrySize   = NamePrefix + segmentTail
	MinPathEntrySize      = NamePrefix + pathTail
	MinPositionRecordSize = NamePrefix + recordTail
	MinPositionPathSize   = NamePrefix + CountSize
)
