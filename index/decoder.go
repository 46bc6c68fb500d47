package index

import (
	"fmt"

	"github.com/arloliu/gfaidx/compress"
	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/format"
	"github.com/arloliu/gfaidx/gfa"
	"github.com/arloliu/gfaidx/internal/hash"
	"github.com/arloliu/gfaidx/section"
)

// sizedDecompressor is implemented by codecs that decode faster when the output size
// is known up front.
type sizedDecompressor interface {
	DecompressSized(data []byte, size int) ([]byte, error)
}

// Decode parses an index file held in memory.
//
// Returns:
//   - error: errs.ErrBadMagic, errs.ErrUnsupportedVersion, errs.ErrTruncated,
//     errs.ErrChecksumMismatch, errs.ErrInvalidHeaderFlags, errs.ErrTrailingIndexData
//     or errs.ErrInvalidPositionData
func Decode(data []byte) (*Index, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	stored := data[section.HeaderSize:]
	switch {
	case uint64(len(stored)) < header.BodyLength:
		return nil, fmt.Errorf("%w: body needs %d bytes, got %d", errs.ErrTruncated, header.BodyLength, len(stored))
	case uint64(len(stored)) > header.BodyLength:
		return nil, fmt.Errorf("%w: %d bytes after the body", errs.ErrTrailingIndexData, uint64(len(stored))-header.BodyLength)
	}

	if sum := hash.Sum(stored); sum != header.Checksum {
		return nil, fmt.Errorf("%w: body hash %016x, header says %016x", errs.ErrChecksumMismatch, sum, header.Checksum)
	}

	body, err := decompressBody(&header, stored)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		Types: header.Flag.IndexType(),
		Source: Fingerprint{
			Size:     header.SourceSize,
			ModTime:  header.SourceModTime,
			HeadHash: header.HeadHash,
		},
	}

	r := section.NewReader(body, header.Flag.GetEndianEngine())

	if idx.Types.Has(format.IndexSegment) {
		if idx.Segments, err = decodeSegments(r); err != nil {
			return nil, err
		}
	}
	if idx.Types.Has(format.IndexPath) {
		if idx.Paths, err = decodePaths(r); err != nil {
			return nil, err
		}
	}
	if idx.Types.Has(format.IndexPosition) {
		if idx.Positions, err = decodePositions(r); err != nil {
			return nil, err
		}
	}

	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d bytes after the last section", errs.ErrTrailingIndexData, r.Remaining())
	}

	return idx, nil
}

func decompressBody(header *section.Header, stored []byte) ([]byte, error) {
	ct := header.Flag.CompressionType()
	if ct == format.CompressionNone {
		if header.RawLength != header.BodyLength {
			return nil, fmt.Errorf("%w: uncompressed body is %d bytes, header says %d",
				errs.ErrTruncated, header.BodyLength, header.RawLength)
		}

		return stored, nil
	}

	if header.RawLength > uint64(maxBodySize) {
		return nil, fmt.Errorf("%w: raw body length %d exceeds %d", errs.ErrInvalidHeaderFlags, header.RawLength, maxBodySize)
	}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	var body []byte
	if sized, ok := codec.(sizedDecompressor); ok {
		body, err = sized.DecompressSized(stored, int(header.RawLength))
	} else {
		body, err = codec.Decompress(stored)
	}
	if err != nil {
		return nil, fmt.Errorf("decompress %s index body: %w", ct, err)
	}

	if uint64(len(body)) != header.RawLength {
		return nil, fmt.Errorf("%w: body decompressed to %d bytes, header says %d",
			errs.ErrTruncated, len(body), header.RawLength)
	}

	return body, nil
}

// maxBodySize bounds the decompressed body so a corrupt header cannot ask for an
// absurd allocation.
const maxBodySize = 1 << 40

func decodeSegments(r *section.Reader) (*SegmentIndex, error) {
	n, err := r.Count("segment", section.MinSegmentEntrySize)
	if err != nil {
		return nil, err
	}

	idx := newSegmentIndex(n)
	for range n {
		e, err := section.ParseSegmentEntry(r)
		if err != nil {
			return nil, err
		}
		if !idx.add(e) {
			return nil, fmt.Errorf("%w: segment %q appears twice in index", errs.ErrDuplicateName, e.Name)
		}
	}

	return idx, nil
}

func decodePaths(r *section.Reader) (*PathIndex, error) {
	n, err := r.Count("path", section.MinPathEntrySize)
	if err != nil {
		return nil, err
	}

	idx := newPathIndex(n)
	for range n {
		e, err := section.ParsePathEntry(r)
		if err != nil {
			return nil, err
		}
		if !idx.add(e) {
			return nil, fmt.Errorf("%w: path %q appears twice in index", errs.ErrDuplicateName, e.Name)
		}
	}

	return idx, nil
}

func decodePositions(r *section.Reader) (*PositionIndex, error) {
	n, err := r.Count("position path", section.MinPositionPathSize)
	if err != nil {
		return nil, err
	}

	idx := newPositionIndex(n)
	for range n {
		name, err := r.Name("position path name")
		if err != nil {
			return nil, err
		}

		count, err := r.Count("position entry", section.MinPositionRecordSize)
		if err != nil {
			return nil, err
		}

		entries := make([]PositionEntry, count)
		var pos uint64
		for i := range entries {
			rec, err := section.ParsePositionRecord(r)
			if err != nil {
				return nil, err
			}

			orient := gfa.Orientation(rec.Orientation)
			switch {
			case !orient.Valid():
				return nil, fmt.Errorf("%w: path %q step %d has orientation %d",
					errs.ErrInvalidPositionData, name, i, rec.Orientation)
			case rec.Start != pos || rec.End < rec.Start:
				return nil, fmt.Errorf("%w: path %q step %d covers [%d, %d), expected start %d",
					errs.ErrInvalidPositionData, name, i, rec.Start, rec.End, pos)
			}
			pos = rec.End

			entries[i] = PositionEntry{
				PathName:    name,
				SegmentName: rec.SegmentName,
				Orientation: orient,
				Start:       rec.Start,
				End:         rec.End,
				StepIndex:   i,
			}
		}

		if !idx.addPath(name, entries) {
			return nil, fmt.Errorf("%w: position path %q appears twice in index", errs.ErrDuplicateName, name)
		}
	}

	return idx, nil
}
