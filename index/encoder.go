package index

import (
	"fmt"

	"github.com/arloliu/gfaidx/compress"
	"github.com/arloliu/gfaidx/endian"
	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/format"
	"github.com/arloliu/gfaidx/internal/hash"
	"github.com/arloliu/gfaidx/internal/pool"
	"github.com/arloliu/gfaidx/section"
)

// Encode serializes idx into the index file format.
//
// Sub-indices selected by idx.Types but left nil are written as empty sections.
func Encode(idx *Index, opts ...EncodeOption) ([]byte, error) {
	cfg, err := newEncodeConfig(opts)
	if err != nil {
		return nil, err
	}

	return encode(idx, cfg)
}

func encode(idx *Index, cfg *EncodeConfig) ([]byte, error) {
	if !idx.Types.Valid() {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidIndexType, idx.Types)
	}

	header := section.NewHeader(idx.Types, cfg.compression)
	if cfg.bigEndian {
		header.Flag.WithBigEndian()
	}
	header.SourceSize = idx.Source.Size
	header.SourceModTime = idx.Source.ModTime
	header.HeadHash = idx.Source.HeadHash

	engine := header.Flag.GetEndianEngine()

	buf := pool.GetIndexBuffer()
	defer pool.PutIndexBuffer(buf)

	body, err := encodeBody(buf.B[:0], engine, idx)
	buf.B = body
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	stored, err := codec.Compress(body)
	if err != nil {
		return nil, fmt.Errorf("compress index body with %s: %w", cfg.compression, err)
	}

	header.BodyLength = uint64(len(stored))
	header.RawLength = uint64(len(body))
	header.Checksum = hash.Sum(stored)

	out := make([]byte, 0, section.HeaderSize+len(stored))
	out = append(out, header.Bytes()...)
	out = append(out, stored...)

	return out, nil
}

func encodeBody(b []byte, engine endian.EndianEngine, idx *Index) ([]byte, error) {
	var err error

	if idx.Types.Has(format.IndexSegment) {
		var entries []SegmentEntry
		if idx.Segments != nil {
			entries = idx.Segments.entries
		}
		if b, err = section.AppendCount(b, engine, len(entries)); err != nil {
			return b, err
		}
		for i := range entries {
			if b, err = entries[i].AppendTo(b, engine); err != nil {
				return b, err
			}
		}
	}

	if idx.Types.Has(format.IndexPath) {
		var entries []PathEntry
		if idx.Paths != nil {
			entries = idx.Paths.entries
		}
		if b, err = section.AppendCount(b, engine, len(entries)); err != nil {
			return b, err
		}
		for i := range entries {
			if b, err = entries[i].AppendTo(b, engine); err != nil {
				return b, err
			}
		}
	}

	if idx.Types.Has(format.IndexPosition) {
		var paths []pathPositions
		if idx.Positions != nil {
			paths = idx.Positions.paths.entries
		}
		if b, err = section.AppendCount(b, engine, len(paths)); err != nil {
			return b, err
		}
		for _, pp := range paths {
			if b, err = encodePathPositions(b, engine, pp); err != nil {
				return b, err
			}
		}
	}

	return b, nil
}

func encodePathPositions(b []byte, engine endian.EndianEngine, pp pathPositions) ([]byte, error) {
	b, err := section.AppendName(b, engine, pp.name)
	if err != nil {
		return b, fmt.Errorf("position path %.32q: %w", pp.name, err)
	}
	if b, err = section.AppendCount(b, engine, len(pp.entries)); err != nil {
		return b, err
	}

	for i := range pp.entries {
		e := &pp.entries[i]
		rec := section.PositionRecord{
			SegmentName: e.SegmentName,
			Orientation: uint8(e.Orientation),
			Start:       e.Start,
			End:         e.End,
		}
		if b, err = rec.AppendTo(b, engine); err != nil {
			return b, err
		}
	}

	return b, nil
}
