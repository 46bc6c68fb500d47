package query

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"sort"

	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/gfa"
	"github.com/arloliu/gfaidx/index"
)

// Engine serves queries over one index and its source.
type Engine struct {
	idx    *index.Index
	src    io.ReaderAt
	closer io.Closer
	stale  error
	logger *slog.Logger
	parser gfa.Parser
}

// Open loads the index at indexPath and opens the GFA file at sourcePath.
//
// When the source no longer matches the fingerprint stored in the index, Open still
// succeeds and Stale reports the mismatch, unless WithStrictSource is given.
func Open(indexPath, sourcePath string, opts ...Option) (*Engine, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	idx, err := index.Load(indexPath)
	if err != nil {
		return nil, err
	}

	var stale error
	if !cfg.skipStale {
		stale = idx.CheckSource(sourcePath)
		switch {
		case stale == nil:
		case !errors.Is(stale, errs.ErrStaleIndex), cfg.requireSync:
			return nil, stale
		default:
			cfg.logger.Warn("index does not match source",
				slog.String("index", indexPath),
				slog.String("source", sourcePath),
				slog.Any("error", stale))
		}
	}

	f, err := os.Open(sourcePath)
	if err != nil {
		return nil, errs.WrapIO("open", sourcePath, err)
	}

	eng := newEngine(idx, f, cfg)
	eng.closer = f
	eng.stale = stale

	return eng, nil
}

// New creates an Engine over an index already in memory. src must read the file the
// index was built from; New does not check its fingerprint.
func New(idx *index.Index, src io.ReaderAt, opts ...Option) (*Engine, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newEngine(idx, src, cfg), nil
}

func newEngine(idx *index.Index, src io.ReaderAt, cfg *Config) *Engine {
	return &Engine{
		idx:    idx,
		src:    src,
		logger: cfg.logger,
		parser: gfa.Parser{KeepSequence: true},
	}
}

// Close closes the source file opened by Open. It is a no-op for engines from New.
func (e *Engine) Close() error {
	if e.closer == nil {
		return nil
	}

	return e.closer.Close()
}

// Index returns the loaded index.
func (e *Engine) Index() *index.Index {
	return e.idx
}

// Stale returns the fingerprint mismatch found by Open, wrapping errs.ErrStaleIndex,
// or nil.
func (e *Engine) Stale() error {
	return e.stale
}

// GetSegment reads and parses the S line of the segment called name.
//
// Returns:
//   - *gfa.Segment, true, nil when found
//   - nil, false, nil when the index has no such segment
//   - errs.ErrIndexNotBuilt without a segment index, *errs.IOError when the read
//     fails, and errs.ErrStaleIndex when the line at the stored offset is not that
//     segment any more
func (e *Engine) GetSegment(name string) (*gfa.Segment, bool, error) {
	if e.idx.Segments == nil {
		return nil, false, fmt.Errorf("%w: segment", errs.ErrIndexNotBuilt)
	}

	entry, ok := e.idx.Segments.Get(name)
	if !ok {
		return nil, false, nil
	}

	rec, err := e.readRecord(int64(entry.Offset), entry.ByteLength) //nolint: gosec
	if err != nil {
		return nil, false, err
	}

	seg, ok := rec.(*gfa.Segment)
	if !ok || seg.Name != name {
		return nil, false, fmt.Errorf("%w: offset %d no longer holds segment %q", errs.ErrStaleIndex, entry.Offset, name)
	}

	return seg, true, nil
}

// GetPath reads and parses the P or W line of the path called name. Walks are
// returned as paths named sample#haplotype#seqid. Results follow GetSegment.
func (e *Engine) GetPath(name string) (*gfa.Path, bool, error) {
	if e.idx.Paths == nil {
		return nil, false, fmt.Errorf("%w: path", errs.ErrIndexNotBuilt)
	}

	entry, ok := e.idx.Paths.Get(name)
	if !ok {
		return nil, false, nil
	}

	rec, err := e.readRecord(int64(entry.Offset), entry.ByteLength) //nolint: gosec
	if err != nil {
		return nil, false, err
	}

	var p *gfa.Path
	switch r := rec.(type) {
	case *gfa.Path:
		p = r
	case *gfa.Walk:
		p = r.AsPath()
	}
	if p == nil || p.Name != name {
		return nil, false, fmt.Errorf("%w: offset %d no longer holds path %q", errs.ErrStaleIndex, entry.Offset, name)
	}

	return p, true, nil
}

func (e *Engine) readRecord(offset int64, length uint32) (gfa.Record, error) {
	buf := make([]byte, length)

	n, err := e.src.ReadAt(buf, offset)
	if n < len(buf) {
		if err == nil || errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return nil, errs.WrapIO("read", "", fmt.Errorf("%d bytes at offset %d: %w", length, offset, err))
	}

	rec, err := e.parser.ParseLine(buf, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrStaleIndex, err)
	}

	return rec, nil
}

// QueryPosition returns the position entry of path that covers coord.
//
// Entries are half-open, so a coordinate on the boundary of two steps belongs to the
// later step, and zero-length steps never match. A negative coordinate, one at or past
// the path length, an unknown path, or an index without positions all return false.
func (e *Engine) QueryPosition(path string, coord int64) (index.PositionEntry, bool) {
	if e.idx.Positions == nil || coord < 0 {
		return index.PositionEntry{}, false
	}

	entries, ok := e.idx.Positions.Entries(path)
	if !ok {
		return index.PositionEntry{}, false
	}

	c := uint64(coord)
	i := sort.Search(len(entries), func(i int) bool { return entries[i].End > c })
	if i < len(entries) && entries[i].Start <= c {
		return entries[i], true
	}

	return index.PositionEntry{}, false
}

// QueryRange returns the entries of path that overlap [start, end), in path order.
// Zero-length steps are left out.
func (e *Engine) QueryRange(path string, start, end int64) []index.PositionEntry {
	if e.idx.Positions == nil || end <= 0 || end <= start {
		return nil
	}
	start = max(start, 0)

	entries, ok := e.idx.Positions.Entries(path)
	if !ok {
		return nil
	}

	s, t := uint64(start), uint64(end)
	i := sort.Search(len(entries), func(i int) bool { return entries[i].End > s })

	var out []index.PositionEntry
	for ; i < len(entries) && entries[i].Start < t; i++ {
		if entries[i].Len() > 0 {
			out = append(out, entries[i])
		}
	}

	return out
}

// ListSegments iterates over segment names in source order. It yields nothing
// without a segment index.
func (e *Engine) ListSegments() iter.Seq[string] {
	if e.idx.Segments == nil {
		return func(func(string) bool) {}
	}

	return e.idx.Segments.Names()
}

// ListPaths iterates over path names in source order, taken from the path index or,
// failing that, the position index.
func (e *Engine) ListPaths() iter.Seq[string] {
	switch {
	case e.idx.Paths != nil:
		return e.idx.Paths.Names()
	case e.idx.Positions != nil:
		return e.idx.Positions.Names()
	default:
		return func(func(string) bool) {}
	}
}

// SegmentInfo returns the index entry of a segment without reading the source.
func (e *Engine) SegmentInfo(name string) (index.SegmentEntry, bool) {
	if e.idx.Segments == nil {
		return index.SegmentEntry{}, false
	}

	return e.idx.Segments.Get(name)
}

// PathInfo returns the index entry of a path without reading the source.
func (e *Engine) PathInfo(name string) (index.PathEntry, bool) {
	if e.idx.Paths == nil {
		return index.PathEntry{}, false
	}

	return e.idx.Paths.Get(name)
}
