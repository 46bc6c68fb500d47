package index

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/format"
	"github.com/arloliu/gfaidx/gfa"
	"github.com/arloliu/gfaidx/section"
)

// ctxCheckInterval is how many lines are read between context checks.
const ctxCheckInterval = 4096

// Build indexes the GFA file at sourcePath. See BuildContext.
func Build(sourcePath string, types format.IndexType, opts ...BuildOption) (*Index, error) {
	return BuildContext(context.Background(), sourcePath, types, opts...)
}

// BuildContext indexes the GFA file at sourcePath, building the sub-indices selected
// by types.
//
// The source must be an uncompressed file: gzip input returns errs.ErrCompressedSource
// because offsets into it could not be read back with a positional read.
//
// Returns:
//   - *Index: the built index, with Warnings collected in lenient or skip modes
//   - error: *BuildError for source content problems, *errs.IOError for I/O failures,
//     errs.ErrInvalidIndexType, errs.ErrCompressedSource, or ctx.Err()
func BuildContext(ctx context.Context, sourcePath string, types format.IndexType, opts ...BuildOption) (*Index, error) {
	if !types.Valid() {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidIndexType, types)
	}

	cfg, err := newBuildConfig(opts)
	if err != nil {
		return nil, err
	}

	compressed, err := gfa.IsCompressed(sourcePath)
	if err != nil {
		return nil, err
	}
	if compressed {
		return nil, fmt.Errorf("%w: %s", errs.ErrCompressedSource, sourcePath)
	}

	b := &builder{
		ctx:    ctx,
		source: sourcePath,
		types:  types,
		cfg:    cfg,
	}

	return b.run()
}

type builder struct {
	ctx    context.Context
	source string
	types  format.IndexType
	cfg    *BuildConfig

	idx     *Index
	segLens map[string]uint64
}

func (b *builder) run() (*Index, error) {
	start := time.Now()

	f, err := os.Open(b.source)
	if err != nil {
		return nil, errs.WrapIO("open", b.source, err)
	}
	defer f.Close()

	fp, err := fingerprint(f, b.source)
	if err != nil {
		return nil, err
	}

	b.idx = &Index{Types: b.types, Source: fp}
	b.segLens = make(map[string]uint64)
	if b.types.Has(format.IndexSegment) {
		b.idx.Segments = newSegmentIndex(0)
	}

	if err := b.seekStart(f); err != nil {
		return nil, err
	}
	if err := b.scan(f, 'S', b.handleSegment); err != nil {
		return nil, err
	}
	b.cfg.logger.Debug("segment pass done",
		slog.String("source", b.source),
		slog.Int("segments", len(b.segLens)))

	if b.types.NeedsPaths() {
		if b.types.Has(format.IndexPath) {
			b.idx.Paths = newPathIndex(0)
		}
		if b.types.Has(format.IndexPosition) {
			b.idx.Positions = newPositionIndex(0)
		}
		paths := make(map[string]struct{})

		if err := b.seekStart(f); err != nil {
			return nil, err
		}
		err := b.scan(f, 'P', func(line gfa.Line, rec gfa.Record) error {
			return b.handlePath(line, rec, paths)
		})
		if err != nil {
			return nil, err
		}
		b.cfg.logger.Debug("path pass done",
			slog.String("source", b.source),
			slog.Int("paths", len(paths)))
	}

	b.cfg.logger.Info("index built",
		slog.String("source", b.source),
		slog.String("types", b.types.String()),
		slog.Int("warnings", len(b.idx.Warnings)),
		slog.Duration("elapsed", time.Since(start)))

	return b.idx, nil
}

func (b *builder) seekStart(f *os.File) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return errs.WrapIO("seek", b.source, err)
	}

	return nil
}

// recordType returns the record letter of a line, or 0 for lines that are not records.
func recordType(text []byte) byte {
	if len(text) == 0 || (len(text) > 1 && text[1] != '\t') {
		return 0
	}

	return text[0]
}

// scan parses the lines the pass is interested in and hands each record to handle.
// Pass 'S' takes segment lines; pass 'P' takes path and walk lines.
func (b *builder) scan(r io.Reader, pass byte, handle func(gfa.Line, gfa.Record) error) error {
	lr := gfa.NewLineReader(r)
	defer lr.Close()

	var parser gfa.Parser
	for {
		line, err := lr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return errs.WrapIO("read", b.source, err)
		}

		if line.Number%ctxCheckInterval == 0 {
			if err := b.ctx.Err(); err != nil {
				return err
			}
		}

		switch kind := recordType(line.Text); {
		case pass == 'S' && kind == 'S':
		case pass == 'P' && (kind == 'P' || kind == 'W'):
		default:
			continue
		}

		rec, err := parser.ParseLine(line.Text, line.Offset)
		if err != nil {
			var pe *gfa.ParseError
			if errors.As(err, &pe) {
				pe.Line = line.Number
			}
			if b.cfg.skipMalformed {
				b.warn(line, err)
				continue
			}

			return &BuildError{Source: b.source, Line: line.Number, Offset: line.Offset, Err: err}
		}

		if err := handle(line, rec); err != nil {
			return err
		}
	}

	return nil
}

func (b *builder) warn(line gfa.Line, err error) {
	b.idx.Warnings = append(b.idx.Warnings, Warning{Line: line.Number, Offset: line.Offset, Err: err})
	b.cfg.logger.Warn("index build warning",
		slog.String("source", b.source),
		slog.Int("line", line.Number),
		slog.Int64("offset", line.Offset),
		slog.Any("error", err))
}

func (b *builder) handleSegment(line gfa.Line, rec gfa.Record) error {
	seg, ok := rec.(*gfa.Segment)
	if !ok {
		return nil
	}

	if _, dup := b.segLens[seg.Name]; dup {
		return &BuildError{
			Source:  b.source,
			Line:    line.Number,
			Offset:  line.Offset,
			Segment: seg.Name,
			Err:     errs.ErrDuplicateName,
		}
	}
	if err := checkName(seg.Name); err != nil {
		return &BuildError{
			Source:  b.source,
			Line:    line.Number,
			Offset:  line.Offset,
			Segment: seg.Name,
			Err:     err,
		}
	}
	b.segLens[seg.Name] = seg.Length

	if b.idx.Segments != nil {
		b.idx.Segments.add(SegmentEntry{
			Name:           seg.Name,
			Offset:         uint64(seg.Loc.Offset), //nolint: gosec
			ByteLength:     seg.Loc.Length,
			SequenceLength: seg.Length,
		})
	}

	return nil
}

func (b *builder) handlePath(line gfa.Line, rec gfa.Record, seen map[string]struct{}) error {
	var p *gfa.Path
	switch r := rec.(type) {
	case *gfa.Path:
		p = r
	case *gfa.Walk:
		p = r.AsPath()
	default:
		return nil
	}

	buildErr := func(segment string, err error) error {
		return &BuildError{
			Source:   b.source,
			Line:     line.Number,
			Offset:   line.Offset,
			PathName: p.Name,
			Segment:  segment,
			Err:      err,
		}
	}

	if _, dup := seen[p.Name]; dup {
		return buildErr("", errs.ErrDuplicateName)
	}
	seen[p.Name] = struct{}{}

	if err := checkName(p.Name); err != nil {
		return buildErr("", err)
	}

	if uint64(len(p.Steps)) > section.MaxCount {
		return buildErr("", fmt.Errorf("%w: %d steps", errs.ErrMalformedRecord, len(p.Steps)))
	}

	var entries []PositionEntry
	if b.idx.Positions != nil {
		entries = make([]PositionEntry, 0, len(p.Steps))
	}

	var pos uint64
	for i, step := range p.Steps {
		length, ok := b.segLens[step.Segment]
		if !ok {
			if !b.cfg.lenient {
				return buildErr(step.Segment, errs.ErrUndefinedSegment)
			}
			b.warn(line, fmt.Errorf("%w: path %q step %d references %q",
				errs.ErrUndefinedSegment, p.Name, i, step.Segment))
			// Defined segments were checked in pass S; an unknown one lands in the position index as-is.
			if entries != nil {
				if err := checkName(step.Segment); err != nil {
					return buildErr(step.Segment, err)
				}
			}
		}

		if entries != nil {
			entries = append(entries, PositionEntry{
				PathName:    p.Name,
				SegmentName: step.Segment,
				Orientation: step.Orientation,
				Start:       pos,
				End:         pos + length,
				StepIndex:   i,
			})
		}
		pos += length
	}

	if b.idx.Paths != nil {
		b.idx.Paths.add(PathEntry{
			Name:        p.Name,
			Offset:      uint64(p.Loc.Offset), //nolint: gosec
			ByteLength:  p.Loc.Length,
			StepCount:   uint32(len(p.Steps)), //nolint: gosec
			TotalLength: pos,
		})
	}
	if b.idx.Positions != nil {
		b.idx.Positions.addPath(p.Name, entries)
	}

	return nil
}

// checkName rejects names that cannot be written behind the index's u16 length prefix.
func checkName(name string) error {
	if len(name) > section.MaxNameLen {
		return fmt.Errorf("%w: %d bytes (max %d)", errs.ErrNameTooLong, len(name), section.MaxNameLen)
	}

	return nil
}

// Result is the outcome of one source in BuildFiles.
type Result struct {
	Source string
	Index  *Index
	Err    error
}

// BuildFiles builds an index for each source with up to concurrency builds running at
// once. Builds share nothing, so one failing source does not affect the others.
//
// Results are returned in the order of sources. The returned error is the first
// failure in that order, or ctx.Err() if the context ended first.
func BuildFiles(ctx context.Context, sources []string, types format.IndexType, concurrency int, opts ...BuildOption) ([]Result, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(sources) {
		concurrency = len(sources)
	}

	results := make([]Result, len(sources))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				idx, err := BuildContext(ctx, sources[i], types, opts...)
				results[i] = Result{Source: sources[i], Index: idx, Err: err}
			}
		}()
	}

feed:
	for i := range sources {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	for _, r := range results {
		if r.Err != nil {
			return results, r.Err
		}
	}

	return results, nil
}
