package graph

import (
	"errors"
	"io"
	"log/slog"

	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/gfa"
	"github.com/arloliu/gfaidx/internal/options"
)

// LoadConfig controls how a Graph is read.
type LoadConfig struct {
	keepSequences bool
	logger        *slog.Logger
}

// LoadOption configures Load and LoadFile.
type LoadOption = options.Option[*LoadConfig]

// WithoutSequences drops segment sequences while loading; lengths are still recorded.
// Statistics that look at bases (GC content) then report zero.
func WithoutSequences() LoadOption {
	return options.NoError(func(c *LoadConfig) {
		c.keepSequences = false
	})
}

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *slog.Logger) LoadOption {
	return options.NoError(func(c *LoadConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

func newLoadConfig(opts []LoadOption) (*LoadConfig, error) {
	cfg := &LoadConfig{
		keepSequences: true,
		logger:        slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads a whole GFA stream into a Graph.
//
// The first malformed record or duplicate name aborts loading. Parse errors are
// *gfa.ParseError values with the line number filled in.
func Load(r io.Reader, opts ...LoadOption) (*Graph, error) {
	cfg, err := newLoadConfig(opts)
	if err != nil {
		return nil, err
	}

	parser := gfa.Parser{KeepSequence: cfg.keepSequences}
	lr := gfa.NewLineReader(r)
	defer lr.Close()

	g := New()
	for {
		line, err := lr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errs.WrapIO("read", "", err)
		}

		rec, err := parser.ParseLine(line.Text, line.Offset)
		if err != nil {
			var pe *gfa.ParseError
			if errors.As(err, &pe) {
				pe.Line = line.Number
			}

			return nil, err
		}

		if err := g.Insert(rec); err != nil {
			return nil, &gfa.ParseError{Line: line.Number, Offset: line.Offset, Err: err}
		}
	}

	cfg.logger.Debug("graph loaded",
		slog.Int("segments", g.SegmentCount()),
		slog.Int("links", g.LinkCount()),
		slog.Int("paths", g.PathCount()),
		slog.Int64("bytes", lr.Offset()))

	return g, nil
}

// LoadFile reads the GFA file at path. Gzip-compressed files are accepted.
func LoadFile(path string, opts ...LoadOption) (*Graph, error) {
	rc, err := gfa.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return Load(rc, opts...)
}
