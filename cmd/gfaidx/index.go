package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arloliu/gfaidx/config"
	"github.com/arloliu/gfaidx/index"
)

// DefaultIndexExt is appended to the source path when no output is given.
const DefaultIndexExt = ".gfaidx"

type indexResult struct {
	Source   string     `json:"source" yaml:"source"`
	Output   string     `json:"output" yaml:"output"`
	Info     index.Info `json:"info" yaml:"info"`
	Warnings []string   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func (a *app) newIndexCmd() *cobra.Command {
	var (
		inputs        []string
		outPath       string
		skipMalformed bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build an index for GFA files",
		Long: `Build an index file for each input. The source is streamed twice: once for
segments, once for paths and walks, so memory stays proportional to the index.

Index types: segment (seg, s), path (p), position (pos), full (all, f). Types can be
combined with '+' or ',', e.g. segment+position.

Example:
  gfaidx index -i graph.gfa -o graph.gfaidx
  gfaidx index -i a.gfa -i b.gfa -t segment+path -c zstd -j 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outPath != "" && len(inputs) > 1 {
				return fmt.Errorf("-o can only be used with a single input")
			}

			types, err := a.cfg.Index.IndexType()
			if err != nil {
				return err
			}
			ct, err := a.cfg.Index.CompressionType()
			if err != nil {
				return err
			}

			buildOpts := []index.BuildOption{index.WithLogger(a.logger)}
			if a.cfg.Index.Lenient {
				buildOpts = append(buildOpts, index.WithLenientReferences())
			}
			if skipMalformed {
				buildOpts = append(buildOpts, index.WithSkipMalformed())
			}

			encodeOpts := []index.EncodeOption{
				index.WithCompression(ct),
				index.WithEncodeLogger(a.logger),
			}
			if a.cfg.Index.BigEndian {
				encodeOpts = append(encodeOpts, index.WithBigEndian())
			}

			start := time.Now()
			results, err := index.BuildFiles(cmd.Context(), inputs, types, a.cfg.Index.Concurrency, buildOpts...)
			if err != nil {
				return err
			}

			reports := make([]indexResult, 0, len(results))
			for _, r := range results {
				out := outPath
				if out == "" {
					out = r.Source + DefaultIndexExt
				}
				if err := index.Save(r.Index, out, encodeOpts...); err != nil {
					return err
				}

				rep := indexResult{Source: r.Source, Output: out, Info: r.Index.Info()}
				for _, w := range r.Index.Warnings {
					rep.Warnings = append(rep.Warnings, w.String())
				}
				reports = append(reports, rep)
			}

			a.logger.Debug("indexes built",
				slog.Int("count", len(reports)),
				slog.String("type", types.String()),
				slog.Duration("elapsed", time.Since(start)))

			p := a.printer(cmd.OutOrStdout())

			return p.Print(reports, func() string {
				var b strings.Builder
				for i, rep := range reports {
					if i > 0 {
						b.WriteString("\n")
					}
					b.WriteString(results[i].Index.Summary())
					writeWarnings(&b, rep.Warnings, a.cfg.Verbose)
					fmt.Fprintf(&b, "\n%s %s\n", p.Label("Index saved to:"), rep.Output)
				}

				return b.String()
			})
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&inputs, "input", "i", nil, "GFA file to index (repeatable)")
	f.StringVarP(&outPath, "output", "o", "", "index file (default: <input>"+DefaultIndexExt+")")
	f.StringP("type", "t", "full", "index type: segment, path, position, full or a '+' combination")
	f.StringP("compression", "c", "none", "body compression: none, zstd, s2 or lz4")
	f.Bool("lenient", false, "record undefined path segments as warnings instead of failing")
	f.Bool("big-endian", false, "write multi-byte fields big-endian")
	f.IntP("jobs", "j", 0, "sources indexed at once (default: number of CPUs)")
	f.BoolVar(&skipMalformed, "skip-malformed", false, "skip malformed lines with a warning")
	_ = cmd.MarkFlagRequired("input")

	_ = a.v.BindPFlag(config.KeyIndexType, f.Lookup("type"))
	_ = a.v.BindPFlag(config.KeyIndexCompression, f.Lookup("compression"))
	_ = a.v.BindPFlag(config.KeyIndexLenient, f.Lookup("lenient"))
	_ = a.v.BindPFlag(config.KeyIndexBigEndian, f.Lookup("big-endian"))
	_ = a.v.BindPFlag(config.KeyIndexConcurrency, f.Lookup("jobs"))

	return cmd
}

func writeWarnings(b *strings.Builder, warnings []string, verbose bool) {
	if len(warnings) == 0 {
		return
	}

	fmt.Fprintf(b, "\nWarnings (%d):\n", len(warnings))
	shown := warnings
	if !verbose && len(shown) > 5 {
		shown = shown[:5]
	}
	for _, w := range shown {
		fmt.Fprintf(b, "  ⚠ %s\n", w)
	}
	if rest := len(warnings) - len(shown); rest > 0 {
		fmt.Fprintf(b, "  ... and %d more warnings\n", rest)
	}
}
