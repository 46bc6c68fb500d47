package main

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/gfaidx/config"
	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/index"
	"github.com/arloliu/gfaidx/internal/output"
	"github.com/arloliu/gfaidx/query"
)

type segmentResult struct {
	Name           string `json:"name" yaml:"name"`
	SequenceLength uint64 `json:"sequence_length" yaml:"sequence_length"`
	Offset         uint64 `json:"offset" yaml:"offset"`
	ByteLength     uint32 `json:"byte_length" yaml:"byte_length"`
	Sequence       string `json:"sequence,omitempty" yaml:"sequence,omitempty"`
}

type pathResult struct {
	Name        string   `json:"name" yaml:"name"`
	StepCount   uint32   `json:"step_count" yaml:"step_count"`
	TotalLength uint64   `json:"total_length" yaml:"total_length"`
	Offset      uint64   `json:"offset" yaml:"offset"`
	Steps       []string `json:"steps,omitempty" yaml:"steps,omitempty"`
}

type positionResult struct {
	Path        string `json:"path" yaml:"path"`
	Position    int64  `json:"position" yaml:"position"`
	Segment     string `json:"segment" yaml:"segment"`
	Orientation string `json:"orientation" yaml:"orientation"`
	Start       uint64 `json:"start" yaml:"start"`
	End         uint64 `json:"end" yaml:"end"`
	StepIndex   int    `json:"step_index" yaml:"step_index"`
	Offset      uint64 `json:"offset_in_segment" yaml:"offset_in_segment"`
}

type queryCmd struct {
	*app
	input     string
	indexPath string
}

func (a *app) newQueryCmd() *cobra.Command {
	q := &queryCmd{app: a}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query an indexed GFA file",
		Long: `Answer queries from an index file, reading only the matching lines of the
source GFA file.

When the source changed since the index was built, a warning is logged and the
query still runs; pass --strict to refuse instead.

Example:
  gfaidx query -i graph.gfa -x graph.gfaidx segment -n s1
  gfaidx query -i graph.gfa -x graph.gfaidx position -p HG002#1#chr1 --pos 120000`,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&q.input, "input", "i", "", "GFA file the index was built from")
	pf.StringVarP(&q.indexPath, "index", "x", "", "index file")
	pf.Bool("strict", false, "fail when the source does not match the index")
	pf.Bool("no-stale-check", false, "skip the source fingerprint check")
	_ = cmd.MarkPersistentFlagRequired("input")
	_ = cmd.MarkPersistentFlagRequired("index")
	_ = a.v.BindPFlag(config.KeyQueryStrict, pf.Lookup("strict"))
	_ = a.v.BindPFlag(config.KeyQuerySkipStale, pf.Lookup("no-stale-check"))

	cmd.AddCommand(
		q.segmentCmd(),
		q.pathCmd(),
		q.positionCmd(),
		q.rangeCmd(),
		q.listCmd("list-segments", "List all indexed segments", "segments", (*query.Engine).ListSegments),
		q.listCmd("list-paths", "List all indexed paths", "paths", (*query.Engine).ListPaths),
	)

	return cmd
}

func (q *queryCmd) open() (*query.Engine, error) {
	opts := []query.Option{query.WithLogger(q.logger)}
	if q.cfg.Query.StrictSource {
		opts = append(opts, query.WithStrictSource())
	}
	if q.cfg.Query.SkipStaleCheck {
		opts = append(opts, query.WithoutStaleCheck())
	}

	return query.Open(q.indexPath, q.input, opts...)
}

// run opens the engine, calls fn, and closes the engine.
func (q *queryCmd) run(cmd *cobra.Command, fn func(*query.Engine, *output.Printer) error) error {
	eng, err := q.open()
	if err != nil {
		return err
	}
	defer eng.Close()

	return fn(eng, q.printer(cmd.OutOrStdout()))
}

func (q *queryCmd) segmentCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Get segment information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return q.run(cmd, func(eng *query.Engine, p *output.Printer) error {
				seg, ok, err := eng.GetSegment(name)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "Segment '%s' not found in index\n", name)
					return nil
				}

				entry, _ := eng.SegmentInfo(name)
				res := segmentResult{
					Name:           seg.Name,
					SequenceLength: seg.Length,
					Offset:         entry.Offset,
					ByteLength:     entry.ByteLength,
					Sequence:       seg.Sequence,
				}

				return p.Print(res, func() string {
					var b strings.Builder
					fmt.Fprintf(&b, "%s %s\n", p.Label("Segment:"), res.Name)
					fmt.Fprintf(&b, "  Sequence length: %d bp\n", res.SequenceLength)
					fmt.Fprintf(&b, "  File offset: %d\n", res.Offset)
					if q.cfg.Verbose && res.Sequence != "" {
						fmt.Fprintf(&b, "  Sequence: %s\n", res.Sequence)
					}

					return b.String()
				})
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "segment name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func (q *queryCmd) pathCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Get path information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return q.run(cmd, func(eng *query.Engine, p *output.Printer) error {
				if eng.Index().Paths == nil {
					return fmt.Errorf("%w: path", errs.ErrIndexNotBuilt)
				}

				entry, ok := eng.PathInfo(name)
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "Path '%s' not found in index\n", name)
					return nil
				}

				res := pathResult{
					Name:        entry.Name,
					StepCount:   entry.StepCount,
					TotalLength: entry.TotalLength,
					Offset:      entry.Offset,
				}
				if q.cfg.Verbose {
					path, _, err := eng.GetPath(name)
					if err != nil {
						return err
					}
					for _, st := range path.Steps {
						res.Steps = append(res.Steps, st.String())
					}
				}

				return p.Print(res, func() string {
					var b strings.Builder
					fmt.Fprintf(&b, "%s %s\n", p.Label("Path:"), res.Name)
					fmt.Fprintf(&b, "  Steps: %d\n", res.StepCount)
					fmt.Fprintf(&b, "  Total length: %d bp\n", res.TotalLength)
					if len(res.Steps) > 0 {
						fmt.Fprintf(&b, "  Walk: %s\n", strings.Join(res.Steps, ","))
					}

					return b.String()
				})
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "path name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPositionResult(path string, pos int64, e index.PositionEntry) positionResult {
	return positionResult{
		Path:        path,
		Position:    pos,
		Segment:     e.SegmentName,
		Orientation: e.Orientation.String(),
		Start:       e.Start,
		End:         e.End,
		StepIndex:   e.StepIndex,
		Offset:      uint64(pos) - e.Start,
	}
}

func (q *queryCmd) positionCmd() *cobra.Command {
	var (
		path string
		pos  int64
	)

	cmd := &cobra.Command{
		Use:   "position",
		Short: "Find the segment covering a path coordinate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return q.run(cmd, func(eng *query.Engine, p *output.Printer) error {
				if eng.Index().Positions == nil {
					return fmt.Errorf("%w: position", errs.ErrIndexNotBuilt)
				}

				entry, ok := eng.QueryPosition(path, pos)
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "Position %d not found in path '%s'\n", pos, path)
					return nil
				}

				res := newPositionResult(path, pos, entry)

				return p.Print(res, func() string {
					var b strings.Builder
					fmt.Fprintf(&b, "%s\n", p.Label(fmt.Sprintf("Position %d in path '%s':", pos, path)))
					fmt.Fprintf(&b, "  Segment: %s%s\n", res.Segment, res.Orientation)
					fmt.Fprintf(&b, "  Segment range: %d - %d\n", res.Start, res.End)
					fmt.Fprintf(&b, "  Offset in segment: %d\n", res.Offset)
					fmt.Fprintf(&b, "  Step index: %d\n", res.StepIndex)

					return b.String()
				})
			})
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "path name")
	cmd.Flags().Int64Var(&pos, "pos", 0, "0-based coordinate on the path")
	_ = cmd.MarkFlagRequired("path")
	_ = cmd.MarkFlagRequired("pos")

	return cmd
}

func (q *queryCmd) rangeCmd() *cobra.Command {
	var (
		path       string
		start, end int64
	)

	cmd := &cobra.Command{
		Use:   "range",
		Short: "List the segments overlapping a path interval",
		Long:  `List the steps of a path that overlap the half-open interval [start, end).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return q.run(cmd, func(eng *query.Engine, p *output.Printer) error {
				if eng.Index().Positions == nil {
					return fmt.Errorf("%w: position", errs.ErrIndexNotBuilt)
				}

				entries := eng.QueryRange(path, start, end)
				res := make([]positionResult, 0, len(entries))
				for _, e := range entries {
					res = append(res, newPositionResult(path, max(start, int64(e.Start)), e))
				}

				return p.Print(res, func() string {
					var b strings.Builder
					fmt.Fprintf(&b, "%s\n", p.Label(fmt.Sprintf("Range [%d, %d) in path '%s' (%d segments):", start, end, path, len(res))))
					for _, r := range res {
						fmt.Fprintf(&b, "  %s%s\t%d - %d\tstep %d\n", r.Segment, r.Orientation, r.Start, r.End, r.StepIndex)
					}

					return b.String()
				})
			})
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "path name")
	cmd.Flags().Int64Var(&start, "start", 0, "interval start (inclusive)")
	cmd.Flags().Int64Var(&end, "end", 0, "interval end (exclusive)")
	_ = cmd.MarkFlagRequired("path")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (q *queryCmd) listCmd(use, short, noun string, list func(*query.Engine) iter.Seq[string]) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return q.run(cmd, func(eng *query.Engine, p *output.Printer) error {
				names := slices.Collect(list(eng))
				if names == nil {
					names = []string{}
				}

				return p.Print(map[string][]string{noun: names}, func() string {
					var b strings.Builder
					fmt.Fprintf(&b, "%s\n", p.Label(fmt.Sprintf("Indexed %s (%d):", noun, len(names))))
					for _, n := range names {
						fmt.Fprintf(&b, "  %s\n", n)
					}

					return b.String()
				})
			})
		},
	}
}
