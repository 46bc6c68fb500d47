package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/graph"
	"github.com/arloliu/gfaidx/stats"
)

func (a *app) newStatsCmd() *cobra.Command {
	var input, outPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Display statistics about a GFA file",
		Long: `Load a whole GFA file, plain or gzip, and report segment, link and path
counts, sequence length statistics (N50, GC content), connected components, degree
distributions and a segment length histogram.

Example:
  gfaidx stats -i graph.gfa
  gfaidx stats -i graph.gfa.gz -f json -o stats.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			g, err := graph.LoadFile(input, graph.WithLogger(a.logger))
			if err != nil {
				return err
			}

			s := stats.Compute(g)
			a.logger.Debug("statistics computed",
				slog.String("input", input),
				slog.Duration("elapsed", time.Since(start)))

			if outPath == "" {
				return a.printer(cmd.OutOrStdout()).Print(s, s.Summary)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return errs.WrapIO("create", outPath, err)
			}
			if err := a.printer(f).Print(s, s.Summary); err != nil {
				f.Close()
				return errs.WrapIO("write", outPath, err)
			}
			if err := f.Close(); err != nil {
				return errs.WrapIO("close", outPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Statistics written to: %s\n", outPath)

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "GFA file (plain or gzip)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (stdout if not set)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
