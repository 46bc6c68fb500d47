package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arloliu/gfaidx/graph"
	"github.com/arloliu/gfaidx/validate"
)

func (a *app) newValidateCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a GFA file",
		Long: `Load a GFA file and report links and paths that reference undefined segments
(errors) and segments without a sequence (warnings).

Only the first 5 issues of each kind are listed unless --verbose is set. Failed
validation is reported in the output; the exit status stays zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := graph.LoadFile(input, graph.WithLogger(a.logger))
			if err != nil {
				return err
			}

			report := validate.Check(g)
			a.logger.Debug("validation finished",
				slog.Int("errors", len(report.Errors)),
				slog.Int("warnings", len(report.Warnings)))

			return a.printer(cmd.OutOrStdout()).Print(report, func() string {
				return report.Format(a.cfg.Verbose)
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "GFA file (plain or gzip)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
