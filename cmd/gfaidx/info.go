package main

import (
	"github.com/spf13/cobra"

	"github.com/arloliu/gfaidx/index"
)

func (a *app) newIndexInfoCmd() *cobra.Command {
	var indexPath string

	cmd := &cobra.Command{
		Use:   "index-info",
		Short: "Show information about an index file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			idx, err := index.Load(indexPath)
			if err != nil {
				return err
			}

			return a.printer(cmd.OutOrStdout()).Print(idx.Info(), idx.Summary)
		},
	}

	cmd.Flags().StringVarP(&indexPath, "index", "x", "", "index file")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}
