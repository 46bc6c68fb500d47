// Command gfaidx reads, indexes and queries GFA pangenome graphs.
//
// Usage:
//
//	gfaidx [flags] <command> [args]
//
// Commands:
//
//	stats       - statistics of a GFA file
//	index       - build an index file for one or more GFA files
//	query       - look up segments, paths and coordinates through an index
//	index-info  - describe an index file
//	validate    - check a GFA file for dangling references
//
// Configuration:
//
//	Settings come from flags, GFAIDX_* environment variables and an optional
//	gfaidx.yaml in the working directory or $HOME/.config/gfaidx.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
