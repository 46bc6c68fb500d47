package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arloliu/gfaidx/config"
	"github.com/arloliu/gfaidx/internal/output"
)

var version = "0.1.0"

// app carries the state shared by every command of one invocation.
type app struct {
	v          *viper.Viper
	cfg        *config.Config
	logger     *slog.Logger
	configPath string
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "gfaidx",
		Short: "Read, index and query GFA pangenome graphs",
		Long: `gfaidx reads GFA 1.x pangenome graphs, builds compact index files for them
and answers segment, path and coordinate queries by seeking into the source.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default: gfaidx.yaml in . or $HOME/.config/gfaidx)")
	pf.BoolP("verbose", "v", false, "debug logging and full issue lists")
	pf.StringP("format", "f", "text", "output format: text, json or yaml")
	_ = a.v.BindPFlag(config.KeyVerbose, pf.Lookup("verbose"))
	_ = a.v.BindPFlag(config.KeyFormat, pf.Lookup("format"))

	root.AddCommand(
		a.newStatsCmd(),
		a.newIndexCmd(),
		a.newQueryCmd(),
		a.newIndexInfoCmd(),
		a.newValidateCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.ReadFile(a.v, a.configPath); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.logger.Debug("configuration loaded",
		slog.String("config", a.v.ConfigFileUsed()),
		slog.String("format", cfg.Format))

	return nil
}

func (a *app) printer(w io.Writer) *output.Printer {
	return output.NewPrinter(w, a.cfg.OutputFormat())
}
