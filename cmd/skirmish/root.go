package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/udisondev/skirmish/internal/config"
)

// app holds what every subcommand shares: the filesystem, the console
// streams and the loaded configuration.
type app struct {
	fs      afero.Fs
	in      io.Reader
	out     io.Writer
	cfgPath string
	cfg     config.Game
}

func newRootCmd(fsys afero.Fs, in io.Reader, out io.Writer) *cobra.Command {
	a := &app{fs: fsys, in: in, out: out}

	root := &cobra.Command{
		Use:   "skirmish",
		Short: "Turn-based two-on-two lane skirmish",
		Long: `skirmish runs a turn-based tactical match on a 21x21 grid.

Two teams of two champions fight neutral monsters and each other, collect
keys to break the enemy barrier, then destroy the enemy base.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.loadConfig()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "",
		"config file (default $SKIRMISH_CONFIG or "+DefaultConfigPath+")")

	root.AddCommand(
		a.playCmd(),
		a.rosterCmd(),
		a.validateCmd(),
		a.historyCmd(),
	)
	return root
}

// loadConfig resolves the config path, loads it and installs the logger.
// Logs go to stderr; stdout belongs to the game console.
func (a *app) loadConfig() error {
	path := a.cfgPath
	if path == "" {
		path = DefaultConfigPath
		if p := os.Getenv("SKIRMISH_CONFIG"); p != "" {
			path = p
		}
	}

	cfg, err := config.LoadGame(a.fs, path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Debug("config loaded", "path", path, "roster", cfg.Roster, "db", cfg.Database.Enabled, "bus", cfg.Bus.Enabled)
	return nil
}
