/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/ssargent/sus/pkg/catalog"
	"github.com/ssargent/sus/pkg/config"
)

// ErrNoCatalog is returned by catalog commands when no catalog directory is
// configured.
var ErrNoCatalog = errors.New("no catalog directory configured, set catalog_dir or --catalog-dir")

// app carries the state shared by every subcommand once the root command has
// loaded the configuration.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

// NewRootCmd builds the sus command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sus",
		Short: "sus - shortest unique substrings",
		Long: `sus loads a .txt or .fasta sequence collection, builds its suffix array
and computes the length of the shortest unique substring starting at
every position (LSUS).

Runs can be recorded in a local catalog and served over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Path to config file (default ~/.config/sus/config.yaml)")

	rootCmd.AddCommand(
		newRunCmd(a),
		newInitCmd(a),
		newRunsCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// load reads the configuration and sets up logging. An explicit --config
// must exist, except for init which creates it; the default path is optional.
func (a *app) load(cmd *cobra.Command) error {
	explicit := a.configPath != ""
	if !explicit {
		a.configPath = config.GetDefaultConfigPath()
	}

	switch {
	case cmd.Name() == "init":
		a.cfg = config.DefaultConfig()
	case config.ConfigExists(a.configPath):
		cfg, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	case explicit:
		return errors.Newf("config file does not exist: %s", a.configPath)
	default:
		a.cfg = config.DefaultConfig()
	}

	logger, err := newLogger(cmd.ErrOrStderr(), a.cfg.Logging)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func newLogger(w io.Writer, cfg config.Logging) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// openCatalog opens the catalog named by flag, falling back to the config.
func (a *app) openCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	dir, _ := cmd.Flags().GetString("catalog-dir")
	if dir == "" {
		dir = a.cfg.CatalogDir
	}
	if dir == "" {
		return nil, ErrNoCatalog
	}
	return catalog.Open(dir)
}
