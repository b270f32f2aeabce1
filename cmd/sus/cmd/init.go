/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ssargent/sus/pkg/config"
)

func newInitCmd(a *app) *cobra.Command {
	var (
		catalogDir string
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a default configuration file, optionally enabling the run catalog.

Examples:
  sus init
  sus init --catalog-dir ~/.local/share/sus/catalog
  sus init --config ./sus.yaml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalogDir != "" {
				abs, err := filepath.Abs(catalogDir)
				if err != nil {
					return err
				}
				catalogDir = abs
			}

			cfg, err := config.BootstrapConfig(a.configPath, catalogDir, force)
			if err != nil {
				return err
			}

			cmd.Printf("Configuration written to %s\n", a.configPath)
			if cfg.CatalogDir != "" {
				cmd.Printf("Run catalog: %s\n", cfg.CatalogDir)
			}
			return nil
		},
	}

	initCmd.Flags().StringVar(&catalogDir, "catalog-dir", "", "Directory of the run catalog (empty disables it)")
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return initCmd
}
