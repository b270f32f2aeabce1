/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ssargent/sus/pkg/api"
)

func newServeCmd(a *app) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the run catalog over HTTP",
		Long: `Start the catalog REST API. Runs and their LSUS arrays are served under
/api/v1 and Prometheus metrics under /metrics.

Examples:
  sus serve
  sus serve --port 9300 --api-key mysecretkey`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Server
			if cmd.Flags().Changed("bind") {
				cfg.Bind, _ = cmd.Flags().GetString("bind")
			}
			if cmd.Flags().Changed("port") {
				cfg.Port, _ = cmd.Flags().GetInt("port")
			}
			if cmd.Flags().Changed("api-key") {
				cfg.APIKey, _ = cmd.Flags().GetString("api-key")
			}

			cat, err := a.openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cat.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cat, api.ServerConfig{
				Bind:   cfg.Bind,
				Port:   cfg.Port,
				APIKey: cfg.APIKey,
			}, a)
		},
	}

	serveCmd.Flags().String("bind", "", "Address to bind (default from config, 127.0.0.1)")
	serveCmd.Flags().Int("port", 0, "Port to listen on (default from config, 9200)")
	serveCmd.Flags().String("api-key", "", "Require this X-API-Key on /api/v1")
	serveCmd.Flags().String("catalog-dir", "", "Catalog directory (default from config)")
	return serveCmd
}

// serve is replaced in tests.
var serve = func(ctx context.Context, runs api.RunStore, cfg api.ServerConfig, a *app) error {
	return api.StartServer(ctx, runs, cfg, a.logger)
}
