/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/ssargent/sus/pkg/catalog"
)

func newRunsCmd(a *app) *cobra.Command {
	var format string

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the run catalog",
		Long: `List, show and remove runs recorded in the catalog.

Examples:
  sus runs list
  sus runs show 2HbJ6ZmW9DumdlSo1b0nwjzq8jO --format json
  sus runs rm 2HbJ6ZmW9DumdlSo1b0nwjzq8jO`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			if format != "table" && format != "json" {
				return errors.Newf("unknown format %q, use table or json", format)
			}
			return nil
		},
	}
	runsCmd.PersistentFlags().String("catalog-dir", "", "Catalog directory (default from config)")
	runsCmd.PersistentFlags().StringVar(&format, "format", "table", "Output format: table or json")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cat.Close()

			runs, err := cat.List()
			if err != nil {
				return err
			}
			if format == "json" {
				if runs == nil {
					runs = []*catalog.Manifest{}
				}
				return outputJSON(cmd.OutOrStdout(), runs)
			}
			return outputRunsTable(cmd.OutOrStdout(), runs)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cat.Close()

			m, err := cat.Get(args[0])
			if err != nil {
				return err
			}
			if format == "json" {
				return outputJSON(cmd.OutOrStdout(), m)
			}
			return outputRunTable(cmd.OutOrStdout(), m)
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a run from the catalog (its array files are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cat.Close()

			if err := cat.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed run %s\n", args[0])
			return nil
		},
	}

	runsCmd.AddCommand(listCmd, showCmd, rmCmd)
	return runsCmd
}

// outputRunsTable displays runs in table format
func outputRunsTable(out io.Writer, runs []*catalog.Manifest) error {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tINPUT\tALGORITHM\tWIDTH\tN\tSTARTED\tDURATION")
	for _, m := range runs {
		input := m.Input
		if len(input) > 40 {
			input = "..." + input[len(input)-37:]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			m.ID,
			input,
			m.Algorithm,
			m.IntWidth,
			m.Length,
			m.StartedAt.Format("2006-01-02 15:04"),
			m.Duration.Round(time.Millisecond))
	}
	return nil
}

// outputRunTable displays a single run in table format
func outputRunTable(out io.Writer, m *catalog.Manifest) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID:\t%s\n", m.ID)
	fmt.Fprintf(w, "Input:\t%s (%s)\n", m.Input, m.Format)
	fmt.Fprintf(w, "Records:\t%d\n", m.Records)
	fmt.Fprintf(w, "Length:\t%d bytes\n", m.Length)
	fmt.Fprintf(w, "Algorithm:\t%s\n", m.Algorithm)
	fmt.Fprintf(w, "Width:\t%d bits\n", m.IntWidth)
	fmt.Fprintf(w, "Checked:\t%t\n", m.Checked)
	if len(m.Outputs) > 0 {
		fmt.Fprintf(w, "Outputs:\t%s\n", strings.Join(m.Outputs, ", "))
	}
	fmt.Fprintf(w, "Started:\t%s\n", m.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration:\t%s\n", m.Duration)
	return nil
}

func outputJSON(out io.Writer, v interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
