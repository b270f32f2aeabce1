/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/ssargent/sus/pkg/catalog"
	"github.com/ssargent/sus/pkg/pipeline"
	"github.com/ssargent/sus/pkg/seqio"
	"github.com/ssargent/sus/pkg/suffix"
)

type runFlags struct {
	algorithm   int
	records     int
	output      bool
	arrays      bool
	check       bool
	print       bool
	intWidth    int
	catalogDir  string
	metricsFile string
}

func newRunCmd(a *app) *cobra.Command {
	f := &runFlags{}

	runCmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Compute the LSUS array of a sequence file",
		Long: `Compute the LSUS array of a .txt or .fasta file, optionally gzip or zstd
compressed.

Algorithms:
  1  IKX_LSUS   text + SA + LCP + LSUS  (13n bytes at 32 bits)
  2  HTX_LSUS   text + SA + LSUS        (9n bytes at 32 bits)
  3  PLCP_LSUS  text + SA + PHI         (9n bytes at 32 bits)

Examples:
  sus run reads.fasta -o
  sus run reads.txt -A 1 -k 1000 -c
  sus run genome.fasta.gz --int-width=64 -o --arrays`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], f)
		},
	}

	flags := runCmd.Flags()
	flags.IntVarP(&f.algorithm, "algorithm", "A", 0, "LSUS algorithm 1, 2 or 3 (default from config, 3)")
	flags.IntVarP(&f.records, "records", "k", 0, "Use only the first K records of the input")
	flags.BoolVarP(&f.output, "output", "o", false, "Write the LSUS array to INPUT.<width>.lsus")
	flags.BoolVar(&f.arrays, "arrays", false, "Also write the text (.bin), suffix array (.sa) and BWT (.bwt)")
	flags.BoolVarP(&f.check, "check", "c", false, "Recompute LSUS with IKX and compare")
	flags.BoolVarP(&f.print, "print", "p", false, "Print every LSUS value")
	flags.IntVar(&f.intWidth, "int-width", 0, "Index width in bits, 32 or 64 (default from config, 32)")
	flags.StringVar(&f.catalogDir, "catalog-dir", "", "Record the run in this catalog (default from config)")
	flags.StringVar(&f.metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format (default from config)")

	return runCmd
}

func (a *app) run(cmd *cobra.Command, input string, f *runFlags) error {
	cfg := a.cfg

	algorithm := cfg.Algorithm
	if cmd.Flags().Changed("algorithm") {
		algorithm = f.algorithm
	}
	variant, err := suffix.ParseVariant(algorithm)
	if err != nil {
		return err
	}

	width := cfg.IntWidth
	if cmd.Flags().Changed("int-width") {
		width = f.intWidth
	}

	limit := seqio.Unbounded
	switch {
	case cmd.Flags().Changed("records"):
		if f.records < 0 {
			return errors.Newf("-k must not be negative, got %d", f.records)
		}
		limit = seqio.Exactly(f.records)
	case cfg.MaxRecords > 0:
		limit = seqio.Exactly(cfg.MaxRecords)
	}

	metricsFile := f.metricsFile
	if metricsFile == "" {
		metricsFile = cfg.MetricsFile
	}
	var metrics *pipeline.Metrics
	if metricsFile != "" {
		metrics = pipeline.NewMetrics()
	}

	// Cataloged runs store absolute paths so the API can serve them from
	// any working directory.
	var cat *catalog.Catalog
	if f.catalogDir != "" || cfg.CatalogDir != "" {
		cat, err = a.openCatalog(cmd)
		if err != nil {
			return err
		}
		defer cat.Close()

		if input, err = filepath.Abs(input); err != nil {
			return errors.Wrap(err, "resolve input path")
		}
	}

	res, runErr := pipeline.RunWidth(cmd.Context(), width, pipeline.Options{
		Input:   input,
		Limit:   limit,
		Variant: variant,
		Output:  f.output,
		Arrays:  f.arrays,
		Check:   f.check,
		Print:   f.print,
		Stdout:  cmd.OutOrStdout(),
		Logger:  a.logger,
		Metrics: metrics,
	})

	if metrics != nil {
		if err := metrics.WriteFile(metricsFile); err != nil {
			a.logger.Error("write metrics", "path", metricsFile, "error", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	if cat != nil {
		id, err := cat.Put(&catalog.Manifest{
			Input:     res.Input,
			Format:    res.Format,
			Records:   res.Records,
			Length:    res.Length,
			IntWidth:  res.Width * 8,
			Algorithm: res.Variant.String(),
			Outputs:   res.Outputs,
			Checked:   res.Checked,
			StartedAt: res.StartedAt,
			Duration:  res.Duration,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "RUN = %s\n", id)
	}
	return nil
}
