package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/reconcile"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

type exportOptions struct {
	shared string
	format string
	out    string
}

func newExportCommand() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export <report.csv>",
		Short: "Convert a saved CSV report, optionally reconciling a shared sheet into it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.shared, "shared", "", "shared-expense sheet to reconcile into the report")
	cmd.Flags().StringVar(&opts.format, "format", "xlsx", "output format: csv or xlsx")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file; stdout when empty")

	return cmd
}

func runExport(cmd *cobra.Command, reportPath string, opts exportOptions) error {
	if opts.format != "csv" && opts.format != "xlsx" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	in, err := os.Open(reportPath)
	if err != nil {
		return fmt.Errorf("opening report: %w", err)
	}
	defer in.Close()

	rep, err := report.ReadCSV(in)
	if err != nil {
		return err
	}

	if totals := rep.Totals(); len(totals) == 0 || totals[0] != report.TotalCell {
		return fmt.Errorf("%s is not a categorized report", reportPath)
	}

	if opts.shared != "" {
		f, err := os.Open(opts.shared)
		if err != nil {
			return fmt.Errorf("opening shared sheet: %w", err)
		}
		defer f.Close()

		shared, err := importer.ParseShared(f)
		if err != nil {
			return err
		}

		var stats reconcile.Stats
		rep, stats = reconcile.Apply(rep, shared)

		slog.Info("reconciled saved report", "merged", stats.Merged, "inserted", stats.Inserted)
	}

	if opts.out == "" {
		return writeReport(cmd.OutOrStdout(), rep, opts.format)
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	if err := writeReport(f, rep, opts.format); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
