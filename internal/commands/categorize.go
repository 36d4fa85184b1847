package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/tally/internal/categorize"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/reconcile"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/taxonomy"
)

type categorizeOptions struct {
	shared     string
	taxonomy   string
	autoAssign bool
	format     string
	out        string
}

func newCategorizeCommand() *cobra.Command {
	var opts categorizeOptions

	cmd := &cobra.Command{
		Use:   "categorize <statement.csv>",
		Short: "Build the categorized report for a bank statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategorize(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.shared, "shared", "", "shared-expense sheet to reconcile into the report")
	cmd.Flags().StringVar(&opts.taxonomy, "taxonomy", "", "taxonomy file (.yaml or .json); built-in categories when empty")
	cmd.Flags().BoolVar(&opts.autoAssign, "auto-assign", true, "send unmatched transactions to a miscellaneous column")
	cmd.Flags().StringVar(&opts.format, "format", "csv", "output format: csv or xlsx")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file; stdout when empty")

	return cmd
}

func runCategorize(cmd *cobra.Command, statementPath string, opts categorizeOptions) error {
	if opts.format != "csv" && opts.format != "xlsx" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	tax, err := loadTaxonomy(opts.taxonomy)
	if err != nil {
		return err
	}

	statement, err := os.Open(statementPath)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer statement.Close()

	var shared io.Reader

	if opts.shared != "" {
		f, err := os.Open(opts.shared)
		if err != nil {
			return fmt.Errorf("opening shared sheet: %w", err)
		}
		defer f.Close()

		shared = f
	}

	batch, err := importer.ParseBatch(statement, shared)
	if err != nil {
		return err
	}

	res := categorize.Analyze(batch.Transactions, tax, opts.autoAssign)
	rep, stats := reconcile.Apply(res.Report, batch.Shared)

	slog.Info("categorized statement",
		"matched", res.Stats.Matched,
		"special", res.Stats.Special,
		"misc", res.Stats.Misc,
		"dropped", res.Stats.Dropped,
		"skipped", res.Stats.Skipped,
		"merged", stats.Merged,
		"inserted", stats.Inserted,
	)

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

func writeReport(w io.Writer, rep report.Report, format string) error {
	if format == "xlsx" {
		return rep.WriteXLSX(w)
	}

	return rep.WriteCSV(w)
}

// loadTaxonomy reads a taxonomy file, choosing the codec by extension.
func loadTaxonomy(path string) (taxonomy.Taxonomy, error) {
	if path == "" {
		return taxonomy.Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return taxonomy.Taxonomy{}, fmt.Errorf("reading taxonomy: %w", err)
	}

	var tax taxonomy.Taxonomy

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &tax)
	default:
		err = yaml.Unmarshal(data, &tax)
	}

	if err != nil {
		return taxonomy.Taxonomy{}, fmt.Errorf("decoding taxonomy %s: %w", path, err)
	}

	if tax.IsEmpty() {
		return taxonomy.Taxonomy{}, fmt.Errorf("%w: %s has no categories", taxonomy.ErrInvalid, path)
	}

	return tax, nil
}
