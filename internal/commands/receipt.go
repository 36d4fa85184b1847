package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/receipt"
	"github.com/MrJamesThe3rd/tally/internal/translation"
)

// transliterator labels tokens with the built-in vocabulary only.
type transliterator struct{}

func (transliterator) Translate(_ context.Context, raw string) string {
	return translation.Transliterate(raw)
}

func newReceiptCommand() *cobra.Command {
	var (
		raw     bool
		asJSON  bool
		workers int
	)

	cmd := &cobra.Command{
		Use:   "receipt <receipt.csv>",
		Short: "List the priced items of a receipt export",
		Long: "Reads the EPICERIE column of a receipt export (or plain text lines with --raw)\n" +
			"and prints one item per priced product with a transliterated label.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening receipt: %w", err)
			}
			defer f.Close()

			lines, err := readReceiptLines(f, raw)
			if err != nil {
				return err
			}

			items, err := receipt.Resolve(cmd.Context(), receipt.Tokenize(lines), transliterator{}, workers)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")

				return enc.Encode(items)
			}

			return printItems(cmd.OutOrStdout(), items)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "input is plain text, one receipt line per row")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print items as JSON")
	cmd.Flags().IntVar(&workers, "workers", 4, "parallel label lookups")

	return cmd
}

func readReceiptLines(r io.Reader, raw bool) ([]string, error) {
	if !raw {
		return importer.ParseReceipt(r)
	}

	var lines []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading receipt: %w", err)
	}

	return lines, nil
}

func printItems(w io.Writer, items []receipt.Item) error {
	r := receipt.Receipt{Items: items}
	total := r.CalculateTotal()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORIGINAL\tDESCRIPTION\tPRICE")

	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", it.OriginalText, it.ReadableDescription, it.Price.StringFixed(2))
	}

	fmt.Fprintf(tw, "\tTotal\t%s\n", money.Format(total))

	return tw.Flush()
}
