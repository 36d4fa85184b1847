// Package commands implements the offline tally command line: statement
// categorization, report export, receipt parsing and label transliteration, all without a
// database.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tally/internal/logging"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(version string) *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Categorize bank statements and grocery receipts",
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Setup(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newCategorizeCommand(),
		newReceiptCommand(),
		newTranslateCommand(),
		newTaxonomyCommand(),
		newExportCommand(),
	)

	return rootCmd
}
