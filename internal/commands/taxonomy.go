package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newTaxonomyCommand() *cobra.Command {
	var (
		file   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Print a taxonomy, the built-in one by default",
		Long:  "Prints the taxonomy as YAML. Use the output as a starting point for --taxonomy.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tax, err := loadTaxonomy(file)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(tax, "", "  ")
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))

				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)

			if err := enc.Encode(tax); err != nil {
				return err
			}

			return enc.Close()
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "taxonomy file to normalize")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}
