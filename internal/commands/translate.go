package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tally/internal/translation"
)

func newTranslateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "translate <text>...",
		Short: "Transliterate receipt shorthand into readable labels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", raw, translation.Transliterate(raw)); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
