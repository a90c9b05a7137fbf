package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List the known card grammars",
	Args:  cobra.NoArgs,
	RunE:  runCards,
}

func init() {
	rootCmd.AddCommand(cardsCmd)
}

func runCards(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, kw := range registry.Keywords() {
		f, _ := registry.Lookup(kw)
		fmt.Fprintf(out, "%s:\n", kw)
		for i, s := range f.Variants() {
			fmt.Fprintf(out, "  %d. %s\n", i, s.Describe())
		}
	}
	return nil
}
