package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Print the cards of a file in canonical form",
	Long: `Parse every card of a file and print it back in canonical form:
lower-case keywords, single spaces and shortest number spelling. Comments
are dropped and continued cards are joined.

Examples:
  deck fmt input.txt
  deck fmt - < input.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	filename := args[0]

	lines, err := readCardFile(filename)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, l := range lines {
		c, err := registry.Parse(l.Text)
		if err != nil {
			if cfg.SkipUnknown && errors.Is(err, deckerr.ErrUnknownKeyword) {
				fmt.Fprintln(out, l.Text)
				continue
			}
			return fmt.Errorf("%s:%d: %w", filename, l.No, err)
		}
		fmt.Fprintln(out, c.Serialize())
	}
	return nil
}
