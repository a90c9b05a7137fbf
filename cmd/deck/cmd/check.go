package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
)

var strictCheck bool

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate every card of a file",
	Long: `Parse every card of a file and report the ones that fail, with the
kind of failure: a grammar error when the line has no admissible shape, or
a constraint error when a well-formed card carries a forbidden value.

Examples:
  deck check input.txt
  deck check --strict input.txt
  cat input.txt | deck check -`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&strictCheck, "strict", false,
		"stop at the first bad card")
}

func runCheck(cmd *cobra.Command, args []string) error {
	filename := args[0]
	strict := strictCheck || cfg.Strict

	lines, err := readCardFile(filename)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var grammar, constraint, skipped int
	for _, l := range lines {
		_, err := registry.Parse(l.Text)
		if err == nil {
			continue
		}
		if cfg.SkipUnknown && errors.Is(err, deckerr.ErrUnknownKeyword) {
			logger.Debug("skipping unknown card", "line", l.No, "text", l.Text)
			skipped++
			continue
		}
		switch deckerr.KindOf(err) {
		case deckerr.KindConstraint:
			constraint++
		default:
			grammar++
		}
		fmt.Fprintf(out, "%s:%d: %s: %v\n", filename, l.No, deckerr.KindOf(err), err)
		if strict {
			return fmt.Errorf("%s:%d: invalid card", filename, l.No)
		}
	}

	if verbose {
		fmt.Fprintf(out, "%d cards, %d grammar errors, %d constraint errors, %d skipped\n",
			len(lines), grammar, constraint, skipped)
	}
	if bad := grammar + constraint; bad > 0 {
		return fmt.Errorf("%d of %d cards are invalid", bad, len(lines))
	}
	return nil
}
