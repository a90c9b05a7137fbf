package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/variant"
)

var headCmd = &cobra.Command{
	Use:   "head <card>",
	Short: "Show how one card line is resolved",
	Long: `Read the head of a card line, select its family and show which
variant grammar matched.

Examples:
  deck head "tr1 0 0 0"
  deck head -v sp2 -21 1.5          # Tokens after the keyword are card text`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHead,
}

func init() {
	rootCmd.AddCommand(headCmd)

	headCmd.Flags().SetInterspersed(false)
}

func runHead(cmd *cobra.Command, args []string) error {
	line := strings.Join(args, " ")
	out := cmd.OutOrStdout()

	h, res := registry.Resolve(line)
	if h == nil {
		return res.Err
	}

	fmt.Fprintf(out, "Keyword:    %s\n", h.Name())
	if h.Suffix != "" {
		fmt.Fprintf(out, "Suffix:     %s\n", h.Suffix)
	}
	if h.Particles != "" {
		fmt.Fprintf(out, "Particles:  %s\n", strings.ToLower(h.Particles))
	}
	fmt.Fprintf(out, "State:      %s\n", res.State)

	if verbose {
		for _, a := range res.Attempts {
			status := "ok"
			if a.Err != nil {
				status = a.Err.Error()
			}
			fmt.Fprintf(out, "  variant %d: %s\n", a.Variant, status)
		}
	}

	if res.State != variant.Matched {
		return res.Err
	}

	fmt.Fprintf(out, "Variant:    %d (%s)\n", res.Variant, res.Card.Schema().Describe())
	fmt.Fprintf(out, "Card:       %s\n", res.Card.Serialize())
	return nil
}
