package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceDeck/internal/grammar"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/cards"
)

var verifyGrammar bool

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Print the card grammars as EBNF",
	Long: `Print the grammar of every known card as EBNF, one production per
line, starting from the Deck production.

Examples:
  deck grammar > deck.ebnf
  deck grammar --verify`,
	Args: cobra.NoArgs,
	RunE: runGrammar,
}

func init() {
	rootCmd.AddCommand(grammarCmd)

	grammarCmd.Flags().BoolVar(&verifyGrammar, "verify", false,
		"check that the printed grammar is well formed")
}

func runGrammar(cmd *cobra.Command, args []string) error {
	var buf bytes.Buffer
	if err := grammar.Write(&buf, cards.Families()); err != nil {
		return err
	}
	if verifyGrammar {
		if err := grammar.Verify("deck.ebnf", bytes.NewReader(buf.Bytes())); err != nil {
			return fmt.Errorf("grammar does not verify: %w", err)
		}
		logger.Debug("grammar verified", "bytes", buf.Len())
	}
	_, err := cmd.OutOrStdout().Write(buf.Bytes())
	return err
}
