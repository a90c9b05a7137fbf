package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceDeck/internal/config"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/cards"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/variant"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Set up by PersistentPreRunE
	cfg      *config.Config
	logger   *slog.Logger
	registry *variant.Registry
)

var rootCmd = &cobra.Command{
	Use:   "deck",
	Short: "Input deck card checker and formatter",
	Long: `Parse, validate and re-emit the data cards of an input deck,
one card per line.

Examples:
  deck check input.txt              # Report every card that does not parse
  deck fmt input.txt                # Print the cards in canonical form
  deck head "f5:n 0 0 0 1"          # Show how one card line is resolved
  deck cards                        # List the known card grammars
  deck grammar --verify             # Print the card grammars as EBNF
  deck repl                         # Check cards interactively`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./"+config.DefaultFile+")")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	registry, err = cards.Registry(variant.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to build card registry: %w", err)
	}
	return nil
}
