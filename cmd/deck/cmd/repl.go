package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
)

const historyFile = ".deck_history"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Check cards interactively",
	Long: `Read card lines from the terminal and print each one in canonical
form, or the reason it was rejected. Type :quit or press Ctrl+D to exit.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath, ok := historyPath(); ok {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	out := cmd.OutOrStdout()
	for {
		line, err := ln.Prompt("deck> ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":quit" {
			return nil
		}
		ln.AppendHistory(line)
		evalCard(out, line)
	}
}

// historyPath returns the history file in the home directory. Without a
// home directory there is no history.
func historyPath() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		logger.Debug("history disabled", "error", err)
		return "", false
	}
	return filepath.Join(home, historyFile), true
}

// evalCard prints the canonical form of line, or why it was rejected.
func evalCard(w io.Writer, line string) {
	c, err := registry.Parse(line)
	if err != nil {
		fmt.Fprintf(w, "%s error: %v\n", deckerr.KindOf(err), err)
		return
	}
	fmt.Fprintln(w, c.Serialize())
}
