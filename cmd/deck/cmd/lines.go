package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// commentCard matches a whole-line comment: a "c" in the first five columns
// followed by a blank or the end of the line.
var commentCard = regexp.MustCompile(`^ {0,4}[cC](\s|$)`)

// cardLine is one card after comment stripping and continuation joining.
type cardLine struct {
	No   int // first source line of the card
	Text string
}

// readCards splits r into card lines. Comment cards and blank lines are
// dropped, trailing comments are cut at any of prefixes, and a line ending
// in "&" continues on the next line.
func readCards(r io.Reader, prefixes []string) ([]cardLine, error) {
	var (
		out     []cardLine
		pending strings.Builder
		start   int
	)
	scanner := bufio.NewScanner(r)
	no := 0
	for scanner.Scan() {
		no++
		line := scanner.Text()
		if commentCard.MatchString(line) {
			continue
		}
		for _, p := range prefixes {
			if i := strings.Index(line, p); i >= 0 {
				line = line[:i]
			}
		}
		line = strings.TrimRight(line, " \t")

		if pending.Len() == 0 {
			start = no
		} else {
			pending.WriteByte(' ')
		}
		if cont, ok := strings.CutSuffix(line, "&"); ok {
			pending.WriteString(strings.TrimSpace(cont))
			continue
		}
		pending.WriteString(strings.TrimSpace(line))

		if text := strings.TrimSpace(pending.String()); text != "" {
			out = append(out, cardLine{No: start, Text: text})
		}
		pending.Reset()
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if text := strings.TrimSpace(pending.String()); text != "" {
		out = append(out, cardLine{No: start, Text: text})
	}
	return out, nil
}

// readCardFile reads the cards of filename, or of stdin when it is "-".
func readCardFile(filename string) ([]cardLine, error) {
	if filename == "-" {
		return readCards(os.Stdin, cfg.CommentPrefixes)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return readCards(file, cfg.CommentPrefixes)
}
