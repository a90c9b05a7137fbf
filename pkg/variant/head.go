package variant

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// HeadLexer tokenises the start of a card line. Whitespace is significant:
// it ends the head, so it is not elided.
var HeadLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Keyword", Pattern: `[a-zA-Z]+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Other", Pattern: `[^\s]`},
})

// Head is the keyword part of a card line, such as "*tr12" or "f5:n,p".
type Head struct {
	Star      bool   `parser:"Whitespace? @Star?"`
	Keyword   string `parser:"@Keyword"`
	Suffix    string `parser:"@Int?"`
	Particles string `parser:"( Colon @( Keyword | Star | Other )+ )?"`
}

// Name returns the registry key of the head: the lower-case keyword,
// prefixed with "*" for starred cards.
func (h *Head) Name() string {
	name := strings.ToLower(h.Keyword)
	if h.Star {
		return "*" + name
	}
	return name
}

func (h *Head) String() string {
	s := h.Name() + h.Suffix
	if h.Particles != "" {
		s += ":" + strings.ToLower(h.Particles)
	}
	return s
}

// HeadParser reads card heads.
type HeadParser struct {
	parser *participle.Parser[Head]
}

// NewHeadParser builds a head parser.
func NewHeadParser() (*HeadParser, error) {
	parser, err := participle.Build[Head](
		participle.Lexer(HeadLexer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build head parser: %w", err)
	}
	return &HeadParser{parser: parser}, nil
}

// ParseString reads the head at the start of line. The rest of the line is
// ignored.
func (p *HeadParser) ParseString(line string) (*Head, error) {
	head, err := p.parser.ParseString("", line, participle.AllowTrailing(true))
	if err != nil {
		return nil, fmt.Errorf("head parse error: %w", err)
	}
	return head, nil
}
