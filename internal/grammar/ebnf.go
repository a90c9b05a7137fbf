// Package grammar writes the card grammars of a registry as EBNF in the
// notation of golang.org/x/exp/ebnf, and verifies such grammars.
package grammar

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/card"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/scalar"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/variant"
)

// Start is the start production of written grammars.
const Start = "Deck"

// Lexical productions, in output order. Keywords are written in lower case
// although cards match them in any case.
var lexical = []struct {
	name string
	expr string
	deps []string
}{
	{"integer", `[ sign ] digits`, []string{"sign", "digits"}},
	{"real", `[ sign ] ( digits [ "." { digit } ] | "." digits ) [ exponent ]`, []string{"sign", "digits", "digit", "exponent"}},
	{"exponent", `( "e" | "E" ) [ sign ] digits`, []string{"sign", "digits"}},
	{"jump", `"j" | "J"`, nil},
	{"nuclide", `digits [ "." digit digit [ digit ] letter ]`, []string{"digits", "digit", "letter"}},
	{"designator", `particle { "," particle }`, []string{"particle"}},
	{"particle", particleExpr(), nil},
	{"distref", `( "d" | "D" ) digits`, []string{"digits"}},
	{"token", `tokenchar { tokenchar }`, []string{"tokenchar"}},
	// Printable ASCII. Free text also takes non-blank characters outside it.
	{"tokenchar", `"!" … "~"`, nil},
	{"sign", `"+" | "-"`, nil},
	{"digits", `digit { digit }`, []string{"digit"}},
	{"digit", `"0" … "9"`, nil},
	{"letter", `"a" … "z" | "A" … "Z"`, nil},
}

func particleExpr() string {
	ps := scalar.Particles()
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = strconv.Quote(string(p))
	}
	return strings.Join(parts, " | ")
}

type production struct {
	name string
	expr string
}

type writer struct {
	prods  []production
	used   map[string]bool
	nested []production
}

// Write writes the grammar of families to w. Lead markers are written as
// "name" "=" pairs.
func Write(w io.Writer, families []*variant.Family) error {
	g := &writer{used: make(map[string]bool)}

	cards := make([]string, len(families))
	for i, f := range families {
		cards[i] = ident(f.Keyword())
	}
	g.add(Start, "{ Card }")
	g.add("Card", strings.Join(cards, " | "))

	for i, f := range families {
		variants := f.Variants()
		if len(variants) == 1 {
			g.add(cards[i], g.schema(cards[i], variants[0]))
			continue
		}
		names := make([]string, len(variants))
		for j := range variants {
			names[j] = cards[i] + strconv.Itoa(j+1)
		}
		g.add(cards[i], strings.Join(names, " | "))
		for j, s := range variants {
			g.add(names[j], g.schema(names[j], s))
		}
	}
	g.prods = append(g.prods, g.nested...)

	for _, l := range lexical {
		if g.used[l.name] {
			g.add(l.name, l.expr)
		}
	}

	for _, p := range g.prods {
		if _, err := fmt.Fprintf(w, "%s = %s .\n", p.name, p.expr); err != nil {
			return err
		}
	}
	return nil
}

// String returns the grammar of families.
func String(families []*variant.Family) string {
	var sb strings.Builder
	_ = Write(&sb, families)
	return sb.String()
}

// Verify parses an EBNF grammar and checks that every production is
// defined and reachable from Start.
func Verify(filename string, r io.Reader) error {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return err
	}
	return ebnf.Verify(g, Start)
}

func (g *writer) add(name, expr string) {
	g.prods = append(g.prods, production{name: name, expr: expr})
}

// use marks a lexical production and its dependencies as used.
func (g *writer) use(name string) {
	if g.used[name] {
		return
	}
	g.used[name] = true
	for _, l := range lexical {
		if l.name == name {
			for _, d := range l.deps {
				g.use(d)
			}
		}
	}
}

func (g *writer) schema(name string, s *card.Schema) string {
	var terms []string
	if kw := s.Keyword(); kw != "" {
		terms = append(terms, strconv.Quote(kw))
	}
	for _, f := range s.Fields() {
		var field []string
		if f.Place == card.Designator {
			field = append(field, `":"`)
		}
		if !f.Lead.IsZero() {
			field = append(field, strconv.Quote(f.Name), `"="`)
		}
		field = append(field, g.codec(name+ident(f.Name), f.Codec))
		expr := strings.Join(field, " ")
		if f.Optional {
			expr = "[ " + expr + " ]"
		}
		terms = append(terms, expr)
	}
	return strings.Join(terms, " ")
}

func (g *writer) codec(name string, c scalar.Codec) string {
	switch c := c.(type) {
	case scalar.TextCodec:
		if len(c.Words) == 0 {
			return g.lex("token")
		}
		words := make([]string, len(c.Words))
		for i, w := range c.Words {
			words[i] = strconv.Quote(w)
		}
		return "( " + strings.Join(words, " | ") + " )"
	case scalar.IntegerCodec:
		if c.Jump {
			return "( " + g.lex("integer") + " | " + g.lex("jump") + " )"
		}
		return g.lex("integer")
	case scalar.RealCodec:
		if c.Jump {
			return "( " + g.lex("real") + " | " + g.lex("jump") + " )"
		}
		return g.lex("real")
	case scalar.JumpCodec:
		return g.lex("jump")
	case scalar.NuclideCodec:
		return g.lex("nuclide")
	case scalar.DesignatorCodec:
		return g.lex("designator")
	case scalar.DistRefCodec:
		return g.lex("distref")
	case card.NestedCodec:
		g.nested = append(g.nested, production{name: name, expr: g.schema(name, c.Schema())})
		return name
	case scalar.Repeated:
		elem := g.codec(name+"Item", c.Element())
		terms := make([]string, 0, c.Min()+1)
		for i := 0; i < c.Min(); i++ {
			terms = append(terms, elem)
		}
		return strings.Join(append(terms, "{ "+elem+" }"), " ")
	}
	return g.lex("token")
}

func (g *writer) lex(name string) string {
	g.use(name)
	return name
}

// ident turns a keyword or field name into a production name: "*tr"
// becomes "StarTr" and "energy_cutoff" becomes "EnergyCutoff".
func ident(s string) string {
	var sb strings.Builder
	if rest, ok := strings.CutPrefix(s, "*"); ok {
		sb.WriteString("Star")
		s = rest
	}
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return sb.String()
}
