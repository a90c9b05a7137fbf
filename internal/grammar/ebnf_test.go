package grammar

import (
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/card"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/cards"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/scalar"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/variant"
)

func TestWriteVerifies(t *testing.T) {
	text := String(cards.Families())
	if err := Verify("deck.ebnf", strings.NewReader(text)); err != nil {
		t.Fatalf("generated grammar does not verify: %v\n%s", err, text)
	}

	for _, want := range []string{
		"Deck = { Card } .\n",
		"Tr = Tr1 | Tr2 .\n",
		`Tr2 = "tr" integer ( real | jump ) ( real | jump ) ( real | jump ) .` + "\n",
		`StarTr = StarTr1 | StarTr2 .`,
		`Imp = "imp" ":" designator ( real | jump ) { ( real | jump ) } .`,
		`Rand = "rand" [ "gen" "=" integer ]`,
		`F1 = "f" integer ":" designator F1Point ( real | jump ) [ ( "nd" ) ] .`,
		`F1Point = ( real | jump ) ( real | jump ) ( real | jump ) .`,
		`M = "m" integer MComponentsItem { MComponentsItem } .`,
		`MComponentsItem = nuclide real .`,
		`digit = "0" … "9" .`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("grammar missing %q\n%s", want, text)
		}
	}
}

func TestOnlyUsedLexicalProductions(t *testing.T) {
	text := String(cards.Families()[:1]) // cut
	if strings.Contains(text, "nuclide =") || strings.Contains(text, "distref =") {
		t.Errorf("unused lexical productions written:\n%s", text)
	}
	if err := Verify("cut.ebnf", strings.NewReader(text)); err != nil {
		t.Fatalf("cut grammar does not verify: %v\n%s", err, text)
	}
}

func TestVerifyRejects(t *testing.T) {
	for name, text := range map[string]string{
		"undefined":   "Deck = Card .\n",
		"unreachable": "Deck = \"x\" .\nOther = \"y\" .\n",
		"syntax":      "Deck = ( \"x\" .\n",
	} {
		t.Run(name, func(t *testing.T) {
			if err := Verify(name, strings.NewReader(text)); err == nil {
				t.Error("expected verification error")
			}
		})
	}
}

func TestIdent(t *testing.T) {
	tests := map[string]string{
		"tr":            "Tr",
		"*tr":           "StarTr",
		"energy_cutoff": "EnergyCutoff",
		"n":             "N",
	}
	for in, want := range tests {
		if got := ident(in); got != want {
			t.Errorf("ident(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFreeTextToken(t *testing.T) {
	title := card.MustDefine(card.Def{
		Keyword: "title",
		Fields:  []card.Field{{Name: "text", Codec: scalar.Texts}},
	})
	text := String([]*variant.Family{variant.MustFamily("title", title)})
	if err := Verify("title.ebnf", strings.NewReader(text)); err != nil {
		t.Fatalf("title grammar does not verify: %v\n%s", err, text)
	}
	for _, want := range []string{
		`Title = "title" token .`,
		`tokenchar = "!" … "~" .`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("grammar missing %q\n%s", want, text)
		}
	}

	// Every character the text codec takes in a token is in the range.
	for _, tok := range []string{"$x", "#1", "a/b", "~!"} {
		if _, err := title.Parse("title " + tok); err != nil {
			t.Fatalf("Parse(%q) failed: %v", tok, err)
		}
		for _, r := range tok {
			if r < '!' || r > '~' {
				t.Errorf("%q outside tokenchar range", r)
			}
		}
	}
}
