// Package variant resolves which of several mutually exclusive card
// grammars a line uses, and maps card keywords to their families.
package variant

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/card"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
)

// State is the outcome of resolving one line against a family.
type State int

const (
	// Unresolved is the state before any variant has been tried.
	Unresolved State = iota
	// Matched means a variant parsed the line.
	Matched
	// Failed means no variant parsed the line.
	Failed
)

func (s State) String() string {
	switch s {
	case Matched:
		return "matched"
	case Failed:
		return "failed"
	default:
		return "unresolved"
	}
}

// Attempt is the result of trying one variant.
type Attempt struct {
	Variant int
	Card    *card.Card
	Err     error
}

// Resolution records how a line was resolved. Variant is the index of the
// matching variant, or of the variant whose constraint check failed; it is -1
// when no variant recognised the line.
type Resolution struct {
	State    State
	Variant  int
	Card     *card.Card
	Err      error
	Attempts []Attempt
}

// Family is a set of schemas sharing one keyword, tried in registration
// order. The earlier variant wins whenever two could match the same line.
type Family struct {
	keyword  string
	variants []*card.Schema
}

// NewFamily returns a family for keyword. Every variant must declare the
// same keyword.
func NewFamily(keyword string, variants ...*card.Schema) (*Family, error) {
	if len(variants) == 0 {
		return nil, fmt.Errorf("variant: family %q has no variants", keyword)
	}
	for i, v := range variants {
		if !strings.EqualFold(v.Keyword(), keyword) {
			return nil, fmt.Errorf("variant: family %q: variant %d declares keyword %q", keyword, i, v.Keyword())
		}
	}
	return &Family{keyword: strings.ToLower(keyword), variants: variants}, nil
}

// MustFamily is like NewFamily but panics on error.
func MustFamily(keyword string, variants ...*card.Schema) *Family {
	f, err := NewFamily(keyword, variants...)
	if err != nil {
		panic(err)
	}
	return f
}

// Keyword returns the family keyword in lower case.
func (f *Family) Keyword() string { return f.keyword }

// Variants returns the schemas in registration order.
func (f *Family) Variants() []*card.Schema {
	return append([]*card.Schema(nil), f.variants...)
}

func (f *Family) try(i int, line string) Attempt {
	c, err := f.variants[i].Parse(line)
	return Attempt{Variant: i, Card: c, Err: err}
}

// Resolve tries each variant in order. The first variant that parses the
// line wins. A constraint error from a variant whose grammar matched ends
// resolution, since the line was recognised but carries a forbidden value.
// When every variant rejects the grammar, Err is a *deckerr.GrammarError
// naming the keyword and the number of variants tried.
func (f *Family) Resolve(line string) Resolution {
	r := Resolution{State: Unresolved, Variant: -1}
	for i := range f.variants {
		a := f.try(i, line)
		r.Attempts = append(r.Attempts, a)
		switch {
		case a.Err == nil:
			r.State, r.Variant, r.Card = Matched, i, a.Card
			return r
		case deckerr.IsGrammar(a.Err):
			continue
		default:
			r.State, r.Variant, r.Err = Failed, i, a.Err
			return r
		}
	}

	// Individual variant errors stay in Attempts.
	r.State = Failed
	r.Err = &deckerr.GrammarError{Keyword: f.keyword, Text: line, Attempted: len(f.variants)}
	return r
}

// Parse resolves line and returns the matched card.
func (f *Family) Parse(line string) (*card.Card, error) {
	r := f.Resolve(line)
	if r.State != Matched {
		return nil, r.Err
	}
	return r.Card, nil
}
