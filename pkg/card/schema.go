// Package card implements the generic card record: a keyword, an ordered
// table of typed fields, and a whole-line pattern compiled from the fields'
// fragments. A Schema parses a line into a Card, validates field values and
// cross-field rules, and serializes the Card back to text.
package card

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/fragment"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/scalar"
)

// Place says where a field sits on the card line.
type Place int

const (
	// Body fields follow the card head, separated by whitespace.
	Body Place = iota
	// Suffix is the number glued to the keyword, as in tr12.
	Suffix
	// Designator is the particle list after a colon, as in imp:n.
	Designator
)

// rank orders places as they appear on the line.
func (p Place) rank() int {
	switch p {
	case Suffix:
		return 0
	case Designator:
		return 1
	default:
		return 2
	}
}

func (p Place) String() string {
	switch p {
	case Suffix:
		return "suffix"
	case Designator:
		return "designator"
	default:
		return "body"
	}
}

// Field declares one entry of a card's field table.
type Field struct {
	Name     string
	Codec    scalar.Codec
	Place    Place
	Optional bool
	Rules    []Rule

	// Match narrows the grammar of the field below what the codec accepts,
	// for fields that tell variants apart. The matched text is still
	// decoded by Codec.
	Match fragment.Fragment
	// Lead replaces the whitespace in front of a body field, for cards with
	// markers such as "gen=". Cards using Lead must supply a Format.
	Lead fragment.Fragment
}

func (f Field) fragment() fragment.Fragment {
	if !f.Match.IsZero() {
		return fragment.NonCapturing(f.Match)
	}
	return fragment.NonCapturing(f.Codec.Fragment())
}

// Def is the declaration of a card type.
type Def struct {
	// Keyword is matched case-insensitively and printed as given. It may be
	// empty for records that are only used nested inside other cards.
	Keyword string
	Fields  []Field
	Checks  []Check
	// Format overrides the default serialization.
	Format func(c *Card) string
}

// Schema is a compiled card definition. It is immutable and safe for
// concurrent use.
type Schema struct {
	keyword string
	fields  []Field
	index   map[string]int
	checks  []Check
	format  func(c *Card) string

	re     *regexp.Regexp
	slots  []int
	bare   fragment.Fragment
	tokens []*regexp.Regexp
}

// Define compiles a card definition.
func Define(d Def) (*Schema, error) {
	s := &Schema{
		keyword: d.Keyword,
		fields:  append([]Field(nil), d.Fields...),
		index:   make(map[string]int, len(d.Fields)),
		checks:  append([]Check(nil), d.Checks...),
		format:  d.Format,
	}
	name := d.Keyword
	if name == "" {
		name = "(nested)"
	}

	prev := -1
	hasLead := false
	for i, f := range s.fields {
		if f.Name == "" || f.Codec == nil {
			return nil, fmt.Errorf("card %s: field %d needs a name and a codec", name, i)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("card %s: duplicate field %s", name, f.Name)
		}
		s.index[f.Name] = i

		// The field table must follow the order of the line.
		r := f.Place.rank()
		if r < prev {
			return nil, fmt.Errorf("card %s: field %s (%s) out of order", name, f.Name, f.Place)
		}
		if r == prev && f.Place != Body {
			return nil, fmt.Errorf("card %s: more than one %s field", name, f.Place)
		}
		prev = r
		if !f.Lead.IsZero() {
			hasLead = true
		}
	}
	if hasLead && s.format == nil {
		return nil, fmt.Errorf("card %s: fields with markers need a Format", name)
	}
	for _, chk := range s.checks {
		for _, fn := range chk.Fields {
			if _, ok := s.index[fn]; !ok {
				return nil, fmt.Errorf("card %s: check refers to unknown field %s", name, fn)
			}
		}
	}

	var b fragment.Builder
	if d.Keyword != "" {
		b.Add(fragment.Literal(d.Keyword))
	}
	empty := d.Keyword == ""
	for _, f := range s.fields {
		var lead fragment.Fragment
		switch f.Place {
		case Designator:
			lead = fragment.Literal(":")
		case Body:
			switch {
			case !f.Lead.IsZero():
				lead = fragment.NonCapturing(f.Lead)
			case !empty:
				lead = fragment.Whitespace
			}
		}
		if f.Optional {
			b.CaptureOptional(lead, f.fragment())
		} else {
			b.Capture(lead, f.fragment())
		}
		empty = false
	}

	if b.Groups() != len(s.fields) {
		return nil, fmt.Errorf("card %s: pattern has %d groups for %d fields", name, b.Groups(), len(s.fields))
	}
	re, err := b.Compile(fragment.Options{Anchored: true, FoldCase: true})
	if err != nil {
		return nil, fmt.Errorf("card %s: %w", name, err)
	}
	s.re = re
	s.slots = b.Slots()
	s.bare = fragment.NonCapturing(b.Fragment())

	s.tokens = make([]*regexp.Regexp, len(s.fields))
	for i, f := range s.fields {
		tre, err := regexp.Compile(`(?i)^(?:` + f.fragment().Pattern() + `)$`)
		if err != nil {
			return nil, fmt.Errorf("card %s: field %s: %w", name, f.Name, err)
		}
		s.tokens[i] = tre
	}
	return s, nil
}

// takes reports whether field i could match the start of the token run
// rest. Fields spanning a varying number of tokens are assumed to match.
func (s *Schema) takes(i int, rest []string) bool {
	width := 1
	if sp, ok := s.fields[i].Codec.(scalar.Spanning); ok {
		width = sp.Tokens()
	}
	if width == 0 {
		return true
	}
	if len(rest) < width {
		return false
	}
	return s.tokens[i].MatchString(strings.Join(rest[:width], " "))
}

// MustDefine is like Define but panics on an invalid definition. Card
// tables are package-level variables, so a bad definition fails at start-up.
func MustDefine(d Def) *Schema {
	s, err := Define(d)
	if err != nil {
		panic(err)
	}
	return s
}

// Keyword returns the card keyword as declared.
func (s *Schema) Keyword() string { return s.keyword }

// Fields returns a copy of the field table.
func (s *Schema) Fields() []Field { return append([]Field(nil), s.fields...) }

// Field returns the declaration of the named field.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Pattern returns the compiled whole-line pattern.
func (s *Schema) Pattern() *regexp.Regexp { return s.re }

// Fragment returns the schema grammar as a group-free, non-anchored fragment.
func (s *Schema) Fragment() fragment.Fragment { return s.bare }

// Describe returns a one-line summary of the field table, such as
// "cut designator:designator t?:real e?:real".
func (s *Schema) Describe() string {
	parts := []string{s.keyword}
	if s.keyword == "" {
		parts[0] = "(nested)"
	}
	for _, f := range s.fields {
		opt := ""
		if f.Optional {
			opt = "?"
		}
		parts = append(parts, fmt.Sprintf("%s%s:%s", f.Name, opt, f.Codec.Name()))
	}
	return strings.Join(parts, " ")
}
