package card

import (
	"errors"
	"strings"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/scalar"
)

// Card is one parsed or constructed card. Cards carry no identity beyond
// their schema and field values.
type Card struct {
	schema *Schema
	values []scalar.Value
}

// Values maps field names to inputs for New.
type Values map[string]scalar.Input

// Parse matches line against the whole-line pattern and builds a validated
// card. A line of the wrong shape yields a *deckerr.GrammarError; a line of
// the right shape with a forbidden value yields a *deckerr.ConstraintError.
func (s *Schema) Parse(line string) (*Card, error) {
	loc := s.re.FindStringSubmatchIndex(line)
	if loc == nil {
		return nil, &deckerr.GrammarError{Keyword: s.keyword, Text: line}
	}
	values := make([]scalar.Value, len(s.fields))
	for i, f := range s.fields {
		g := s.slots[i]
		start, end := loc[2*g], loc[2*g+1]
		if start < 0 {
			// Only optional fields can be absent from a match.
			continue
		}
		v, err := f.Codec.Decode(line[start:end])
		if err != nil {
			return nil, deckerr.Attach(err, s.keyword, f.Name)
		}
		values[i] = v
	}
	c := &Card{schema: s, values: values}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// New builds a validated card from programmatic inputs. Fields missing from
// vals are null.
func (s *Schema) New(vals Values) (*Card, error) {
	for name := range vals {
		if _, ok := s.index[name]; !ok {
			return nil, &deckerr.ConstraintError{Keyword: s.keyword, Field: name, Reason: "unknown field"}
		}
	}
	values := make([]scalar.Value, len(s.fields))
	for i, f := range s.fields {
		v, err := f.Codec.Coerce(vals[f.Name])
		if err != nil {
			return nil, deckerr.Attach(err, s.keyword, f.Name)
		}
		values[i] = v
	}
	c := &Card{schema: s, values: values}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew is like New but panics on error. It is meant for tests and
// static tables.
func (s *Schema) MustNew(vals Values) *Card {
	c, err := s.New(vals)
	if err != nil {
		panic(err)
	}
	return c
}

// Schema returns the card's schema.
func (c *Card) Schema() *Schema { return c.schema }

// Keyword returns the card keyword.
func (c *Card) Keyword() string { return c.schema.keyword }

// Get returns the value of the named field, or nil when it is null or
// unknown.
func (c *Card) Get(name string) scalar.Value {
	i, ok := c.schema.index[name]
	if !ok {
		return nil
	}
	return c.values[i]
}

// Has reports whether the named field holds a value.
func (c *Card) Has(name string) bool { return c.Get(name) != nil }

// Values returns the field values in declaration order; null fields are nil.
func (c *Card) Values() []scalar.Value {
	return append([]scalar.Value(nil), c.values...)
}

// Float returns a numeric field as float64. ok is false when the field is
// null, not numeric, or holds the jump sentinel.
func (c *Card) Float(name string) (f float64, ok bool) {
	n, isNum := c.Get(name).(scalar.Number)
	if !isNum || n.IsJump() {
		return 0, false
	}
	return n.Float(), true
}

// Int returns an integer field. ok is false when the field is null, not an
// integer, or holds the jump sentinel.
func (c *Card) Int(name string) (i int64, ok bool) {
	v, isInt := c.Get(name).(scalar.Integer)
	if !isInt || v.IsJump() {
		return 0, false
	}
	return v.Int(), true
}

// Text returns the canonical text of a field, or "" when it is null.
func (c *Card) Text(name string) string {
	v := c.Get(name)
	if v == nil {
		return ""
	}
	return v.String()
}

// Set assigns one field, coercing in through the field codec, and re-runs
// the field rules and every cross-field check. On error the card is left
// unchanged.
func (c *Card) Set(name string, in scalar.Input) error {
	i, ok := c.schema.index[name]
	if !ok {
		return &deckerr.ConstraintError{Keyword: c.schema.keyword, Field: name, Reason: "unknown field"}
	}
	f := c.schema.fields[i]
	v, err := f.Codec.Coerce(in)
	if err != nil {
		return deckerr.Attach(err, c.schema.keyword, f.Name)
	}
	next := &Card{schema: c.schema, values: c.Values()}
	next.values[i] = v
	if err := next.validateField(i); err != nil {
		return err
	}
	if err := next.checkGaps(); err != nil {
		return err
	}
	if err := next.runChecks(name); err != nil {
		return err
	}
	c.values = next.values
	return nil
}

// Validate checks every field rule and cross-field check.
func (c *Card) Validate() error {
	for i := range c.schema.fields {
		if err := c.validateField(i); err != nil {
			return err
		}
	}
	if err := c.checkGaps(); err != nil {
		return err
	}
	return c.runChecks("")
}

// checkGaps requires optional body fields without a Lead marker to be
// filled from the left: a null optional field may only be followed by a
// value in a later optional field when its grammar cannot take the tokens
// that would follow it on the line.
func (c *Card) checkGaps() error {
	fields := c.schema.fields
	for g, f := range fields {
		if f.Place != Body || !f.Lead.IsZero() || !f.Optional || c.values[g] != nil {
			continue
		}
		later := -1
		var rest []string
		for i := g + 1; i < len(fields); i++ {
			if fields[i].Place != Body || c.values[i] == nil {
				continue
			}
			rest = append(rest, strings.Fields(c.values[i].String())...)
			if fields[i].Optional && fields[i].Lead.IsZero() && later < 0 {
				later = i
			}
		}
		if later < 0 || !c.schema.takes(g, rest) {
			continue
		}
		return &deckerr.ConstraintError{
			Keyword: c.schema.keyword,
			Field:   fields[later].Name,
			Value:   c.values[later].String(),
			Reason:  "needs " + f.Name + " to be set",
		}
	}
	return nil
}

// runChecks runs the cross-field checks that read field, or all of them
// when field is empty.
func (c *Card) runChecks(field string) error {
	for _, chk := range c.schema.checks {
		if field != "" && !chk.reads(field) {
			continue
		}
		if err := chk.Rule(c); err != nil {
			name := ""
			if len(chk.Fields) > 0 {
				name = chk.Fields[0]
			}
			return constraintFor(err, c.schema.keyword, name, nil)
		}
	}
	return nil
}

// constraintFor turns a rule failure into a ConstraintError carrying the
// keyword and field.
func constraintFor(err error, keyword, field string, v scalar.Value) error {
	var ce *deckerr.ConstraintError
	if !errors.As(err, &ce) {
		ce = &deckerr.ConstraintError{Reason: err.Error()}
		if v != nil {
			ce.Value = v.String()
		}
	}
	return deckerr.Attach(ce, keyword, field)
}

// Head returns the keyword with its suffix and designator, as in "tr12" or
// "imp:n".
func (c *Card) Head() string {
	var sb strings.Builder
	sb.WriteString(c.schema.keyword)
	for i, f := range c.schema.fields {
		v := c.values[i]
		if v == nil {
			continue
		}
		switch f.Place {
		case Suffix:
			sb.WriteString(v.String())
		case Designator:
			sb.WriteString(":" + v.String())
		}
	}
	return sb.String()
}

// Serialize returns the card text: the head followed by every non-null body
// field, separated by single spaces. Cards declared with a Format use it
// instead.
func (c *Card) Serialize() string {
	if c.schema.format != nil {
		return c.schema.format(c)
	}
	parts := []string{}
	if head := c.Head(); head != "" {
		parts = append(parts, head)
	}
	for i, f := range c.schema.fields {
		if f.Place != Body || c.values[i] == nil {
			continue
		}
		parts = append(parts, c.values[i].String())
	}
	return strings.Join(parts, " ")
}

// String returns the serialized card.
func (c *Card) String() string { return c.Serialize() }

// Equal reports whether other is a card of the same schema with equal
// field values.
func (c *Card) Equal(other scalar.Value) bool {
	o, ok := other.(*Card)
	if !ok || o == nil || c == nil {
		return ok && o == c
	}
	if o.schema != c.schema {
		return false
	}
	for i := range c.values {
		a, b := c.values[i], o.values[i]
		switch {
		case a == nil && b == nil:
		case a == nil || b == nil:
			return false
		case !a.Equal(b):
			return false
		}
	}
	return true
}
