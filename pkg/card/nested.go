package card

import (
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/fragment"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/scalar"
)

// NestedCodec is a field codec whose values are records of another schema,
// such as the x y z point of a detector tally. Nested values can also be
// sequence elements when the nested schema has a fixed token count.
type NestedCodec struct {
	schema *Schema
}

// Nested returns a codec for records of s.
func Nested(s *Schema) NestedCodec { return NestedCodec{schema: s} }

// Schema returns the nested schema.
func (c NestedCodec) Schema() *Schema { return c.schema }

func (c NestedCodec) Name() string {
	if c.schema.keyword == "" {
		return "record"
	}
	return "record " + c.schema.keyword
}

// Fragment returns the nested grammar without capture groups. The captured
// run is matched again by the nested schema's own pattern when decoded.
func (c NestedCodec) Fragment() fragment.Fragment { return c.schema.bare }

func (c NestedCodec) Parse(text string) (*Card, error) { return c.schema.Parse(text) }

func (c NestedCodec) Decode(text string) (scalar.Value, error) {
	v, err := c.Parse(text)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// From accepts a card of the nested schema, or a list of inputs assigned to
// the nested fields in order.
func (c NestedCodec) From(in scalar.Input) (*Card, error) {
	switch in.Kind() {
	case scalar.InputTyped:
		v, _ := in.Value()
		if nc, ok := v.(*Card); ok && nc.schema == c.schema {
			return nc, nil
		}
	case scalar.InputText:
		return c.Parse(in.String())
	case scalar.InputList:
		items := in.Items()
		if len(items) > len(c.schema.fields) {
			return nil, deckerr.Constraint(in.String(), "too many values for %s", c.Name())
		}
		vals := make(Values, len(items))
		for i, item := range items {
			vals[c.schema.fields[i].Name] = item
		}
		return c.schema.New(vals)
	}
	return nil, deckerr.Constraint(in.String(), "cannot use %s input as %s", in.Kind(), c.Name())
}

func (c NestedCodec) Coerce(in scalar.Input) (scalar.Value, error) {
	if in.IsNull() {
		return nil, nil
	}
	v, err := c.From(in)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Tokens returns the number of tokens a nested record always spans, or 0
// when it varies because of optional or variable-length fields.
func (c NestedCodec) Tokens() int {
	n := 0
	if c.schema.keyword != "" {
		n = 1
	}
	for _, f := range c.schema.fields {
		if f.Optional || !f.Lead.IsZero() {
			return 0
		}
		if f.Place != Body {
			if c.schema.keyword == "" {
				return 0
			}
			continue
		}
		w := 1
		if sp, ok := f.Codec.(scalar.Spanning); ok {
			w = sp.Tokens()
		}
		if w == 0 {
			return 0
		}
		n += w
	}
	return n
}

var (
	_ scalar.ElementCodec[*Card] = NestedCodec{}
	_ scalar.Spanning            = NestedCodec{}
	_ scalar.Value               = (*Card)(nil)
)
