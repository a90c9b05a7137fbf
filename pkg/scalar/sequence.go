package scalar

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/fragment"
)

// Sequence is an ordered list of values of one type. Duplicates are allowed
// and order is significant.
type Sequence[T Value] struct {
	items []T
}

// NewSequence returns a sequence holding a copy of items.
func NewSequence[T Value](items ...T) Sequence[T] {
	return Sequence[T]{items: append([]T(nil), items...)}
}

// Len returns the number of elements.
func (s Sequence[T]) Len() int { return len(s.items) }

// At returns element i.
func (s Sequence[T]) At(i int) T { return s.items[i] }

// Items returns a copy of the elements.
func (s Sequence[T]) Items() []T { return append([]T(nil), s.items...) }

// String joins the canonical text of every element with single spaces.
func (s Sequence[T]) String() string {
	parts := make([]string, len(s.items))
	for i, v := range s.items {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

func (s Sequence[T]) Equal(other Value) bool {
	o, ok := other.(Sequence[T])
	if !ok || len(o.items) != len(s.items) {
		return false
	}
	for i := range s.items {
		if !s.items[i].Equal(o.items[i]) {
			return false
		}
	}
	return true
}

// Elements returns the elements as untyped values.
func (s Sequence[T]) Elements() []Value {
	out := make([]Value, len(s.items))
	for i, v := range s.items {
		out[i] = v
	}
	return out
}

// Seq is implemented by every Sequence instantiation.
type Seq interface {
	Value
	Len() int
	Elements() []Value
}

// Spanning is implemented by element codecs whose values take more than one
// whitespace-separated token, such as nested records.
type Spanning interface {
	// Tokens returns the fixed number of tokens per value, or 0 when the
	// number varies.
	Tokens() int
}

// Repeated is implemented by codecs of sequence fields.
type Repeated interface {
	Element() Codec
	Min() int
}

// SequenceCodec decodes a whitespace-separated run of elements.
type SequenceCodec[T Value] struct {
	elem  ElementCodec[T]
	min   int
	width int
	frag  fragment.Fragment
}

// SequenceOf returns a codec for runs of at least min elements. A min below
// one is raised to one: a present sequence field always holds at least one
// element, and absence is expressed by making the field optional.
//
// SequenceOf panics if elem spans a varying number of tokens, since the run
// could not be split back into elements.
func SequenceOf[T Value](elem ElementCodec[T], min int) SequenceCodec[T] {
	if min < 1 {
		min = 1
	}
	width := 1
	if sp, ok := elem.(Spanning); ok {
		width = sp.Tokens()
	}
	if width < 1 {
		panic("scalar: sequence element " + elem.Name() + " has no fixed token count")
	}
	return SequenceCodec[T]{
		elem:  elem,
		min:   min,
		width: width,
		frag:  fragment.Repeat(elem.Fragment(), fragment.Whitespace, min),
	}
}

// Tokens returns 0: a sequence spans a varying number of tokens.
func (c SequenceCodec[T]) Tokens() int { return 0 }

// Min returns the minimum number of elements.
func (c SequenceCodec[T]) Min() int { return c.min }

// Element returns the element codec.
func (c SequenceCodec[T]) Element() Codec { return c.elem }

func (c SequenceCodec[T]) Name() string { return "sequence of " + c.elem.Name() }

func (c SequenceCodec[T]) Fragment() fragment.Fragment { return c.frag }

func (c SequenceCodec[T]) Decode(text string) (Value, error) {
	return decodeWith[Sequence[T]](c, text)
}

func (c SequenceCodec[T]) Coerce(in Input) (Value, error) {
	return coerceWith[Sequence[T]](c, in)
}

// Parse re-splits a matched token run on whitespace and decodes every
// element with the element codec. Elements spanning several tokens take
// consecutive groups of tokens.
func (c SequenceCodec[T]) Parse(text string) (Sequence[T], error) {
	tokens := strings.Fields(text)
	if len(tokens)%c.width != 0 {
		return Sequence[T]{}, &deckerr.GrammarError{
			Codec: c.Name(),
			Text:  text,
			Err:   fmt.Errorf("%d tokens do not split into elements of %d", len(tokens), c.width),
		}
	}
	n := len(tokens) / c.width
	if n < c.min {
		return Sequence[T]{}, &deckerr.GrammarError{
			Codec: c.Name(),
			Text:  text,
			Err:   fmt.Errorf("need at least %d elements, got %d", c.min, n),
		}
	}
	items := make([]T, 0, n)
	for k := 0; k < n; k++ {
		tok := tokens[k*c.width]
		if c.width > 1 {
			tok = strings.Join(tokens[k*c.width:(k+1)*c.width], " ")
		}
		v, err := c.elem.Parse(tok)
		if err != nil {
			return Sequence[T]{}, err
		}
		items = append(items, v)
	}
	return Sequence[T]{items: items}, nil
}

func (c SequenceCodec[T]) From(in Input) (Sequence[T], error) {
	var seq Sequence[T]
	switch in.kind {
	case InputText:
		return c.Parse(in.text)
	case InputTyped:
		switch v := in.typed.(type) {
		case Sequence[T]:
			seq = v
		case T:
			seq = NewSequence(v)
		default:
			return seq, wrongInput(c.Name(), in)
		}
	case InputList:
		items := make([]T, 0, len(in.list))
		for i, item := range in.list {
			if item.IsNull() {
				return seq, deckerr.Constraint("", "element %d is null", i)
			}
			v, err := c.elem.From(item)
			if err != nil {
				return seq, err
			}
			items = append(items, v)
		}
		seq = Sequence[T]{items: items}
	default:
		v, err := c.elem.From(in)
		if err != nil {
			return seq, err
		}
		seq = NewSequence(v)
	}
	if seq.Len() < c.min {
		return seq, deckerr.Constraint(seq.String(), "needs at least %d elements, got %d", c.min, seq.Len())
	}
	return seq, nil
}
