// Package scalar implements the typed value codecs that every card field is
// built from: integers, reals, free text, nuclide identifiers, particle
// designators, distribution references and the jump sentinel, plus the
// ordered Sequence type.
//
// Every codec exposes a group-free fragment.Fragment so that card grammars
// can inline it into a whole-line pattern, decodes one matched token run into
// an immutable Value, and coerces programmatic Input into the same Value.
package scalar

import (
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/fragment"
)

// Value is an immutable decoded field value.
type Value interface {
	// String returns the canonical card text of the value.
	String() string
	// Equal reports structural equality with another value.
	Equal(other Value) bool
}

// Number is a numeric value that may hold the jump sentinel.
type Number interface {
	Value
	Float() float64
	IsJump() bool
	// Cmp compares the value with x. ok is false for jump values, which
	// are neither below, equal to nor above any number.
	Cmp(x float64) (c int, ok bool)
}

// Codec decodes and coerces one kind of field value.
type Codec interface {
	Name() string
	// Fragment returns the non-anchored, group-free pattern matching the
	// text of one value.
	Fragment() fragment.Fragment
	// Decode converts matched text. Malformed text yields a
	// *deckerr.GrammarError.
	Decode(text string) (Value, error)
	// Coerce converts programmatic input. A null input yields a nil Value
	// and no error.
	Coerce(in Input) (Value, error)
}

// ElementCodec is a Codec with a typed view, usable as a Sequence element.
type ElementCodec[T Value] interface {
	Codec
	Parse(text string) (T, error)
	From(in Input) (T, error)
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// wrongInput reports input of a kind a codec cannot take.
func wrongInput(codec string, in Input) error {
	return deckerr.Constraint(in.String(), "cannot use %s input as %s", in.Kind(), codec)
}
