package scalar

import (
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/fragment"
)

var (
	distRefFragment = fragment.MustNew(`[dD]\d+`)
	distRefRe       = whole(distRefFragment)
)

// DistRef refers to a source distribution by number, written d1, d12 and so
// on. The referenced distribution is defined elsewhere in the deck and is
// not looked up here.
type DistRef struct {
	N int
}

func (d DistRef) String() string { return "d" + strconv.Itoa(d.N) }

func (d DistRef) Equal(other Value) bool {
	o, ok := other.(DistRef)
	return ok && o == d
}

// DistRefCodec decodes distribution references.
type DistRefCodec struct{}

func (DistRefCodec) Name() string { return "distribution reference" }

func (DistRefCodec) Fragment() fragment.Fragment { return distRefFragment }

func (c DistRefCodec) Decode(text string) (Value, error) { return decodeWith[DistRef](c, text) }
func (c DistRefCodec) Coerce(in Input) (Value, error)    { return coerceWith[DistRef](c, in) }

func (c DistRefCodec) Parse(text string) (DistRef, error) {
	s := strings.TrimSpace(text)
	if !distRefRe.MatchString(s) {
		return DistRef{}, deckerr.Grammar(c.Name(), text)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return DistRef{}, &deckerr.GrammarError{Codec: c.Name(), Text: text, Err: err}
	}
	return DistRef{N: n}, nil
}

func (c DistRefCodec) From(in Input) (DistRef, error) {
	switch in.kind {
	case InputInt:
		if in.i < 0 {
			return DistRef{}, deckerr.Constraint(in.String(), "distribution number must not be negative")
		}
		return DistRef{N: int(in.i)}, nil
	case InputText:
		return c.Parse(in.text)
	case InputTyped:
		if d, ok := in.typed.(DistRef); ok {
			return d, nil
		}
	}
	return DistRef{}, wrongInput(c.Name(), in)
}
