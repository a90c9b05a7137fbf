package scalar

import (
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/fragment"
)

var (
	nuclideFragment = fragment.MustNew(`\d{1,6}(?:\.\d{2,3}[a-zA-Z])?`)
	nuclideRe       = whole(nuclideFragment)
)

// Nuclide is a ZZZAAA nuclide identifier with an optional data library
// suffix, as in 92235 or 1001.80c. A mass number of 0 denotes the natural
// element.
type Nuclide struct {
	Z       int
	A       int
	Library string
}

// ZA returns the packed ZZZAAA number.
func (n Nuclide) ZA() int { return n.Z*1000 + n.A }

func (n Nuclide) String() string {
	s := strconv.Itoa(n.ZA())
	if n.Library != "" {
		s += "." + n.Library
	}
	return s
}

func (n Nuclide) Equal(other Value) bool {
	o, ok := other.(Nuclide)
	return ok && o == n
}

// NuclideCodec decodes nuclide identifiers.
type NuclideCodec struct{}

func (NuclideCodec) Name() string { return "nuclide" }

func (NuclideCodec) Fragment() fragment.Fragment { return nuclideFragment }

func (c NuclideCodec) Decode(text string) (Value, error) { return decodeWith[Nuclide](c, text) }
func (c NuclideCodec) Coerce(in Input) (Value, error)    { return coerceWith[Nuclide](c, in) }

func (c NuclideCodec) Parse(text string) (Nuclide, error) {
	s := strings.TrimSpace(text)
	if !nuclideRe.MatchString(s) {
		return Nuclide{}, deckerr.Grammar(c.Name(), text)
	}
	za, lib, _ := strings.Cut(s, ".")
	n, err := strconv.Atoi(za)
	if err != nil {
		return Nuclide{}, &deckerr.GrammarError{Codec: c.Name(), Text: text, Err: err}
	}
	return Nuclide{Z: n / 1000, A: n % 1000, Library: strings.ToLower(lib)}, nil
}

func (c NuclideCodec) From(in Input) (Nuclide, error) {
	switch in.kind {
	case InputInt:
		if in.i <= 0 || in.i > 999999 {
			return Nuclide{}, deckerr.Constraint(in.String(), "not a ZZZAAA number")
		}
		return Nuclide{Z: int(in.i / 1000), A: int(in.i % 1000)}, nil
	case InputText:
		return c.Parse(in.text)
	case InputTyped:
		if n, ok := in.typed.(Nuclide); ok {
			return n, nil
		}
	}
	return Nuclide{}, wrongInput(c.Name(), in)
}
