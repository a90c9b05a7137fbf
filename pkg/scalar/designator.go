package scalar

import (
	"sort"
	"strings"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/fragment"
)

// Particle is a one-character particle symbol.
type Particle string

// Particle symbols accepted in designators.
var particleNames = map[Particle]string{
	"n": "neutron",
	"q": "anti-neutron",
	"p": "photon",
	"e": "electron",
	"f": "positron",
	"|": "negative muon",
	"!": "positive muon",
	"u": "electron neutrino",
	"<": "anti-electron neutrino",
	"v": "muon neutrino",
	">": "anti-muon neutrino",
	"h": "proton",
	"g": "anti-proton",
	"l": "lambda",
	"b": "anti-lambda",
	"+": "positive sigma",
	"_": "anti-positive sigma",
	"-": "negative sigma",
	"~": "anti-negative sigma",
	"x": "cascade",
	"c": "anti-cascade",
	"y": "negative cascade",
	"w": "positive cascade",
	"o": "omega",
	"@": "anti-omega",
	"/": "positive pion",
	"*": "negative pion",
	"z": "neutral pion",
	"k": "positive kaon",
	"?": "negative kaon",
	"%": "short kaon",
	"^": "long kaon",
	"d": "deuteron",
	"t": "triton",
	"s": "helion",
	"a": "alpha",
	"#": "heavy ion",
}

// Name returns the particle name, or "" for an unknown symbol.
func (p Particle) Name() string { return particleNames[p] }

// Particles returns every known particle symbol in sorted order.
func Particles() []Particle {
	ps := make([]Particle, 0, len(particleNames))
	for p := range particleNames {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
	return ps
}

var (
	particleFragment   = fragment.MustNew(`[nqpef|!u<v>hglb+_\-~xcywo@/*zk?%^dtsa#]`)
	designatorFragment = fragment.Repeat(particleFragment, fragment.Literal(","), 1)
	designatorRe       = whole(designatorFragment)
)

// Designator is a comma-separated list of particles, as in "n" or "n,p".
type Designator struct {
	particles []Particle
}

// NewDesignator returns a designator for the given particles.
func NewDesignator(ps ...Particle) Designator {
	return Designator{particles: append([]Particle(nil), ps...)}
}

// Particles returns a copy of the particle list.
func (d Designator) Particles() []Particle {
	return append([]Particle(nil), d.particles...)
}

// Has reports whether the designator names p.
func (d Designator) Has(p Particle) bool {
	for _, q := range d.particles {
		if q == p {
			return true
		}
	}
	return false
}

func (d Designator) String() string {
	parts := make([]string, len(d.particles))
	for i, p := range d.particles {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}

func (d Designator) Equal(other Value) bool {
	o, ok := other.(Designator)
	if !ok || len(o.particles) != len(d.particles) {
		return false
	}
	for i := range d.particles {
		if d.particles[i] != o.particles[i] {
			return false
		}
	}
	return true
}

// DesignatorCodec decodes particle designators.
type DesignatorCodec struct{}

func (DesignatorCodec) Name() string { return "designator" }

func (DesignatorCodec) Fragment() fragment.Fragment { return designatorFragment }

func (c DesignatorCodec) Decode(text string) (Value, error) { return decodeWith[Designator](c, text) }
func (c DesignatorCodec) Coerce(in Input) (Value, error)    { return coerceWith[Designator](c, in) }

func (c DesignatorCodec) Parse(text string) (Designator, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if !designatorRe.MatchString(s) {
		return Designator{}, deckerr.Grammar(c.Name(), text)
	}
	var d Designator
	for _, sym := range strings.Split(s, ",") {
		d.particles = append(d.particles, Particle(sym))
	}
	return d, nil
}

func (c DesignatorCodec) From(in Input) (Designator, error) {
	switch in.kind {
	case InputText:
		return c.Parse(in.text)
	case InputTyped:
		switch v := in.typed.(type) {
		case Designator:
			return v, nil
		case Text:
			return c.Parse(string(v))
		}
	case InputList:
		parts := make([]string, len(in.list))
		for i, item := range in.list {
			parts[i] = item.String()
		}
		return c.Parse(strings.Join(parts, ","))
	}
	return Designator{}, wrongInput(c.Name(), in)
}
