package cards

import (
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/card"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/scalar"
)

// Component is one nuclide of a material with its fraction. Positive
// fractions are atomic, negative ones are by weight.
var Component = card.MustDefine(card.Def{
	Fields: []card.Field{
		{Name: "zaid", Codec: scalar.Nuclides},
		{Name: "fraction", Codec: scalar.StrictReals, Rules: []card.Rule{card.NotZero()}},
	},
})

// sameSign requires every component fraction to have the same sign, so a
// material is given either all by atom or all by weight.
func sameSign(v scalar.Value) error {
	seq, ok := v.(scalar.Sequence[*card.Card])
	if !ok {
		return deckerr.Constraint(v.String(), "not a component list")
	}
	sign := 0
	for i, c := range seq.Items() {
		f, _ := c.Float("fraction")
		s := 1
		if f < 0 {
			s = -1
		}
		if i > 0 && s != sign {
			return deckerr.Constraint(c.String(), "atomic and weight fractions mixed")
		}
		sign = s
	}
	return nil
}

// Material lists the nuclides of material n.
var Material = card.MustDefine(card.Def{
	Keyword: "m",
	Fields: []card.Field{
		{Name: "n", Codec: scalar.Counts, Place: card.Suffix, Rules: []card.Rule{card.Range(1, 99999999)}},
		{
			Name:  "components",
			Codec: scalar.SequenceOf[*card.Card](card.Nested(Component), 1),
			Rules: []card.Rule{sameSign},
		},
	},
})
