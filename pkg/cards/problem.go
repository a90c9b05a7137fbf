// Package cards defines a set of data cards on top of the card engine:
// problem cutoffs and controls, coordinate transformations, source
// distributions, tallies and materials.
package cards

import (
	"strings"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/card"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/fragment"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/scalar"
)

// Cut sets the time, energy and weight cutoffs of one particle type.
var Cut = card.MustDefine(card.Def{
	Keyword: "cut",
	Fields: []card.Field{
		{Name: "designator", Codec: scalar.Designators, Place: card.Designator},
		{Name: "time_cutoff", Codec: scalar.Reals, Optional: true, Rules: []card.Rule{card.Above(0)}},
		{Name: "energy_cutoff", Codec: scalar.Reals, Optional: true, Rules: []card.Rule{card.Min(0)}},
		{Name: "weight_cutoff1", Codec: scalar.Reals, Optional: true},
		{Name: "weight_cutoff2", Codec: scalar.Reals, Optional: true},
		{Name: "source_weight", Codec: scalar.Reals, Optional: true, Rules: []card.Rule{card.Above(0)}},
	},
	Checks: []card.Check{card.NotGreater("weight_cutoff2", "weight_cutoff1")},
})

// Imp gives the importance of each cell in cell-card order.
var Imp = card.MustDefine(card.Def{
	Keyword: "imp",
	Fields: []card.Field{
		{Name: "designator", Codec: scalar.Designators, Place: card.Designator},
		{
			Name:  "importances",
			Codec: scalar.SequenceOf[scalar.Real](scalar.Reals, 1),
			Rules: []card.Rule{card.Each(card.Min(0))},
		},
	},
})

// NPS is the history cutoff.
var NPS = card.MustDefine(card.Def{
	Keyword: "nps",
	Fields: []card.Field{
		{Name: "histories", Codec: scalar.Integers, Rules: []card.Rule{card.Min(1)}},
		{Name: "mesh_histories", Codec: scalar.Integers, Optional: true, Rules: []card.Rule{card.Min(1)}},
	},
	Checks: []card.Check{card.NotGreater("mesh_histories", "histories")},
})

// Mode lists the particles transported in the problem.
var Mode = card.MustDefine(card.Def{
	Keyword: "mode",
	Fields: []card.Field{
		{Name: "particles", Codec: scalar.SequenceOf[scalar.Designator](scalar.Designators, 1)},
	},
})

func assignment(name string) fragment.Fragment {
	return fragment.MustNew(`\s+` + name + `\s*=\s*`)
}

var randKeys = []string{"gen", "seed", "stride", "hist"}

// Rand configures the random number generator with keyword=value entries,
// written in a fixed order.
var Rand = card.MustDefine(card.Def{
	Keyword: "rand",
	Fields: []card.Field{
		{Name: "gen", Codec: scalar.Counts, Optional: true, Lead: assignment("gen"), Rules: []card.Rule{card.Range(1, 4)}},
		{Name: "seed", Codec: scalar.Counts, Optional: true, Lead: assignment("seed"), Rules: []card.Rule{card.Min(1)}},
		{Name: "stride", Codec: scalar.Counts, Optional: true, Lead: assignment("stride"), Rules: []card.Rule{card.Min(1)}},
		{Name: "hist", Codec: scalar.Counts, Optional: true, Lead: assignment("hist"), Rules: []card.Rule{card.Min(1)}},
	},
	Format: func(c *card.Card) string {
		parts := []string{c.Head()}
		for _, k := range randKeys {
			if c.Has(k) {
				parts = append(parts, k+"="+c.Text(k))
			}
		}
		return strings.Join(parts, " ")
	},
})
