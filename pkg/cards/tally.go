package cards

import (
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/card"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/fragment"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/scalar"
)

// Point is a location in space, used nested inside other cards.
var Point = card.MustDefine(card.Def{
	Fields: []card.Field{
		{Name: "x", Codec: scalar.Reals},
		{Name: "y", Codec: scalar.Reals},
		{Name: "z", Codec: scalar.Reals},
	},
})

// FDetector is a point detector tally. Its number always ends in 5.
var FDetector = card.MustDefine(card.Def{
	Keyword: "f",
	Fields: []card.Field{
		{Name: "n", Codec: scalar.Counts, Place: card.Suffix, Match: fragment.MustNew(`\d*5`)},
		{
			Name:  "designator",
			Codec: scalar.Designators,
			Place: card.Designator,
			Rules: []card.Rule{card.Particles("n", "p")},
		},
		{Name: "point", Codec: card.Nested(Point)},
		{Name: "radius", Codec: scalar.Reals, Rules: []card.Rule{card.Min(0)}},
		{Name: "no_direct", Codec: scalar.Words("nd"), Optional: true},
	},
})

// FRegion is a surface or cell tally over a list of surfaces or cells.
// The trailing total flag only applies to surface current and flux tallies
// and to cell flux tallies.
var FRegion = card.MustDefine(card.Def{
	Keyword: "f",
	Fields: []card.Field{
		{
			Name:  "n",
			Codec: scalar.Counts,
			Place: card.Suffix,
			Rules: []card.Rule{card.Mod(10, 1, 2, 4, 6, 7, 8)},
		},
		{Name: "designator", Codec: scalar.Designators, Place: card.Designator},
		{Name: "regions", Codec: scalar.SequenceOf[scalar.Integer](scalar.Counts, 1), Rules: []card.Rule{card.Each(card.Min(1))}},
		{Name: "total", Codec: scalar.Words("t"), Optional: true},
	},
	Checks: []card.Check{card.OnlyWhenMod("total", "n", 10, 1, 2, 4)},
})
