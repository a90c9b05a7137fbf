package cards

import (
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/card"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/fragment"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/scalar"
)

func distributionNumber() card.Field {
	return card.Field{Name: "n", Codec: scalar.Counts, Place: card.Suffix, Rules: []card.Rule{card.Range(1, 999)}}
}

// SPFunction selects a built-in source probability function, as in
// "sp2 -21 1.5". Only negative function numbers belong to this form.
var SPFunction = card.MustDefine(card.Def{
	Keyword: "sp",
	Fields: []card.Field{
		distributionNumber(),
		{
			Name:  "function",
			Codec: scalar.Counts,
			Match: fragment.MustNew(`-\d+`),
			Rules: []card.Rule{card.NumberIn(-2, -3, -4, -5, -6, -7, -21, -31, -41)},
		},
		{Name: "a", Codec: scalar.Reals, Optional: true},
		{Name: "b", Codec: scalar.Reals, Optional: true},
	},
})

// SPTable lists source probabilities, optionally led by an option letter.
var SPTable = card.MustDefine(card.Def{
	Keyword: "sp",
	Fields: []card.Field{
		distributionNumber(),
		{Name: "option", Codec: scalar.Words("d", "c", "v", "w"), Optional: true},
		{
			Name:  "probabilities",
			Codec: scalar.SequenceOf[scalar.Real](scalar.Reals, 1),
			Rules: []card.Rule{card.Each(card.Min(0))},
		},
	},
})

// distributions builds the form of a source card that lists other
// distributions, as in "ds3 s d4 d5", and the form that lists values.
func distributions(keyword string, options ...string) (refs, values *card.Schema) {
	refs = card.MustDefine(card.Def{
		Keyword: keyword,
		Fields: []card.Field{
			distributionNumber(),
			{Name: "option", Codec: scalar.Words("s")},
			{Name: "distributions", Codec: scalar.SequenceOf[scalar.DistRef](scalar.DistRefs, 1)},
		},
	})
	values = card.MustDefine(card.Def{
		Keyword: keyword,
		Fields: []card.Field{
			distributionNumber(),
			{Name: "option", Codec: scalar.Words(options...), Optional: true},
			{Name: "values", Codec: scalar.SequenceOf[scalar.Real](scalar.Reals, 1)},
		},
	})
	return refs, values
}

var (
	// SIRefs and SIValues are the source information card forms.
	SIRefs, SIValues = distributions("si", "h", "l", "a")

	// DSRefs and DSValues are the dependent source card forms.
	DSRefs, DSValues = distributions("ds", "h", "l", "t", "q")
)
