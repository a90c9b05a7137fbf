package cards

import (
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/card"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/scalar"
)

var (
	displacement = []string{"o1", "o2", "o3"}
	rotation     = []string{"xx", "yx", "zx", "xy", "yy", "zy", "xz", "yz", "zz"}
)

// transform builds the full and displacement-only forms of a
// transformation card. Rotation entries are cosines for "tr" and angles in
// degrees for "*tr".
func transform(keyword string, entry card.Rule) (full, shift *card.Schema) {
	suffix := card.Field{Name: "n", Codec: scalar.Counts, Place: card.Suffix, Rules: []card.Rule{card.Range(1, 999)}}

	shiftFields := []card.Field{suffix}
	for _, name := range displacement {
		shiftFields = append(shiftFields, card.Field{Name: name, Codec: scalar.Reals})
	}

	fullFields := append([]card.Field(nil), shiftFields...)
	for _, name := range rotation {
		fullFields = append(fullFields, card.Field{Name: name, Codec: scalar.Reals, Rules: []card.Rule{entry}})
	}
	fullFields = append(fullFields, card.Field{
		Name:     "m",
		Codec:    scalar.Counts,
		Optional: true,
		Rules:    []card.Rule{card.NumberIn(1, -1)},
	})

	full = card.MustDefine(card.Def{Keyword: keyword, Fields: fullFields})
	shift = card.MustDefine(card.Def{Keyword: keyword, Fields: shiftFields})
	return full, shift
}

var (
	// TR is a transformation with rotation cosines; TRShift has the
	// displacement only.
	TR, TRShift = transform("tr", card.Range(-1, 1))

	// StarTR is a transformation with rotation angles in degrees;
	// StarTRShift has the displacement only.
	StarTR, StarTRShift = transform("*tr", card.Range(0, 180))
)
