package cards

import (
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/variant"
)

// Families returns every card family of this package. Within a family the
// more constrained grammar is registered first.
func Families() []*variant.Family {
	return []*variant.Family{
		variant.MustFamily("cut", Cut),
		variant.MustFamily("imp", Imp),
		variant.MustFamily("nps", NPS),
		variant.MustFamily("mode", Mode),
		variant.MustFamily("rand", Rand),
		variant.MustFamily("tr", TR, TRShift),
		variant.MustFamily("*tr", StarTR, StarTRShift),
		variant.MustFamily("sp", SPFunction, SPTable),
		variant.MustFamily("si", SIRefs, SIValues),
		variant.MustFamily("ds", DSRefs, DSValues),
		variant.MustFamily("f", FDetector, FRegion),
		variant.MustFamily("m", Material),
	}
}

// Registry returns a registry holding Families.
func Registry(opts ...variant.Option) (*variant.Registry, error) {
	r, err := variant.NewRegistry(opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Register(Families()...); err != nil {
		return nil, err
	}
	return r, nil
}
