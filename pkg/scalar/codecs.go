package scalar

// Shared codec instances. Codecs are stateless and safe for concurrent use.
var (
	Integers    = IntegerCodec{Jump: true}
	Counts      = IntegerCodec{}
	Reals       = RealCodec{Jump: true}
	StrictReals = RealCodec{}
	Texts       = TextCodec{}
	Nuclides    = NuclideCodec{}
	Designators = DesignatorCodec{}
	DistRefs    = DistRefCodec{}
	Jumps       = JumpCodec{}
)

// Interface checks.
var (
	_ ElementCodec[Integer]    = IntegerCodec{}
	_ ElementCodec[Real]       = RealCodec{}
	_ ElementCodec[Text]       = TextCodec{}
	_ ElementCodec[Nuclide]    = NuclideCodec{}
	_ ElementCodec[Designator] = DesignatorCodec{}
	_ ElementCodec[DistRef]    = DistRefCodec{}
	_ ElementCodec[Jump]       = JumpCodec{}

	_ ElementCodec[Sequence[Real]] = SequenceCodec[Real]{}

	_ Number = Integer{}
	_ Number = Real{}
	_ Seq    = Sequence[Real]{}
)
