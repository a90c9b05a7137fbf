package scalar

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/fragment"
)

var (
	jumpFragment    = fragment.MustNew(`[jJ]`)
	integerFragment = fragment.MustNew(`[-+]?\d+`)
	realFragment    = fragment.MustNew(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)

	jumpRe    = whole(jumpFragment)
	integerRe = whole(integerFragment)
	realRe    = whole(realFragment)
)

// whole compiles f so that it must match an entire token.
func whole(f fragment.Fragment) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + f.Pattern() + `)$`)
}

// Jump is the sentinel meaning "not supplied, use the default".
type Jump struct{}

func (Jump) String() string { return "j" }

func (Jump) Equal(other Value) bool {
	_, ok := other.(Jump)
	return ok
}

// JumpCodec decodes the bare jump token.
type JumpCodec struct{}

func (JumpCodec) Name() string { return "jump" }

func (JumpCodec) Fragment() fragment.Fragment { return jumpFragment }

func (c JumpCodec) Decode(text string) (Value, error) { return decodeWith[Jump](c, text) }
func (c JumpCodec) Coerce(in Input) (Value, error)    { return coerceWith[Jump](c, in) }

func (JumpCodec) Parse(text string) (Jump, error) {
	if !jumpRe.MatchString(strings.TrimSpace(text)) {
		return Jump{}, deckerr.Grammar("jump", text)
	}
	return Jump{}, nil
}

func (c JumpCodec) From(in Input) (Jump, error) {
	switch in.kind {
	case InputTyped:
		if j, ok := in.typed.(Jump); ok {
			return j, nil
		}
	case InputText:
		return c.Parse(in.text)
	}
	return Jump{}, wrongInput(c.Name(), in)
}

// Integer is an integer value or the jump sentinel.
type Integer struct {
	v    int64
	jump bool
}

// NewInteger returns the integer v.
func NewInteger(v int64) Integer { return Integer{v: v} }

// JumpInteger returns an integer holding the jump sentinel.
func JumpInteger() Integer { return Integer{jump: true} }

// Int returns the integer value, or 0 for jump.
func (i Integer) Int() int64 { return i.v }

func (i Integer) Float() float64 { return float64(i.v) }

func (i Integer) IsJump() bool { return i.jump }

func (i Integer) Cmp(x float64) (int, bool) {
	if i.jump {
		return 0, false
	}
	return cmpFloat(float64(i.v), x), true
}

func (i Integer) String() string {
	if i.jump {
		return "j"
	}
	return strconv.FormatInt(i.v, 10)
}

func (i Integer) Equal(other Value) bool {
	o, ok := other.(Integer)
	return ok && o == i
}

// IntegerCodec decodes signed integers. With Jump set the jump token is
// accepted as well.
type IntegerCodec struct {
	Jump bool
}

func (c IntegerCodec) Name() string { return "integer" }

func (c IntegerCodec) Fragment() fragment.Fragment {
	if c.Jump {
		return fragment.Alt(integerFragment, jumpFragment)
	}
	return integerFragment
}

func (c IntegerCodec) Decode(text string) (Value, error) { return decodeWith[Integer](c, text) }
func (c IntegerCodec) Coerce(in Input) (Value, error)    { return coerceWith[Integer](c, in) }

func (c IntegerCodec) Parse(text string) (Integer, error) {
	s := strings.TrimSpace(text)
	if c.Jump && jumpRe.MatchString(s) {
		return JumpInteger(), nil
	}
	if !integerRe.MatchString(s) {
		return Integer{}, deckerr.Grammar(c.Name(), text)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Integer{}, &deckerr.GrammarError{Codec: c.Name(), Text: text, Err: err}
	}
	return NewInteger(v), nil
}

func (c IntegerCodec) From(in Input) (Integer, error) {
	switch in.kind {
	case InputInt:
		return NewInteger(in.i), nil
	case InputNumber:
		if in.num != math.Trunc(in.num) || math.IsInf(in.num, 0) ||
			in.num >= math.MaxInt64 || in.num < math.MinInt64 {
			return Integer{}, deckerr.Constraint(in.String(), "not an integer")
		}
		return NewInteger(int64(in.num)), nil
	case InputText:
		return c.Parse(in.text)
	case InputTyped:
		if i, ok := in.typed.(Integer); ok {
			if i.jump && !c.Jump {
				return Integer{}, deckerr.Constraint("j", "jump not allowed")
			}
			return i, nil
		}
		if _, ok := in.typed.(Jump); ok && c.Jump {
			return JumpInteger(), nil
		}
	}
	return Integer{}, wrongInput(c.Name(), in)
}

// Real is a floating point value or the jump sentinel.
type Real struct {
	v    float64
	jump bool
}

// NewReal returns the real v.
func NewReal(v float64) Real { return Real{v: v} }

// JumpReal returns a real holding the jump sentinel.
func JumpReal() Real { return Real{jump: true} }

func (r Real) Float() float64 { return r.v }

func (r Real) IsJump() bool { return r.jump }

func (r Real) Cmp(x float64) (int, bool) {
	if r.jump {
		return 0, false
	}
	return cmpFloat(r.v, x), true
}

func (r Real) String() string {
	if r.jump {
		return "j"
	}
	return strconv.FormatFloat(r.v, 'g', -1, 64)
}

func (r Real) Equal(other Value) bool {
	o, ok := other.(Real)
	return ok && o.jump == r.jump && o.v == r.v
}

// RealCodec decodes decimal and exponent notation reals. With Jump set the
// jump token is accepted as well.
type RealCodec struct {
	Jump bool
}

func (c RealCodec) Name() string { return "real" }

func (c RealCodec) Fragment() fragment.Fragment {
	if c.Jump {
		return fragment.Alt(realFragment, jumpFragment)
	}
	return realFragment
}

func (c RealCodec) Decode(text string) (Value, error) { return decodeWith[Real](c, text) }
func (c RealCodec) Coerce(in Input) (Value, error)    { return coerceWith[Real](c, in) }

func (c RealCodec) Parse(text string) (Real, error) {
	s := strings.TrimSpace(text)
	if c.Jump && jumpRe.MatchString(s) {
		return JumpReal(), nil
	}
	if !realRe.MatchString(s) {
		return Real{}, deckerr.Grammar(c.Name(), text)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Real{}, &deckerr.GrammarError{Codec: c.Name(), Text: text, Err: err}
	}
	return NewReal(v), nil
}

func (c RealCodec) From(in Input) (Real, error) {
	switch in.kind {
	case InputNumber:
		if math.IsNaN(in.num) || math.IsInf(in.num, 0) {
			return Real{}, deckerr.Constraint(in.String(), "not a finite number")
		}
		return NewReal(in.num), nil
	case InputInt:
		return NewReal(float64(in.i)), nil
	case InputText:
		return c.Parse(in.text)
	case InputTyped:
		switch v := in.typed.(type) {
		case Real:
			if v.jump && !c.Jump {
				return Real{}, deckerr.Constraint("j", "jump not allowed")
			}
			return v, nil
		case Integer:
			if v.jump {
				if !c.Jump {
					return Real{}, deckerr.Constraint("j", "jump not allowed")
				}
				return JumpReal(), nil
			}
			return NewReal(float64(v.v)), nil
		case Jump:
			if c.Jump {
				return JumpReal(), nil
			}
		}
	}
	return Real{}, wrongInput(c.Name(), in)
}

// decodeWith adapts a typed Parse to the untyped Codec interface.
func decodeWith[T Value](c ElementCodec[T], text string) (Value, error) {
	v, err := c.Parse(text)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// coerceWith adapts a typed From to the untyped Codec interface, mapping
// null input to a nil Value.
func coerceWith[T Value](c ElementCodec[T], in Input) (Value, error) {
	if in.IsNull() {
		return nil, nil
	}
	v, err := c.From(in)
	if err != nil {
		return nil, err
	}
	return v, nil
}
