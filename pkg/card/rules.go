package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/scalar"
)

// Rule validates a single non-null field value. Numeric rules pass jump
// values without looking at them.
type Rule func(v scalar.Value) error

// numeric applies check to a non-jump number.
func numeric(v scalar.Value, check func(n scalar.Number) error) error {
	n, ok := v.(scalar.Number)
	if !ok {
		return deckerr.Constraint(v.String(), "not a number")
	}
	if n.IsJump() {
		return nil
	}
	return check(n)
}

func bound(op string, x float64, want func(c int) bool) Rule {
	return func(v scalar.Value) error {
		return numeric(v, func(n scalar.Number) error {
			c, _ := n.Cmp(x)
			if !want(c) {
				return deckerr.Constraint(n.String(), "must be %s %s", op, formatFloat(x))
			}
			return nil
		})
	}
}

// Min requires v >= x.
func Min(x float64) Rule { return bound(">=", x, func(c int) bool { return c >= 0 }) }

// Max requires v <= x.
func Max(x float64) Rule { return bound("<=", x, func(c int) bool { return c <= 0 }) }

// Above requires v > x.
func Above(x float64) Rule { return bound(">", x, func(c int) bool { return c > 0 }) }

// Below requires v < x.
func Below(x float64) Rule { return bound("<", x, func(c int) bool { return c < 0 }) }

// Range requires lo <= v <= hi.
func Range(lo, hi float64) Rule {
	return func(v scalar.Value) error {
		return numeric(v, func(n scalar.Number) error {
			if c, _ := n.Cmp(lo); c < 0 {
				return deckerr.Constraint(n.String(), "must be in [%s, %s]", formatFloat(lo), formatFloat(hi))
			}
			if c, _ := n.Cmp(hi); c > 0 {
				return deckerr.Constraint(n.String(), "must be in [%s, %s]", formatFloat(lo), formatFloat(hi))
			}
			return nil
		})
	}
}

// NotZero requires v != 0.
func NotZero() Rule {
	return func(v scalar.Value) error {
		return numeric(v, func(n scalar.Number) error {
			if c, _ := n.Cmp(0); c == 0 {
				return deckerr.Constraint(n.String(), "must not be zero")
			}
			return nil
		})
	}
}

// NumberIn requires v to be one of the given numbers.
func NumberIn(xs ...float64) Rule {
	return func(v scalar.Value) error {
		return numeric(v, func(n scalar.Number) error {
			for _, x := range xs {
				if c, _ := n.Cmp(x); c == 0 {
					return nil
				}
			}
			parts := make([]string, len(xs))
			for i, x := range xs {
				parts[i] = formatFloat(x)
			}
			return deckerr.Constraint(n.String(), "must be one of %s", strings.Join(parts, ", "))
		})
	}
}

// OneOf requires the canonical text of v to be one of words, compared
// case-insensitively.
func OneOf(words ...string) Rule {
	return func(v scalar.Value) error {
		s := v.String()
		for _, w := range words {
			if strings.EqualFold(w, s) {
				return nil
			}
		}
		return deckerr.Constraint(s, "must be one of %s", strings.Join(words, ", "))
	}
}

// Particles requires every particle of a designator to be in allowed.
func Particles(allowed ...scalar.Particle) Rule {
	return func(v scalar.Value) error {
		d, ok := v.(scalar.Designator)
		if !ok {
			return deckerr.Constraint(v.String(), "not a designator")
		}
		for _, p := range d.Particles() {
			found := false
			for _, a := range allowed {
				if p == a {
					found = true
					break
				}
			}
			if !found {
				return deckerr.Constraint(d.String(), "particle %s not allowed", p)
			}
		}
		return nil
	}
}

// Each applies rules to every element of a sequence.
func Each(rules ...Rule) Rule {
	return func(v scalar.Value) error {
		seq, ok := v.(scalar.Seq)
		if !ok {
			return deckerr.Constraint(v.String(), "not a sequence")
		}
		for i, elem := range seq.Elements() {
			for _, rule := range rules {
				if err := rule(elem); err != nil {
					var ce *deckerr.ConstraintError
					if errors.As(err, &ce) {
						ce.Reason = fmt.Sprintf("element %d: %s", i+1, ce.Reason)
						return ce
					}
					return fmt.Errorf("element %d: %w", i+1, err)
				}
			}
		}
		return nil
	}
}

// Len requires a sequence of between lo and hi elements. A negative hi
// means no upper bound.
func Len(lo, hi int) Rule {
	return func(v scalar.Value) error {
		seq, ok := v.(scalar.Seq)
		if !ok {
			return deckerr.Constraint(v.String(), "not a sequence")
		}
		if n := seq.Len(); n < lo || hi >= 0 && n > hi {
			return deckerr.Constraint(v.String(), "has %d elements, want %d to %d", n, lo, hi)
		}
		return nil
	}
}

// Mod requires an integer whose remainder modulo m is one of rems.
func Mod(m int64, rems ...int64) Rule {
	return func(v scalar.Value) error {
		i, ok := v.(scalar.Integer)
		if !ok {
			return deckerr.Constraint(v.String(), "not an integer")
		}
		if i.IsJump() {
			return nil
		}
		if modIn(i.Int(), m, rems) {
			return nil
		}
		return deckerr.Constraint(i.String(), "remainder modulo %d must be one of %s", m, formatInts(rems))
	}
}

func modIn(x, m int64, rems []int64) bool {
	r := x % m
	if r < 0 {
		r += m
	}
	for _, want := range rems {
		if r == want {
			return true
		}
	}
	return false
}

func formatInts(xs []int64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatInt(x, 10)
	}
	return strings.Join(parts, ", ")
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
