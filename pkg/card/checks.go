package card

import (
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/scalar"
)

// Check is a rule over several fields of one card. Fields lists the fields
// the rule reads; Set re-runs exactly the checks that read the assigned
// field. A check must only look at the card it is given.
type Check struct {
	Fields []string
	Rule   func(c *Card) error
}

func (chk Check) reads(field string) bool {
	for _, f := range chk.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// NotGreater requires field a to be at most field b when both hold
// numbers other than jump.
func NotGreater(a, b string) Check {
	return Check{
		Fields: []string{a, b},
		Rule: func(c *Card) error {
			x, okA := c.Float(a)
			y, okB := c.Float(b)
			if !okA || !okB || x <= y {
				return nil
			}
			return deckerr.Constraint(c.Text(a), "must not exceed %s (%s)", b, c.Text(b))
		},
	}
}

// OnlyWhenMod allows field to hold a value only when the integer field dep
// has a remainder modulo m among rems.
func OnlyWhenMod(field, dep string, m int64, rems ...int64) Check {
	return Check{
		Fields: []string{field, dep},
		Rule: func(c *Card) error {
			if !c.Has(field) {
				return nil
			}
			d, ok := c.Get(dep).(scalar.Integer)
			if ok && !d.IsJump() && modIn(d.Int(), m, rems) {
				return nil
			}
			return deckerr.Constraint(c.Text(field), "only allowed when %s modulo %d is one of %s",
				dep, m, formatInts(rems))
		},
	}
}

// Requires makes field mandatory whenever dep holds a value.
func Requires(dep, field string) Check {
	return Check{
		Fields: []string{field, dep},
		Rule: func(c *Card) error {
			if c.Has(dep) && !c.Has(field) {
				return deckerr.Constraint("", "required when %s is given", dep)
			}
			return nil
		},
	}
}
