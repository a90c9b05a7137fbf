package scalar

import (
	"strconv"
	"strings"
)

// InputKind tags the alternative held by an Input.
type InputKind int

const (
	InputNull InputKind = iota
	InputNumber
	InputInt
	InputText
	InputTyped
	InputList
)

func (k InputKind) String() string {
	switch k {
	case InputNumber:
		return "number"
	case InputInt:
		return "integer"
	case InputText:
		return "text"
	case InputTyped:
		return "typed"
	case InputList:
		return "list"
	default:
		return "null"
	}
}

// Input is a raw field value supplied by a caller: a number, a piece of
// text, a list of inputs, or an already decoded Value. The zero Input is
// null.
type Input struct {
	kind  InputKind
	num   float64
	i     int64
	text  string
	typed Value
	list  []Input
}

// Null returns the null input.
func Null() Input { return Input{} }

// Num returns a floating point literal.
func Num(f float64) Input { return Input{kind: InputNumber, num: f} }

// Int returns an integer literal.
func Int(i int64) Input { return Input{kind: InputInt, i: i} }

// Str returns a text literal, decoded through the field codec.
func Str(s string) Input { return Input{kind: InputText, text: s} }

// Typed wraps an already decoded value. A nil v is null.
func Typed(v Value) Input {
	if v == nil {
		return Input{}
	}
	return Input{kind: InputTyped, typed: v}
}

// List returns a list literal for sequence fields.
func List(items ...Input) Input {
	return Input{kind: InputList, list: append([]Input(nil), items...)}
}

// Nums is shorthand for a list of floating point literals.
func Nums(fs ...float64) Input {
	items := make([]Input, len(fs))
	for i, f := range fs {
		items[i] = Num(f)
	}
	return Input{kind: InputList, list: items}
}

// Kind returns the alternative held by in.
func (in Input) Kind() InputKind { return in.kind }

// IsNull reports whether in is null.
func (in Input) IsNull() bool { return in.kind == InputNull }

// Value returns the wrapped value of a typed input.
func (in Input) Value() (Value, bool) {
	return in.typed, in.kind == InputTyped
}

// Items returns the elements of a list input.
func (in Input) Items() []Input {
	if in.kind != InputList {
		return nil
	}
	return in.list
}

func (in Input) String() string {
	switch in.kind {
	case InputNumber:
		return strconv.FormatFloat(in.num, 'g', -1, 64)
	case InputInt:
		return strconv.FormatInt(in.i, 10)
	case InputText:
		return in.text
	case InputTyped:
		return in.typed.String()
	case InputList:
		parts := make([]string, len(in.list))
		for i, item := range in.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return ""
	}
}
