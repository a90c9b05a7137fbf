// Package deckerr defines the two kinds of failure a card can produce:
// a grammar error, when text does not have the shape of any admissible card,
// and a constraint error, when a well-formed card carries a forbidden value.
package deckerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tags an error as a grammar or a constraint failure.
type Kind int

const (
	// KindNone is the kind of errors that are neither grammar nor
	// constraint errors.
	KindNone Kind = iota
	// KindGrammar marks text that does not have the shape of the card.
	KindGrammar
	// KindConstraint marks a well-formed value that breaks a rule.
	KindConstraint
)

func (k Kind) String() string {
	switch k {
	case KindGrammar:
		return "grammar"
	case KindConstraint:
		return "constraint"
	default:
		return "none"
	}
}

// Sentinels for errors.Is.
var (
	ErrGrammar    = errors.New("grammar error")
	ErrConstraint = errors.New("constraint error")

	// ErrUnknownKeyword is wrapped by the grammar error returned when no card
	// family is registered for a keyword.
	ErrUnknownKeyword = errors.New("unknown keyword")
)

// GrammarError reports text that did not match the expected surface form.
type GrammarError struct {
	Keyword string // declaring card keyword, if known
	Field   string // field being decoded, if any
	Codec   string // codec that rejected the text, if any
	Text    string // offending text

	// Attempted is the number of variants tried when the error comes from a
	// variant family.
	Attempted int

	Err error
}

func (e *GrammarError) Error() string {
	var sb strings.Builder
	sb.WriteString("deck: ")
	if e.Keyword != "" {
		fmt.Fprintf(&sb, "%s: ", e.Keyword)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, "field %s: ", e.Field)
	}
	switch {
	case e.Attempted > 0:
		fmt.Fprintf(&sb, "no variant matched (%d tried): %q", e.Attempted, e.Text)
	case e.Codec != "":
		fmt.Fprintf(&sb, "malformed %s %q", e.Codec, e.Text)
	default:
		fmt.Fprintf(&sb, "cannot parse %q", e.Text)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *GrammarError) Unwrap() error { return e.Err }

func (e *GrammarError) Is(target error) bool { return target == ErrGrammar }

// Kind returns KindGrammar.
func (e *GrammarError) Kind() Kind { return KindGrammar }

// ConstraintError reports a lexically valid value that violates a rule.
type ConstraintError struct {
	Keyword string
	Field   string
	Value   string // offending value in canonical text form, empty for null
	Reason  string
}

func (e *ConstraintError) Error() string {
	var sb strings.Builder
	sb.WriteString("deck: ")
	if e.Keyword != "" {
		fmt.Fprintf(&sb, "%s: ", e.Keyword)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, "field %s: ", e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&sb, "value %s: ", e.Value)
	}
	sb.WriteString(e.Reason)
	return sb.String()
}

func (e *ConstraintError) Is(target error) bool { return target == ErrConstraint }

// Kind returns KindConstraint.
func (e *ConstraintError) Kind() Kind { return KindConstraint }

// Grammar returns a grammar error for text rejected by codec.
func Grammar(codec, text string) *GrammarError {
	return &GrammarError{Codec: codec, Text: text}
}

// Constraint returns a constraint error for value.
func Constraint(value, format string, args ...any) *ConstraintError {
	return &ConstraintError{Value: value, Reason: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or KindNone for other errors.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrGrammar):
		return KindGrammar
	case errors.Is(err, ErrConstraint):
		return KindConstraint
	default:
		return KindNone
	}
}

// IsGrammar reports whether err is a grammar error.
func IsGrammar(err error) bool { return errors.Is(err, ErrGrammar) }

// IsConstraint reports whether err is a constraint error.
func IsConstraint(err error) bool { return errors.Is(err, ErrConstraint) }

// Attach fills in the keyword and field of a grammar or constraint error
// that does not carry them yet. Other errors are returned unchanged.
func Attach(err error, keyword, field string) error {
	var ge *GrammarError
	if errors.As(err, &ge) {
		if ge.Keyword == "" {
			ge.Keyword = keyword
		}
		if ge.Field == "" {
			ge.Field = field
		}
		return err
	}
	var ce *ConstraintError
	if errors.As(err, &ce) {
		if ce.Keyword == "" {
			ce.Keyword = keyword
		}
		if ce.Field == "" {
			ce.Field = field
		}
	}
	return err
}
