package deckerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"grammar", Grammar("real", "1.x"), KindGrammar},
		{"constraint", Constraint("-1", "must be >= 0"), KindConstraint},
		{"wrapped grammar", fmt.Errorf("line 3: %w", Grammar("integer", "q")), KindGrammar},
		{"plain", errors.New("boom"), KindNone},
		{"nil", nil, KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindsAreDisjoint(t *testing.T) {
	g := Grammar("real", "x")
	c := Constraint("1", "too small")

	if IsConstraint(g) {
		t.Error("grammar error reported as constraint error")
	}
	if IsGrammar(c) {
		t.Error("constraint error reported as grammar error")
	}
}

func TestAttach(t *testing.T) {
	err := Attach(Grammar("real", "1..2"), "cut", "t")

	var ge *GrammarError
	if !errors.As(err, &ge) {
		t.Fatalf("expected *GrammarError, got %T", err)
	}
	if ge.Keyword != "cut" || ge.Field != "t" {
		t.Errorf("unexpected keyword/field %q/%q", ge.Keyword, ge.Field)
	}

	msg := err.Error()
	for _, want := range []string{"deck:", "cut", "field t", "malformed real", `"1..2"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not contain %q", msg, want)
		}
	}

	// Existing context is kept.
	Attach(err, "imp", "i")
	if ge.Keyword != "cut" || ge.Field != "t" {
		t.Errorf("Attach overwrote existing context: %q/%q", ge.Keyword, ge.Field)
	}
}

func TestGrammarErrorWrapsCause(t *testing.T) {
	err := &GrammarError{Keyword: "zz", Text: "zz 1", Err: ErrUnknownKeyword}
	if !errors.Is(err, ErrUnknownKeyword) {
		t.Error("expected errors.Is to find ErrUnknownKeyword")
	}
	if !IsGrammar(err) {
		t.Error("expected a grammar error")
	}
}

func TestVariantMessage(t *testing.T) {
	err := &GrammarError{Keyword: "tr", Text: "tr1 0 0", Attempted: 2}
	if !strings.Contains(err.Error(), "no variant matched (2 tried)") {
		t.Errorf("unexpected message %q", err.Error())
	}
}
