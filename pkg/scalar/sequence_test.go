package scalar

import (
	"regexp"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
)

func TestSequenceParse(t *testing.T) {
	codec := SequenceOf[Real](Reals, 1)

	seq, err := codec.Parse("1 1  0")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if seq.Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", seq.Len())
	}
	for i, want := range []float64{1, 1, 0} {
		if seq.At(i).Float() != want {
			t.Errorf("element %d = %v, want %v", i, seq.At(i).Float(), want)
		}
	}
	if seq.String() != "1 1 0" {
		t.Errorf("String() = %q", seq.String())
	}

	if _, err := codec.Parse("   "); !deckerr.IsGrammar(err) {
		t.Errorf("expected grammar error for empty run, got %v", err)
	}
	if _, err := codec.Parse("1 x 2"); !deckerr.IsGrammar(err) {
		t.Errorf("expected grammar error for bad element, got %v", err)
	}
}

func TestSequenceMinimum(t *testing.T) {
	codec := SequenceOf[Integer](Integers, 2)

	if _, err := codec.Parse("1"); !deckerr.IsGrammar(err) {
		t.Errorf("expected grammar error for short run, got %v", err)
	}
	if _, err := codec.From(List(Int(1))); !deckerr.IsConstraint(err) {
		t.Errorf("expected constraint error for short list, got %v", err)
	}
	if _, err := codec.From(List()); !deckerr.IsConstraint(err) {
		t.Errorf("expected constraint error for empty list, got %v", err)
	}
	if codec.Min() != 2 {
		t.Errorf("Min() = %d", codec.Min())
	}
	if SequenceOf[Integer](Integers, 0).Min() != 1 {
		t.Error("minimum below one should be raised to one")
	}
}

func TestSequenceFrom(t *testing.T) {
	codec := SequenceOf[Real](Reals, 1)

	tests := []struct {
		name string
		in   Input
		want string
	}{
		{"raw numbers", Nums(1, 0.5, 2), "1 0.5 2"},
		{"mixed list", List(Int(3), Str("j"), Typed(NewReal(4))), "3 j 4"},
		{"typed sequence", Typed(NewSequence(NewReal(7))), "7"},
		{"single element", Typed(NewReal(8)), "8"},
		{"text run", Str("1 2 3"), "1 2 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := codec.From(tt.in)
			if err != nil {
				t.Fatalf("From failed: %v", err)
			}
			if seq.String() != tt.want {
				t.Errorf("From() = %q, want %q", seq.String(), tt.want)
			}
		})
	}

	if _, err := codec.From(List(Num(1), Null())); !deckerr.IsConstraint(err) {
		t.Errorf("expected constraint error for null element, got %v", err)
	}
}

func TestSequenceKeepsDuplicatesAndOrder(t *testing.T) {
	a := NewSequence(NewInteger(2), NewInteger(1), NewInteger(2))
	b := NewSequence(NewInteger(2), NewInteger(2), NewInteger(1))
	if a.Equal(b) {
		t.Error("sequences with different order compared equal")
	}
	if !a.Equal(NewSequence(a.Items()...)) {
		t.Error("copy of a sequence compared unequal")
	}

	items := a.Items()
	items[0] = NewInteger(99)
	if a.At(0).Int() != 2 {
		t.Error("Items() exposed internal storage")
	}
}

// Property: a run of N >= 1 integer tokens decodes to a sequence of length N
// and prints back to the same canonical text.
func TestSequenceArityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	codec := SequenceOf[Integer](Integers, 1)
	re := regexp.MustCompile(`(?i)^(?:` + codec.Fragment().Pattern() + `)$`)

	properties.Property("sequence length equals token count", prop.ForAll(
		func(xs []int64) bool {
			if len(xs) == 0 {
				return true
			}
			tokens := make([]string, len(xs))
			for i, x := range xs {
				tokens[i] = NewInteger(x).String()
			}
			text := strings.Join(tokens, " ")
			if !re.MatchString(text) {
				return false
			}
			seq, err := codec.Parse(text)
			if err != nil {
				return false
			}
			return seq.Len() == len(xs) && seq.String() == text
		},
		gen.SliceOf(gen.Int64()),
	))

	properties.TestingRun(t)
}

// Property: every finite real survives print and reparse unchanged.
func TestRealRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("real prints and parses back", prop.ForAll(
		func(f float64) bool {
			r := NewReal(f)
			back, err := Reals.Parse(r.String())
			return err == nil && back.Equal(r)
		},
		gen.Float64Range(-1e300, 1e300),
	))

	properties.TestingRun(t)
}
