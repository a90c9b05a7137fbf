package scalar

import (
	"errors"
	"regexp"
	"testing"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
)

func TestIntegerCodec(t *testing.T) {
	tests := []struct {
		name    string
		codec   IntegerCodec
		input   string
		want    string
		jump    bool
		wantErr bool
	}{
		{"plain", Integers, "42", "42", false, false},
		{"signed", Integers, "-7", "-7", false, false},
		{"plus sign", Integers, "+3", "3", false, false},
		{"jump", Integers, "j", "j", true, false},
		{"upper jump", Integers, "J", "j", true, false},
		{"jump not allowed", Counts, "j", "", false, true},
		{"real rejected", Integers, "1.5", "", false, true},
		{"word rejected", Integers, "abc", "", false, true},
		{"overflow", Integers, "99999999999999999999", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.codec.Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.input, v)
				}
				if !deckerr.IsGrammar(err) {
					t.Errorf("expected grammar error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if v.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, v, tt.want)
			}
			if v.IsJump() != tt.jump {
				t.Errorf("Parse(%q).IsJump() = %v", tt.input, v.IsJump())
			}
		})
	}
}

func TestRealCodec(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"1.5", 1.5, false},
		{"0.01", 0.01, false},
		{".5", 0.5, false},
		{"5.", 5, false},
		{"1e-3", 0.001, false},
		{"-2.5E+2", -250, false},
		{"7", 7, false},
		{"1.2.3", 0, true},
		{"e5", 0, true},
		{"inf", 0, true},
		{"nan", 0, true},
		{"0x10", 0, true},
	}

	for _, tt := range tests {
		v, err := Reals.Parse(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("expected error for %q, got %v", tt.input, v)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		if v.Float() != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, v.Float(), tt.want)
		}
	}
}

func TestJumpIsNotComparable(t *testing.T) {
	for _, n := range []Number{JumpInteger(), JumpReal()} {
		if _, ok := n.Cmp(0); ok {
			t.Errorf("%T jump compared as a number", n)
		}
	}

	if c, ok := NewReal(2).Cmp(1); !ok || c != 1 {
		t.Errorf("NewReal(2).Cmp(1) = %d, %v", c, ok)
	}
	if c, ok := NewInteger(-1).Cmp(0); !ok || c != -1 {
		t.Errorf("NewInteger(-1).Cmp(0) = %d, %v", c, ok)
	}
}

func TestIntegerFrom(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		want     string
		wantKind deckerr.Kind
	}{
		{"int literal", Int(5), "5", deckerr.KindNone},
		{"integral number", Num(12), "12", deckerr.KindNone},
		{"fractional number", Num(1.5), "", deckerr.KindConstraint},
		{"text", Str("j"), "j", deckerr.KindNone},
		{"bad text", Str("x"), "", deckerr.KindGrammar},
		{"typed", Typed(NewInteger(9)), "9", deckerr.KindNone},
		{"typed real", Typed(NewReal(9)), "", deckerr.KindConstraint},
		{"list", List(Int(1)), "", deckerr.KindConstraint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Integers.From(tt.in)
			if got := deckerr.KindOf(err); got != tt.wantKind {
				t.Fatalf("From(%v) error kind = %v (%v), want %v", tt.in, got, err, tt.wantKind)
			}
			if err == nil && v.String() != tt.want {
				t.Errorf("From(%v) = %s, want %s", tt.in, v, tt.want)
			}
		})
	}
}

func TestCoerceNull(t *testing.T) {
	codecs := []Codec{Integers, Reals, Texts, Nuclides, Designators, DistRefs, Jumps, SequenceOf[Real](Reals, 1)}
	for _, c := range codecs {
		v, err := c.Coerce(Null())
		if err != nil || v != nil {
			t.Errorf("%s.Coerce(Null()) = %v, %v", c.Name(), v, err)
		}
	}
}

func TestTextWords(t *testing.T) {
	c := Words("d", "c", "v", "w")

	v, err := c.Parse("D")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v != "d" {
		t.Errorf("expected canonical spelling d, got %q", v)
	}

	if _, err := c.Parse("h"); !deckerr.IsGrammar(err) {
		t.Errorf("expected grammar error for word outside the set, got %v", err)
	}
	if _, err := Texts.Parse("two words"); err == nil {
		t.Error("expected error for text with a space")
	}
}

func TestNuclideCodec(t *testing.T) {
	n, err := Nuclides.Parse("92235.80C")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if n.Z != 92 || n.A != 235 || n.Library != "80c" {
		t.Errorf("unexpected nuclide %+v", n)
	}
	if n.String() != "92235.80c" {
		t.Errorf("String() = %q", n.String())
	}

	natural, err := Nuclides.Parse("6000")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if natural.Z != 6 || natural.A != 0 || natural.Library != "" {
		t.Errorf("unexpected natural nuclide %+v", natural)
	}

	for _, bad := range []string{"1001.8", "abc", "1234567", "1001.80"} {
		if _, err := Nuclides.Parse(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestDesignatorCodec(t *testing.T) {
	d, err := Designators.Parse("N,P,e")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if d.String() != "n,p,e" {
		t.Errorf("String() = %q", d.String())
	}
	if !d.Has("p") || d.Has("h") {
		t.Errorf("unexpected membership for %s", d)
	}
	if Particle("n").Name() != "neutron" {
		t.Errorf("unexpected particle name %q", Particle("n").Name())
	}

	for _, bad := range []string{"", "n,", ",n", "n p", "nm", "="} {
		if _, err := Designators.Parse(bad); !deckerr.IsGrammar(err) {
			t.Errorf("expected grammar error for %q, got %v", bad, err)
		}
	}

	fromList, err := Designators.From(List(Str("n"), Str("p")))
	if err != nil {
		t.Fatalf("From(list) failed: %v", err)
	}
	if !fromList.Equal(NewDesignator("n", "p")) {
		t.Errorf("From(list) = %s", fromList)
	}
}

func TestDistRefCodec(t *testing.T) {
	d, err := DistRefs.Parse("D12")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if d.N != 12 || d.String() != "d12" {
		t.Errorf("unexpected distribution reference %+v", d)
	}
	for _, bad := range []string{"12", "dx", "s1"} {
		if _, err := DistRefs.Parse(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestFragmentsMatchWholeTokens(t *testing.T) {
	codecs := []struct {
		codec Codec
		good  []string
		bad   []string
	}{
		{Integers, []string{"1", "-20", "j"}, []string{"1.0", "jj"}},
		{Reals, []string{"1", "1.", ".5", "2e3", "j"}, []string{"e", "1e"}},
		{Nuclides, []string{"1001", "1001.80c"}, []string{"1001."}},
		{Designators, []string{"n", "n,p,|"}, []string{"n,,p"}},
		{DistRefs, []string{"d1"}, []string{"d"}},
	}

	for _, tc := range codecs {
		f := tc.codec.Fragment()
		if f.Groups() != 0 {
			t.Errorf("%s fragment has %d groups", tc.codec.Name(), f.Groups())
		}
		re := regexp.MustCompile(`(?i)^(?:` + f.Pattern() + `)$`)
		for _, s := range tc.good {
			if !re.MatchString(s) {
				t.Errorf("%s fragment does not match %q", tc.codec.Name(), s)
			}
		}
		for _, s := range tc.bad {
			if re.MatchString(s) {
				t.Errorf("%s fragment matches %q", tc.codec.Name(), s)
			}
		}
	}
}

func TestGrammarErrorNamesCodec(t *testing.T) {
	_, err := Reals.Parse("1.x")
	var ge *deckerr.GrammarError
	if !errors.As(err, &ge) {
		t.Fatalf("expected *deckerr.GrammarError, got %T", err)
	}
	if ge.Codec != "real" || ge.Text != "1.x" {
		t.Errorf("unexpected error detail %+v", ge)
	}
}
