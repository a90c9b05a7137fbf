package fragment

import (
	"regexp"
	"testing"
)

func TestNewCountsGroups(t *testing.T) {
	tests := []struct {
		pattern string
		groups  int
	}{
		{`\d+`, 0},
		{`(\d+)`, 1},
		{`(a)(?:b)(c(d))`, 3},
		{`(?P<x>a)`, 1},
	}

	for _, tt := range tests {
		f, err := New(tt.pattern)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", tt.pattern, err)
		}
		if f.Groups() != tt.groups {
			t.Errorf("New(%q).Groups() = %d, want %d", tt.pattern, f.Groups(), tt.groups)
		}
	}
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	if _, err := New(`(\d+`); err == nil {
		t.Fatal("expected error for unbalanced group")
	}
}

func TestConcatAndAlt(t *testing.T) {
	ab := Alt(Literal("a"), Literal("b"))
	f := Concat(ab, Capture(MustNew(`\d`)))
	if f.Groups() != 1 {
		t.Fatalf("expected 1 group, got %d", f.Groups())
	}

	re := regexp.MustCompile("^" + f.Pattern() + "$")
	for _, in := range []string{"a1", "b2"} {
		if !re.MatchString(in) {
			t.Errorf("expected %q to match %s", in, f)
		}
	}
	// Alternation must not leak out of its group.
	if re.MatchString("a") || re.MatchString("1") {
		t.Errorf("pattern %s matched a partial input", f)
	}
}

func TestNonCapturing(t *testing.T) {
	f := MustNew(`(\d+)\.(\d+)`)
	nc := NonCapturing(f)
	if nc.Groups() != 0 {
		t.Fatalf("expected 0 groups, got %d", nc.Groups())
	}
	re := regexp.MustCompile("^" + nc.Pattern() + "$")
	if re.NumSubexp() != 0 {
		t.Fatalf("compiled pattern still has %d groups", re.NumSubexp())
	}
	if !re.MatchString("12.5") {
		t.Errorf("rewritten pattern %s no longer matches 12.5", nc)
	}
}

func TestRepeat(t *testing.T) {
	digit := MustNew(`\d`)

	tests := []struct {
		name  string
		min   int
		input string
		want  bool
	}{
		{"one required, one given", 1, "1", true},
		{"one required, three given", 1, "1 2 3", true},
		{"one required, none given", 1, "", false},
		{"none required, none given", 0, "", true},
		{"two required, one given", 2, "1", false},
		{"two required, two given", 2, "1 2", true},
		{"bad separator", 1, "1,2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Repeat(digit, Whitespace, tt.min)
			re := regexp.MustCompile("^" + f.Pattern() + "$")
			if got := re.MatchString(tt.input); got != tt.want {
				t.Errorf("Repeat(min=%d) match %q = %v, want %v", tt.min, tt.input, got, tt.want)
			}
		})
	}
}

func TestRepeatDropsInnerGroups(t *testing.T) {
	f := Repeat(MustNew(`(\d)`), Whitespace, 1)
	if f.Groups() != 0 {
		t.Fatalf("expected repeated fragment to have no groups, got %d", f.Groups())
	}
}

func TestBuilderSlots(t *testing.T) {
	var b Builder
	b.Add(Literal("tr"))
	b.Capture(Fragment{}, MustNew(`\d+`))
	b.Capture(Whitespace, MustNew(`(a)|(b)`))
	b.CaptureOptional(Whitespace, MustNew(`\d+`))

	re, err := b.Compile(Options{Anchored: true, FoldCase: true})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	slots := b.Slots()
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	// The second capture contains two inner groups, so the third capture
	// starts at group 5.
	want := []int{1, 2, 5}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d = %d, want %d", i, slots[i], want[i])
		}
	}

	m := re.FindStringSubmatch("  TR12 b 7 ")
	if m == nil {
		t.Fatal("expected a match")
	}
	if m[slots[0]] != "12" || m[slots[1]] != "b" || m[slots[2]] != "7" {
		t.Errorf("unexpected captures %q", m)
	}

	m = re.FindStringSubmatch("tr3 a")
	if m == nil {
		t.Fatal("expected a match without the optional capture")
	}
	if m[slots[2]] != "" {
		t.Errorf("expected empty optional capture, got %q", m[slots[2]])
	}
}
