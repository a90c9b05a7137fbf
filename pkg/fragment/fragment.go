// Package fragment provides composable, non-anchored regular expression
// pieces that carry their own capture-group count.
//
// Card grammars are assembled from fragments contributed by value codecs.
// Composition never slices pattern text; every combinator wraps its operands
// in non-capturing groups and adds up the group counts, so the number of
// capture groups of a composed pattern is always known before it is compiled.
package fragment

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
)

// Fragment is a non-anchored regular expression together with the number of
// capture groups it contains. The zero value matches the empty string.
type Fragment struct {
	pattern string
	groups  int
}

// New validates pattern and counts its capture groups.
func New(pattern string) (Fragment, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return Fragment{}, fmt.Errorf("fragment: invalid pattern %q: %w", pattern, err)
	}
	return Fragment{pattern: pattern, groups: re.MaxCap()}, nil
}

// MustNew is like New but panics on an invalid pattern. It is meant for
// package-level fragment tables.
func MustNew(pattern string) Fragment {
	f, err := New(pattern)
	if err != nil {
		panic(err)
	}
	return f
}

// Literal returns a fragment matching s exactly.
func Literal(s string) Fragment {
	return Fragment{pattern: regexp.QuoteMeta(s)}
}

// Pattern returns the regular expression text.
func (f Fragment) Pattern() string { return f.pattern }

// Groups returns the number of capture groups in the fragment.
func (f Fragment) Groups() int { return f.groups }

// IsZero reports whether the fragment is empty.
func (f Fragment) IsZero() bool { return f.pattern == "" }

func (f Fragment) String() string { return f.pattern }

// wrapped returns the pattern inside a non-capturing group so that it can be
// placed next to other patterns without alternation leaking out.
func (f Fragment) wrapped() string {
	if f.pattern == "" {
		return ""
	}
	return "(?:" + f.pattern + ")"
}

// Concat joins fragments in order.
func Concat(parts ...Fragment) Fragment {
	var sb strings.Builder
	groups := 0
	for _, p := range parts {
		sb.WriteString(p.wrapped())
		groups += p.groups
	}
	return Fragment{pattern: sb.String(), groups: groups}
}

// Alt matches any one of the given fragments, trying them left to right.
func Alt(parts ...Fragment) Fragment {
	if len(parts) == 0 {
		return Fragment{}
	}
	alts := make([]string, 0, len(parts))
	groups := 0
	for _, p := range parts {
		alts = append(alts, p.pattern)
		groups += p.groups
	}
	return Fragment{pattern: "(?:" + strings.Join(alts, "|") + ")", groups: groups}
}

// Optional matches f zero or one time.
func Optional(f Fragment) Fragment {
	if f.pattern == "" {
		return f
	}
	return Fragment{pattern: f.wrapped() + "?", groups: f.groups}
}

// Capture wraps f in one capture group.
func Capture(f Fragment) Fragment {
	return Fragment{pattern: "(" + f.pattern + ")", groups: f.groups + 1}
}

// NonCapturing rewrites every capture group in f as a plain group. The
// resulting fragment matches the same language and has zero groups.
func NonCapturing(f Fragment) Fragment {
	if f.groups == 0 {
		return f
	}
	re, err := syntax.Parse(f.pattern, syntax.Perl)
	if err != nil {
		// f was validated on construction.
		panic(fmt.Sprintf("fragment: reparse %q: %v", f.pattern, err))
	}
	return Fragment{pattern: stripCaptures(re).String()}
}

func stripCaptures(re *syntax.Regexp) *syntax.Regexp {
	for i, sub := range re.Sub {
		re.Sub[i] = stripCaptures(sub)
	}
	if re.Op == syntax.OpCapture {
		return re.Sub[0]
	}
	return re
}

// Repeat matches elem at least min times, with sep between occurrences.
// Repetition is non-greedy so that trailing optional pieces of an enclosing
// pattern get a chance to match. Capture groups inside elem are dropped,
// since a repeated group would only keep its last iteration.
func Repeat(elem, sep Fragment, min int) Fragment {
	elem = NonCapturing(elem)
	sep = NonCapturing(sep)
	tail := "(?:" + sep.wrapped() + elem.wrapped() + ")"
	switch {
	case min <= 0:
		return Fragment{pattern: "(?:" + elem.wrapped() + tail + "*?)?"}
	case min == 1:
		return Fragment{pattern: elem.wrapped() + tail + "*?"}
	default:
		return Fragment{pattern: elem.wrapped() + tail + fmt.Sprintf("{%d,}?", min-1)}
	}
}

// Whitespace separates tokens inside a card.
var Whitespace = MustNew(`\s+`)
