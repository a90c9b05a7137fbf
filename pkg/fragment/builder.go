package fragment

import (
	"fmt"
	"regexp"
	"strings"
)

// Builder assembles a whole-line pattern piece by piece and remembers which
// capture group belongs to which slot.
type Builder struct {
	sb     strings.Builder
	groups int
	slots  []int
}

// Add appends an uncaptured piece.
func (b *Builder) Add(f Fragment) *Builder {
	b.sb.WriteString(f.wrapped())
	b.groups += f.groups
	return b
}

// Capture appends lead followed by f in its own capture group and returns
// the slot number of the capture.
func (b *Builder) Capture(lead, f Fragment) int {
	idx := b.groups + lead.groups + 1
	b.sb.WriteString(lead.wrapped())
	b.sb.WriteString("(" + f.pattern + ")")
	b.groups += lead.groups + f.groups + 1
	b.slots = append(b.slots, idx)
	return len(b.slots) - 1
}

// CaptureOptional is like Capture but lead and f may be absent together.
func (b *Builder) CaptureOptional(lead, f Fragment) int {
	idx := b.groups + lead.groups + 1
	b.sb.WriteString("(?:" + lead.wrapped() + "(" + f.pattern + "))?")
	b.groups += lead.groups + f.groups + 1
	b.slots = append(b.slots, idx)
	return len(b.slots) - 1
}

// Groups returns the number of capture groups appended so far.
func (b *Builder) Groups() int { return b.groups }

// Slots returns the group index of every capture, in the order they were added.
func (b *Builder) Slots() []int {
	out := make([]int, len(b.slots))
	copy(out, b.slots)
	return out
}

// Fragment returns everything appended so far as one fragment.
func (b *Builder) Fragment() Fragment {
	return Fragment{pattern: b.sb.String(), groups: b.groups}
}

// Options control how a Builder is compiled.
type Options struct {
	// Anchored requires the pattern to match the whole input, allowing
	// surrounding whitespace.
	Anchored bool
	// FoldCase makes the whole pattern case-insensitive.
	FoldCase bool
}

// Compile compiles the assembled pattern and verifies that the compiled
// expression has exactly the bookkept number of groups.
func (b *Builder) Compile(opts Options) (*regexp.Regexp, error) {
	pattern := b.sb.String()
	if opts.Anchored {
		pattern = `^\s*` + pattern + `\s*$`
	}
	if opts.FoldCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("fragment: compile %q: %w", pattern, err)
	}
	if re.NumSubexp() != b.groups {
		return nil, fmt.Errorf("fragment: pattern %q has %d groups, expected %d",
			pattern, re.NumSubexp(), b.groups)
	}
	return re, nil
}
