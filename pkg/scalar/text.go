package scalar

import (
	"strings"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/fragment"
)

var tokenFragment = fragment.MustNew(`\S+`)

// Text is a free text token.
type Text string

func (t Text) String() string { return string(t) }

func (t Text) Equal(other Value) bool {
	o, ok := other.(Text)
	return ok && o == t
}

// TextCodec decodes a single whitespace-free token. When Words is set only
// those words are accepted, case-insensitively, and the decoded value takes
// the spelling from Words.
type TextCodec struct {
	Words []string
}

// Words returns a TextCodec restricted to the given words. Restricting the
// grammar is for tokens that tell variants apart; ordinary enumerations are
// checked as constraints instead.
func Words(words ...string) TextCodec {
	return TextCodec{Words: words}
}

func (c TextCodec) Name() string {
	if len(c.Words) > 0 {
		return "word"
	}
	return "text"
}

func (c TextCodec) Fragment() fragment.Fragment {
	if len(c.Words) == 0 {
		return tokenFragment
	}
	alts := make([]fragment.Fragment, len(c.Words))
	for i, w := range c.Words {
		alts[i] = fragment.Literal(w)
	}
	return fragment.Alt(alts...)
}

func (c TextCodec) Decode(text string) (Value, error) { return decodeWith[Text](c, text) }
func (c TextCodec) Coerce(in Input) (Value, error)    { return coerceWith[Text](c, in) }

func (c TextCodec) Parse(text string) (Text, error) {
	s := strings.TrimSpace(text)
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return "", deckerr.Grammar(c.Name(), text)
	}
	if len(c.Words) == 0 {
		return Text(s), nil
	}
	for _, w := range c.Words {
		if strings.EqualFold(w, s) {
			return Text(w), nil
		}
	}
	return "", deckerr.Grammar(c.Name(), text)
}

func (c TextCodec) From(in Input) (Text, error) {
	switch in.kind {
	case InputText:
		return c.Parse(in.text)
	case InputTyped:
		if t, ok := in.typed.(Text); ok {
			return c.Parse(string(t))
		}
	}
	return "", wrongInput(c.Name(), in)
}
