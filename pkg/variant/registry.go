package variant

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/OpenTraceLab/OpenTraceDeck/pkg/card"
	"github.com/OpenTraceLab/OpenTraceDeck/pkg/deckerr"
)

// Registry maps card keywords to their families. Register families before
// sharing the registry; after that it is read-only and safe for concurrent
// Parse calls.
type Registry struct {
	families map[string]*Family
	heads    *HeadParser
	logger   *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger makes the registry trace head parsing and variant attempts at
// debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger.With("component", "variant")
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) (*Registry, error) {
	heads, err := NewHeadParser()
	if err != nil {
		return nil, err
	}
	r := &Registry{
		families: make(map[string]*Family),
		heads:    heads,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Register adds families. A keyword can be registered once.
func (r *Registry) Register(families ...*Family) error {
	for _, f := range families {
		if _, ok := r.families[f.keyword]; ok {
			return fmt.Errorf("variant: keyword %q already registered", f.keyword)
		}
		r.families[f.keyword] = f
	}
	return nil
}

// Lookup returns the family registered for keyword. Starred keywords are
// looked up with their "*".
func (r *Registry) Lookup(keyword string) (*Family, bool) {
	f, ok := r.families[strings.ToLower(keyword)]
	return f, ok
}

// Keywords returns the registered keywords in sorted order.
func (r *Registry) Keywords() []string {
	keys := make([]string, 0, len(r.families))
	for k := range r.families {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Head reads the card head of line.
func (r *Registry) Head(line string) (*Head, error) {
	h, err := r.heads.ParseString(line)
	if err != nil {
		return nil, &deckerr.GrammarError{Codec: "card head", Text: line, Err: err}
	}
	return h, nil
}

// Resolve selects the family from the card head and resolves line against
// it. An unreadable head or an unregistered keyword gives a failed
// resolution whose error is a *deckerr.GrammarError.
func (r *Registry) Resolve(line string) (*Head, Resolution) {
	h, err := r.Head(line)
	if err != nil {
		r.logger.Debug("unreadable card head", "line", line, "error", err)
		return nil, Resolution{State: Failed, Variant: -1, Err: err}
	}
	f, ok := r.families[h.Name()]
	if !ok {
		r.logger.Debug("unknown keyword", "keyword", h.Name())
		return h, Resolution{
			State:   Failed,
			Variant: -1,
			Err:     &deckerr.GrammarError{Keyword: h.Name(), Text: line, Err: deckerr.ErrUnknownKeyword},
		}
	}

	res := f.Resolve(line)
	for _, a := range res.Attempts {
		if a.Err != nil {
			r.logger.Debug("variant rejected", "keyword", f.keyword, "variant", a.Variant, "error", a.Err)
		}
	}
	if res.State == Matched {
		r.logger.Debug("variant matched", "keyword", f.keyword, "variant", res.Variant, "card", res.Card.String())
	}
	return h, res
}

// Parse returns the card for line.
func (r *Registry) Parse(line string) (*card.Card, error) {
	_, res := r.Resolve(line)
	if res.State != Matched {
		return nil, res.Err
	}
	return res.Card, nil
}
