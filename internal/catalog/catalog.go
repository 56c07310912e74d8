// Package catalog holds the symbol vocabulary offered by completion: an
// ordered, read-only set of command names, some of which expand into
// multi-slot templates.
package catalog

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/dshills/mathclip/internal/errors"
)

// Errors returned when building a catalog.
var (
	ErrInvalidName = errors.New("invalid symbol name")
)

// Kind distinguishes plain command names from snippet entries.
type Kind uint8

const (
	// Plain entries complete to their name.
	Plain Kind = iota
	// Snippet entries complete to a template with fillable slots.
	Snippet
)

// String returns the kind name used in listings.
func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Snippet:
		return "snippet"
	default:
		return "unknown"
	}
}

// SymbolEntry is one command in the vocabulary. Name is stored without the
// leading backslash. Template, when set, replaces the typed token on commit.
type SymbolEntry struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template,omitempty"`
}

// Kind reports whether the entry is a snippet.
func (e SymbolEntry) Kind() Kind {
	if e.Template != "" {
		return Snippet
	}
	return Plain
}

// Label returns the display form of the entry, `\name`.
func (e SymbolEntry) Label() string {
	return `\` + e.Name
}

// Catalog is an immutable set of entries with unique names, ordered by
// name in byte order (so `\Delta` sorts before `\alpha`). It is safe for
// concurrent reads.
type Catalog struct {
	entries []SymbolEntry
	folded  []string
	index   map[string]int
}

// New builds a catalog from entries. Names must be non-empty and contain no
// whitespace or backslash. When a name repeats, the later entry wins.
func New(entries ...SymbolEntry) (*Catalog, error) {
	byName := make(map[string]SymbolEntry, len(entries))
	for _, e := range entries {
		if err := validateName(e.Name); err != nil {
			return nil, err
		}
		byName[e.Name] = e
	}

	c := &Catalog{
		entries: make([]SymbolEntry, 0, len(byName)),
		index:   make(map[string]int, len(byName)),
	}
	for _, e := range byName {
		c.entries = append(c.entries, e)
	}
	sort.Slice(c.entries, func(i, j int) bool {
		return c.entries[i].Name < c.entries[j].Name
	})

	fold := cases.Fold()
	c.folded = make([]string, len(c.entries))
	for i, e := range c.entries {
		c.folded[i] = fold.String(e.Name)
		c.index[e.Name] = i
	}
	return c, nil
}

// MustNew is New for static tables; it panics on an invalid entry.
func MustNew(entries ...SymbolEntry) *Catalog {
	c, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return c
}

func validateName(name string) error {
	if name == "" {
		return errors.Wrap(ErrInvalidName, "empty name")
	}
	if strings.ContainsFunc(name, func(r rune) bool { return r == '\\' || unicode.IsSpace(r) }) {
		return errors.Wrapf(ErrInvalidName, "%q contains a backslash or whitespace", name)
	}
	return nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []SymbolEntry {
	out := make([]SymbolEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup finds an entry by its exact canonical name.
func (c *Catalog) Lookup(name string) (SymbolEntry, bool) {
	i, ok := c.index[name]
	if !ok {
		return SymbolEntry{}, false
	}
	return c.entries[i], true
}

// Match returns, in catalog order, every entry whose name starts with
// prefix when both are compared case-insensitively. An empty prefix matches
// everything.
func (c *Catalog) Match(prefix string) []SymbolEntry {
	p := cases.Fold().String(prefix)
	var out []SymbolEntry
	for i, f := range c.folded {
		if strings.HasPrefix(f, p) {
			out = append(out, c.entries[i])
		}
	}
	return out
}

// Merge returns a new catalog holding c's entries overlaid with extra.
func (c *Catalog) Merge(extra []SymbolEntry) (*Catalog, error) {
	all := make([]SymbolEntry, 0, len(c.entries)+len(extra))
	all = append(all, c.entries...)
	all = append(all, extra...)
	return New(all...)
}
