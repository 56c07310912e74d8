package completion

import (
	"github.com/dshills/mathclip/internal/catalog"
	"github.com/dshills/mathclip/internal/engine/buffer"
	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/snippet"
)

// ErrInvalidApplication is returned when a candidate no longer matches the
// buffer's trigger span.
var ErrInvalidApplication = errors.New("completion no longer applies")

// SnippetMeta is the menu tag shown next to snippet candidates.
const SnippetMeta = "[snippet]"

// Span is the token between the last backslash before the cursor and the
// cursor. Start is the offset just after the backslash.
type Span struct {
	Start int
	End   int
	Token string
}

// Len returns the token length in runes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Candidate is one completion option.
type Candidate struct {
	// Label is the display text, always a backslash plus the entry name.
	Label string
	// Meta is SnippetMeta for snippets and empty otherwise.
	Meta string
	// Insert replaces the span's token when the candidate is applied.
	Insert string
	// Snippet is true when Insert is a template.
	Snippet bool
	// Span is the trigger span the candidate was computed for.
	Span Span
}

// TriggerSpan returns the active span for s. It reports false when there is
// no backslash before the cursor or the token contains anything but ASCII
// letters.
func TriggerSpan(s buffer.State) (Span, bool) {
	cursor := s.Cursor()
	slash, ok := s.LastIndexBefore('\\', cursor)
	if !ok {
		return Span{}, false
	}

	token := s.Slice(slash+1, cursor)
	for i := 0; i < len(token); i++ {
		if !isASCIILetter(token[i]) {
			return Span{}, false
		}
	}
	return Span{Start: slash + 1, End: cursor, Token: token}, true
}

// Candidates returns the entries of cat matching the active span of s, in
// catalog order. The result is empty, never an error, when nothing is
// active or nothing matches.
func Candidates(cat *catalog.Catalog, s buffer.State) []Candidate {
	span, ok := TriggerSpan(s)
	if !ok {
		return nil
	}

	matches := cat.Match(span.Token)
	if len(matches) == 0 {
		return nil
	}
	out := make([]Candidate, len(matches))
	for i, e := range matches {
		out[i] = candidateFor(e, span)
	}
	return out
}

func candidateFor(e catalog.SymbolEntry, span Span) Candidate {
	c := Candidate{Label: e.Label(), Insert: e.Name, Span: span}
	if e.Kind() == catalog.Snippet {
		c.Insert = e.Template
		c.Meta = SnippetMeta
		c.Snippet = true
	}
	return c
}

// Apply replaces the candidate's span in buf with its insertion text.
// Snippets leave the cursor inside their first slot, plain names at the end
// of the name. buf is left untouched and ErrInvalidApplication returned when
// the span has changed since the candidate was computed.
func Apply(buf *buffer.Buffer, c Candidate) error {
	span, ok := TriggerSpan(buf.Snapshot())
	if !ok || span != c.Span {
		return errors.Wrapf(ErrInvalidApplication, "apply %s", c.Label)
	}

	e := buffer.NewReplace(span.Start, span.End, c.Insert)
	if c.Snippet {
		e = snippet.Commit(span.Start, span.End, c.Insert)
	}
	return buf.Apply(e)
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
