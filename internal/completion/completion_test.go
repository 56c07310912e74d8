package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mathclip/internal/catalog"
	"github.com/dshills/mathclip/internal/engine/buffer"
	"github.com/dshills/mathclip/internal/errors"
)

func testCatalog() *catalog.Catalog {
	return catalog.MustNew(
		catalog.SymbolEntry{Name: "alpha"},
		catalog.SymbolEntry{Name: "aleph"},
		catalog.SymbolEntry{Name: "beta"},
		catalog.SymbolEntry{Name: "frac", Template: "frac{}{}"},
		catalog.SymbolEntry{Name: "Lambda"},
		catalog.SymbolEntry{Name: "lambda"},
		catalog.SymbolEntry{Name: "ldots"},
		catalog.SymbolEntry{Name: "pmatrix", Template: `pmatrix{  \\  }`},
	)
}

func state(t *testing.T, text string, cursor int) buffer.State {
	t.Helper()
	s, err := buffer.NewState(text, cursor)
	require.NoError(t, err)
	return s
}

func labels(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Label
	}
	return out
}

func TestTriggerSpan(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int
		want   Span
		ok     bool
	}{
		{"plain token", `\al`, 3, Span{Start: 1, End: 3, Token: "al"}, true},
		{"empty token", `x + \`, 5, Span{Start: 5, End: 5, Token: ""}, true},
		{"nearest backslash", `\alpha + \be`, 12, Span{Start: 10, End: 12, Token: "be"}, true},
		{"cursor mid token", `\alpha`, 3, Span{Start: 1, End: 3, Token: "al"}, true},
		{"no backslash", "alpha", 5, Span{}, false},
		{"backslash after cursor", `a\b`, 1, Span{}, false},
		{"digit", `\al2`, 4, Span{}, false},
		{"space", `\alpha x`, 8, Span{}, false},
		{"brace", `\frac{`, 6, Span{}, false},
		{"non-ascii letter", `\é`, 2, Span{}, false},
		{"escaped backslash", `\\`, 2, Span{Start: 2, End: 2, Token: ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok := TriggerSpan(state(t, tt.text, tt.cursor))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, span)
		})
	}
}

func TestCandidatesPlain(t *testing.T) {
	cs := Candidates(testCatalog(), state(t, `\al`, 3))

	require.Len(t, cs, 2)
	assert.Equal(t, []string{`\aleph`, `\alpha`}, labels(cs))

	var alpha []Candidate
	for _, c := range cs {
		if c.Insert == "alpha" {
			alpha = append(alpha, c)
		}
	}
	require.Len(t, alpha, 1)
	assert.False(t, alpha[0].Snippet)
	assert.Empty(t, alpha[0].Meta)
}

func TestCandidatesSnippet(t *testing.T) {
	cs := Candidates(testCatalog(), state(t, `\fr`, 3))

	require.Len(t, cs, 1)
	assert.Equal(t, Candidate{
		Label:   `\frac`,
		Meta:    SnippetMeta,
		Insert:  "frac{}{}",
		Snippet: true,
		Span:    Span{Start: 1, End: 3, Token: "fr"},
	}, cs[0])
}

func TestCandidatesCaseInsensitive(t *testing.T) {
	cat := testCatalog()

	lower := Candidates(cat, state(t, `\al`, 3))
	upper := Candidates(cat, state(t, `\AL`, 3))
	assert.Equal(t, labels(lower), labels(upper))

	assert.Equal(t, []string{`\Lambda`, `\lambda`}, labels(Candidates(cat, state(t, `\LAM`, 4))))
}

func TestCandidatesEmpty(t *testing.T) {
	cat := testCatalog()

	assert.Empty(t, Candidates(cat, state(t, `\al2`, 4)))
	assert.Empty(t, Candidates(cat, state(t, `\zeta`, 5)))
	assert.Empty(t, Candidates(cat, state(t, "alpha", 5)))
	assert.Empty(t, Candidates(cat, state(t, "", 0)))
}

func TestCandidatesEmptyTokenListsEverything(t *testing.T) {
	cat := testCatalog()
	cs := Candidates(cat, state(t, `\`, 1))

	assert.Len(t, cs, cat.Len())
	assert.Equal(t, `\Lambda`, cs[0].Label)
}

func TestApplyPlain(t *testing.T) {
	buf := buffer.NewFromString(`\al`)
	cs := Candidates(testCatalog(), buf.Snapshot())
	require.Len(t, cs, 2)

	require.NoError(t, Apply(buf, cs[1]))
	assert.Equal(t, `\alpha`, buf.Text())
	assert.Equal(t, 6, buf.Cursor())
}

func TestApplySnippet(t *testing.T) {
	buf := buffer.NewFromString(`\fr`)
	cs := Candidates(testCatalog(), buf.Snapshot())
	require.Len(t, cs, 1)

	require.NoError(t, Apply(buf, cs[0]))
	assert.Equal(t, `\frac{}{}`, buf.Text())
	assert.Equal(t, 6, buf.Cursor(), "cursor just after the first '{'")
}

func TestApplySnippetWithoutSlot(t *testing.T) {
	buf := buffer.NewFromString(`\pm`)
	cs := Candidates(testCatalog(), buf.Snapshot())
	require.Len(t, cs, 1)

	require.NoError(t, Apply(buf, cs[0]))
	assert.Equal(t, `\pmatrix{  \\  }`, buf.Text())
	assert.Equal(t, buf.Len(), buf.Cursor())
}

func TestApplyLeavesSurroundingText(t *testing.T) {
	buf := buffer.NewFromString(`x = \al + y`)
	require.NoError(t, buf.MoveCursor(7))

	cs := Candidates(testCatalog(), buf.Snapshot())
	require.Len(t, cs, 2)
	require.NoError(t, Apply(buf, cs[1]))

	assert.Equal(t, `x = \alpha + y`, buf.Text())
	assert.Equal(t, 10, buf.Cursor())
}

func TestApplyStaleCandidate(t *testing.T) {
	buf := buffer.NewFromString(`\al`)
	cs := Candidates(testCatalog(), buf.Snapshot())
	require.NotEmpty(t, cs)

	require.NoError(t, buf.InsertAt(3, "p"))
	before := buf.Snapshot()

	err := Apply(buf, cs[0])
	assert.True(t, errors.Is(err, ErrInvalidApplication))
	assert.Equal(t, before.Text(), buf.Text())
	assert.Equal(t, before.Cursor(), buf.Cursor())

	buf.Reset("alpha ")
	assert.True(t, errors.Is(Apply(buf, cs[0]), ErrInvalidApplication))
}

func TestMenu(t *testing.T) {
	cat := testCatalog()
	var m Menu

	m.Refresh(cat, state(t, `\l`, 2))
	require.True(t, m.Active)
	assert.Equal(t, []string{`\Lambda`, `\lambda`, `\ldots`}, labels(m.Items))

	m.Move(1)
	c, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, `\lambda`, c.Label)

	m.Move(-2)
	c, _ = m.Current()
	assert.Equal(t, `\ldots`, c.Label, "selection wraps")

	m.Refresh(cat, state(t, `\l2`, 3))
	assert.False(t, m.Active)
	_, ok = m.Current()
	assert.False(t, ok)
}

func TestMenuVisible(t *testing.T) {
	m := Menu{MaxItems: 2}
	m.Refresh(testCatalog(), state(t, `\l`, 2))

	items, sel := m.Visible()
	assert.Equal(t, []string{`\Lambda`, `\lambda`}, labels(items))
	assert.Equal(t, 0, sel)

	m.Move(2)
	items, sel = m.Visible()
	assert.Equal(t, []string{`\lambda`, `\ldots`}, labels(items))
	assert.Equal(t, 1, sel)
}

func TestMenuAccept(t *testing.T) {
	buf := buffer.NewFromString(`\fr`)
	var m Menu
	m.Refresh(testCatalog(), buf.Snapshot())

	require.NoError(t, m.Accept(buf))
	assert.Equal(t, `\frac{}{}`, buf.Text())
	assert.False(t, m.Active)

	require.NoError(t, m.Accept(buf), "accepting a closed menu is a no-op")
	assert.Equal(t, `\frac{}{}`, buf.Text())
}
