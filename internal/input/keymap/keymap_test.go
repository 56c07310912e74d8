package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/input/key"
)

func TestDefaultParses(t *testing.T) {
	r, err := Default().Parse()
	require.NoError(t, err)

	b, ok := r.Lookup(key.NewRuneEvent(' ', key.ModCtrl))
	require.True(t, ok)
	assert.Equal(t, "snippet.nextPlaceholder", b.Action)

	b, ok = r.Lookup(key.NewSpecialEvent(key.KeyTab, key.ModNone))
	require.True(t, ok)
	assert.Equal(t, "completion.accept", b.Action)

	b, ok = r.Lookup(key.NewRuneEvent('C', key.ModCtrl|key.ModShift))
	require.True(t, ok, "shift is ignored on ctrl letters")
	assert.Equal(t, "line.cancel", b.Action)

	_, ok = r.Lookup(key.NewRuneEvent('{', key.ModNone))
	assert.False(t, ok, "printable characters are not bound")

	assert.Equal(t, []string{"Ctrl+A", "Home"}, r.KeysFor("cursor.lineStart"))
}

func TestRebind(t *testing.T) {
	km := Default().Clone()
	km.Rebind("Ctrl+L", "snippet.nextPlaceholder")

	r, err := km.Parse()
	require.NoError(t, err)

	_, ok := r.Lookup(key.MustParse("Ctrl+Space"))
	assert.False(t, ok)
	b, ok := r.Lookup(key.MustParse("<C-l>"))
	require.True(t, ok)
	assert.Equal(t, "snippet.nextPlaceholder", b.Action)
	assert.Equal(t, "Jump to next placeholder", b.Description)

	orig, err := Default().Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"Ctrl+Space"}, orig.KeysFor("snippet.nextPlaceholder"), "clone leaves the default alone")
}

func TestLaterBindingWins(t *testing.T) {
	km := NewKeymap("user").
		Add("Ctrl+N", "completion.next").
		Add("<C-n>", "history.newer")

	r, err := km.Parse()
	require.NoError(t, err)
	b, _ := r.Lookup(key.MustParse("Ctrl+N"))
	assert.Equal(t, "history.newer", b.Action)
	assert.Len(t, r.Bindings(), 1)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	err := NewKeymap("bad").Add("Hyper+X", "cursor.left").Validate()
	assert.True(t, errors.Is(err, key.ErrInvalidSpec))

	err = NewKeymap("bad").AddBinding(NewBinding("Tab", "")).Validate()
	assert.Error(t, err)
}

func TestBindingBuilders(t *testing.T) {
	b := NewBinding("Tab", "completion.accept").WithDescription("Accept").WithCategory("Completion")
	assert.Equal(t, Binding{Keys: "Tab", Action: "completion.accept", Description: "Accept", Category: "Completion"}, b)
}
