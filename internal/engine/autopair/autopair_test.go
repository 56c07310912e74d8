package autopair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mathclip/internal/engine/buffer"
)

func TestHandleOnEmptyBuffer(t *testing.T) {
	tests := []struct {
		open rune
		want string
	}{
		{'{', "{}"},
		{'(', "()"},
		{'[', "[]"},
	}

	for _, tt := range tests {
		t.Run(string(tt.open), func(t *testing.T) {
			buf := buffer.New()
			handled, err := Handle(buf, tt.open)
			require.NoError(t, err)
			assert.True(t, handled)
			assert.Equal(t, tt.want, buf.Text())
			assert.Equal(t, 1, buf.Cursor())
		})
	}
}

func TestHandleMidLine(t *testing.T) {
	buf := buffer.NewFromString(`\sqrtx`)
	require.NoError(t, buf.MoveCursor(5))

	handled, err := Handle(buf, '{')
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, `\sqrt{}x`, buf.Text())
	assert.Equal(t, 6, buf.Cursor())
}

func TestHandleDoesNotTypeOver(t *testing.T) {
	buf := buffer.New()
	_, err := Handle(buf, '{')
	require.NoError(t, err)
	_, err = Handle(buf, '{')
	require.NoError(t, err)

	assert.Equal(t, "{{}}", buf.Text())
	assert.Equal(t, 2, buf.Cursor())
}

func TestHandleIgnoresOtherRunes(t *testing.T) {
	for _, r := range []rune{'}', ')', ']', 'a', '<', '\\'} {
		buf := buffer.NewFromString("x")
		handled, err := Handle(buf, r)
		require.NoError(t, err)
		assert.False(t, handled, "%q", r)
		assert.Equal(t, "x", buf.Text())
		assert.Equal(t, 1, buf.Cursor())
	}
}

func TestCloser(t *testing.T) {
	c, ok := Closer('[')
	assert.True(t, ok)
	assert.Equal(t, ']', c)

	_, ok = Closer('<')
	assert.False(t, ok)
	assert.True(t, IsOpener('('))
	assert.False(t, IsOpener(')'))
}
