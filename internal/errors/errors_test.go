package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))

	base := New("xclip not found")
	assert.Equal(t, "xclip not found", UserMessage(base))

	hinted := WithHint(base, "install xclip")
	assert.Equal(t, "xclip not found\ninstall xclip", UserMessage(hinted))
}

func TestMarkPreservesMessage(t *testing.T) {
	sentinel := New("render failed")
	cause := New("latex exited with status 1")

	err := Mark(cause, sentinel)

	assert.True(t, Is(err, sentinel))
	assert.Equal(t, "latex exited with status 1", err.Error())
}
