package lua

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mathclip/internal/errors"
)

func TestDoStringRegisteredFunc(t *testing.T) {
	s := NewState()
	defer s.Close()

	var got []string
	s.RegisterFunc("emit", func(L *lua.LState) int {
		got = append(got, L.CheckString(1))
		return 0
	})

	err := s.DoString(context.Background(), `
		for _, n in ipairs({"norm", "abs"}) do
			emit(string.upper(n))
		end
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"NORM", "ABS"}, got)
}

func TestSandboxBlocksLoaders(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, code := range []string{
		`dofile("/etc/passwd")`,
		`loadstring("return 1")()`,
		`require("os")`,
		`os.exit(1)`,
		`io.open("/etc/passwd")`,
	} {
		err := s.DoString(context.Background(), code)
		assert.Error(t, err, code)
		assert.True(t, errors.Is(err, ErrScript), code)
	}
}

func TestExecutionTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	err := s.DoString(context.Background(), `while true do end`)
	assert.Error(t, err)
}

func TestDoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.lua")
	require.NoError(t, os.WriteFile(path, []byte(`x = 1 + 1`), 0o644))

	s := NewState()
	defer s.Close()

	require.NoError(t, s.DoFile(context.Background(), path))
	assert.Equal(t, lua.LNumber(2), s.L.GetGlobal("x"))

	err := s.DoFile(context.Background(), filepath.Join(dir, "missing.lua"))
	assert.Error(t, err)
}

func TestClosedState(t *testing.T) {
	s := NewState()
	s.Close()
	s.Close()

	err := s.DoString(context.Background(), `x = 1`)
	assert.True(t, errors.Is(err, ErrStateClosed))
}
