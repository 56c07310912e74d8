package process

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mathclip/internal/errors"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" || !Available("sh") {
		t.Skip("needs a POSIX shell")
	}
}

func TestExecCapturesOutput(t *testing.T) {
	requireShell(t)

	res, err := Exec{}.Run(context.Background(), Command{
		Name:  "sh",
		Args:  []string{"-c", "cat; echo oops >&2"},
		Stdin: []byte("hello\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(res.Stdout))
	assert.Equal(t, "oops\n", string(res.Stderr))
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\noops", res.Output())
}

func TestExecDir(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "formula.tex"), nil, 0o644))

	res, err := Exec{}.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "ls"}, Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "formula.tex", res.Output())
}

func TestExecNonZeroExit(t *testing.T) {
	requireShell(t)

	res, err := Exec{}.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo '! Undefined control sequence.'; exit 3"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExited))
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Output(), "Undefined control sequence")
}

func TestExecNotFound(t *testing.T) {
	_, err := Exec{}.Run(context.Background(), Command{Name: "mathclip-no-such-tool"})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, Available("mathclip-no-such-tool"))
}

func TestExecContextTimeout(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Exec{}.Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 5"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "dvipng", Command{Name: "dvipng"}.String())
	assert.Equal(t, "dvipng -T tight", Command{Name: "dvipng", Args: []string{"-T", "tight"}}.String())
}

func TestRunnerFunc(t *testing.T) {
	var got Command
	r := RunnerFunc(func(_ context.Context, c Command) (Result, error) {
		got = c
		return Result{Stdout: []byte("ok")}, nil
	})

	res, err := r.Run(context.Background(), Command{Name: "latex"})
	require.NoError(t, err)
	assert.Equal(t, "latex", got.Name)
	assert.Equal(t, "ok", res.Output())
}

func TestExecDetached(t *testing.T) {
	requireShell(t)

	// The background sleep inherits the output descriptors; a detached run
	// must not wait for it.
	start := time.Now()
	res, err := Exec{}.Run(context.Background(), Command{
		Name:     "sh",
		Args:     []string{"-c", "echo hidden; sleep 5 &"},
		Detached: true,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Output())
	assert.Less(t, time.Since(start), 4*time.Second)
}
