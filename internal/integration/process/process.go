package process

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/dshills/mathclip/internal/errors"
)

var (
	// ErrNotFound indicates the executable is not on PATH.
	ErrNotFound = errors.New("executable not found")

	// ErrExited indicates the command ran and exited with a non-zero status.
	ErrExited = errors.New("command failed")
)

// waitDelay bounds how long Run waits for I/O after the process exits or
// is killed.
const waitDelay = 2 * time.Second

// Command describes one invocation of an external program.
type Command struct {
	// Name is the executable, resolved through PATH.
	Name string

	// Args are passed verbatim, without a shell.
	Args []string

	// Dir is the working directory. Empty means the current one.
	Dir string

	// Stdin is written to the process's standard input when non-nil.
	Stdin []byte

	// Env entries are appended to the inherited environment.
	Env []string

	// Detached discards output instead of capturing it. Set it for helpers
	// such as xclip that leave a background process holding the selection.
	Detached bool
}

// String returns the command line for logs.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result holds the outcome of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Output returns stdout followed by stderr, trimmed.
func (r Result) Output() string {
	return strings.TrimSpace(string(r.Stdout) + string(r.Stderr))
}

// Runner executes commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, cmd Command) (Result, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, cmd Command) (Result, error) {
	return f(ctx, cmd)
}

// Exec runs commands with os/exec.
type Exec struct{}

// Run starts the command, waits for it and captures its output. The process
// is killed when ctx is done.
func (Exec) Run(ctx context.Context, c Command) (Result, error) {
	path, err := exec.LookPath(c.Name)
	if err != nil {
		return Result{ExitCode: -1}, errors.Mark(errors.Wrapf(err, "%s", c.Name), ErrNotFound)
	}

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(cmd.Environ(), c.Env...)
	}
	if c.Stdin != nil {
		cmd.Stdin = bytes.NewReader(c.Stdin)
	}
	var stdout, stderr bytes.Buffer
	if !c.Detached {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err = cmd.Run()
	res := Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: -1,
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, errors.Wrapf(ctxErr, "%s", c.Name)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return res, errors.Mark(errors.Newf("%s exited with status %d", c.Name, res.ExitCode), ErrExited)
		}
		return res, errors.Wrapf(err, "run %s", c.Name)
	}
	return res, nil
}

// Available reports whether name resolves to an executable on PATH.
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
