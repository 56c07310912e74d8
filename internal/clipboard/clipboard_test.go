package clipboard

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/integration/process"
)

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	return img
}

type recorder struct {
	commands []process.Command
	err      error
	// seen holds file contents referenced by the command, read while the
	// command runs.
	seen []byte
}

func (r *recorder) Run(_ context.Context, c process.Command) (process.Result, error) {
	r.commands = append(r.commands, c)
	if c.Name == "osascript" {
		script := c.Args[1]
		start := strings.Index(script, `"`)
		end := strings.LastIndex(script, `"`)
		r.seen, _ = os.ReadFile(script[start+1 : end])
	}
	return process.Result{}, r.err
}

func TestDetect(t *testing.T) {
	env := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	assert.Equal(t, BackendOSAScript, Detect("darwin", env(nil)))
	assert.Equal(t, BackendWindows, Detect("windows", env(nil)))
	assert.Equal(t, BackendXclip, Detect("linux", env(nil)))
	assert.Equal(t, BackendWlCopy, Detect("linux", env(map[string]string{"WAYLAND_DISPLAY": "wayland-0"})))
	assert.Equal(t, BackendXclip, Detect("freebsd", env(nil)))
}

func TestNewSelectsBackend(t *testing.T) {
	for _, name := range []string{BackendXclip, BackendWlCopy, BackendOSAScript, BackendWindows} {
		p, err := New(Options{Backend: name}, &recorder{})
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name())
	}

	p, err := New(Options{Backend: " FILE ", Output: "out.png"}, nil)
	require.NoError(t, err)
	assert.Equal(t, BackendFile, p.Name())

	p, err = New(Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, Detect(runtime.GOOS, os.Getenv), p.Name())

	_, err = New(Options{Backend: BackendFile}, nil)
	assert.Error(t, err)

	_, err = New(Options{Backend: "pbcopy"}, nil)
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "wl-copy")
}

func TestXclipPipesPNG(t *testing.T) {
	rec := &recorder{}
	p, err := New(Options{Backend: BackendXclip}, rec)
	require.NoError(t, err)

	out, err := p.Publish(context.Background(), testImage())
	require.NoError(t, err)
	assert.Equal(t, "Copied", out.Message())
	assert.Equal(t, []string{"image/png"}, out.Formats)

	require.Len(t, rec.commands, 1)
	cmd := rec.commands[0]
	assert.Equal(t, "xclip", cmd.Name)
	assert.Equal(t, []string{"-selection", "clipboard", "-t", "image/png", "-i"}, cmd.Args)
	assert.True(t, cmd.Detached)
	assert.Len(t, cmd.Stdin, out.Size)

	cfg, err := png.DecodeConfig(bytes.NewReader(cmd.Stdin))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Width)
}

func TestWlCopyArgs(t *testing.T) {
	rec := &recorder{}
	p, err := New(Options{Backend: BackendWlCopy}, rec)
	require.NoError(t, err)

	_, err = p.Publish(context.Background(), testImage())
	require.NoError(t, err)
	assert.Equal(t, []string{"--type", "image/png"}, rec.commands[0].Args)
}

func TestMissingHelperIsUnavailable(t *testing.T) {
	rec := &recorder{err: errors.Mark(errors.New("xclip"), process.ErrNotFound)}
	p, err := New(Options{Backend: BackendXclip}, rec)
	require.NoError(t, err)

	_, err = p.Publish(context.Background(), testImage())
	assert.True(t, errors.Is(err, ErrClipboardUnavailable))
	assert.Contains(t, errors.FlattenHints(err), "install xclip")
}

func TestHelperFailureIsNotUnavailable(t *testing.T) {
	rec := &recorder{err: errors.Mark(errors.New("xclip exited with status 1"), process.ErrExited)}
	p, err := New(Options{Backend: BackendXclip}, rec)
	require.NoError(t, err)

	_, err = p.Publish(context.Background(), testImage())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrClipboardUnavailable))
}

func TestOSAScript(t *testing.T) {
	rec := &recorder{}
	p, err := New(Options{Backend: BackendOSAScript}, rec)
	require.NoError(t, err)

	out, err := p.Publish(context.Background(), testImage())
	require.NoError(t, err)
	assert.Equal(t, []string{"PNGf"}, out.Formats)

	require.Len(t, rec.commands, 1)
	cmd := rec.commands[0]
	assert.Equal(t, "osascript", cmd.Name)
	assert.Equal(t, "-e", cmd.Args[0])
	assert.Contains(t, cmd.Args[1], "«class PNGf»")
	assert.Len(t, rec.seen, out.Size, "image file exists while osascript runs")

	path := cmd.Args[1][strings.Index(cmd.Args[1], `"`)+1 : strings.LastIndex(cmd.Args[1], `"`)]
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "temporary image is removed")
}

func TestAppleScript(t *testing.T) {
	assert.Equal(t,
		`set the clipboard to (read (POSIX file "/tmp/x.png") as «class PNGf»)`,
		AppleScript("/tmp/x.png"))
}

func TestFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "formula.png")
	p, err := New(Options{Backend: BackendFile, Output: path}, nil)
	require.NoError(t, err)

	out, err := p.Publish(context.Background(), testImage())
	require.NoError(t, err)
	assert.Equal(t, "Saved "+path, out.Message())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, out.Size)
}

func TestDIB(t *testing.T) {
	dib, err := DIB(testImage())
	require.NoError(t, err)

	require.Greater(t, len(dib), 40)
	assert.Equal(t, uint32(40), binary.LittleEndian.Uint32(dib[0:4]), "BITMAPINFOHEADER size")
	assert.Equal(t, int32(3), int32(binary.LittleEndian.Uint32(dib[4:8])))
	assert.Equal(t, int32(2), int32(binary.LittleEndian.Uint32(dib[8:12])))
	assert.Equal(t, uint16(24), binary.LittleEndian.Uint16(dib[14:16]), "opaque after compositing")

	// Bottom-up rows padded to 4 bytes, BGR. The top-left transparent pixel
	// becomes white and sits in the last row.
	row := 12
	top := dib[40+row : 40+row+3]
	assert.Equal(t, []byte{255, 255, 255}, top)
	red := dib[40+3 : 40+6]
	assert.Equal(t, []byte{0, 0, 255}, red)
}

func TestWindowsBackendOffWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses the real clipboard")
	}
	_, err := Windows{}.Publish(context.Background(), testImage())
	assert.True(t, errors.Is(err, ErrClipboardUnavailable))
}
