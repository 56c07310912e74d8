package clipboard

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/integration/process"
	"github.com/dshills/mathclip/internal/typeset"
)

// Command publishes by piping the PNG into a helper program.
type Command struct {
	name string
	cmd  process.Command
	hint string
	run  process.Runner
}

func newXclip(run process.Runner) *Command {
	return &Command{
		name: BackendXclip,
		cmd: process.Command{
			Name:     "xclip",
			Args:     []string{"-selection", "clipboard", "-t", "image/png", "-i"},
			Detached: true,
		},
		hint: "install xclip, or set clipboard.backend",
		run:  run,
	}
}

func newWlCopy(run process.Runner) *Command {
	return &Command{
		name: BackendWlCopy,
		cmd: process.Command{
			Name:     "wl-copy",
			Args:     []string{"--type", "image/png"},
			Detached: true,
		},
		hint: "install wl-clipboard, or set clipboard.backend",
		run:  run,
	}
}

func (c *Command) Name() string { return c.name }

func (c *Command) Publish(ctx context.Context, img image.Image) (Outcome, error) {
	data, err := typeset.EncodePNG(img)
	if err != nil {
		return Outcome{}, err
	}

	cmd := c.cmd
	cmd.Stdin = data
	if _, err := c.run.Run(ctx, cmd); err != nil {
		return Outcome{}, helperError(err, c.hint)
	}
	return Outcome{Backend: c.name, Formats: []string{"image/png"}, Size: len(data)}, nil
}

// OSAScript publishes on macOS. The PNG is written to a temporary file that
// AppleScript reads as «class PNGf».
type OSAScript struct {
	run process.Runner
}

func (o *OSAScript) Name() string { return BackendOSAScript }

func (o *OSAScript) Publish(ctx context.Context, img image.Image) (Outcome, error) {
	data, err := typeset.EncodePNG(img)
	if err != nil {
		return Outcome{}, err
	}

	f, err := os.CreateTemp("", "mathclip-*.png")
	if err != nil {
		return Outcome{}, errors.Wrap(err, "create temporary image")
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return Outcome{}, errors.Wrap(err, "write temporary image")
	}
	if err := f.Close(); err != nil {
		return Outcome{}, errors.Wrap(err, "write temporary image")
	}

	cmd := process.Command{Name: "osascript", Args: []string{"-e", AppleScript(path)}}
	if _, err := o.run.Run(ctx, cmd); err != nil {
		return Outcome{}, helperError(err, "osascript ships with macOS; on other systems set clipboard.backend")
	}
	return Outcome{Backend: BackendOSAScript, Formats: []string{"PNGf"}, Size: len(data)}, nil
}

// AppleScript returns the script that loads the PNG at path into the
// clipboard.
func AppleScript(path string) string {
	return fmt.Sprintf(`set the clipboard to (read (POSIX file %q) as «class PNGf»)`, path)
}

// helperError classifies a failed helper run. A missing program means the
// clipboard is unavailable.
func helperError(err error, hint string) error {
	if errors.Is(err, process.ErrNotFound) {
		return errors.Mark(errors.WithHint(err, hint), ErrClipboardUnavailable)
	}
	return errors.Wrap(err, "copy to clipboard")
}
