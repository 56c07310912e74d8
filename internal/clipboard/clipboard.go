// Package clipboard publishes rendered formulas to the system clipboard.
//
// Each platform has its own mechanism:
//
//   - macOS: osascript reading a temporary PNG as «class PNGf»
//   - Windows: the registered "PNG" format plus CF_DIB
//   - Linux: xclip, or wl-copy under Wayland
//
// The file backend writes the PNG to a path instead, for headless use.
package clipboard

import (
	"context"
	"image"
	"os"
	"runtime"
	"strings"

	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/integration/process"
)

// ErrClipboardUnavailable indicates no working clipboard mechanism for this
// platform, usually because a helper program is not installed.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Backend names accepted in configuration.
const (
	BackendAuto      = "auto"
	BackendXclip     = "xclip"
	BackendWlCopy    = "wl-copy"
	BackendOSAScript = "osascript"
	BackendWindows   = "windows"
	BackendFile      = "file"
)

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendAuto, BackendXclip, BackendWlCopy, BackendOSAScript, BackendWindows, BackendFile}
}

// Publisher places an image where the user can paste it.
type Publisher interface {
	Publish(ctx context.Context, img image.Image) (Outcome, error)
	Name() string
}

// Outcome describes a successful publish.
type Outcome struct {
	// Backend is the publisher's name.
	Backend string

	// Formats are the representations that were stored.
	Formats []string

	// Path is set when the image was written to a file.
	Path string

	// Size is the PNG size in bytes.
	Size int
}

// Message is the confirmation shown to the user.
func (o Outcome) Message() string {
	if o.Path != "" {
		return "Saved " + o.Path
	}
	return "Copied"
}

// Options select and configure a backend.
type Options struct {
	// Backend is one of Backends(). Empty means auto.
	Backend string

	// Output is the destination path for the file backend.
	Output string
}

// New returns the publisher named by opts. A nil runner uses process.Exec.
func New(opts Options, run process.Runner) (Publisher, error) {
	if run == nil {
		run = process.Exec{}
	}

	name := strings.ToLower(strings.TrimSpace(opts.Backend))
	if name == "" || name == BackendAuto {
		name = Detect(runtime.GOOS, os.Getenv)
	}

	switch name {
	case BackendXclip:
		return newXclip(run), nil
	case BackendWlCopy:
		return newWlCopy(run), nil
	case BackendOSAScript:
		return &OSAScript{run: run}, nil
	case BackendWindows:
		return Windows{}, nil
	case BackendFile:
		if opts.Output == "" {
			return nil, errors.WithHint(errors.New("file clipboard backend needs an output path"),
				"set clipboard.output")
		}
		return &File{Path: opts.Output}, nil
	default:
		return nil, errors.WithHintf(errors.Newf("unknown clipboard backend %q", opts.Backend),
			"use one of %s", strings.Join(Backends(), ", "))
	}
}

// Detect picks the backend for an operating system. getenv is consulted
// for WAYLAND_DISPLAY.
func Detect(goos string, getenv func(string) string) string {
	switch goos {
	case "darwin":
		return BackendOSAScript
	case "windows":
		return BackendWindows
	}
	if getenv("WAYLAND_DISPLAY") != "" {
		return BackendWlCopy
	}
	return BackendXclip
}
