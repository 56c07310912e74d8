// Package typeset turns a formula into an image.
//
// The default Renderer shells out to latex and dvipng. The rendered image
// has a transparent background, a tight bounding box and a small margin.
package typeset

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"time"

	"github.com/dshills/mathclip/internal/errors"
)

var (
	// ErrRender marks every typesetting failure. The wrapped message says
	// which stage failed and why.
	ErrRender = errors.New("render failed")

	// ErrInvalidColor indicates a color that is neither a known name nor a
	// #rrggbb value.
	ErrInvalidColor = errors.New("invalid color")
)

// Renderer produces an image for a formula written in LaTeX math syntax,
// without the surrounding dollar signs.
type Renderer interface {
	Render(ctx context.Context, formula string) (image.Image, error)
}

// Options control typesetting.
type Options struct {
	// DPI is the output resolution.
	DPI int

	// FontSize is the font size in points.
	FontSize float64

	// Color is a color name or #rrggbb value for the glyphs.
	Color string

	// LaTeX and DVIPNG name the executables.
	LaTeX  string
	DVIPNG string

	// Timeout bounds one Render call. Zero means no limit.
	Timeout time.Duration

	// Pad is the transparent margin around the formula, in inches.
	Pad float64
}

// DefaultOptions returns the standard render settings.
func DefaultOptions() Options {
	return Options{
		DPI:      300,
		FontSize: 50,
		Color:    "black",
		LaTeX:    "latex",
		DVIPNG:   "dvipng",
		Timeout:  30 * time.Second,
		Pad:      0.05,
	}
}

// Validate checks the options for values the renderer cannot use.
func (o Options) Validate() error {
	if o.DPI <= 0 {
		return errors.Newf("render dpi must be positive, got %d", o.DPI)
	}
	if o.FontSize <= 0 {
		return errors.Newf("render font size must be positive, got %g", o.FontSize)
	}
	if o.Pad < 0 {
		return errors.Newf("render pad must not be negative, got %g", o.Pad)
	}
	if o.LaTeX == "" || o.DVIPNG == "" {
		return errors.New("render executables must be set")
	}
	_, err := ParseColor(o.Color)
	return err
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encode png")
	}
	return buf.Bytes(), nil
}
