package backend

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/mathclip/internal/errors"
)

// Color is a true color or the terminal default.
type Color struct {
	rgb colorful.Color
	set bool
}

// ColorDefault is the terminal's own foreground or background.
var ColorDefault = Color{}

// ColorFromHex parses "#rrggbb" or "#rgb".
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, errors.Wrapf(err, "invalid hex color %q", hex)
	}
	return Color{rgb: c, set: true}, nil
}

// MustHex is ColorFromHex for constants.
func MustHex(hex string) Color {
	c, err := ColorFromHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// IsDefault reports whether c is the terminal default.
func (c Color) IsDefault() bool {
	return !c.set
}

// RGB returns the 8-bit components.
func (c Color) RGB() (r, g, b uint8) {
	return c.rgb.RGB255()
}

// Hex returns "#rrggbb", or "default".
func (c Color) Hex() string {
	if !c.set {
		return "default"
	}
	return c.rgb.Hex()
}

// Blend returns c mixed toward other by t in [0, 1], in Lab space.
func (c Color) Blend(other Color, t float64) Color {
	if !c.set || !other.set {
		return c
	}
	return Color{rgb: c.rgb.BlendLab(other.rgb, t).Clamped(), set: true}
}

// Style is the visual attributes of a cell.
type Style struct {
	Foreground Color
	Background Color
	Bold       bool
	Dim        bool
	Reverse    bool
}

// StyleDefault uses the terminal defaults with no attributes.
var StyleDefault = Style{}

// WithForeground returns s with the foreground set.
func (s Style) WithForeground(c Color) Style {
	s.Foreground = c
	return s
}

// WithBackground returns s with the background set.
func (s Style) WithBackground(c Color) Style {
	s.Background = c
	return s
}

// WithBold returns s with bold set.
func (s Style) WithBold(on bool) Style {
	s.Bold = on
	return s
}

// WithDim returns s with dim set.
func (s Style) WithDim(on bool) Style {
	s.Dim = on
	return s
}
