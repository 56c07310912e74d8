package typeset

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/mathclip/internal/errors"
)

// namedColors are the names accepted besides hex values.
var namedColors = map[string]string{
	"black": "#000000",
	"white": "#ffffff",
	"red":   "#ff0000",
	"green": "#008000",
	"blue":  "#0000ff",
}

// ColorNames lists the accepted color names.
func ColorNames() []string {
	return []string{"black", "white", "red", "green", "blue"}
}

// ParseColor accepts a color name (case-insensitive) or a #rrggbb value.
func ParseColor(s string) (colorful.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[name]; ok {
		name = hex
	}
	c, err := colorful.Hex(name)
	if err != nil {
		return colorful.Color{}, errors.WithHintf(
			errors.Wrapf(ErrInvalidColor, "%q", s),
			"use one of %s, or #rrggbb", strings.Join(ColorNames(), ", "))
	}
	return c, nil
}

// dvipngColor formats c as a dvipng -fg argument.
func dvipngColor(c colorful.Color) string {
	return fmt.Sprintf("rgb %.3f %.3f %.3f", c.R, c.G, c.B)
}
