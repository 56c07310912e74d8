package clipboard

import (
	"bytes"
	"context"
	"image"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/typeset"
)

// bmpFileHeaderSize is the BITMAPFILEHEADER that precedes a DIB in a .bmp.
const bmpFileHeaderSize = 14

// Windows publishes through the Win32 clipboard API. Applications that
// understand the registered "PNG" format keep transparency; the rest get a
// CF_DIB composited on white.
type Windows struct{}

func (Windows) Name() string { return BackendWindows }

func (Windows) Publish(ctx context.Context, img image.Image) (Outcome, error) {
	data, err := typeset.EncodePNG(img)
	if err != nil {
		return Outcome{}, err
	}
	dib, err := DIB(img)
	if err != nil {
		return Outcome{}, err
	}

	formats, err := setClipboard(ctx, data, dib)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Backend: BackendWindows, Formats: formats, Size: len(data)}, nil
}

// DIB returns img flattened onto a white background as a device-independent
// bitmap: a BMP without its file header.
func DIB(img image.Image) ([]byte, error) {
	b := img.Bounds()
	flat := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(flat, flat.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, b.Min, draw.Over)

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, flat); err != nil {
		return nil, errors.Wrap(err, "encode bitmap")
	}
	return buf.Bytes()[bmpFileHeaderSize:], nil
}
