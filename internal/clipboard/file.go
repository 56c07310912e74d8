package clipboard

import (
	"context"
	"image"
	"os"
	"path/filepath"

	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/typeset"
)

// File writes the PNG to Path, replacing it each time.
type File struct {
	Path string
}

func (f *File) Name() string { return BackendFile }

func (f *File) Publish(_ context.Context, img image.Image) (Outcome, error) {
	data, err := typeset.EncodePNG(img)
	if err != nil {
		return Outcome{}, err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return Outcome{}, errors.Wrap(err, "create output directory")
	}
	if err := os.WriteFile(f.Path, data, 0o644); err != nil {
		return Outcome{}, errors.Wrapf(err, "write %s", f.Path)
	}
	return Outcome{Backend: BackendFile, Formats: []string{"image/png"}, Path: f.Path, Size: len(data)}, nil
}
