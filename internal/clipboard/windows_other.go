//go:build !windows

package clipboard

import (
	"context"
	"runtime"

	"github.com/dshills/mathclip/internal/errors"
)

func setClipboard(context.Context, []byte, []byte) ([]string, error) {
	return nil, errors.WithHint(errors.Wrapf(ErrClipboardUnavailable, "windows clipboard on %s", runtime.GOOS),
		"set clipboard.backend to auto")
}
