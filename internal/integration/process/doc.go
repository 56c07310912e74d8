// Package process runs the external tools mathclip depends on: latex and
// dvipng for typesetting, and the platform clipboard helpers.
//
// Every invocation goes through a Runner so callers can substitute a fake
// in tests:
//
//	res, err := runner.Run(ctx, process.Command{
//	    Name:  "xclip",
//	    Args:  []string{"-selection", "clipboard", "-t", "image/png", "-i"},
//	    Stdin: png,
//	})
//	if errors.Is(err, process.ErrNotFound) {
//	    // tool not installed
//	}
//
// A command that exits non-zero returns ErrExited together with a Result
// holding the captured output, so callers can extract diagnostics.
package process
