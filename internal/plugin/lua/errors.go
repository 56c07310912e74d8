package lua

import "github.com/dshills/mathclip/internal/errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrScript wraps any error raised while running a script.
	ErrScript = errors.New("lua script failed")
)
