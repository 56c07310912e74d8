// Package errors provides error handling for mathclip.
//
// This package re-exports github.com/cockroachdb/errors so every package
// wraps, annotates and inspects errors the same way:
//
//	// Wrap with context
//	if err := buf.InsertAt(pos, text); err != nil {
//	    return errors.Wrapf(err, "insert at %d", pos)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "install xclip or wl-clipboard")
//
//	// Check errors
//	if errors.Is(err, clipboard.ErrClipboardUnavailable) {
//	    // non-fatal, keep looping
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	FlattenHints = crdb.FlattenHints
	GetAllHints  = crdb.GetAllHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Mark tags err so that errors.Is(err, reference) holds without changing its
// message. Used to attach a package sentinel to a wrapped cause.
var Mark = crdb.Mark

// UserMessage renders err for the session transcript: the message followed
// by any hints, one per line.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if hint := FlattenHints(err); hint != "" {
		msg += "\n" + hint
	}
	return msg
}
