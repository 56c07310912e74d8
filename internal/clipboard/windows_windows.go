//go:build windows

package clipboard

import (
	"context"
	"runtime"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/logger"
)

const (
	cfDIB        = 8
	gmemMoveable = 0x0002

	openAttempts = 10
	openBackoff  = 20 * time.Millisecond
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procOpenClipboard            = user32.NewProc("OpenClipboard")
	procCloseClipboard           = user32.NewProc("CloseClipboard")
	procEmptyClipboard           = user32.NewProc("EmptyClipboard")
	procSetClipboardData         = user32.NewProc("SetClipboardData")
	procRegisterClipboardFormatW = user32.NewProc("RegisterClipboardFormatW")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalFree   = kernel32.NewProc("GlobalFree")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
)

func setClipboard(ctx context.Context, png, dib []byte) ([]string, error) {
	// The clipboard is owned by the thread that opened it.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := openClipboard(ctx); err != nil {
		return nil, err
	}
	defer procCloseClipboard.Call()

	if r, _, err := procEmptyClipboard.Call(); r == 0 {
		return nil, errors.Wrap(err, "empty clipboard")
	}

	log := logger.Logger.Named("clipboard")
	var formats []string

	name, err := windows.UTF16PtrFromString("PNG")
	if err != nil {
		return nil, errors.Wrap(err, "clipboard format name")
	}
	if format, _, err := procRegisterClipboardFormatW.Call(uintptr(unsafe.Pointer(name))); format == 0 {
		log.Warnw("Register PNG clipboard format failed", "error", err)
	} else if err := setData(format, png); err != nil {
		log.Warnw("Set PNG clipboard data failed", "error", err)
	} else {
		formats = append(formats, "PNG")
	}

	if err := setData(cfDIB, dib); err != nil {
		log.Warnw("Set DIB clipboard data failed", "error", err)
	} else {
		formats = append(formats, "CF_DIB")
	}

	if len(formats) == 0 {
		return nil, errors.New("clipboard accepted no image format")
	}
	return formats, nil
}

// openClipboard retries while another application holds the clipboard.
func openClipboard(ctx context.Context) error {
	for i := 0; i < openAttempts; i++ {
		if r, _, _ := procOpenClipboard.Call(0); r != 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(openBackoff):
		}
	}
	return errors.WithHint(errors.Wrap(ErrClipboardUnavailable, "clipboard is held by another application"),
		"try again")
}

// setData copies data into global memory and hands it to the clipboard,
// which takes ownership on success.
func setData(format uintptr, data []byte) error {
	h, _, err := procGlobalAlloc.Call(gmemMoveable, uintptr(len(data)))
	if h == 0 {
		return errors.Wrap(err, "GlobalAlloc")
	}
	p, _, err := procGlobalLock.Call(h)
	if p == 0 {
		procGlobalFree.Call(h)
		return errors.Wrap(err, "GlobalLock")
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(p)), len(data)), data)
	procGlobalUnlock.Call(h)

	if r, _, err := procSetClipboardData.Call(format, h); r == 0 {
		procGlobalFree.Call(h)
		return errors.Wrap(err, "SetClipboardData")
	}
	return nil
}
