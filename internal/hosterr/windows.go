//go:build windows

package hosterr

import (
	"errors"
	"syscall"

	"github.com/kmio/filerange/internal/ekind"
	"golang.org/x/sys/windows"
)

// FromWindows maps a Win32 error code to a Kind. As with FromErrno,
// this is the last-resort mapping for genuinely host-reported
// failures; call sites that already know the precondition they
// violated should produce a precise Kind directly.
func FromWindows(err error) ekind.Kind {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return ekind.ErrInternal
	}
	switch windows.Errno(errno) {
	case windows.ERROR_ACCESS_DENIED, windows.ERROR_WRITE_PROTECT:
		return ekind.ErrBadAccess
	case windows.ERROR_INVALID_ADDRESS, windows.ERROR_NOACCESS:
		return ekind.ErrBadAddress
	case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_PATH_NOT_FOUND:
		return ekind.ErrNoFile
	case windows.ERROR_FILE_TOO_LARGE, windows.ERROR_DIRECTORY, windows.ERROR_INVALID_NAME:
		return ekind.ErrBadFile
	case windows.ERROR_DISK_FULL, windows.ERROR_HANDLE_DISK_FULL:
		return ekind.ErrNoDisk
	case windows.ERROR_NOT_ENOUGH_MEMORY, windows.ERROR_OUTOFMEMORY:
		return ekind.ErrNoMemory
	case windows.ERROR_TOO_MANY_OPEN_FILES:
		return ekind.ErrNoOpen
	case windows.ERROR_NOT_SUPPORTED, windows.ERROR_INVALID_FUNCTION, windows.ERROR_CALL_NOT_IMPLEMENTED:
		return ekind.ErrNoSupport
	case windows.ERROR_SHARING_VIOLATION, windows.ERROR_LOCK_VIOLATION, windows.ERROR_BUSY:
		return ekind.ErrInUse
	case windows.ERROR_POSSIBLE_DEADLOCK:
		return ekind.ErrDeadlock
	case windows.ERROR_LOCK_FAILED:
		return ekind.ErrNoLock
	case windows.WSAETIMEDOUT:
		return ekind.ErrTimeout
	case windows.ERROR_OPERATION_ABORTED:
		return ekind.ErrInterrupt
	default:
		return ekind.ErrInternal
	}
}
