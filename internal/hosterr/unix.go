//go:build unix

// Package hosterr maps host-specific error codes to the closed result
// taxonomy of spec.md §7, one file per backend, the way the teacher's
// backend/local/about_unix.go and about_windows.go each wrap a single
// host error with github.com/pkg/errors before handing it upward.
package hosterr

import (
	"errors"
	"syscall"

	"github.com/kmio/filerange/internal/ekind"
	"golang.org/x/sys/unix"
)

// FromErrno maps a POSIX errno (as returned by golang.org/x/sys/unix
// calls, or wrapped in a *os.PathError/*os.SyscallError by the
// standard library) to a Kind. It is the last-resort mapping: call
// sites that already know more about the failure (e.g. an offset
// precondition they checked themselves) should produce a precise Kind
// directly rather than routing a synthesised error through here.
func FromErrno(err error) ekind.Kind {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return ekind.ErrInternal
	}
	switch errno {
	case unix.EACCES, unix.EPERM, unix.EROFS:
		return ekind.ErrBadAccess
	case unix.EFAULT:
		return ekind.ErrBadAddress
	case unix.ENOENT:
		return ekind.ErrNoFile
	case unix.EISDIR, unix.ENOTDIR, unix.EFBIG, unix.ENAMETOOLONG:
		return ekind.ErrBadFile
	case unix.EIO:
		return ekind.ErrBadIO
	case unix.ENOSPC:
		return ekind.ErrNoDisk
	case unix.EDQUOT:
		return ekind.ErrNoQuota
	case unix.ENOMEM:
		return ekind.ErrNoMemory
	case unix.EMFILE, unix.ENFILE:
		return ekind.ErrNoOpen
	case unix.ESRCH:
		return ekind.ErrNoProcess
	case unix.ENOSYS, unix.EOPNOTSUPP:
		return ekind.ErrNoSupport
	case unix.EBUSY, unix.ETXTBSY, unix.EAGAIN:
		return ekind.ErrInUse
	case unix.EDEADLK:
		return ekind.ErrDeadlock
	case unix.ENOLCK:
		return ekind.ErrNoLock
	case unix.ENOTCONN, unix.ECONNRESET, unix.EPIPE:
		return ekind.ErrNoConnection
	case unix.ETIMEDOUT:
		return ekind.ErrTimeout
	case unix.EINTR:
		return ekind.ErrInterrupt
	default:
		return ekind.ErrInternal
	}
}
