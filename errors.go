package filerange

import (
	"errors"
	"fmt"

	"github.com/kmio/filerange/internal/ekind"
	pkgerrors "github.com/pkg/errors"
)

// Kind is the closed taxonomy every host-specific error is mapped to
// before it crosses the public API boundary (spec.md §7). Callers
// switch on Kind, never on the underlying host error.
type Kind = ekind.Kind

// The result kinds of spec.md §7. Success is never returned as an
// error Kind; it exists so the zero value of Kind reads sensibly in
// debug output.
const (
	Success         = ekind.Success
	ErrInternal     = ekind.ErrInternal
	ErrBadAccess    = ekind.ErrBadAccess
	ErrBadAddress   = ekind.ErrBadAddress
	ErrBadAlignment = ekind.ErrBadAlignment
	ErrBadFile      = ekind.ErrBadFile
	ErrBadIO        = ekind.ErrBadIO
	ErrBadOffset    = ekind.ErrBadOffset
	ErrBadPath      = ekind.ErrBadPath
	ErrBadRange     = ekind.ErrBadRange
	ErrBadSize      = ekind.ErrBadSize
	ErrBadStream    = ekind.ErrBadStream
	ErrDeadlock     = ekind.ErrDeadlock
	ErrInUse        = ekind.ErrInUse
	ErrInterrupt    = ekind.ErrInterrupt
	ErrNoConnection = ekind.ErrNoConnection
	ErrNoDisk       = ekind.ErrNoDisk
	ErrNoFile       = ekind.ErrNoFile
	ErrNoLock       = ekind.ErrNoLock
	ErrNoMemory     = ekind.ErrNoMemory
	ErrNoOpen       = ekind.ErrNoOpen
	ErrNoProcess    = ekind.ErrNoProcess
	ErrNoQuota      = ekind.ErrNoQuota
	ErrNoSupport    = ekind.ErrNoSupport
	ErrTimeout      = ekind.ErrTimeout
)

// Error is the error type every public operation returns on failure.
// The underlying host error (already wrapped with a call-site trace by
// github.com/pkg/errors inside the backends) is preserved for
// debugging via Unwrap, but Kind is the only thing callers should
// branch on.
type Error struct {
	Kind Kind
	Op   string // e.g. "readFile", "insertFile"
	Path string
	err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("filerange: %s %s: %s", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("filerange: %s: %s", e.Op, e.Kind)
}

// Unwrap exposes the wrapped host error for errors.Is/errors.As and
// for pkg/errors-aware diagnostics (%+v prints a stack trace). It
// never exposes a raw syscall.Errno to a caller relying only on Kind.
func (e *Error) Unwrap() error { return e.err }

// newErr builds an *Error, wrapping cause (if any) with pkg/errors so
// a stack trace is available via pkgerrors.Cause / %+v during
// debugging, matching the wrapping style the backends themselves use.
func newErr(op, path string, kind Kind, cause error) *Error {
	if cause != nil {
		cause = pkgerrors.Wrap(cause, op)
	}
	return &Error{Kind: kind, Op: op, Path: path, err: cause}
}

// KindOf extracts the Kind from err if it is (or wraps) an *Error,
// and ErrInternal otherwise. Callers that only care about the kind of
// failure, not the full *Error, can use this instead of a type
// assertion.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ErrInternal
}
