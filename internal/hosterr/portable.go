//go:build !windows && !unix

package hosterr

import (
	"errors"
	"io"
	"io/fs"

	"github.com/kmio/filerange/internal/ekind"
)

// FromGeneric maps an error from the standard library's os/io layer
// to a Kind, for the portable backend, which has no host-specific
// errno to inspect.
func FromGeneric(err error) ekind.Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ekind.ErrNoFile
	case errors.Is(err, fs.ErrPermission):
		return ekind.ErrBadAccess
	case errors.Is(err, io.ErrShortWrite), errors.Is(err, io.ErrUnexpectedEOF):
		return ekind.ErrBadIO
	case errors.Is(err, fs.ErrClosed):
		return ekind.ErrBadStream
	default:
		return ekind.ErrInternal
	}
}
