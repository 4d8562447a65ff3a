//go:build windows

// Package widepath converts the UTF-8 paths filerange's public API
// accepts into the UTF-16 paths Win32's *W file APIs require, the way
// golang.org/x/sys/windows's own UTF16PtrFromString does it internally
// — except exposed here so session_windows.go can report a bad-path
// error through filerange's own Kind taxonomy instead of a bare
// syscall error.
package widepath

import (
	"unicode/utf8"

	"golang.org/x/sys/windows"
)

// ErrInvalidUTF8 is returned when path is not valid UTF-8 and so has
// no well-defined UTF-16 encoding.
type ErrInvalidUTF8 struct{ Path string }

func (e *ErrInvalidUTF8) Error() string { return "path is not valid UTF-8: " + e.Path }

// Widen converts path to a NUL-terminated UTF-16 string suitable for
// Win32 *W APIs.
func Widen(path string) (*uint16, error) {
	if !utf8.ValidString(path) {
		return nil, &ErrInvalidUTF8{Path: path}
	}
	return windows.UTF16PtrFromString(path)
}
