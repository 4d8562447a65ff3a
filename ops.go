// Package filerange exposes a small, uniform set of operations for
// interrogating and mutating regular files at arbitrary byte offsets,
// independent of the host's native file abstractions: size query,
// read, write, append (via the EOF sentinel), insert, rewrite, clear
// and trim. Exactly one of three backends — native Win32, native
// POSIX, or a portable buffered-stream fallback — is selected at
// build time; callers never see which.
package filerange

import (
	"os"

	"github.com/kmio/filerange/internal/pathresolve"
)

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func resolvePath(path string, flags Flags) (string, error) {
	resolved, err := pathresolve.Resolve(path, flags.has(RelativeToExe))
	if err != nil {
		return "", newErr("resolvePath", path, ErrBadPath, err)
	}
	return resolved, nil
}

// FileSize returns the length of the file at path (spec.md §4.1
// "Size query"). With OpenSymlink set, the link itself is sized
// rather than the file it points to.
func FileSize(path string, flags Flags) (int64, error) {
	resolved, err := resolvePath(path, flags)
	if err != nil {
		return 0, err
	}
	debugf("fileSize", resolved, "querying size, openSymlink=%v", flags.has(OpenSymlink))

	var fi os.FileInfo
	if flags.has(OpenSymlink) {
		fi, err = os.Lstat(resolved)
	} else {
		fi, err = os.Stat(resolved)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return 0, newErr("fileSize", resolved, ErrNoFile, err)
		}
		return 0, newErr("fileSize", resolved, statErrKind(err), err)
	}
	if !flags.has(OpenSymlink) && !fi.Mode().IsRegular() {
		return 0, newErr("fileSize", resolved, ErrBadFile, nil)
	}
	if fi.Size() > fileLengthLimit() {
		return 0, newErr("fileSize", resolved, ErrBadFile, nil)
	}
	return fi.Size(), nil
}

// ReadFile reads up to len(buf) bytes starting at offset into buf,
// returning the number of bytes actually read (spec.md §4.1 "Read").
// offset == EOF reads the trailing min(len(buf), fileSize) bytes.
func ReadFile(path string, buf []byte, offset int64, flags Flags) (int, error) {
	if len(buf) == 0 {
		return 0, newErr("readFile", path, ErrBadSize, nil)
	}
	resolved, err := resolvePath(path, flags)
	if err != nil {
		return 0, err
	}

	s, err := openSession(resolved, modeRead)
	if err != nil {
		return 0, err
	}
	defer func() { _ = s.Close() }()

	length, err := s.Length()
	if err != nil {
		return 0, err
	}
	if length == 0 {
		return 0, newErr("readFile", resolved, ErrNoFile, nil)
	}

	want := int64(len(buf))
	switch {
	case offset == EOF:
		want = min64(want, length)
		offset = length - want
	case offset >= length:
		return 0, newErr("readFile", resolved, ErrBadOffset, nil)
	default:
		want = min64(want, length-offset)
	}

	debugf("readFile", resolved, "offset=%d want=%d", offset, want)
	return s.ReadRange(buf[:want], offset)
}

// WriteFile writes all of data at offset, extending the file if
// necessary (spec.md §4.1 "Write (overwrite)"). TruncateFile resets
// the file to empty first and writes from offset 0 regardless of
// offset. offset == EOF appends.
func WriteFile(path string, data []byte, offset int64, flags Flags) error {
	if len(data) == 0 {
		return newErr("writeFile", path, ErrBadSize, nil)
	}
	resolved, err := resolvePath(path, flags)
	if err != nil {
		return err
	}

	s, err := openSession(resolved, modeReadWrite)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if flags.has(TruncateFile) {
		if err := s.Reset(); err != nil {
			return err
		}
		offset = 0
	} else {
		length, err := s.Length()
		if err != nil {
			return err
		}
		switch {
		case offset == EOF:
			offset = length
		case offset > length:
			return newErr("writeFile", resolved, ErrBadOffset, nil)
		}
		if offset > fileLengthLimit()-int64(len(data)) {
			return newErr("writeFile", resolved, ErrBadOffset, nil)
		}
	}

	debugf("writeFile", resolved, "offset=%d size=%d truncate=%v", offset, len(data), flags.has(TruncateFile))
	return s.WriteRange(data, offset)
}

// InsertFile grows the file by len(data) bytes at offset, shifting
// the pre-existing tail right (spec.md §4.1 "Insert", §4.3). offset
// == EOF (or the current length) degenerates to append.
func InsertFile(path string, data []byte, offset int64, flags Flags) error {
	if len(data) == 0 {
		return newErr("insertFile", path, ErrBadSize, nil)
	}
	resolved, err := resolvePath(path, flags)
	if err != nil {
		return err
	}

	s, err := openSession(resolved, modeReadWrite)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	length, err := s.Length()
	if err != nil {
		return err
	}
	if offset == EOF {
		offset = length
	}
	if offset > length {
		return newErr("insertFile", resolved, ErrBadOffset, nil)
	}
	if length > fileLengthLimit()-int64(len(data)) {
		return newErr("insertFile", resolved, ErrBadSize, nil)
	}

	if offset == length {
		debugf("insertFile", resolved, "offset==length, degenerating to append")
		return s.WriteRange(data, offset)
	}

	debugf("insertFile", resolved, "offset=%d size=%d len=%d", offset, len(data), length)
	return s.InsertRange(offset, data)
}

// RewriteFile truncates the file to zero length (creating it if
// necessary) and writes data from offset 0 (spec.md §4.1 "Rewrite").
func RewriteFile(path string, data []byte, flags Flags) error {
	resolved, err := resolvePath(path, flags)
	if err != nil {
		return err
	}

	s, err := openSession(resolved, modeReadWrite)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if int64(len(data)) > fileLengthLimit() {
		return newErr("rewriteFile", resolved, ErrBadSize, nil)
	}
	if err := s.Reset(); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	debugf("rewriteFile", resolved, "size=%d", len(data))
	return s.WriteRange(data, 0)
}

// ClearFile zeros size bytes starting at offset without changing the
// file's length (spec.md §4.1 "Clear"). offset == EOF zeros the last
// min(size, length) bytes.
func ClearFile(path string, size, offset int64, flags Flags) error {
	if size <= 0 {
		return newErr("clearFile", path, ErrBadSize, nil)
	}
	resolved, err := resolvePath(path, flags)
	if err != nil {
		return err
	}

	s, err := openSession(resolved, modeReadWrite)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	length, err := s.Length()
	if err != nil {
		return err
	}
	switch {
	case offset == EOF:
		size = min64(size, length)
		offset = length - size
	case offset >= length:
		return newErr("clearFile", resolved, ErrBadOffset, nil)
	default:
		size = min64(size, length-offset)
	}
	if size == 0 {
		return nil
	}

	debugf("clearFile", resolved, "offset=%d size=%d", offset, size)
	return s.ZeroRange(offset, size)
}

// TrimFile removes size bytes starting at offset, shifting the tail
// left and shrinking the file (spec.md §4.1 "Trim"). offset == EOF
// drops the trailing min(size, length) bytes as a pure truncation.
// OverwriteFile switches to clear-style semantics: the range is
// zeroed in place instead of removed.
func TrimFile(path string, size, offset int64, flags Flags) error {
	if flags.has(OverwriteFile) {
		return ClearFile(path, size, offset, flags)
	}
	if size <= 0 {
		return newErr("trimFile", path, ErrBadSize, nil)
	}
	resolved, err := resolvePath(path, flags)
	if err != nil {
		return err
	}

	s, err := openSession(resolved, modeReadWrite)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	length, err := s.Length()
	if err != nil {
		return err
	}

	if offset == EOF {
		size = min64(size, length)
		debugf("trimFile", resolved, "eof trim, dropping %d bytes", size)
		return s.Truncate(length - size)
	}
	if offset >= length {
		return newErr("trimFile", resolved, ErrBadOffset, nil)
	}
	size = min64(size, length-offset)
	if size == 0 {
		return nil
	}

	if offset == 0 && size >= length {
		debugf("trimFile", resolved, "whole-file trim, truncating to 0")
		return s.Truncate(0)
	}

	debugf("trimFile", resolved, "offset=%d size=%d len=%d", offset, size, length)
	return s.RemoveRange(offset, size)
}
