package filerange

import "math/bits"

// Flags is a bitfield of options recognised by the public operations.
// Unknown bits are ignored rather than rejected, so callers can pass a
// flag value built against a newer version of this package.
type Flags uint32

const (
	// RelativeToExe resolves a non-absolute path relative to the
	// directory containing the running executable instead of the
	// current working directory.
	RelativeToExe Flags = 1 << iota

	// OpenSymlink makes Size report the size of a symbolic link
	// itself rather than the file it points to. It has no effect on
	// any other operation: every other operation always follows
	// symlinks.
	OpenSymlink

	// TruncateFile makes Write reset the file to empty before
	// writing at offset 0, growing it to exactly len(data).
	TruncateFile

	// OverwriteFile selects clear-style (zero in place) instead of
	// trim-style (shrink the file) semantics for Trim. Trim without
	// this flag shrinks the file; with it, Trim behaves like Clear.
	OverwriteFile
)

func (f Flags) has(bit Flags) bool { return f&bit != 0 }

// String renders the raw bitfield in binary, e.g. "Flags(0b101)",
// only for debug logging; it is not part of the public contract.
func (f Flags) String() string {
	return "Flags(0b" + itob(uint32(f)) + ")"
}

func itob(v uint32) string {
	if v == 0 {
		return "0"
	}
	width := bits.Len32(v)
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		if v&1 != 0 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
		v >>= 1
	}
	return string(out)
}

// EOF is the offset sentinel. Passed as an offset to Write, Insert,
// Clear or Trim it means "at the end of the file": Write degenerates
// to append, Insert degenerates to append, Clear and Trim act on the
// trailing min(size, length) bytes.
const EOF int64 = 1<<63 - 1

// MaxFileSize is the largest length filerange will ever report or
// accept for any backend: a signed 64-bit byte count. Individual
// backends may enforce a tighter bound (see maxFileLength in
// filelen.go); Size, Write, Insert and Rewrite all check against the
// active backend's own bound, not just this one.
const MaxFileSize int64 = 1<<63 - 1
