//go:build windows

package filerange

func init() {
	// Win32 file lengths are reported as a signed 64-bit quantity
	// (spec.md §3).
	maxFileLength = 1<<63 - 1
}
