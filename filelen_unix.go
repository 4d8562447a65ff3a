//go:build unix

package filerange

import "math"

func init() {
	// Every POSIX platform Go supports uses a 64-bit off_t (spec.md
	// §3 "positive range of the host's signed file-offset type").
	maxFileLength = math.MaxInt64
}
