//go:build !windows && !unix

package filerange

import "math"

func init() {
	// spec.md §3 bounds the portable backend by "the host's long
	// integer" since it measures length with seek/tell; Go's os.File
	// always seeks with a 64-bit offset regardless of the platform's
	// native long width, so that is the limit actually enforceable
	// here.
	maxFileLength = math.MaxInt64
}
