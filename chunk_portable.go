//go:build !windows && !unix

package filerange

import "math"

func init() {
	// The portable backend positions with Seek/Tell using the host's
	// long integer; Go's int is used as its stand-in (spec.md §3).
	maxAccessSize = math.MaxInt
}
