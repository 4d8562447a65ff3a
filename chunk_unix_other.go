//go:build unix && !linux && !darwin

package filerange

import "math"

func init() {
	// Other POSIX hosts (the various BSDs, Solaris, AIX...): bound by
	// ssize_t max, which on every build target Go supports equals the
	// platform int max (spec.md §3).
	maxAccessSize = math.MaxInt
}
