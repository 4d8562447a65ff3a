//go:build darwin

package filerange

import "math"

func init() {
	// Darwin documents a single read/write as limited by INT_MAX
	// (spec.md §3).
	maxAccessSize = math.MaxInt32
}
