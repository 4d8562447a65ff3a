//go:build windows

package filerange

func init() {
	// Win32 ReadFile/WriteFile take a 32-bit length (spec.md §3).
	maxAccessSize = 1<<32 - 1
}
