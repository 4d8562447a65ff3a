//go:build linux

package filerange

func init() {
	// GNU/Linux read(2)/write(2) silently cap a single transfer at
	// 0x7ffff000 bytes on 64-bit systems (spec.md §3).
	maxAccessSize = 0x7ffff000
}
