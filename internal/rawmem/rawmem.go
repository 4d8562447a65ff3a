// Package rawmem is the mmap-backed raw byte-slice allocator that
// filerange's internal/bufpool delegates to for large staging buffers,
// modeled on the teacher's (test-only-surviving) lib/mmap package:
// Alloc/MustAlloc/Free/MustFree over anonymous memory mappings rather
// than the Go heap, so large staging buffers (portable-backend
// insert/remove) don't pressure the GC.
package rawmem

// Alloc returns a byte slice of exactly size bytes backed by an
// anonymous memory mapping. The contents are zero.
func Alloc(size int) ([]byte, error) {
	return alloc(size)
}

// MustAlloc is like Alloc but panics on failure, for call sites that
// have already mapped an allocation failure to ErrNoMemory and are
// only using this as a best-effort fast path (e.g. a pool refill where
// falling back to make([]byte, size) is always available as well).
func MustAlloc(size int) []byte {
	mem, err := Alloc(size)
	if err != nil {
		panic(err)
	}
	return mem
}

// Free releases memory obtained from Alloc/MustAlloc. Passing it any
// other slice is a programming error.
func Free(mem []byte) error {
	return free(mem)
}

// MustFree is like Free but panics on failure.
func MustFree(mem []byte) {
	if err := Free(mem); err != nil {
		panic(err)
	}
}
