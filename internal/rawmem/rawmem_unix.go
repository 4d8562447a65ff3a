//go:build unix

package rawmem

import "golang.org/x/sys/unix"

func alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, nil
	}
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return mem, nil
}

func free(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	return unix.Munmap(mem)
}
