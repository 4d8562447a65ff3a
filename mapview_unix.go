//go:build unix

package filerange

import (
	"github.com/kmio/filerange/internal/hosterr"
	"golang.org/x/sys/unix"
)

// pageAlignDown rounds off down to the nearest multiple of the host's
// mmap allocation granularity (spec.md §4.3 step 3, "floor_align").
func pageAlignDown(off int64) int64 {
	pg := int64(unix.Getpagesize())
	return off - off%pg
}

// mapForWrite establishes s.mapView covering [pageAlignDown(lo), hi)
// as a writable shared mapping (spec.md §4.6 Open->Mapped->Viewed;
// POSIX collapses mapping and view into the one mmap region).
func (s *posixSession) mapForWrite(lo, hi int64) error {
	if s.mapView != nil {
		panic("filerange: posixSession mapped twice")
	}
	base := pageAlignDown(lo)
	length := hi - base
	if length <= 0 {
		return newErr("mapFile", s.path, ErrBadRange, nil)
	}
	mem, err := unix.Mmap(int(s.file.Fd()), base, int(length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return newErr("mapFile", s.path, hosterr.FromErrno(err), err)
	}
	s.mapView = mem
	s.mapBase = base
	return nil
}

// syncAndUnview flushes the current view back to the file and
// releases the mapping (spec.md §4.3 step 6 / §4.6 Viewed->Mapped->Open).
func (s *posixSession) syncAndUnview() error {
	if s.mapView == nil {
		return nil
	}
	serr := unix.Msync(s.mapView, unix.MS_SYNC)
	uerr := unix.Munmap(s.mapView)
	s.mapView = nil
	s.mapBase = 0
	if serr != nil {
		return newErr("mapFile", s.path, hosterr.FromErrno(serr), serr)
	}
	if uerr != nil {
		return newErr("mapFile", s.path, hosterr.FromErrno(uerr), uerr)
	}
	return nil
}

// unmap is the failure-path cleanup counterpart to syncAndUnview: it
// releases the mapping without trying to flush a half-applied change.
func (s *posixSession) unmap() {
	if s.mapView == nil {
		return
	}
	_ = unix.Munmap(s.mapView)
	s.mapView = nil
	s.mapBase = 0
}

// insertRangeMapped implements spec.md §4.3's insert algorithm: extend
// the file, map the affected region, memmove the tail right, copy the
// new bytes in, flush.
func (s *posixSession) insertRangeMapped(offset int64, data []byte) error {
	oldLen := s.length
	newLen := oldLen + int64(len(data))

	if err := s.Truncate(newLen); err != nil {
		return err
	}
	if err := s.mapForWrite(offset, newLen); err != nil {
		// Best effort: leave the file at its grown length; callers
		// re-synchronise length from the session per spec.md §7.
		return err
	}

	base := s.mapBase
	tailLen := oldLen - offset
	if tailLen > 0 {
		src := offset - base
		dst := src + int64(len(data))
		copy(s.mapView[dst:dst+tailLen], s.mapView[src:src+tailLen])
	}
	copy(s.mapView[offset-base:offset-base+int64(len(data))], data)

	return s.syncAndUnview()
}

// removeRangeMapped implements spec.md §4.3's remove algorithm: map
// the affected region, memmove the post-hole bytes left, flush, then
// truncate the file down to its new length.
func (s *posixSession) removeRangeMapped(offset, size int64) error {
	oldLen := s.length

	if err := s.mapForWrite(offset, oldLen); err != nil {
		return err
	}

	base := s.mapBase
	postLen := oldLen - (offset + size)
	if postLen > 0 {
		src := offset + size - base
		dst := offset - base
		copy(s.mapView[dst:dst+postLen], s.mapView[src:src+postLen])
	}

	if err := s.syncAndUnview(); err != nil {
		return err
	}
	return s.Truncate(oldLen - size)
}
