//go:build windows

package filerange

import (
	"unsafe"

	"github.com/kmio/filerange/internal/hosterr"
	"golang.org/x/sys/windows"
)

// allocGranularity is the Win32 allocation granularity (typically
// 64 KiB), distinct from the page size: mapping view base offsets
// must be aligned to this, not merely to a page (spec.md §4.3 step 3,
// GLOSSARY "Allocation granularity").
var allocGranularity int64

func init() {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	allocGranularity = int64(info.AllocationGranularity)
}

func pageAlignDownWin(off int64) int64 {
	g := allocGranularity
	if g <= 0 {
		g = 65536
	}
	return off - off%g
}

// viewSlice exposes the current view as a byte slice for memmove/copy
// purposes. The view must be active.
func (s *winSession) viewSlice() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(s.mapView)), int(s.mapLen))
}

// mapForWrite creates a file-backed mapping of the file up to hi and
// a view over [pageAlignDownWin(lo), hi) of it (spec.md §4.6
// Open->Mapped->Viewed).
func (s *winSession) mapForWrite(lo, hi int64) error {
	if s.mapView != 0 || s.mapHandle != 0 {
		panic("filerange: winSession mapped twice")
	}
	base := pageAlignDownWin(lo)
	length := hi - base
	if length <= 0 {
		return newErr("mapFile", s.path, ErrBadRange, nil)
	}

	mh, err := windows.CreateFileMapping(s.handle, nil, windows.PAGE_READWRITE,
		uint32(hi>>32), uint32(hi), nil)
	if err != nil {
		return newErr("mapFile", s.path, hosterr.FromWindows(err), err)
	}

	addr, err := windows.MapViewOfFile(mh, windows.FILE_MAP_WRITE,
		uint32(base>>32), uint32(base), uintptr(length))
	if err != nil {
		_ = windows.CloseHandle(mh)
		return newErr("mapFile", s.path, hosterr.FromWindows(err), err)
	}

	s.mapHandle = mh
	s.mapView = addr
	s.mapBase = base
	s.mapLen = length
	return nil
}

// syncAndUnview flushes the view to the file and releases the mapping
// (spec.md §4.3 step 6 / §4.6 Viewed->Mapped->Open).
func (s *winSession) syncAndUnview() error {
	if s.mapView == 0 {
		return nil
	}
	ferr := windows.FlushViewOfFile(s.mapView, uintptr(s.mapLen))
	uerr := windows.UnmapViewOfFile(s.mapView)
	cerr := windows.CloseHandle(s.mapHandle)
	s.mapView, s.mapHandle, s.mapBase, s.mapLen = 0, 0, 0, 0
	if ferr != nil {
		return newErr("mapFile", s.path, hosterr.FromWindows(ferr), ferr)
	}
	if uerr != nil {
		return newErr("mapFile", s.path, hosterr.FromWindows(uerr), uerr)
	}
	if cerr != nil {
		return newErr("mapFile", s.path, hosterr.FromWindows(cerr), cerr)
	}
	return nil
}

// unmap is the failure-path cleanup counterpart to syncAndUnview.
func (s *winSession) unmap() {
	if s.mapView == 0 {
		return
	}
	_ = windows.UnmapViewOfFile(s.mapView)
	_ = windows.CloseHandle(s.mapHandle)
	s.mapView, s.mapHandle, s.mapBase, s.mapLen = 0, 0, 0, 0
}

// insertRangeMapped mirrors posixSession.insertRangeMapped using
// Win32's EndOfFile-then-map-then-memmove sequence (spec.md §4.3).
func (s *winSession) insertRangeMapped(offset int64, data []byte) error {
	oldLen := s.length
	newLen := oldLen + int64(len(data))

	if err := s.Truncate(newLen); err != nil {
		return err
	}
	if err := s.mapForWrite(offset, newLen); err != nil {
		return err
	}

	view := s.viewSlice()
	base := s.mapBase
	tailLen := oldLen - offset
	if tailLen > 0 {
		src := offset - base
		dst := src + int64(len(data))
		copy(view[dst:dst+tailLen], view[src:src+tailLen])
	}
	copy(view[offset-base:offset-base+int64(len(data))], data)

	return s.syncAndUnview()
}

// removeRangeMapped mirrors posixSession.removeRangeMapped.
func (s *winSession) removeRangeMapped(offset, size int64) error {
	oldLen := s.length

	if err := s.mapForWrite(offset, oldLen); err != nil {
		return err
	}

	view := s.viewSlice()
	base := s.mapBase
	postLen := oldLen - (offset + size)
	if postLen > 0 {
		src := offset + size - base
		dst := offset - base
		copy(view[dst:dst+postLen], view[src:src+postLen])
	}

	if err := s.syncAndUnview(); err != nil {
		return err
	}
	return s.Truncate(oldLen - size)
}
