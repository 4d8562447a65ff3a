//go:build unix

package filerange

import (
	"os"

	"github.com/kmio/filerange/internal/hosterr"
	"golang.org/x/sys/unix"
)

func init() {
	openSession = openPosixSession
	statErrKind = hosterr.FromErrno
}

// posixSession is the POSIX backend's file session (spec.md §4, §2
// item 4): an open file descriptor plus whatever mapping/view is
// currently active. Grounded on the teacher's os.File-based handling
// in backend/local, generalised from "local disk backend operation"
// to "byte-range mutation primitives".
type posixSession struct {
	file   *os.File
	path   string
	mode   accessMode
	length int64

	// mapping state: non-nil between map and unmap (spec.md §4.6).
	// POSIX collapses Win32's mapping/view distinction into one mmap
	// region, so mapView doubles as both.
	mapView []byte
	mapBase int64 // file offset the mapping starts at, page-aligned
}

func openPosixSession(path string, mode accessMode) (session, error) {
	var flag int
	switch mode {
	case modeRead:
		flag = os.O_RDONLY
	case modeWrite:
		flag = os.O_WRONLY | os.O_CREATE
	case modeReadWrite:
		flag = os.O_RDWR | os.O_CREATE
	case modeTruncatingReadWrite:
		flag = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	default:
		return nil, newErr("openFile", path, ErrInternal, nil)
	}

	f, err := os.OpenFile(path, flag, 0o666)
	if err != nil {
		return nil, newErr("openFile", path, hosterr.FromErrno(err), err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, newErr("openFile", path, hosterr.FromErrno(err), err)
	}
	if !fi.Mode().IsRegular() {
		_ = f.Close()
		return nil, newErr("openFile", path, ErrBadFile, nil)
	}

	return &posixSession{file: f, path: path, mode: mode, length: fi.Size()}, nil
}

func (s *posixSession) Close() error {
	if s.mapView != nil {
		panic("filerange: posixSession closed while mapped")
	}
	err := s.file.Close()
	if err != nil {
		return newErr("closeFile", s.path, hosterr.FromErrno(err), err)
	}
	return nil
}

func (s *posixSession) Length() (int64, error) { return s.length, nil }

func (s *posixSession) Reset() error { return s.Truncate(0) }

func (s *posixSession) Truncate(n int64) error {
	err := retryEINTR(func() error { return unix.Ftruncate(int(s.file.Fd()), n) })
	if err != nil {
		return newErr("truncateFile", s.path, hosterr.FromErrno(err), err)
	}
	s.length = n
	return nil
}

func (s *posixSession) ReadRange(buf []byte, offset int64) (int, error) {
	n, err := chunked(buf, offset, func(b []byte, off int64) (int, error) {
		var got int
		rerr := retryEINTR(func() error {
			m, e := unix.Pread(int(s.file.Fd()), b, off)
			got = m
			return e
		})
		return got, rerr
	})
	if err != nil {
		return n, newErr("readFile", s.path, hosterr.FromErrno(err), err)
	}
	return n, nil
}

func (s *posixSession) WriteRange(data []byte, offset int64) error {
	n, err := chunked(data, offset, func(b []byte, off int64) (int, error) {
		var put int
		werr := retryEINTR(func() error {
			m, e := unix.Pwrite(int(s.file.Fd()), b, off)
			put = m
			return e
		})
		return put, werr
	})
	if err != nil {
		return newErr("writeFile", s.path, hosterr.FromErrno(err), err)
	}
	if n != len(data) {
		return newErr("writeFile", s.path, ErrBadIO, nil)
	}
	if end := offset + int64(len(data)); end > s.length {
		s.length = end
	}
	return nil
}

func (s *posixSession) ZeroRange(offset, size int64) error {
	if err := s.mapForWrite(offset, offset+size); err != nil {
		return err
	}
	defer s.unmap()
	start := offset - s.mapBase
	clear(s.mapView[start : start+size])
	return s.syncAndUnview()
}

func (s *posixSession) InsertRange(offset int64, data []byte) error {
	return s.insertRangeMapped(offset, data)
}

func (s *posixSession) RemoveRange(offset, size int64) error {
	return s.removeRangeMapped(offset, size)
}
