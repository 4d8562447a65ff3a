//go:build !windows && !unix

package filerange

import (
	"io"
	"os"
	"time"

	"github.com/kmio/filerange/internal/bufpool"
	"github.com/kmio/filerange/internal/hosterr"
	"github.com/kmio/filerange/internal/rawmem"
)

func init() {
	openSession = openPortableSession
	statErrKind = hosterr.FromGeneric
}

// zeroBufPool supplies the reusable zero-filled source buffer Clear
// writes from on hosts with no sparse-zero or writable-mapping
// primitive (spec.md §4.1 Clear, "portable: zero-filled write").
var zeroBufPool = bufpool.New(30*time.Second, 64*1024, 4, false)

// portableSession is the buffered-stream fallback backend (spec.md
// §4.2, §9 "Portable backend... buffered stdio-style operations with
// seek/tell"). It is the only backend with no mapping/view state: it
// reaches insert/remove by staging the affected tail in a heap buffer
// instead (spec.md §9 "Insert/remove in the portable backend").
type portableSession struct {
	file   *os.File
	path   string
	mode   accessMode
	length int64
}

func openModeFlags(mode accessMode) int {
	switch mode {
	case modeRead:
		return os.O_RDONLY
	case modeWrite:
		return os.O_WRONLY | os.O_CREATE
	case modeReadWrite:
		return os.O_RDWR | os.O_CREATE
	case modeTruncatingReadWrite:
		return os.O_RDWR | os.O_CREATE | os.O_TRUNC
	default:
		return -1
	}
}

func openPortableSession(path string, mode accessMode) (session, error) {
	flag := openModeFlags(mode)
	if flag < 0 {
		return nil, newErr("openFile", path, ErrInternal, nil)
	}
	f, err := os.OpenFile(path, flag, 0o666)
	if err != nil {
		return nil, newErr("openFile", path, hosterr.FromGeneric(err), err)
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, newErr("openFile", path, hosterr.FromGeneric(err), err)
	}
	if !fi.Mode().IsRegular() {
		_ = f.Close()
		return nil, newErr("openFile", path, ErrBadFile, nil)
	}
	return &portableSession{file: f, path: path, mode: mode, length: fi.Size()}, nil
}

// upgradeToTruncating reopens the session in truncating-read-update
// mode, per spec.md §4.6's portable-only write-mode transition:
// RewriteFile, and WriteFile with TruncateFile, reach this through
// Reset before writing.
func (s *portableSession) upgradeToTruncating() error {
	if s.mode == modeTruncatingReadWrite {
		return s.Truncate(0)
	}
	if err := s.file.Close(); err != nil {
		return newErr("reopenFile", s.path, hosterr.FromGeneric(err), err)
	}
	f, err := os.OpenFile(s.path, openModeFlags(modeTruncatingReadWrite), 0o666)
	if err != nil {
		return newErr("reopenFile", s.path, hosterr.FromGeneric(err), err)
	}
	s.file = f
	s.mode = modeTruncatingReadWrite
	s.length = 0
	return nil
}

func (s *portableSession) Reset() error { return s.upgradeToTruncating() }

func (s *portableSession) Close() error {
	if err := s.file.Close(); err != nil {
		return newErr("closeFile", s.path, hosterr.FromGeneric(err), err)
	}
	return nil
}

func (s *portableSession) Length() (int64, error) { return s.length, nil }

func (s *portableSession) Truncate(n int64) error {
	if err := s.file.Truncate(n); err != nil {
		return newErr("truncateFile", s.path, hosterr.FromGeneric(err), err)
	}
	s.length = n
	return nil
}

func (s *portableSession) ReadRange(buf []byte, offset int64) (int, error) {
	n, err := chunked(buf, offset, func(b []byte, off int64) (int, error) {
		if _, serr := s.file.Seek(off, io.SeekStart); serr != nil {
			return 0, serr
		}
		got, rerr := s.file.Read(b)
		if rerr == io.EOF {
			rerr = nil
		}
		return got, rerr
	})
	if err != nil {
		return n, newErr("readFile", s.path, hosterr.FromGeneric(err), err)
	}
	return n, nil
}

func (s *portableSession) WriteRange(data []byte, offset int64) error {
	n, err := chunked(data, offset, func(b []byte, off int64) (int, error) {
		if _, serr := s.file.Seek(off, io.SeekStart); serr != nil {
			return 0, serr
		}
		return s.file.Write(b)
	})
	if err != nil {
		return newErr("writeFile", s.path, hosterr.FromGeneric(err), err)
	}
	if n != len(data) {
		return newErr("writeFile", s.path, ErrBadIO, nil)
	}
	if end := offset + int64(len(data)); end > s.length {
		s.length = end
	}
	return nil
}

func (s *portableSession) ZeroRange(offset, size int64) error {
	zero := zeroBufPool.Get()
	defer zeroBufPool.Put(zero)

	remaining := size
	at := offset
	for remaining > 0 {
		n := int64(len(zero))
		if n > remaining {
			n = remaining
		}
		if err := s.WriteRange(zero[:n], at); err != nil {
			return err
		}
		at += n
		remaining -= n
	}
	return nil
}

// InsertRange stages the tail in a heap buffer, then composes
// write-range calls: the new bytes, then the shifted tail (spec.md §9
// "compose read-range + write-range + final re-size").
func (s *portableSession) InsertRange(offset int64, data []byte) error {
	oldLen := s.length
	tailLen := oldLen - offset

	var tail []byte
	var err error
	if tailLen > 0 {
		tail, err = rawmem.Alloc(int(tailLen))
		if err != nil {
			return newErr("insertFile", s.path, ErrNoMemory, err)
		}
		defer func() { _ = rawmem.Free(tail) }()
		if _, err := s.ReadRange(tail, offset); err != nil {
			return err
		}
	}

	if err := s.WriteRange(data, offset); err != nil {
		return err
	}
	if tailLen > 0 {
		if err := s.WriteRange(tail, offset+int64(len(data))); err != nil {
			return err
		}
	}
	return nil
}

// RemoveRange stages the post-hole tail, overwrites the hole with it,
// then truncates off the now-duplicated trailing bytes.
func (s *portableSession) RemoveRange(offset, size int64) error {
	oldLen := s.length
	postLen := oldLen - (offset + size)

	if postLen > 0 {
		post, err := rawmem.Alloc(int(postLen))
		if err != nil {
			return newErr("trimFile", s.path, ErrNoMemory, err)
		}
		defer func() { _ = rawmem.Free(post) }()
		if _, err := s.ReadRange(post, offset+size); err != nil {
			return err
		}
		if err := s.WriteRange(post, offset); err != nil {
			return err
		}
	}
	return s.Truncate(oldLen - size)
}
