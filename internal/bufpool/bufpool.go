// Package bufpool is the concrete form of the "allocator contract"
// spec.md §6 treats as an external collaborator: alloc/realloc/free
// plus zero-init and free-on-failure flags. It is modeled on the
// teacher's lib/pool (New/Get/GetN/Put/InUse/InPool/Alloced), a
// time-expiring pool of same-sized byte slices, optionally backed by
// internal/rawmem's anonymous memory mapping instead of the Go heap.
//
// filerange uses a Pool for the portable backend's Clear zero-fill
// source buffer. The portable backend's insert/remove staging buffers
// are allocated with internal/rawmem directly, not through a Pool.
package bufpool

import (
	"container/list"
	"sync"
	"time"

	"github.com/kmio/filerange/internal/ekind"
	"github.com/kmio/filerange/internal/rawmem"
)

// Flags mirrors spec.md §3's allocation-flags record. In Go, make()
// and an anonymous mmap both always hand back zero-initialised
// memory, so ZeroInit has no runtime effect here; it is retained so a
// caller reading this package alongside spec.md recognises the same
// vocabulary, and because a future non-pooled allocation path (one
// that reuses a buffer in place rather than zeroing it) could honour
// it meaningfully.
type Flags struct {
	ZeroInit      bool
	FreeOnFailure bool
}

type entry struct {
	mem    []byte
	expiry time.Time
}

// Pool hands out fixed-size byte slices, reusing ones that were
// recently returned via Put instead of allocating fresh, and frees
// slices that have sat idle longer than timeout the next time it is
// touched. The zero Pool is not usable; construct one with New.
type Pool struct {
	mu         sync.Mutex
	timeout    time.Duration
	bufferSize int
	maxBuffers int
	useMmap    bool
	free       func([]byte) error
	alloc      func(int) ([]byte, error)
	freeList   *list.List // of *entry, oldest at the front
	inUse      int
	inPool     int
	alloced    int
}

// New creates a Pool of bufferSize-byte buffers. At most maxBuffers
// are kept on the free list; buffers idle longer than timeout are
// freed the next time the pool is touched. When useMmap is true,
// buffers are allocated via internal/rawmem (an anonymous memory
// mapping) instead of the Go heap, avoiding GC pressure for large,
// short-lived staging buffers.
func New(timeout time.Duration, bufferSize, maxBuffers int, useMmap bool) *Pool {
	p := &Pool{
		timeout:    timeout,
		bufferSize: bufferSize,
		maxBuffers: maxBuffers,
		useMmap:    useMmap,
		freeList:   list.New(),
	}
	if useMmap {
		p.alloc = rawmem.Alloc
		p.free = rawmem.Free
	} else {
		p.alloc = func(size int) ([]byte, error) { return make([]byte, size), nil }
		p.free = func([]byte) error { return nil }
	}
	return p
}

// expireLocked drops free-list entries older than timeout, oldest
// first, and entries beyond maxBuffers regardless of age. Must be
// called with mu held.
func (p *Pool) expireLocked() {
	now := time.Now()
	for p.freeList.Len() > 0 {
		front := p.freeList.Front()
		e := front.Value.(*entry)
		expired := p.timeout > 0 && now.After(e.expiry)
		tooMany := p.maxBuffers > 0 && p.freeList.Len() > p.maxBuffers
		if !expired && !tooMany {
			break
		}
		p.freeList.Remove(front)
		p.inPool--
		p.alloced--
		_ = p.free(e.mem)
	}
}

// Get returns a buffer of bufferSize bytes, reused from the free list
// if one is available, or freshly allocated otherwise.
func (p *Pool) Get() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expireLocked()
	if p.freeList.Len() > 0 {
		front := p.freeList.Front()
		e := p.freeList.Remove(front).(*entry)
		p.inPool--
		p.inUse++
		return e.mem
	}
	mem, err := p.alloc(p.bufferSize)
	if err != nil {
		// The allocator contract is required to be thread-safe for
		// non-overlapping out-parameters (spec.md §5); it is not
		// required to succeed. Degrade to the Go heap rather than
		// propagate here, since Get has no error return — callers
		// that need to observe allocation failure use GetErr.
		mem = make([]byte, p.bufferSize)
	}
	p.inUse++
	p.alloced++
	return mem
}

// GetErr is like Get but surfaces an allocation failure as ErrNoMemory
// instead of silently falling back to the Go heap, for call sites
// that must observe an allocation failure rather than proceed on a
// heap buffer.
func (p *Pool) GetErr() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expireLocked()
	if p.freeList.Len() > 0 {
		front := p.freeList.Front()
		e := p.freeList.Remove(front).(*entry)
		p.inPool--
		p.inUse++
		return e.mem, nil
	}
	mem, err := p.alloc(p.bufferSize)
	if err != nil {
		return nil, errNoMemory(err)
	}
	p.inUse++
	p.alloced++
	return mem, nil
}

// GetN returns n buffers of bufferSize bytes each.
func (p *Pool) GetN(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = p.Get()
	}
	return out
}

// Put returns mem to the pool for reuse. mem must have come from Get,
// GetErr or GetN on this Pool.
func (p *Pool) Put(mem []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inUse--
	p.freeList.PushBack(&entry{mem: mem, expiry: time.Now().Add(p.timeout)})
	p.inPool++
	p.expireLocked()
}

// InUse reports the number of buffers currently checked out.
func (p *Pool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inUse
}

// InPool reports the number of buffers sitting on the free list.
func (p *Pool) InPool() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inPool
}

// Alloced reports the total number of buffers currently allocated,
// in use or pooled.
func (p *Pool) Alloced() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.alloced
}

// errKind pairs an allocation error with an ekind.Kind, exposed via
// its Kind method, so GetErr can hand back something the caller can
// map without this package importing the root package (which imports
// this one).
type errKind struct {
	kind ekind.Kind
	err  error
}

func (e *errKind) Error() string    { return e.err.Error() }
func (e *errKind) Unwrap() error    { return e.err }
func (e *errKind) Kind() ekind.Kind { return e.kind }

func errNoMemory(err error) error {
	return &errKind{kind: ekind.ErrNoMemory, err: err}
}
