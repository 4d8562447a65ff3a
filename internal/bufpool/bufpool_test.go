package bufpool

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// makeUnreliable swaps in alloc/free funcs that fail on a rotating
// schedule, the way rclone's lib/pool test harness exercises a pool's
// error handling without a real failing allocator.
func makeUnreliable(p *Pool) {
	var allocCount int
	tests := rand.Intn(4) + 1
	p.alloc = func(size int) ([]byte, error) {
		allocCount++
		if allocCount%tests != 0 {
			return nil, errors.New("failed to allocate memory")
		}
		return make([]byte, size), nil
	}
	var freeCount int
	p.free = func(b []byte) error {
		freeCount++
		if freeCount%tests != 0 {
			return errors.New("failed to free memory")
		}
		return nil
	}
}

func testGetPut(t *testing.T, useMmap, unreliable bool) {
	p := New(60*time.Second, 4096, 2, useMmap)
	if unreliable {
		makeUnreliable(p)
	}

	assert.Equal(t, 0, p.InUse())

	b1 := p.Get()
	assert.Equal(t, 1, p.InUse())
	assert.Len(t, b1, 4096)

	b2 := p.Get()
	assert.Equal(t, 2, p.InUse())

	bs := p.GetN(3)
	assert.Equal(t, 5, p.InUse())
	assert.Len(t, bs, 3)

	p.Put(b1)
	assert.Equal(t, 4, p.InUse())
	assert.Equal(t, 1, p.InPool())

	p.Put(b2)
	assert.Equal(t, 3, p.InUse())
	assert.Equal(t, 2, p.InPool())

	for _, b := range bs {
		p.Put(b)
	}
	assert.Equal(t, 0, p.InUse())
}

func TestGetPut(t *testing.T)               { testGetPut(t, false, false) }
func TestGetPutUnreliable(t *testing.T)     { testGetPut(t, false, true) }
func TestGetPutMmap(t *testing.T)           { testGetPut(t, true, false) }
func TestGetPutMmapUnreliable(t *testing.T) { testGetPut(t, true, true) }

func TestPoolReusesFreedBuffer(t *testing.T) {
	p := New(60*time.Second, 16, 4, false)
	b1 := p.Get()
	p.Put(b1)
	assert.Equal(t, 1, p.Alloced())
	assert.Equal(t, 1, p.InPool())

	b2 := p.Get()
	assert.Equal(t, 1, p.Alloced(), "reused rather than allocated fresh")
	assert.Equal(t, 0, p.InPool())
	p.Put(b2)
}

func TestPoolExpiresByTimeout(t *testing.T) {
	p := New(time.Millisecond, 16, 4, false)
	b := p.Get()
	p.Put(b)
	assert.Equal(t, 1, p.Alloced())

	time.Sleep(10 * time.Millisecond)
	p.Get() // touches the pool, triggering expiry of the stale entry
	assert.Equal(t, 1, p.Alloced(), "expired entry freed, a fresh one allocated")
}

func TestGetErrSurfacesFailure(t *testing.T) {
	p := New(60*time.Second, 16, 4, false)
	p.alloc = func(int) ([]byte, error) { return nil, errors.New("out of memory") }

	_, err := p.GetErr()
	assert.Error(t, err)
}
