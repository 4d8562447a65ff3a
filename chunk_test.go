package filerange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestChunkedTransparency is property 7: chunking must be invisible
// to the caller beyond the number of host calls it takes.
func TestChunkedTransparency(t *testing.T) {
	old := maxAccessSize
	maxAccessSize = 4
	defer func() { maxAccessSize = old }()

	data := []byte("0123456789")
	var calls int
	var seen []byte

	n, err := chunked(data, 100, func(b []byte, off int64) (int, error) {
		calls++
		seen = append(seen, b...)
		assert.LessOrEqual(t, len(b), 4)
		return len(b), nil
	})
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, data, seen)
	assert.Equal(t, 3, calls) // 4 + 4 + 2
}

func TestChunkedStopsOnShortTransfer(t *testing.T) {
	old := maxAccessSize
	maxAccessSize = 4
	defer func() { maxAccessSize = old }()

	data := make([]byte, 10)
	n, err := chunked(data, 0, func(b []byte, off int64) (int, error) {
		return 2, nil // always short
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestChunkedPropagatesError(t *testing.T) {
	old := maxAccessSize
	maxAccessSize = 4
	defer func() { maxAccessSize = old }()

	boom := newErr("test", "", ErrBadIO, nil)
	data := make([]byte, 10)
	n, err := chunked(data, 0, func(b []byte, off int64) (int, error) {
		return 0, boom
	})
	assert.Equal(t, 0, n)
	assert.Equal(t, boom, err)
}
