package filerange

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data.bin")
}

func readAll(t *testing.T, path string, n int64) []byte {
	t.Helper()
	buf := make([]byte, n)
	got, err := ReadFile(path, buf, 0, 0)
	require.NoError(t, err)
	return buf[:got]
}

// S1
func TestRewriteAndRead(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, RewriteFile(path, []byte("HelloWorld"), 0))

	size, err := FileSize(path, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 10, size)

	assert.Equal(t, "HelloWorld", string(readAll(t, path, 10)))
}

// S2
func TestInsertInterior(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, RewriteFile(path, []byte("ABCDEF"), 0))
	require.NoError(t, InsertFile(path, []byte("XY"), 3, 0))

	size, err := FileSize(path, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 8, size)
	assert.Equal(t, "ABCXYDEF", string(readAll(t, path, 8)))
}

// S3
func TestInsertAtEOF(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, RewriteFile(path, []byte("ABC"), 0))
	require.NoError(t, InsertFile(path, []byte("ZZ"), EOF, 0))

	size, err := FileSize(path, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, size)
	assert.Equal(t, "ABCZZ", string(readAll(t, path, 5)))
}

// S4
func TestTrimInterior(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, RewriteFile(path, []byte("0123456789"), 0))
	require.NoError(t, TrimFile(path, 3, 4, 0))

	size, err := FileSize(path, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 7, size)
	assert.Equal(t, "0123789", string(readAll(t, path, 7)))
}

// S5
func TestClearRange(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, RewriteFile(path, []byte("0123456789"), 0))
	require.NoError(t, ClearFile(path, 3, 4, 0))

	size, err := FileSize(path, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 10, size)
	assert.Equal(t, "0123\x00\x00\x00789", string(readAll(t, path, 10)))
}

// S6
func TestAppendViaEOF(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, RewriteFile(path, []byte("A"), 0))
	require.NoError(t, WriteFile(path, []byte("BC"), EOF, 0))

	size, err := FileSize(path, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, size)
	assert.Equal(t, "ABC", string(readAll(t, path, 3)))
}

// S8
func TestBadOffsetRejection(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, RewriteFile(path, []byte("A"), 0))

	buf := make([]byte, 1)
	_, err := ReadFile(path, buf, 1, 0)
	require.Error(t, err)
	assert.Equal(t, ErrBadOffset, KindOf(err))

	size, err := FileSize(path, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, size)
}

func TestTrimInvertsInsert(t *testing.T) {
	path := tempFile(t)
	original := []byte("the quick brown fox")
	require.NoError(t, RewriteFile(path, original, 0))

	require.NoError(t, InsertFile(path, []byte("--XYZ--"), 9, 0))
	require.NoError(t, TrimFile(path, 7, 9, 0))

	size, err := FileSize(path, 0)
	require.NoError(t, err)
	assert.EqualValues(t, len(original), size)
	assert.Equal(t, original, readAll(t, path, int64(len(original))))
}

func TestTrimOverwriteActsLikeClear(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, RewriteFile(path, []byte("0123456789"), 0))
	require.NoError(t, TrimFile(path, 3, 4, OverwriteFile))

	size, err := FileSize(path, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 10, size)
	assert.Equal(t, "0123\x00\x00\x00789", string(readAll(t, path, 10)))
}

func TestWriteBadSizeRejected(t *testing.T) {
	path := tempFile(t)
	err := WriteFile(path, nil, 0, 0)
	require.Error(t, err)
	assert.Equal(t, ErrBadSize, KindOf(err))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteTruncateFlag(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, RewriteFile(path, []byte("0123456789"), 0))
	require.NoError(t, WriteFile(path, []byte("hi"), 999, TruncateFile))

	size, err := FileSize(path, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, size)
	assert.Equal(t, "hi", string(readAll(t, path, 2)))
}

func TestReadEmptyFileIsNoFile(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, RewriteFile(path, nil, 0))

	buf := make([]byte, 1)
	_, err := ReadFile(path, buf, 0, 0)
	require.Error(t, err)
	assert.Equal(t, ErrNoFile, KindOf(err))
}
