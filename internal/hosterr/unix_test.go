//go:build unix

package hosterr

import (
	"errors"
	"os"
	"testing"

	"github.com/kmio/filerange/internal/ekind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrnoMapsNoFile(t *testing.T) {
	_, err := os.Open("/definitely/does/not/exist/filerange")
	require.Error(t, err)
	assert.Equal(t, ekind.ErrNoFile, FromErrno(err))
}

func TestFromErrnoUnmappableReturnsInternal(t *testing.T) {
	assert.Equal(t, ekind.ErrInternal, FromErrno(errors.New("not an errno")))
}
