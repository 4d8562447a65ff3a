package pathresolve

import (
	"path/filepath"
	"testing"

	"github.com/kardianos/osext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAbsoluteUnchanged(t *testing.T) {
	got, err := Resolve("/tmp/data.bin", true)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/data.bin", got)
}

func TestResolveRelativeWithoutFlag(t *testing.T) {
	got, err := Resolve("data.bin", false)
	require.NoError(t, err)
	assert.Equal(t, "data.bin", got)
}

func TestResolveRelativeToExe(t *testing.T) {
	exe, err := osext.Executable()
	require.NoError(t, err)

	got, err := Resolve("data.bin", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(exe), "data.bin"), got)
}
