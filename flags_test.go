package filerange

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagsHas(t *testing.T) {
	f := RelativeToExe | TruncateFile
	assert.True(t, f.has(RelativeToExe))
	assert.True(t, f.has(TruncateFile))
	assert.False(t, f.has(OpenSymlink))
	assert.False(t, f.has(OverwriteFile))
}

func TestFlagsUnknownBitsIgnored(t *testing.T) {
	f := Flags(1 << 30)
	assert.False(t, f.has(RelativeToExe))
	assert.False(t, f.has(OpenSymlink))
	assert.False(t, f.has(TruncateFile))
	assert.False(t, f.has(OverwriteFile))
}

func TestFlagsString(t *testing.T) {
	assert.Equal(t, "Flags(0b0)", Flags(0).String())
	assert.Equal(t, "Flags(0b1)", RelativeToExe.String())
}
