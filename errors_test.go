package filerange

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfUnwrapsError(t *testing.T) {
	e := newErr("readFile", "/tmp/x", ErrBadOffset, errors.New("boom"))
	assert.Equal(t, ErrBadOffset, KindOf(e))
	assert.True(t, errors.Is(e, e))
}

func TestKindOfNonFilerangeError(t *testing.T) {
	assert.Equal(t, ErrInternal, KindOf(errors.New("plain")))
}

func TestErrorStringIncludesPathAndKind(t *testing.T) {
	e := newErr("writeFile", "/tmp/f", ErrBadSize, nil)
	msg := e.Error()
	assert.Contains(t, msg, "writeFile")
	assert.Contains(t, msg, "/tmp/f")
	assert.Contains(t, msg, "bad-size")
}
