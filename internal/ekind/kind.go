// Package ekind holds the closed taxonomy of result kinds (spec.md
// §7) as a standalone type so that both the public filerange package
// and the internal per-backend host-error mapping packages can share
// it without an import cycle: filerange re-exports Kind and its
// constants via type/const aliases, and internal/hosterr returns Kind
// values directly.
package ekind

import "fmt"

// Kind is the closed taxonomy every host-specific error is mapped to.
type Kind int

const (
	Success Kind = iota
	ErrInternal
	ErrBadAccess
	ErrBadAddress
	ErrBadAlignment
	ErrBadFile
	ErrBadIO
	ErrBadOffset
	ErrBadPath
	ErrBadRange
	ErrBadSize
	ErrBadStream
	ErrDeadlock
	ErrInUse
	ErrInterrupt
	ErrNoConnection
	ErrNoDisk
	ErrNoFile
	ErrNoLock
	ErrNoMemory
	ErrNoOpen
	ErrNoProcess
	ErrNoQuota
	ErrNoSupport
	ErrTimeout
)

var names = map[Kind]string{
	Success:         "success",
	ErrInternal:     "internal-error",
	ErrBadAccess:    "bad-access",
	ErrBadAddress:   "bad-address",
	ErrBadAlignment: "bad-alignment",
	ErrBadFile:      "bad-file",
	ErrBadIO:        "bad-io",
	ErrBadOffset:    "bad-offset",
	ErrBadPath:      "bad-path",
	ErrBadRange:     "bad-range",
	ErrBadSize:      "bad-size",
	ErrBadStream:    "bad-stream",
	ErrDeadlock:     "deadlock",
	ErrInUse:        "in-use",
	ErrInterrupt:    "interrupt",
	ErrNoConnection: "no-connection",
	ErrNoDisk:       "no-disk",
	ErrNoFile:       "no-file",
	ErrNoLock:       "no-lock",
	ErrNoMemory:     "no-memory",
	ErrNoOpen:       "no-open",
	ErrNoProcess:    "no-process",
	ErrNoQuota:      "no-quota",
	ErrNoSupport:    "no-support",
	ErrTimeout:      "timeout",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}
