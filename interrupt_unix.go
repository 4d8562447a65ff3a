//go:build unix

package filerange

import (
	"golang.org/x/sys/unix"
)

// maxInterruptRetries is the deliberate finite bound on EINTR retries
// (spec.md §4.4, §9 "Signal-retry budget"). After this many retries
// the interruption is surfaced to the caller as ErrInterrupt rather
// than looped on forever.
const maxInterruptRetries = 64

// retryEINTR repeats fn up to maxInterruptRetries times while it
// reports EINTR, returning the last result otherwise. Every POSIX
// read/write/truncate/fsync call in this backend is routed through
// this helper (spec.md §4.4).
func retryEINTR(fn func() error) error {
	var err error
	// One initial attempt plus up to maxInterruptRetries retries.
	for i := 0; i <= maxInterruptRetries; i++ {
		err = fn()
		if err != unix.EINTR {
			return err
		}
	}
	return newErr("retry", "", ErrInterrupt, err)
}
