// Package pathresolve implements spec.md §4.5's RelativeToExe path
// resolution: a path that doesn't name an absolute location is taken
// relative to the running executable's directory rather than the
// process's current working directory. It is grounded on the
// teacher's executable-path lookup, which in turn uses
// github.com/kardianos/osext (kept for platforms where
// os.Executable's symlink resolution differs from what the teacher's
// build targets expect).
package pathresolve

import (
	"path/filepath"

	"github.com/kardianos/osext"
	"github.com/pkg/errors"
)

// Resolve returns path unchanged if it is already absolute. Otherwise
// it joins path onto the running executable's directory. relativeToExe
// selects that behaviour; when false, Resolve returns path unchanged
// and relies on the OS to interpret it against the process's working
// directory, same as an ordinary os.Open would.
func Resolve(path string, relativeToExe bool) (string, error) {
	if filepath.IsAbs(path) || !relativeToExe {
		return path, nil
	}
	exe, err := osext.Executable()
	if err != nil {
		return "", errors.Wrap(err, "resolve executable directory")
	}
	return filepath.Join(filepath.Dir(exe), path), nil
}
