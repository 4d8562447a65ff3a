package filerange

import "github.com/sirupsen/logrus"

// log is the package's debug sink. It is unexported and left at
// logrus's default Info level, so debugf calls emit nothing; the
// package offers callers no way to change its level or output.
var log = logrus.New()

func debugf(op, path string, format string, args ...interface{}) {
	e := log.WithField("op", op)
	if path != "" {
		e = e.WithField("path", path)
	}
	e.Debugf(format, args...)
}
