// SPDX-License-Identifier: Unlicense OR MIT

// Package log provides the module loggers. All loggers share one logrus
// logger whose level is read from the GAUDIUM_LOG environment variable.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// EnvLevel is the environment variable holding the log level.
const EnvLevel = "GAUDIUM_LOG"

var master = newMaster()

func newMaster() *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	l.Level = logrus.WarnLevel
	if s := os.Getenv(EnvLevel); s != "" {
		if lvl, err := logrus.ParseLevel(s); err == nil {
			l.Level = lvl
		} else {
			l.WithError(err).Warnf("invalid %s", EnvLevel)
		}
	}
	return l
}

// New returns the logger of a module.
func New(module string) *logrus.Entry {
	return master.WithField("_module", module)
}

// SetLevel changes the level of every module logger.
func SetLevel(lvl logrus.Level) {
	master.SetLevel(lvl)
}

// SetOutput redirects every module logger.
func SetOutput(w io.Writer) {
	master.SetOutput(w)
}
