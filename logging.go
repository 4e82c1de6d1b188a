package axiom

import (
	"io"

	"github.com/sirupsen/logrus"
)

// baseLogger is the package-wide logrus instance. Components never log
// through it directly; they hold a *logrus.Entry pre-populated with a
// "component" field via componentLogger, so log lines are filterable the
// same way willow's own bracketed-prefix debug lines are, but structured.
var baseLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}()

// componentLogger returns a logger scoped to one subsystem name, e.g.
// "dwindle", "rules", "gaps", "effects".
func componentLogger(component string) *logrus.Entry {
	return baseLogger.WithField("component", component)
}

// SetLogLevel adjusts verbosity for all components at once. Intended for
// the external configuration struct (config.go) to apply at startup.
func SetLogLevel(level logrus.Level) {
	baseLogger.SetLevel(level)
}

// SetLogOutput lets the owning process redirect log output, e.g. to a file
// or to the compositor's own log sink.
func SetLogOutput(w io.Writer) {
	baseLogger.SetOutput(w)
}
