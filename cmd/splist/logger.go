package main

import (
	"io"

	clog "github.com/charmbracelet/log"
)

// cliLogger adapts a charmbracelet logger to the adapter's LogX method set.
type cliLogger struct {
	*clog.Logger
}

// newLogger writes to w. Only warnings and errors are shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) cliLogger {
	level := clog.WarnLevel
	if verbose {
		level = clog.DebugLevel
	}
	return cliLogger{clog.NewWithOptions(w, clog.Options{
		Level:  level,
		Prefix: "splist",
	})}
}

func (l cliLogger) LogDebug(msg string, keyValuePairs ...interface{}) {
	l.Debug(msg, keyValuePairs...)
}

func (l cliLogger) LogInfo(msg string, keyValuePairs ...interface{}) {
	l.Info(msg, keyValuePairs...)
}

func (l cliLogger) LogWarn(msg string, keyValuePairs ...interface{}) {
	l.Warn(msg, keyValuePairs...)
}

func (l cliLogger) LogError(msg string, keyValuePairs ...interface{}) {
	l.Error(msg, keyValuePairs...)
}
