// Package logging builds the logs.Log used throughout the server.
//
// Everything goes to stderr: stdout carries the MCP protocol stream and must
// not receive anything else.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cyclopcam/logs"
)

// Level orders log severities.
type Level = logs.Level

const (
	LevelDebug    = logs.LevelDebug
	LevelInfo     = logs.LevelInfo
	LevelWarn     = logs.LevelWarn
	LevelError    = logs.LevelError
	LevelCritical = logs.LevelCritical
)

// ParseLevel maps a level name to a Level. The empty string is LevelInfo.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "critical":
		return LevelCritical, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Logger drops messages below Min and forwards the rest to Log.
type Logger struct {
	Log logs.Log
	Min Level
}

var _ logs.Log = (*Logger)(nil)

// New returns a Logger writing to w, or to stderr when w is nil.
func New(min Level, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{Log: &logs.Logger{Output: w}, Min: min}
}

func (l *Logger) Close() { l.Log.Close() }

func (l *Logger) Debugf(format string, a ...interface{}) {
	if l.Min <= LevelDebug {
		l.Log.Debugf(format, a...)
	}
}

func (l *Logger) Infof(format string, a ...interface{}) {
	if l.Min <= LevelInfo {
		l.Log.Infof(format, a...)
	}
}

func (l *Logger) Warnf(format string, a ...interface{}) {
	if l.Min <= LevelWarn {
		l.Log.Warnf(format, a...)
	}
}

func (l *Logger) Errorf(format string, a ...interface{}) {
	if l.Min <= LevelError {
		l.Log.Errorf(format, a...)
	}
}

func (l *Logger) Criticalf(format string, a ...interface{}) {
	l.Log.Criticalf(format, a...)
}
