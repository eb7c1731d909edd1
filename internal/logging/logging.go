// Package logging builds the console logger.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a leveled console logger on stderr.
func New(level, format string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:     ParseLevel(level),
		Formatter: ParseFormatter(format),
		Prefix:    "tasklinks",
	})
}

// ParseLevel parses a string log level, defaulting to info.
func ParseLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a string formatter name, defaulting to text.
func ParseFormatter(s string) log.Formatter {
	switch s {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
