// Package logging builds the process logger.
//
// The logger is constructed once in main and handed to every component that
// reports diagnostics; nothing in this repository logs through a global.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console-format logger writing to w at the given level.
//
// Level values: "debug", "info", "warn", "error", "quiet" (default: "info").
func New(w io.Writer, level string) zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(cw).Level(parseLevel(level)).With().Timestamp().Logger()
}

// parseLevel converts a string log level to a zerolog level.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "quiet", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
