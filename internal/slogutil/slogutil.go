// Package slogutil builds the loggers used by the CLI and MCP server. The
// surgery core itself never logs; everything here goes to stderr so stdout
// stays free for command output and the MCP protocol channel.
package slogutil

import (
	"io"
	"log/slog"
	"os"
)

// suppressAll is above every standard level; used to silence a logger.
const suppressAll = slog.Level(100)

// NewLogger creates a text logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewStderrLogger creates the standard CLI logger.
func NewStderrLogger(level slog.Level) *slog.Logger {
	return NewLogger(os.Stderr, level)
}

// NewDiscardLogger creates a logger that drops everything. Useful in tests.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: suppressAll}))
}

// LevelFromVerbosity maps CLI verbosity flags to a level: quiet suppresses
// all output, the default is warn, -v gives info, -vv and up gives debug.
func LevelFromVerbosity(verbosity int, quiet bool) slog.Level {
	if quiet {
		return suppressAll
	}
	switch verbosity {
	case 0:
		return slog.LevelWarn
	case 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
