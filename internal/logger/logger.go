// Package logger provides a thin wrapper around zerolog.Logger used by the
// notecrypt command.
//
// Notes, envelopes and secret phrases must never be passed to the logger;
// log sizes and versions only.
package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API.
type Logger struct {
	zerolog.Logger
}

// New constructs a *Logger writing JSON to w at the given level name
// (e.g. "info", "debug"). Every entry carries a "role" field and a timestamp.
func New(w io.Writer, role, level string) (*Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := zerolog.New(w).Level(lvl).With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{logger}, nil
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}
