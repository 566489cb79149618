package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
)

// NewLogger returns a logger writing to stderr, stdout is reserved for command output.
func NewLogger(logLevel string) (*slog.Logger, error) {
	return New(os.Stderr, logLevel)
}

// New returns a logger writing to w with the given level.
func New(w io.Writer, logLevel string) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, errors.WithStack(err)
	}

	return slog.New(newCustomHandler(w, &slog.HandlerOptions{
		Level: level,
	})), nil
}

func NewDefaultLogger() *slog.Logger {
	l, _ := NewLogger("INFO")
	return l
}
