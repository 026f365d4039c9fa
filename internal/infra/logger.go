package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger aliases zerolog.Logger so packages can accept a logger without
// importing zerolog themselves.
type Logger = zerolog.Logger

// NewLogger constructs the service logger writing to stdout.
func NewLogger(appEnv string) zerolog.Logger {
	return NewLoggerTo(appEnv, os.Stdout)
}

// NewLoggerTo constructs a logger writing to w. Development builds log at
// debug level through the console writer; everything else emits JSON.
func NewLoggerTo(appEnv string, w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "creatorstudio").
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}

	return logger
}

// DiscardLogger returns a logger that drops every event.
func DiscardLogger() *Logger {
	l := zerolog.New(io.Discard)
	return &l
}
