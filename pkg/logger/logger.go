package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/community-news-api/internal/config"
	"github.com/rs/zerolog"
)

const serviceName = "community-news-api"

// New creates a zerolog logger writing to stdout.
// level is one of debug, info, warn, error; anything else means info.
// format "pretty", or ENV=development, switches to console output.
func New(level, format string) zerolog.Logger {
	return newWithWriter(os.Stdout, level, format)
}

// FromConfig creates the logger described by the Log configuration section
func FromConfig(cfg config.LogConfig) zerolog.Logger {
	return New(cfg.Level, cfg.Format)
}

func newWithWriter(out io.Writer, level, format string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}

	// Use pretty console output in development
	if format == "pretty" || os.Getenv("ENV") == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			Level(logLevel).
			With().
			Timestamp().
			Caller().
			Str("service", serviceName).
			Logger()
	}

	// JSON output for production
	return zerolog.New(out).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}
