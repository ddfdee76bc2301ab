package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger opens the log destination and returns a logger tagged with a fresh
// session id. A LogFile of "-" logs to stderr. debug switches from JSON to
// human readable lines. Close the returned closer on exit.
func (c Config) Logger(debug bool) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log level: %w", err)
	}
	if debug && lvl > zerolog.DebugLevel {
		lvl = zerolog.DebugLevel
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if c.LogFile != "-" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	if debug {
		out = zerolog.ConsoleWriter{Out: out, NoColor: c.LogFile != "-", TimeFormat: time.TimeOnly}
	}

	logger := zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("session", uuid.NewString()).
		Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
