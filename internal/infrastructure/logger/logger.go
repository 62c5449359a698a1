package logger

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	globalLogger zerolog.Logger
	once         sync.Once
)

// GetLogger returns the process-wide logger. Until New has been called it
// lazily initialises a console logger at info level.
func GetLogger() zerolog.Logger {
	once.Do(func() {
		globalLogger, _ = build("info", "console", os.Stdout)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
	return globalLogger
}

// New constructs a logger from level and format configuration and installs it
// as the process-wide instance.
func New(level, format string) (zerolog.Logger, error) {
	log, err := build(level, format, os.Stdout)
	if err != nil {
		return zerolog.Logger{}, err
	}

	zerolog.SetGlobalLevel(log.GetLevel())
	// Mark the lazy path done so a later GetLogger call cannot overwrite the
	// configured logger with defaults.
	once.Do(func() {})
	globalLogger = log
	return log, nil
}

func build(level, format string, out io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, err
	}

	switch strings.ToLower(format) {
	case "json":
	case "console":
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	default:
		return zerolog.Logger{}, errors.New("unsupported log format: " + format)
	}

	return zerolog.New(out).With().Timestamp().Logger().Level(lvl), nil
}
