// Package logging provides structured logging for tagsync using zerolog.
// It offers human-readable console output when attached to a terminal and
// structured JSON output otherwise, so a run can be followed live or
// shipped to a log pipeline.
//
// Example usage:
//
//	// Build a run-scoped logger
//	log := logging.NewLoggerFromConfig(&logging.Config{Level: "info", Format: "json"})
//	log.Info().Str("csv_file", "hosts.csv").Msg("Loading table")
//
//	// Carry it through the pipeline
//	ctx := logging.WithLogger(context.Background(), &log)
//	ctx = logging.WithRunID(ctx, runID)
//	logging.FromContext(ctx).Debug().Msg("Using logger from context")
//
//	// Add structured fields
//	log.Warn().
//	    Err(err).
//	    Str("selector", selector).
//	    Str("key", "[API]env").
//	    Msg("Delete failed")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// defaultLogger is the fallback logger returned when no logger was
	// put into a context.
	defaultLogger zerolog.Logger

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

func init() {
	defaultLogger = createDefaultLogger()
}

// createDefaultLogger creates a logger with default settings.
func createDefaultLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr

	if stderrIsTerminal() && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	level := getLogLevel()

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	return logger
}

// Default returns the default logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger // Also update zerolog's global logger
}

// New creates a new JSON logger writing to w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Logger()
}

// NewConsole creates a new console logger for human-readable output.
func NewConsole() zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}

	return New(writer)
}

// stderrIsTerminal reports whether stderr is a terminal.
func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// getLogLevel returns the log level from environment or defaults.
func getLogLevel() zerolog.Level {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		if os.Getenv("DEBUG") != "" {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
