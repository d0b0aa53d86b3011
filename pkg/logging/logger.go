// Package logging configures the process-wide zerolog logger: pretty
// console output when stderr is a terminal, JSON otherwise, and an
// optional per-run file sink that keeps debug detail on disk while the
// console stays at its configured level.
//
// Pipeline code logs through the package-level helpers:
//
//	logging.Info().Str("platform", "OZ").Int("rows", n).Msg("Batch prepared")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger zerolog.Logger

func init() {
	defaultLogger = newBootstrapLogger()
}

// newBootstrapLogger builds the logger used before Configure runs, so
// early failures (flag parsing, config load) are still structured.
func newBootstrapLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr
	if stderrIsTerminal() && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	level := envLogLevel()
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, keeping zerolog's own
// global logger in step.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New returns a plain JSON logger writing to w at the global level.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.GlobalLevel()).With().Timestamp().Logger()
}

// Debug starts a debug-level event on the process-wide logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info-level event on the process-wide logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warning-level event on the process-wide logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts an error-level event on the process-wide logger.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// envLogLevel reads the bootstrap level from LOG_LEVEL or DEBUG.
func envLogLevel() zerolog.Level {
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
