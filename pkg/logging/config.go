package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config describes one logger setup.
type Config struct {
	// Level is the minimum level for console output.
	Level string

	// Format selects json, console, or auto (terminal detection).
	Format string

	// Output is the console destination: stderr, stdout, or discard.
	Output string

	// TimeFormat names the timestamp layout: kitchen, rfc3339, unix,
	// stamp, or an explicit reference layout.
	TimeFormat string

	// NoColor disables color in console mode.
	NoColor bool

	// AddCaller includes file:line in every event.
	AddCaller bool

	// File, when set, receives a JSON copy of every event at debug
	// level regardless of the console level. Run logs use this to keep
	// full detail on disk while the console stays at info.
	File string
}

// DefaultConfig returns the configuration used when no flags are set.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// NewLoggerFromConfig builds a logger for cfg without installing it.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	consoleLevel := parseLevel(cfg.Level)
	writer := getWriter(cfg)
	level := consoleLevel

	if cfg.File != "" {
		if file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			// Console keeps its own threshold; the file gets everything
			// down to debug, so the logger itself must run at debug.
			filtered := &zerolog.FilteredLevelWriter{
				Writer: zerolog.LevelWriterAdapter{Writer: writer},
				Level:  consoleLevel,
			}
			writer = zerolog.MultiLevelWriter(filtered, file)
			level = zerolog.DebugLevel
		}
	}

	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	if cfg.AddCaller || consoleLevel <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// Configure builds a logger for cfg and installs it process-wide.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// getWriter resolves the console destination and format.
func getWriter(cfg *Config) io.Writer {
	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		output = os.Stdout
	case "discard", "none":
		output = io.Discard
	default:
		output = os.Stderr
	}

	format := strings.ToLower(cfg.Format)
	if format == "auto" {
		if output == os.Stderr && stderrIsTerminal() {
			format = "console"
		} else {
			format = "json"
		}
	}

	if format == "console" || format == "pretty" {
		return zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: parseTimeFormat(cfg.TimeFormat),
			NoColor:    cfg.NoColor,
		}
	}
	return output
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "none", "off":
		return zerolog.Disabled
	default:
		if l, err := zerolog.ParseLevel(level); err == nil {
			return l
		}
		return zerolog.InfoLevel
	}
}

func parseTimeFormat(format string) string {
	switch strings.ToLower(format) {
	case "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "unix", "epoch":
		return "" // zerolog renders Unix timestamps for the empty layout
	case "stamp":
		return time.Stamp
	default:
		if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
			return format
		}
		return time.Kitchen
	}
}
