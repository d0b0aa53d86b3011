package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mosaic-etl/salesledger/pkg/errors"
	"github.com/mosaic-etl/salesledger/pkg/logging"
)

// loggingConfig builds the logger configuration from the global flags.
// Level precedence (highest to lowest): --log-level, -v/-q shortcuts,
// the info default.
func (a *App) loggingConfig() *logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = a.determineLogLevel()
	return cfg
}

func (a *App) determineLogLevel() string {
	if a.logLevel != "" {
		return a.logLevel
	}
	if a.verbose && a.quiet {
		fmt.Fprintln(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet")
		return "warn"
	}
	if a.verbose {
		return "debug"
	}
	if a.quiet {
		return "warn"
	}
	return "info"
}

// setupRunLog adds a timestamped file sink under logsDir, one file per
// run, and returns its path. The file keeps full debug detail while the
// console level follows the flags.
func (a *App) setupRunLog(logsDir string) (string, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return "", errors.WrapIO("create directory", logsDir, err)
	}
	logPath := filepath.Join(logsDir, fmt.Sprintf("run_%s.log", time.Now().Format("20060102_150405")))

	cfg := a.loggingConfig()
	cfg.File = logPath
	logging.Configure(cfg)
	return logPath, nil
}
