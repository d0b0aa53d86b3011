package pipeline

import (
	"time"
)

// RunOptions configures a single weekly load run.
type RunOptions struct {
	// Reporting period
	StartDate  time.Time // First day of the reporting week (required)
	EndDate    time.Time // Last day; defaults to StartDate plus six days
	ReportWeek string    // Week label in YYYYWW form; derived from StartDate when empty

	// Path overrides
	BasePath  string // Accumulated ledger workbook; defaults to paths.base_file
	OutputDir string // Artifact directory; defaults to paths.output_dir

	// Scope
	Platform string // When set, only this platform is loaded

	// Behavior
	DryRun               bool // Compute and report metrics without writing any files
	FailOnInvalidArticul bool // Abort the whole run when a file carries invalid articuls
	SkipParquet          bool // Suppress the parquet copy of the enriched report
}

// RunOption is a function that configures run options.
type RunOption func(*RunOptions)

// NewRunOptions creates run options from the given option functions.
func NewRunOptions(opts ...RunOption) *RunOptions {
	options := &RunOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// RunWithPeriod sets the reporting period. A zero end date falls back to
// six days after the start.
func RunWithPeriod(start, end time.Time) RunOption {
	return func(opts *RunOptions) {
		opts.StartDate = start
		opts.EndDate = end
	}
}

// RunWithWeek overrides the week label derived from the start date.
func RunWithWeek(week string) RunOption {
	return func(opts *RunOptions) {
		opts.ReportWeek = week
	}
}

// RunWithBasePath overrides the configured ledger workbook path.
func RunWithBasePath(path string) RunOption {
	return func(opts *RunOptions) {
		opts.BasePath = path
	}
}

// RunWithOutputDir overrides the configured artifact directory.
func RunWithOutputDir(dir string) RunOption {
	return func(opts *RunOptions) {
		opts.OutputDir = dir
	}
}

// RunWithPlatform restricts the run to a single platform.
func RunWithPlatform(platform string) RunOption {
	return func(opts *RunOptions) {
		opts.Platform = platform
	}
}

// RunWithDryRun enables dry-run mode (report metrics, write nothing).
func RunWithDryRun(enabled bool) RunOption {
	return func(opts *RunOptions) {
		opts.DryRun = enabled
	}
}

// RunWithFailOnInvalidArticul aborts the run on the first input file
// that carries articuls failing validation.
func RunWithFailOnInvalidArticul(enabled bool) RunOption {
	return func(opts *RunOptions) {
		opts.FailOnInvalidArticul = enabled
	}
}

// RunWithSkipParquet suppresses the parquet export for this run.
func RunWithSkipParquet(enabled bool) RunOption {
	return func(opts *RunOptions) {
		opts.SkipParquet = enabled
	}
}
