// Package app wires the salesledger CLI together: global flags,
// logging setup, and the command tree.
package app

// App carries the CLI's version information and global flag state.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Global flags, parsed by the root command
	logLevel string
	verbose  bool
	quiet    bool
}

// New creates an App with the given build information.
func New(version, commit, date, builtBy string) *App {
	return &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}
