package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/mosaic-etl/salesledger/pkg/logging"
)

// Execute runs the salesledger CLI with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "salesledger",
		Short:   "Weekly marketplace sales ETL",
		Version: a.version,
		Long: `Salesledger ingests weekly sales exports from marketplaces,
canonicalizes their headers through per-platform alias tables,
validates product codes, deduplicates rows against the accumulated
ledger workbook, and writes the weekly report together with its
quarantine and summary artifacts.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("salesledger {{.Version}}\n")

	rootCmd.AddCommand(a.createLoadWeekCommand())
	rootCmd.AddCommand(a.createExtractCommand())
	rootCmd.AddCommand(a.createVersionCommand())

	return rootCmd
}

// setupCommand configures logging before any command runs.
func (a *App) setupCommand(_ *cobra.Command, _ []string) error {
	logging.Configure(a.loggingConfig())
	return nil
}

// ExitOnError prints the error to stderr and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
