// Package main provides the entry point for the salesledger CLI tool.
package main

import (
	"os"

	"github.com/mosaic-etl/salesledger/cmd/salesledger/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application := app.New(version, commit, date, builtBy)

	// Create context with signal handling for graceful shutdown
	ctx, cancel := app.Context()
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		app.ExitOnError(err)
	}
}
