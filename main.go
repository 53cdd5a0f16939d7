// BuzzLink - Georgia Tech alumni search from the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gt-buzzlink/buzzlink/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	// SIGINT is left to each command: the TUI reads Ctrl+C as a key and the
	// line-mode chat uses it to cancel one request.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(cli.BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	})
	code := app.Execute(ctx, os.Args[1:])

	stop()
	os.Exit(code)
}
