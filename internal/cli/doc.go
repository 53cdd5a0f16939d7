// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the buzzlink command line interface.
//
// Commands:
//
//	buzzlink                     Open the chat view (same as "tui")
//	buzzlink tui [--alt-screen]  Open the full-screen chat view
//	buzzlink chat                Line-mode chat with history and slash commands
//	buzzlink ask <query...>      Send one query and print the reply
//	buzzlink config <cmd>        Show, initialize or edit the config file
//	buzzlink doctor              Check the config and the chat endpoint
//	buzzlink version             Print version information
//
// Global flags:
//
//	--config     Config file to use instead of ~/.buzzlink/config.toml
//	--endpoint   Chat backend base URL
//	--timeout    Request timeout in seconds
//	--log-level  debug, info, warn or error
//	--log-file   Write the diagnostic log to this file
//
// A .env file in the working directory is loaded before the config, so
// BUZZLINK_* variables can live there.
package cli
