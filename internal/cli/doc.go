// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution for
// pathforge.
//
// This package implements all CLI commands for the pathforge roadmap
// generator, covering one-shot generation, the HTTP server, and the
// supporting inspection commands.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global and command-specific flags
//   - JSONResponse: Envelope for --json output
//
// # Usage
//
// Parse and execute commands:
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdGenerate:
//	    cli.HandleErrorAndExit(cli.HandleGenerate(args), args)
//	case cli.CmdServe:
//	    cli.HandleErrorAndExit(cli.HandleServe(args), args)
//	// ... other commands
//	}
//
// # Commands Overview
//
//   - generate: Generate a roadmap and render it to PNG and text
//   - serve: Run the HTTP API server
//   - themes: List the available diagram themes
//   - models: List models available on the Groq API
//   - config: Configuration management (get, set, list, path)
//   - version: Version information
//
// All listing commands support a --json flag for scripting.
package cli
