// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// pathforge - AI learning roadmap generator.
//
// Generates ordered learning roadmaps with an LLM and renders them as
// flowchart PNGs, from the command line or over HTTP.
package main

import (
	"github.com/jeranaias/pathforge/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with the cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdGenerate:
		cli.HandleErrorAndExit(cli.HandleGenerate(args), args)
	case cli.CmdServe:
		cli.HandleErrorAndExit(cli.HandleServe(args), args)
	case cli.CmdThemes:
		cli.HandleErrorAndExit(cli.HandleThemes(args), args)
	case cli.CmdModels:
		cli.HandleErrorAndExit(cli.HandleModels(args), args)
	case cli.CmdConfig:
		cli.HandleErrorAndExit(cli.HandleConfig(args), args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	default:
		cli.HandleHelp(args)
	}
}
