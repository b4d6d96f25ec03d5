// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for pathforge.

package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdGenerate Command = iota
	CmdServe
	CmdThemes
	CmdModels
	CmdConfig
	CmdVersion
	CmdHelp
)

// commandName returns the canonical name for a command, used in the
// JSON envelope.
func commandName(cmd Command) string {
	switch cmd {
	case CmdGenerate:
		return "generate"
	case CmdServe:
		return "serve"
	case CmdThemes:
		return "themes"
	case CmdModels:
		return "models"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	default:
		return "help"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Cmd is the resolved command, also returned by Parse.
	Cmd Command

	// Global flags
	JSON    bool // Output in JSON format
	Verbose bool
	Quiet   bool // Suppress status lines on stderr

	// generate
	Topic    string
	Level    string
	Duration string
	Theme    string
	Output   string
	Format   string
	Fallback bool
	NoOpen   bool

	// serve
	Addr string

	// Subcommand for commands that take one (config)
	Subcommand string

	// Unknown holds an unrecognized command name, reported as a usage
	// error by the dispatcher.
	Unknown string

	// Raw args (remaining after the command name)
	Raw []string
}

const usageText = `pathforge - AI learning roadmap generator

Pathforge turns a topic, skill level, and timeframe into an ordered
learning roadmap and renders it as a flowchart PNG.

It provides:
  - LLM-backed roadmap generation via the Groq API
  - Deterministic fallback plans for offline use
  - PNG flowchart rendering with selectable themes
  - Text, Markdown, and JSON exports
  - An HTTP API serving the same pipeline

Usage:
  pathforge generate [topic] [flags]    Generate a roadmap
  pathforge serve [--addr HOST:PORT]    Run the HTTP API server
  pathforge themes                      List diagram themes
  pathforge models                      List Groq models (requires API key)
  pathforge config <get|set|list|path>  Configuration management
  pathforge version                     Show version information
  pathforge help                        Show this help

Generate Flags:
  -t, --topic TEXT    Topic to build a roadmap for (or pass as positional args)
  -l, --level LEVEL   Skill level: beginner, intermediate, advanced (default: beginner)
  -d, --duration TEXT Timeframe, e.g. "3 months", "6 weeks" (default: "3 months")
      --theme NAME    Diagram theme: purple, blue, dark (default from config)
  -o, --output DIR    Output directory for artifacts (default from config)
      --format NAME   Additional export next to the PNG: text, markdown, json
      --fallback      Use the built-in fallback plan when generation fails
      --no-open       Do not open the PNG after rendering

Config Commands:
  pathforge config list               Show all configuration values
  pathforge config get KEY            Show one value (dot notation, e.g. render.theme)
  pathforge config set KEY VALUE      Set and save a value
  pathforge config path               Show the config file path

Global Flags:
  --json           Output as JSON
  --verbose        Debug output
  -q, --quiet      Suppress status lines

Environment:
  GROQ_API_KEY     API key for generation (overrides llm.api_key)
  NO_COLOR         Disable colored output

Examples:
  # Basic usage
  pathforge generate machine learning
  pathforge generate --topic "Rust" --level advanced --duration "6 months"
  pathforge generate --theme dark --output ./out --no-open

  # Scripting
  pathforge generate --topic Go --json      Roadmap JSON on stdout
  pathforge themes --json                   Theme palette as JSON
  pathforge config get llm.model            Print one config value

  # Server
  pathforge serve                           Serve on the configured address
  pathforge serve --addr 0.0.0.0:9090       Override the listen address

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("pathforge version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	args := os.Args[1:]

	// Parse global flags first; they are valid anywhere on the line.
	remaining, parsedArgs := parseGlobalFlags(args)

	// No command defaults to help.
	if len(remaining) == 0 {
		parsedArgs.Cmd = CmdHelp
		return CmdHelp, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "generate", "gen", "g":
		parseGenerateArgs(&parsedArgs, remaining)
		parsedArgs.Cmd = CmdGenerate

	case "serve", "server":
		parseServeArgs(&parsedArgs, remaining)
		parsedArgs.Cmd = CmdServe

	case "themes", "theme":
		parsedArgs.Cmd = CmdThemes

	case "models":
		parsedArgs.Cmd = CmdModels

	case "config", "cfg":
		// Detailed argument parsing is done in config.go HandleConfig.
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
		}
		parsedArgs.Cmd = CmdConfig

	case "version", "--version":
		parsedArgs.Cmd = CmdVersion

	case "help", "-h", "--help":
		parsedArgs.Cmd = CmdHelp

	default:
		parsedArgs.Unknown = cmd
		parsedArgs.Cmd = CmdHelp
	}

	return parsedArgs.Cmd, parsedArgs
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for _, arg := range args {
		switch arg {
		case "--json":
			parsedArgs.JSON = true
		case "--verbose":
			parsedArgs.Verbose = true
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs
}

// parseGenerateArgs parses generate command specific arguments.
// Positional arguments are joined into the topic so shell quoting is
// optional: "pathforge generate machine learning" works.
func parseGenerateArgs(args *Args, remaining []string) {
	var topic []string

	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "-t", "--topic":
			if i+1 < len(remaining) {
				i++
				args.Topic = remaining[i]
			}
		case "-l", "--level":
			if i+1 < len(remaining) {
				i++
				args.Level = remaining[i]
			}
		case "-d", "--duration":
			if i+1 < len(remaining) {
				i++
				args.Duration = remaining[i]
			}
		case "--theme":
			if i+1 < len(remaining) {
				i++
				args.Theme = remaining[i]
			}
		case "-o", "--output":
			if i+1 < len(remaining) {
				i++
				args.Output = remaining[i]
			}
		case "--format":
			if i+1 < len(remaining) {
				i++
				args.Format = remaining[i]
			}
		case "--fallback":
			args.Fallback = true
		case "--no-open":
			args.NoOpen = true
		default:
			switch {
			case strings.HasPrefix(arg, "--topic="):
				args.Topic = strings.TrimPrefix(arg, "--topic=")
			case strings.HasPrefix(arg, "--level="):
				args.Level = strings.TrimPrefix(arg, "--level=")
			case strings.HasPrefix(arg, "--duration="):
				args.Duration = strings.TrimPrefix(arg, "--duration=")
			case strings.HasPrefix(arg, "--theme="):
				args.Theme = strings.TrimPrefix(arg, "--theme=")
			case strings.HasPrefix(arg, "--output="):
				args.Output = strings.TrimPrefix(arg, "--output=")
			case strings.HasPrefix(arg, "--format="):
				args.Format = strings.TrimPrefix(arg, "--format=")
			case !strings.HasPrefix(arg, "-"):
				topic = append(topic, arg)
			}
		}
		i++
	}

	if args.Topic == "" {
		args.Topic = strings.Join(topic, " ")
	}
}

// parseServeArgs parses serve command specific arguments.
func parseServeArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]

		switch arg {
		case "-a", "--addr":
			if i+1 < len(remaining) {
				i++
				args.Addr = remaining[i]
			}
		default:
			if strings.HasPrefix(arg, "--addr=") {
				args.Addr = strings.TrimPrefix(arg, "--addr=")
			}
		}
	}
}

// =============================================================================
// SMALL COMMAND HANDLERS
// =============================================================================

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		NewJSONResponse("version", data).Print()
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command and unknown commands. Unknown
// commands report a usage error on stderr and exit nonzero.
func HandleHelp(args Args) {
	if args.Unknown != "" {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+fmt.Sprintf("unknown command %q", args.Unknown))
		fmt.Fprintln(os.Stderr)
		PrintUsage()
		os.Exit(ExitUsageError)
	}
	PrintUsage()
}
