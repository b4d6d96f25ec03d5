// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - configuration management command.
//
// Command: pathforge config
// Short:   Get, set, and list configuration values
//
// Subcommands:
//   list               Show all configuration values (secrets masked)
//   get KEY            Show one effective value (raw, for scripting)
//   set KEY VALUE      Set a value and save the config file
//   path               Show the config file path
//
// Keys use dot notation matching the config file sections, e.g.
// render.theme, llm.model, server.port.

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/pathforge/internal/config"
	"github.com/jeranaias/pathforge/internal/util"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "list", "show":
		return handleConfigList(args)
	case "get":
		return handleConfigGet(args, parser)
	case "set":
		return handleConfigSet(args, parser)
	case "path":
		return handleConfigPath(args)
	default:
		return NewValidationError("subcommand", parser.Subcommand(),
			"expected get, set, list, or path", "pathforge config get render.theme")
	}
}

// loadConfig loads the effective configuration for a command,
// downgrading a file load failure to a warning when defaults suffice.
func loadConfig(command string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		if cfg == nil {
			return nil, NewCommandError(command, "load config", "configuration is invalid", err)
		}
		StderrPrintln("Warning: %v (using defaults)", err)
	}
	return cfg, nil
}

// loadConfigFile loads the config file only, without environment
// overrides. Used by set so env-provided secrets are never written
// back to disk.
func loadConfigFile() (*config.Config, string, error) {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return nil, "", NewCommandError("config", "load config", "cannot resolve config directory", err)
	}

	cfg := config.Default()
	if _, statErr := os.Stat(path); statErr == nil {
		if err := config.LoadTOML(cfg, path); err != nil {
			return nil, "", NewCommandError("config", "load config", "config file is invalid", err)
		}
	}
	return cfg, path, nil
}

func handleConfigList(args Args) error {
	cfg, err := loadConfig("config")
	if err != nil {
		return err
	}

	keys := config.GetAllKeys()
	values := make(map[string]interface{}, len(keys))
	for _, key := range keys {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		values[key] = maskSecret(key, value)
	}

	if args.JSON {
		NewJSONResponse("config", ConfigData{Values: values}).Print()
		return nil
	}

	keyWidth := 0
	for _, key := range keys {
		if w := util.StringWidth(key); w > keyWidth {
			keyWidth = w
		}
	}

	fmt.Println(TitleStyle.Render("Configuration"))
	for _, key := range keys {
		value, ok := values[key]
		if !ok {
			continue
		}
		fmt.Printf("%s = %v\n", DimStyle.Render(util.PadRight(key, keyWidth)), value)
	}
	return nil
}

func handleConfigGet(args Args, parser *ArgParser) error {
	key := parser.Positional(1)
	if key == "" {
		return NewValidationError("key", "", "a key is required", "pathforge config get render.theme")
	}

	cfg, err := loadConfig("config")
	if err != nil {
		return err
	}

	value, err := cfg.Get(key)
	if err != nil {
		return NewNotFoundError("config key", key)
	}

	if args.JSON {
		NewJSONResponse("config", ConfigData{Key: key, Value: value}).Print()
		return nil
	}
	fmt.Printf("%v\n", value)
	return nil
}

func handleConfigSet(args Args, parser *ArgParser) error {
	key := parser.Positional(1)
	value := JoinPositionalArgs(parser, 2)
	if key == "" || value == "" {
		return NewValidationError("arguments", "", "a key and value are required",
			"pathforge config set render.theme dark")
	}

	cfg, path, err := loadConfigFile()
	if err != nil {
		return err
	}

	if _, err := cfg.Get(key); err != nil {
		return NewNotFoundError("config key", key)
	}
	if err := cfg.Set(key, value); err != nil {
		return NewValidationError(key, value, err.Error(), "pathforge config set server.port 9090")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return NewCommandError("config", "save config", "failed to write config file", err)
	}

	if args.JSON {
		NewJSONResponse("config", ConfigData{Key: key, Value: maskSecret(key, value), Path: path}).Print()
		return nil
	}
	fmt.Println(SuccessStyle.Render("Saved: ") + fmt.Sprintf("%s = %v", key, maskSecret(key, value)))
	return nil
}

func handleConfigPath(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return NewCommandError("config", "load config", "cannot resolve config directory", err)
	}

	if args.JSON {
		NewJSONResponse("config", ConfigData{Path: path}).Print()
		return nil
	}
	fmt.Println(path)
	return nil
}

// maskSecret hides secret values in listings. Explicit get returns the
// raw value; only the aggregate views mask.
func maskSecret(key string, value interface{}) interface{} {
	s, ok := value.(string)
	if !ok || s == "" {
		return value
	}
	if !strings.HasSuffix(key, "api_key") && !strings.HasSuffix(key, "auth_token") {
		return value
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
