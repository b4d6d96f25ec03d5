// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management
// for pathforge.
//
// Supports both TOML and JSON configuration formats, with sensible
// defaults, .env loading, environment variable overrides, and
// validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - LLMConfig: Groq client settings (key, model, retries)
//   - RenderConfig: Chart rendering settings (theme, sizes, font)
//   - OutputConfig: Artifact locations and naming
//   - ServerConfig: HTTP serve-mode settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (PATHFORGE_*, GROQ_API_KEY)
//   - A local .env file
//   - ~/.pathforge/config.toml
//   - ~/.pathforge/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Build render options from it:
//
//	opts, err := cfg.RenderOptions()
package config
