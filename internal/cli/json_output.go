// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output envelope for --json mode.
//
// Every command that supports --json emits a single JSONResponse on
// stdout. Status lines and prompts stay on stderr so the JSON document
// remains parseable in pipelines.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/pathforge/internal/groq"
)

// =============================================================================
// JSON RESPONSE ENVELOPE
// =============================================================================

// JSONResponse is the envelope for all --json output.
type JSONResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *string     `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
	Command   string      `json:"command,omitempty"`
}

// NewJSONResponse creates a successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates an error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	msg := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the response to stdout with indentation.
func (r *JSONResponse) Print() {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON output: %v\n", err)
	}
}

// String returns the response as an indented JSON string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"encoding failed: %v"}`, err)
	}
	return string(data)
}

// StderrPrintln writes a status line to stderr, keeping stdout clean
// for JSON output and artifacts.
func StderrPrintln(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
}

// =============================================================================
// COMMAND DATA PAYLOADS
// =============================================================================

// GenerateData is the payload for generate --json.
type GenerateData struct {
	Topic       string   `json:"topic"`
	Level       string   `json:"level"`
	Duration    string   `json:"duration"`
	Theme       string   `json:"theme"`
	Steps       []string `json:"steps"`
	PNGPath     string   `json:"png_path"`
	TxtPath     string   `json:"txt_path"`
	Fallback    bool     `json:"fallback"`
	GeneratedAt string   `json:"generated_at"`
}

// ThemeEntry describes one diagram theme with its colors as hex strings.
type ThemeEntry struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	BoxFill    string `json:"box_fill"`
	Line       string `json:"line"`
	Text       string `json:"text"`
}

// ThemesData is the payload for themes --json.
type ThemesData struct {
	Themes  []ThemeEntry `json:"themes"`
	Default string       `json:"default"`
}

// ModelsData is the payload for models --json.
type ModelsData struct {
	Models []groq.ModelInfo `json:"models"`
	Count  int              `json:"count"`
}

// ConfigData is the payload for config --json.
type ConfigData struct {
	Key    string                 `json:"key,omitempty"`
	Value  interface{}            `json:"value,omitempty"`
	Values map[string]interface{} `json:"values,omitempty"`
	Path   string                 `json:"path,omitempty"`
}

// VersionData is the payload for version --json.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}
