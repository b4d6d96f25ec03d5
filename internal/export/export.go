// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export.go - exporter interface, file naming, and shared helpers
package export

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/jeranaias/pathforge/internal/plan"
	"github.com/jeranaias/pathforge/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for roadmap exporters.
type Exporter interface {
	// Export converts a plan to the target format and returns the content.
	Export(p *plan.Plan) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md", ".json").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where generated filenames are placed.
	// Default: current working directory
	OutputDir string

	// Timestamped appends a timestamp to generated filenames so repeated
	// exports of the same topic never overwrite each other.
	Timestamped bool

	// IncludeMetadata includes a metadata header (level, duration, dates)
	// in formats that support one.
	IncludeMetadata bool

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:       ".",
		Timestamped:     false,
		IncludeMetadata: true,
		OpenAfterExport: false,
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile exports a plan to a file with a generated name and returns
// the output file path. The name is derived from the plan topic, so
// "Machine Learning" becomes roadmap_Machine_Learning.md and stays stable
// across runs unless opts.Timestamped is set.
func ExportToFile(p *plan.Plan, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(p)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := "roadmap_" + sanitizeFilename(p.Topic)
	if opts.Timestamped {
		filename += "_" + time.Now().Format("20060102_150405")
	}
	filename += exporter.FileExtension()

	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if opts.OpenAfterExport {
		if err := Open(outputPath); err != nil {
			// Non-fatal, the file was still created. Stdout stays clean
			// for machine-readable output.
			fmt.Fprintf(os.Stderr, "Warning: could not open file: %v\n", err)
		}
	}

	return outputPath, nil
}

// ExportTo exports a plan to an exact path, creating parent directories
// as needed. Used when the caller controls naming, such as the configured
// roadmap.txt artifact written next to the PNG.
func ExportTo(p *plan.Plan, exporter Exporter, path string) error {
	content, err := exporter.Export(p)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// =============================================================================
// FORMAT REGISTRY
// =============================================================================

// ForFormat returns the exporter for a format name as given on the command
// line. Recognized names: txt, text, json, md, markdown.
func ForFormat(name string) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "txt", "text":
		return NewTextExporter(nil), nil
	case "json":
		return NewJSONExporter(nil), nil
	case "md", "markdown":
		return NewMarkdownExporter(nil), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (valid: %s)", name, strings.Join(Formats(), ", "))
	}
}

// Formats returns the canonical format names.
func Formats() []string {
	return []string{"json", "markdown", "text"}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	// Limit length
	maxLen := 50
	runes := []rune(s)
	if len(runes) > maxLen {
		s = string(runes[:maxLen])
	}

	// Replace problematic characters (Windows and Unix)
	replacer := map[rune]rune{
		'/':  '-',
		'\\': '-',
		':':  '-',
		'*':  '-',
		'?':  '-',
		'"':  '-',
		'<':  '-',
		'>':  '-',
		'|':  '-',
		' ':  '_',
		'\t': '_',
		'\n': '_',
		'\r': '_',
	}

	result := []rune{}
	for _, r := range s {
		if replacement, found := replacer[r]; found {
			result = append(result, replacement)
		} else if r < 32 || r == 127 {
			// Replace control characters
			result = append(result, '-')
		} else {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "roadmap"
	}

	return string(result)
}

// Open opens a file in the default application for the OS.
func Open(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		// Properly quote path for Windows cmd - use quoted empty string for window title
		// and the path should be the last argument
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
