// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes generated roadmaps to text artifacts.
//
// The rendered PNG is the primary output; this package produces the
// companion formats that travel alongside it or replace it in
// machine-to-machine use.
//
// # Key Types
//
//   - Exporter: Common interface over all formats
//   - Options: Export configuration (output directory, metadata, timestamps)
//   - TextExporter: Plain step list, one milestone per line
//   - JSONExporter: Machine-readable with full plan metadata
//   - MarkdownExporter: Human-readable roadmap document
//
// # Usage
//
// Export a plan with a generated filename:
//
//	path, err := export.ExportToFile(p, export.NewMarkdownExporter(nil), nil)
//
// Export to a specific file:
//
//	err := export.ExportTo(p, export.NewTextExporter(nil), "roadmap.txt")
//
// Look up an exporter by format name (CLI flag values):
//
//	exp, err := export.ForFormat("json")
package export
