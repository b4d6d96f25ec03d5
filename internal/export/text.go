// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/jeranaias/pathforge/internal/plan"
)

// =============================================================================
// TEXT EXPORTER
// =============================================================================

// TextExporter exports a plan as a plain step list, one milestone per line
// with no numbering or decoration.
// NOTE: Text exports ignore IncludeMetadata. The plain list is the artifact
// format written alongside the rendered PNG, and downstream consumers parse
// it line by line; a header would change its meaning.
type TextExporter struct {
	options *Options
}

// NewTextExporter creates a new plain text exporter.
func NewTextExporter(opts *Options) *TextExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &TextExporter{options: opts}
}

// Export converts a plan to plain text.
func (e *TextExporter) Export(p *plan.Plan) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("plan is nil")
	}

	return []byte(strings.Join(p.Steps, "\n") + "\n"), nil
}

// FileExtension returns the file extension for plain text.
func (e *TextExporter) FileExtension() string {
	return ".txt"
}

// MimeType returns the MIME type for plain text.
func (e *TextExporter) MimeType() string {
	return "text/plain; charset=utf-8"
}
