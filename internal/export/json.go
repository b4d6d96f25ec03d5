// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"

	"github.com/jeranaias/pathforge/internal/plan"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports plans to JSON format.
// NOTE: JSON exports always include the complete plan structure and do not
// respect IncludeMetadata. This ensures the exported JSON is a faithful
// representation of the plan that can be re-imported or fed to other tools.
type JSONExporter struct {
	// Options are accepted for consistency with other exporters but do not
	// affect the output.
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts a plan to JSON format.
// NOTE: This always exports the complete plan regardless of options.
func (e *JSONExporter) Export(p *plan.Plan) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("plan is nil")
	}

	return json.MarshalIndent(p, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
