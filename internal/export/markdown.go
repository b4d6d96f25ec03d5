// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/pathforge/internal/plan"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports plans to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a plan to Markdown format.
func (e *MarkdownExporter) Export(p *plan.Plan) ([]byte, error) {
	// Validate plan data
	if p == nil {
		return nil, fmt.Errorf("plan is nil")
	}
	if len(p.Steps) == 0 {
		return nil, fmt.Errorf("plan has no steps")
	}
	if p.GeneratedAt.IsZero() {
		return nil, fmt.Errorf("plan has invalid generation timestamp")
	}

	var sb strings.Builder

	// YAML frontmatter with metadata
	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(p.Topic)))
		sb.WriteString(fmt.Sprintf("level: %s\n", p.Level))
		sb.WriteString(fmt.Sprintf("duration: %s\n", escapeYAML(p.Duration)))
		sb.WriteString(fmt.Sprintf("steps: %d\n", len(p.Steps)))
		sb.WriteString(fmt.Sprintf("generated: %s\n", p.GeneratedAt.Format(time.RFC3339)))
		if p.Fallback {
			sb.WriteString("fallback: true\n")
		}
		sb.WriteString(fmt.Sprintf("exported: %s\n", time.Now().Format(time.RFC3339)))
		sb.WriteString("generator: pathforge\n")
		sb.WriteString("---\n\n")
	}

	// Title. Headings get English title casing while the frontmatter keeps
	// the topic exactly as the user typed it. A Caser is stateful, so build
	// one per export rather than sharing.
	caser := cases.Title(language.English, cases.NoLower)
	sb.WriteString(fmt.Sprintf("# %s Roadmap\n\n", escapeMarkdown(caser.String(p.Topic))))

	// Metadata section
	if e.options.IncludeMetadata {
		sb.WriteString("## Plan Details\n\n")
		sb.WriteString(fmt.Sprintf("- **Level**: %s\n", p.Level))
		sb.WriteString(fmt.Sprintf("- **Duration**: %s\n", p.Duration))
		sb.WriteString(fmt.Sprintf("- **Milestones**: %d\n", len(p.Steps)))
		sb.WriteString(fmt.Sprintf("- **Generated**: %s\n", formatTimestamp(p.GeneratedAt)))
		if p.Fallback {
			sb.WriteString("- **Source**: built-in fallback plan (model unavailable)\n")
		}
		sb.WriteString("\n---\n\n")
	}

	// Milestones as an ordered list, matching the top-to-bottom flowchart order
	sb.WriteString("## Milestones\n\n")

	for i, step := range p.Steps {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}

	// Footer
	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Generated by pathforge on %s*\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	// Only escape characters that would break formatting in titles/headings
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML escapes special YAML characters in values.
func escapeYAML(s string) string {
	// Quote if contains special characters (including backslash)
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		// Escape special characters including newlines and backslashes
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
