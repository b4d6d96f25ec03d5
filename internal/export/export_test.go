// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/pathforge/internal/plan"
)

func testPlan() *plan.Plan {
	return &plan.Plan{
		Topic:    "Machine Learning",
		Level:    plan.LevelBeginner,
		Duration: "3 months",
		Steps: []string{
			"Learn Python basics",
			"Study linear algebra",
			"Build a small classifier",
		},
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// =============================================================================
// TEXT EXPORTER
// =============================================================================

func TestTextExporter(t *testing.T) {
	content, err := NewTextExporter(nil).Export(testPlan())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	want := "Learn Python basics\nStudy linear algebra\nBuild a small classifier\n"
	if string(content) != want {
		t.Errorf("Export() = %q, want %q", content, want)
	}
}

func TestTextExporter_IgnoresMetadataOption(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeMetadata = true

	content, err := NewTextExporter(opts).Export(testPlan())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	// The artifact format is bare lines regardless of metadata options.
	if strings.Contains(string(content), "Level") {
		t.Errorf("text export should not contain a metadata header, got %q", content)
	}
}

func TestTextExporter_NilPlan(t *testing.T) {
	if _, err := NewTextExporter(nil).Export(nil); err == nil {
		t.Error("Export(nil) should return error")
	}
}

func TestTextExporter_EmptySteps(t *testing.T) {
	p := testPlan()
	p.Steps = nil

	content, err := NewTextExporter(nil).Export(p)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if string(content) != "\n" {
		t.Errorf("Export() with no steps = %q, want single newline", content)
	}
}

// =============================================================================
// JSON EXPORTER
// =============================================================================

func TestJSONExporter(t *testing.T) {
	content, err := NewJSONExporter(nil).Export(testPlan())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	if decoded["topic"] != "Machine Learning" {
		t.Errorf("topic = %v, want Machine Learning", decoded["topic"])
	}
	// Levels marshal as display names, not integers.
	if decoded["level"] != "Beginner" {
		t.Errorf("level = %v, want Beginner", decoded["level"])
	}
	steps, ok := decoded["steps"].([]any)
	if !ok || len(steps) != 3 {
		t.Errorf("steps = %v, want 3-element array", decoded["steps"])
	}
	if decoded["fallback"] != false {
		t.Errorf("fallback = %v, want false", decoded["fallback"])
	}
	if _, err := time.Parse(time.RFC3339, decoded["generated_at"].(string)); err != nil {
		t.Errorf("generated_at is not RFC3339: %v", err)
	}
}

func TestJSONExporter_RoundTrip(t *testing.T) {
	original := testPlan()

	content, err := NewJSONExporter(nil).Export(original)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded plan.Plan
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("re-import failed: %v", err)
	}

	if decoded.Topic != original.Topic {
		t.Errorf("Topic = %q, want %q", decoded.Topic, original.Topic)
	}
	if decoded.Level != original.Level {
		t.Errorf("Level = %v, want %v", decoded.Level, original.Level)
	}
	if len(decoded.Steps) != len(original.Steps) {
		t.Errorf("Steps count = %d, want %d", len(decoded.Steps), len(original.Steps))
	}
	if !decoded.GeneratedAt.Equal(original.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", decoded.GeneratedAt, original.GeneratedAt)
	}
}

func TestJSONExporter_NilPlan(t *testing.T) {
	if _, err := NewJSONExporter(nil).Export(nil); err == nil {
		t.Error("Export(nil) should return error")
	}
}

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

func TestMarkdownExporter(t *testing.T) {
	content, err := NewMarkdownExporter(nil).Export(testPlan())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	doc := string(content)

	wantParts := []string{
		"title: Machine Learning",
		"level: Beginner",
		"steps: 3",
		"generator: pathforge",
		"# Machine Learning Roadmap",
		"## Plan Details",
		"- **Duration**: 3 months",
		"## Milestones",
		"1. Learn Python basics",
		"3. Build a small classifier",
	}
	for _, part := range wantParts {
		if !strings.Contains(doc, part) {
			t.Errorf("markdown export missing %q", part)
		}
	}

	if strings.Contains(doc, "fallback") {
		t.Error("non-fallback plan should not mention fallback")
	}
}

func TestMarkdownExporter_TitleCasesHeading(t *testing.T) {
	p := testPlan()
	p.Topic = "machine learning"

	content, err := NewMarkdownExporter(nil).Export(p)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	doc := string(content)

	if !strings.Contains(doc, "# Machine Learning Roadmap") {
		t.Error("heading should be title-cased")
	}
	// Frontmatter keeps the topic exactly as entered.
	if !strings.Contains(doc, "title: machine learning") {
		t.Error("frontmatter title should keep the original casing")
	}
}

func TestMarkdownExporter_NoMetadata(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeMetadata = false

	content, err := NewMarkdownExporter(opts).Export(testPlan())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	doc := string(content)

	if strings.HasPrefix(doc, "---") {
		t.Error("export without metadata should not start with frontmatter")
	}
	if strings.Contains(doc, "## Plan Details") {
		t.Error("export without metadata should not contain details section")
	}
	if !strings.Contains(doc, "## Milestones") {
		t.Error("milestones section should always be present")
	}
}

func TestMarkdownExporter_FallbackNote(t *testing.T) {
	p := testPlan()
	p.Fallback = true

	content, err := NewMarkdownExporter(nil).Export(p)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	doc := string(content)

	if !strings.Contains(doc, "fallback: true") {
		t.Error("frontmatter should flag fallback plans")
	}
	if !strings.Contains(doc, "built-in fallback") {
		t.Error("details should note the fallback source")
	}
}

func TestMarkdownExporter_Validation(t *testing.T) {
	tests := []struct {
		name string
		plan *plan.Plan
	}{
		{"nil plan", nil},
		{
			"no steps",
			&plan.Plan{Topic: "Go", GeneratedAt: time.Now()},
		},
		{
			"zero timestamp",
			&plan.Plan{Topic: "Go", Steps: []string{"Learn syntax"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMarkdownExporter(nil).Export(tt.plan); err == nil {
				t.Error("Export() should return error")
			}
		})
	}
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

func TestExportToFile(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()

	path, err := ExportToFile(testPlan(), NewTextExporter(opts), opts)
	if err != nil {
		t.Fatalf("ExportToFile() error = %v", err)
	}

	if filepath.Base(path) != "roadmap_Machine_Learning.txt" {
		t.Errorf("filename = %q, want roadmap_Machine_Learning.txt", filepath.Base(path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(content), "Learn Python basics") {
		t.Error("exported file missing step content")
	}
}

func TestExportToFile_Timestamped(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()
	opts.Timestamped = true

	path, err := ExportToFile(testPlan(), NewTextExporter(opts), opts)
	if err != nil {
		t.Fatalf("ExportToFile() error = %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "roadmap_Machine_Learning_") {
		t.Errorf("filename = %q, want timestamped roadmap_Machine_Learning_ prefix", base)
	}
	if !strings.HasSuffix(base, ".txt") {
		t.Errorf("filename = %q, want .txt extension", base)
	}
}

func TestExportTo(t *testing.T) {
	// Parent directories are created on demand.
	path := filepath.Join(t.TempDir(), "out", "roadmap.txt")

	if err := ExportTo(testPlan(), NewTextExporter(nil), path); err != nil {
		t.Fatalf("ExportTo() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if len(content) == 0 {
		t.Error("exported file is empty")
	}
}

func TestExportTo_ExportError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadmap.md")

	err := ExportTo(nil, NewMarkdownExporter(nil), path)
	if err == nil {
		t.Fatal("ExportTo(nil) should return error")
	}
	if !strings.Contains(err.Error(), "export failed") {
		t.Errorf("error = %v, want export failed", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("failed export should not leave a file behind")
	}
}

// =============================================================================
// FORMAT REGISTRY
// =============================================================================

func TestForFormat(t *testing.T) {
	tests := []struct {
		name    string
		wantExt string
		wantErr bool
	}{
		{"txt", ".txt", false},
		{"text", ".txt", false},
		{"json", ".json", false},
		{"md", ".md", false},
		{"markdown", ".md", false},
		{"MARKDOWN", ".md", false},
		{" json ", ".json", false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := ForFormat(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ForFormat() should return error")
				}
				if !strings.Contains(err.Error(), "valid:") {
					t.Errorf("error = %v, should list valid formats", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForFormat() error = %v", err)
			}
			if exp.FileExtension() != tt.wantExt {
				t.Errorf("FileExtension() = %q, want %q", exp.FileExtension(), tt.wantExt)
			}
		})
	}
}

func TestMimeTypes(t *testing.T) {
	tests := []struct {
		exporter Exporter
		want     string
	}{
		{NewTextExporter(nil), "text/plain; charset=utf-8"},
		{NewJSONExporter(nil), "application/json"},
		{NewMarkdownExporter(nil), "text/markdown"},
	}

	for _, tt := range tests {
		if got := tt.exporter.MimeType(); got != tt.want {
			t.Errorf("MimeType() = %q, want %q", got, tt.want)
		}
	}
}

// =============================================================================
// FILENAME SANITIZATION
// =============================================================================

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Rust", "Rust"},
		{"spaces", "Machine Learning", "Machine_Learning"},
		{"path separators", "a/b\\c", "a-b-c"},
		{"windows reserved", `q:u*o"t<e>s|`, "q-u-o-t-e-s-"},
		{"control chars", "tab\there", "tab_here"},
		{"empty", "", "roadmap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.input); got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	long := strings.Repeat("x", 80)
	got := sanitizeFilename(long)
	if len(got) != 50 {
		t.Errorf("sanitizeFilename() length = %d, want 50", len(got))
	}
}
