// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// generate.go - roadmap generation command.
//
// Command: pathforge generate
// Short:   Generate a learning roadmap and render it to PNG
//
// Examples:
//   pathforge generate machine learning
//   pathforge generate --topic "Rust" --level advanced --duration "6 months"
//   pathforge generate --topic Go --json --no-open
//
// The PNG and text artifacts are written to the configured output
// directory. With --json the roadmap is printed as a JSON envelope on
// stdout instead of the styled summary.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"

	"github.com/jeranaias/pathforge/internal/config"
	"github.com/jeranaias/pathforge/internal/export"
	"github.com/jeranaias/pathforge/internal/groq"
	"github.com/jeranaias/pathforge/internal/plan"
	"github.com/jeranaias/pathforge/internal/render"
	"github.com/jeranaias/pathforge/internal/util"
)

// markdownRenderer renders the roadmap preview. A nil renderer means
// glamour could not initialize and previews fall back to plain text.
var markdownRenderer *glamour.TermRenderer

func init() {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err == nil {
		markdownRenderer = renderer
	}
}

// HandleGenerate handles the "generate" command.
func HandleGenerate(args Args) error {
	cfg, err := loadConfig("generate")
	if err != nil {
		return err
	}

	// Flag overrides on top of the loaded configuration.
	if args.Theme != "" {
		cfg.Render.Theme = args.Theme
	}
	if args.Output != "" {
		cfg.Output.Dir = args.Output
	}

	// Validate everything user-controlled before spending an LLM call.
	if _, err := render.LookupTheme(cfg.Render.Theme); err != nil {
		return err
	}

	var extraExporter export.Exporter
	if args.Format != "" {
		extraExporter, err = export.ForFormat(args.Format)
		if err != nil {
			return NewValidationError("format", args.Format, err.Error(), "--format markdown")
		}
	}

	topic := strings.TrimSpace(args.Topic)
	if topic == "" {
		if args.JSON || !CanPrompt() {
			return NewValidationError("topic", "", "a topic is required",
				`pathforge generate --topic "Machine Learning"`)
		}
		topic, err = promptTopic()
		if err != nil {
			return err
		}
	}

	level := plan.LevelBeginner
	if args.Level != "" {
		level, err = plan.ParseLevel(args.Level)
		if err != nil {
			return NewValidationError("level", args.Level, err.Error(),
				"--level beginner|intermediate|advanced")
		}
	}

	duration := strings.TrimSpace(args.Duration)
	if duration == "" {
		duration = "3 months"
	}

	req := plan.Request{Topic: topic, Level: level, Duration: duration}
	if err := req.Validate(); err != nil {
		return NewValidationError("topic", truncateValue(topic), err.Error(),
			`pathforge generate --topic "Machine Learning"`)
	}

	// Ctrl+C cancels the in-flight LLM call.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := generatePlan(ctx, cfg, args, req)
	if err != nil {
		return err
	}

	opts, err := cfg.RenderOptions()
	if err != nil {
		if errors.Is(err, render.ErrUnknownTheme) {
			return err
		}
		return NewCommandError("generate", "render", "invalid render configuration", err)
	}

	pngPath, txtPath := artifactPaths(cfg)
	if err := render.RenderToFile(p.Steps, opts, pngPath); err != nil {
		return NewCommandError("generate", "render", "failed to render roadmap", err)
	}
	if err := export.ExportTo(p, export.NewTextExporter(nil), txtPath); err != nil {
		return NewCommandError("generate", "export", "failed to write text artifact", err)
	}

	extraPath := ""
	if extraExporter != nil {
		extraPath, err = export.ExportToFile(p, extraExporter, &export.Options{
			OutputDir:       cfg.Output.Dir,
			Timestamped:     cfg.Output.Timestamped,
			IncludeMetadata: true,
		})
		if err != nil {
			return NewCommandError("generate", "export", "failed to write export", err)
		}
	}

	if args.JSON {
		NewJSONResponse("generate", GenerateData{
			Topic:       p.Topic,
			Level:       p.Level.String(),
			Duration:    p.Duration,
			Theme:       cfg.Render.Theme,
			Steps:       p.Steps,
			PNGPath:     pngPath,
			TxtPath:     txtPath,
			Fallback:    p.Fallback,
			GeneratedAt: p.GeneratedAt.UTC().Format(time.RFC3339),
		}).Print()
	} else {
		printGenerateSummary(p, pngPath, txtPath, extraPath)
	}

	if !args.NoOpen && !args.JSON && IsStdoutTTY() {
		if err := export.Open(pngPath); err != nil {
			StderrPrintln("Warning: could not open %s: %v", pngPath, err)
		}
	}

	return nil
}

// generatePlan runs the LLM generation, falling back to the built-in
// plan when permitted. The returned plan is never nil on success.
func generatePlan(ctx context.Context, cfg *config.Config, args Args, req plan.Request) (*plan.Plan, error) {
	fallbackOK := args.Fallback || cfg.LLM.FallbackEnabled

	if cfg.LLM.APIKey == "" {
		if fallbackOK {
			status(args, "No API key configured, using the fallback plan")
			return plan.FallbackPlan(req), nil
		}
		return nil, fmt.Errorf("%w: set GROQ_API_KEY or llm.api_key", groq.ErrNotConfigured)
	}

	status(args, "Generating roadmap for %q (%s, %s)...", req.Topic, req.Level, req.Duration)

	gen := plan.NewGenerator(buildClient(cfg))
	p, err := gen.Generate(ctx, req)
	if err != nil {
		if fallbackOK && plan.IsGenerationFailed(err) {
			status(args, "Generation failed (%v), using the fallback plan", err)
			return plan.FallbackPlan(req), nil
		}
		return nil, err
	}
	return p, nil
}

// buildClient constructs the Groq client from configuration.
func buildClient(cfg *config.Config) *groq.Client {
	client := groq.NewClient(cfg.LLM.APIKey).
		WithTimeout(time.Duration(cfg.LLM.TimeoutSecs) * time.Second).
		WithMaxRetries(cfg.LLM.MaxRetries)
	if cfg.LLM.BaseURL != "" {
		client = client.WithBaseURL(cfg.LLM.BaseURL)
	}
	if cfg.LLM.Model != "" {
		client.SetModel(cfg.LLM.Model)
	}
	return client
}

// promptTopic interactively reads the topic when none was given.
func promptTopic() (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	input, err := line.Prompt("Topic to learn: ")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", NewValidationError("topic", "", "prompt aborted",
				`pathforge generate --topic "Machine Learning"`)
		}
		return "", fmt.Errorf("failed to read topic: %w", err)
	}

	topic := strings.TrimSpace(input)
	if topic == "" {
		return "", NewValidationError("topic", "", "a topic is required",
			`pathforge generate --topic "Machine Learning"`)
	}
	return topic, nil
}

// artifactPaths returns the PNG and text artifact paths, with a shared
// timestamp infix when timestamped output is configured.
func artifactPaths(cfg *config.Config) (string, string) {
	png := cfg.Output.PNGName
	txt := cfg.Output.TxtName
	if cfg.Output.Timestamped {
		stamp := time.Now().Format("20060102_150405")
		png = stampName(png, stamp)
		txt = stampName(txt, stamp)
	}
	return filepath.Join(cfg.Output.Dir, png), filepath.Join(cfg.Output.Dir, txt)
}

// stampName inserts a timestamp before the file extension.
func stampName(name, stamp string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + stamp + ext
}

// printGenerateSummary prints the styled text-mode result.
func printGenerateSummary(p *plan.Plan, pngPath, txtPath, extraPath string) {
	fmt.Println(TitleStyle.Render("Learning Roadmap"))
	fmt.Println(RenderLabel("Topic", p.Topic))
	fmt.Println(RenderLabel("Level", p.Level.String()))
	fmt.Println(RenderLabel("Duration", p.Duration))
	fmt.Println(RenderLabel("Steps", strconv.Itoa(len(p.Steps))))
	if p.Fallback {
		fmt.Println(WarningStyle.Render("Fallback plan (LLM generation unavailable)"))
	}
	fmt.Println()
	fmt.Print(renderStepsPreview(p))
	fmt.Println(RenderSeparator(40))
	fmt.Println(RenderLabel("PNG", pngPath))
	fmt.Println(RenderLabel("Text", txtPath))
	if extraPath != "" {
		fmt.Println(RenderLabel("Export", extraPath))
	}
}

// renderStepsPreview renders the step list, through glamour when stdout
// is a terminal.
func renderStepsPreview(p *plan.Plan) string {
	var sb strings.Builder
	for i, step := range p.Steps {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}
	md := sb.String()

	if !IsStdoutTTY() || markdownRenderer == nil {
		return md
	}
	rendered, err := markdownRenderer.Render(md)
	if err != nil {
		return md
	}
	return rendered
}

// status prints a progress line to stderr unless --quiet is set.
func status(args Args, format string, a ...interface{}) {
	if args.Quiet {
		return
	}
	StderrPrintln(format, a...)
}

// truncateValue shortens long user input for error messages.
func truncateValue(s string) string {
	return util.TruncateRunes(s, 60)
}
