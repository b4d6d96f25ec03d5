// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// models.go - Groq model listing command.
//
// Command: pathforge models
// Short:   List models available on the Groq API (requires API key)
//
// Examples:
//   pathforge models
//   pathforge models --json

package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jeranaias/pathforge/internal/groq"
)

// modelsTimeout bounds the models API call.
const modelsTimeout = 30 * time.Second

// HandleModels handles the "models" command.
func HandleModels(args Args) error {
	cfg, err := loadConfig("models")
	if err != nil {
		return err
	}
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("%w: set GROQ_API_KEY or llm.api_key", groq.ErrNotConfigured)
	}

	status(args, "Fetching models from Groq...")

	ctx, cancel := context.WithTimeout(context.Background(), modelsTimeout)
	defer cancel()

	models, err := buildClient(cfg).ListModels(ctx)
	if err != nil {
		return err
	}

	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })

	if args.JSON {
		NewJSONResponse("models", ModelsData{Models: models, Count: len(models)}).Print()
		return nil
	}

	fmt.Println(TitleStyle.Render("Groq Models"))
	for _, m := range models {
		marker := "  "
		if m.ID == cfg.LLM.Model {
			marker = HighlightStyle.Render("* ")
		}
		line := fmt.Sprintf("%s%-40s %s", marker, m.ID, DimStyle.Render(m.OwnedBy))
		if m.ContextWindow > 0 {
			line += DimStyle.Render(fmt.Sprintf("  %d ctx", m.ContextWindow))
		}
		if !m.Active {
			line += " " + WarningStyle.Render("[inactive]")
		}
		fmt.Println(line)
	}
	fmt.Println()
	fmt.Println(DimStyle.Render(fmt.Sprintf("%d models; * marks the configured model", len(models))))
	return nil
}
