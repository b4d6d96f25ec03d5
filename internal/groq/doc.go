// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package groq provides Groq API integration for roadmap text generation.
//
// Groq serves open models (Llama, Mixtral, Gemma) through an OpenAI-compatible
// chat completions API. This package implements secure communication with that
// API including retry logic and validation.
//
// # Key Types
//
//   - Client: HTTP client for the Groq API with TLS and retry support
//   - ChatMessage: Chat message compatible with the OpenAI message format
//   - ChatResponse: Completion response with GetContent for the first choice
//   - ModelInfo: Model metadata returned by ListModels
//
// # Usage
//
// Create a client and send a chat request:
//
//	client := groq.NewClient(apiKey)
//	resp, err := client.Chat(ctx, []groq.ChatMessage{
//	    groq.NewUserMessage("List five steps to learn Go"),
//	})
//
// # Security
//
// API keys are never logged; log lines carry a SHA-256 fingerprint prefix
// instead. All requests use TLS 1.2+ and response bodies are size-capped.
package groq
