// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the HTTP surface for roadmap generation.
//
// This package exposes the generate-and-render pipeline over a small JSON
// API plus an embedded browser form, so the tool can run as a shared
// service instead of a one-shot CLI.
//
// # Endpoints
//
//   - GET  /            - Browser form that posts to the API and shows the PNG
//   - POST /api/roadmap - Generate a plan and render it, returns base64 PNG
//   - GET  /api/themes  - List available diagram themes
//   - GET  /healthz     - Liveness and usage counters
//
// # Security Features
//
//   - Bearer token authentication with constant-time comparison
//   - IP allowlist for access control
//   - CORS headers for cross-origin requests
//   - Per-client rate limiting
//   - Security headers (X-Content-Type-Options, X-Frame-Options, etc.)
//
// # Key Types
//
//   - Server: HTTP server with routes and middleware
//   - PlanGenerator: Generation seam, satisfied by *plan.Generator
//   - AuthConfig / CORSConfig / RateLimiter: Middleware configuration
//
// # Usage
//
//	srv := server.NewServer(cfg).WithGenerator(generator)
//	if err := srv.Serve(ctx); err != nil {
//		log.Fatal(err)
//	}
package server
