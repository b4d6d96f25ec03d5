// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// server.go - HTTP server, routes, and roadmap generation handlers
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/pathforge/internal/config"
	"github.com/jeranaias/pathforge/internal/plan"
	"github.com/jeranaias/pathforge/internal/render"
	"github.com/jeranaias/pathforge/internal/util"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// MaxRequestBodySize is the maximum size for a request body (64KB).
	// Roadmap requests are four short strings; anything bigger is abuse.
	MaxRequestBodySize = 64 * 1024

	// ShutdownTimeout is how long in-flight requests get to finish when the
	// server is asked to stop.
	ShutdownTimeout = 10 * time.Second

	// Version is the server version reported by /healthz.
	Version = "0.1.0"
)

// ============================================================================
// SERVER STATS
// ============================================================================

// ServerStats tracks server usage statistics.
type ServerStats struct {
	TotalRequests   int64     `json:"total_requests"`
	RoadmapsServed  int64     `json:"roadmaps_served"`
	FallbacksServed int64     `json:"fallbacks_served"`
	Failures        int64     `json:"failures"`
	StartTime       time.Time `json:"start_time"`
	mu              sync.Mutex
}

// NewServerStats creates a new ServerStats instance.
func NewServerStats() *ServerStats {
	return &ServerStats{
		StartTime: time.Now(),
	}
}

// RecordSuccess records a served roadmap. A fallback plan counts as served
// and is additionally tracked on its own counter.
func (s *ServerStats) RecordSuccess(fallback bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.TotalRequests++
	s.RoadmapsServed++
	if fallback {
		s.FallbacksServed++
	}
}

// RecordFailure records a request that produced no roadmap.
func (s *ServerStats) RecordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.TotalRequests++
	s.Failures++
}

// GetStats returns a copy of the current stats.
func (s *ServerStats) GetStats() ServerStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ServerStats{
		TotalRequests:   s.TotalRequests,
		RoadmapsServed:  s.RoadmapsServed,
		FallbacksServed: s.FallbacksServed,
		Failures:        s.Failures,
		StartTime:       s.StartTime,
	}
}

// Uptime returns the server uptime duration.
func (s *ServerStats) Uptime() time.Duration {
	return time.Since(s.StartTime)
}

// ============================================================================
// SERVER
// ============================================================================

// PlanGenerator produces a learning plan for a request. *plan.Generator
// satisfies it; handler tests substitute a stub.
type PlanGenerator interface {
	Generate(ctx context.Context, req plan.Request) (*plan.Plan, error)
}

// Server is the HTTP server for roadmap generation.
type Server struct {
	cfg    *config.Config
	mux    *http.ServeMux
	server *http.Server

	generator PlanGenerator
	stats     *ServerStats
	auth      *AuthConfig
	cors      *CORSConfig
	limiter   *RateLimiter

	mu sync.RWMutex
}

// NewServer creates a Server from the given configuration. A nil config
// uses the defaults. Auth, CORS, and rate limiting are derived from the
// config's server section.
func NewServer(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		cfg:   cfg,
		mux:   http.NewServeMux(),
		stats: NewServerStats(),
		auth:  AuthConfigFromToken(cfg.Server.AuthToken),
		cors:  CORSConfigForOrigin(cfg.Server.CORSOrigin),
	}
	if cfg.Server.RateLimit > 0 {
		s.limiter = NewRateLimiter(cfg.Server.RateLimit)
	}

	s.setupRoutes()
	return s
}

// WithGenerator sets the plan generator used by the roadmap endpoint.
func (s *Server) WithGenerator(gen PlanGenerator) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generator = gen
	return s
}

// WithAuth sets the authentication configuration.
func (s *Server) WithAuth(auth *AuthConfig) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = auth
	return s
}

// WithRateLimiter sets a custom rate limiter.
func (s *Server) WithRateLimiter(limiter *RateLimiter) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiter = limiter
	return s
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.config().Server.Addr()
}

// UpdateConfig swaps the active configuration, typically from the config
// file watcher. Generation, render, and output settings take effect on the
// next request; listen address, auth token, and rate limit changes need a
// restart.
func (s *Server) UpdateConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

// config returns the active configuration snapshot.
func (s *Server) config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// ============================================================================
// ROUTES
// ============================================================================

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Browser form
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	// API endpoints
	s.mux.HandleFunc("POST /api/roadmap", s.handleRoadmap)
	s.mux.HandleFunc("GET /api/themes", s.handleThemes)

	// Liveness endpoint
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// ============================================================================
// API TYPES
// ============================================================================

// RoadmapRequest is the JSON body for POST /api/roadmap. Level, duration,
// and theme fall back to sensible defaults when omitted.
type RoadmapRequest struct {
	Topic    string `json:"topic"`
	Level    string `json:"level"`
	Duration string `json:"duration"`
	Theme    string `json:"theme"`
}

// RoadmapResponse is the JSON response for POST /api/roadmap. PNG carries
// the rendered flowchart base64-encoded; File names the server-side artifact
// written under the configured output directory.
type RoadmapResponse struct {
	Topic    string   `json:"topic"`
	Level    string   `json:"level"`
	Duration string   `json:"duration"`
	Steps    []string `json:"steps"`
	Theme    string   `json:"theme"`
	PNG      string   `json:"png"`
	File     string   `json:"file"`
	Fallback bool     `json:"fallback"`
}

// ThemesResponse is the JSON response for GET /api/themes.
type ThemesResponse struct {
	Themes  []string `json:"themes"`
	Default string   `json:"default"`
}

// HealthResponse is the JSON response for GET /healthz.
type HealthResponse struct {
	Status          string `json:"status"`
	Version         string `json:"version"`
	GeneratorStatus string `json:"generator_status"`
	Model           string `json:"model"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
	RoadmapsServed  int64  `json:"roadmaps_served"`
	FallbacksServed int64  `json:"fallbacks_served"`
	Failures        int64  `json:"failures"`
}

// ============================================================================
// ROADMAP HANDLER
// ============================================================================

// handleRoadmap handles POST /api/roadmap: generate a plan, render it, write
// the artifact, and return everything as JSON.
func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	cfg := s.config()

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req RoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body exceeds maximum size of %d bytes", MaxRequestBodySize))
			return
		}
		// Log full details internally, return a generic message to the client
		log.Printf("Invalid request body: %v", err)
		s.writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Omitted fields take the same defaults the web form shows.
	levelName := strings.TrimSpace(req.Level)
	if levelName == "" {
		levelName = "beginner"
	}
	level, err := plan.ParseLevel(levelName)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	duration := strings.TrimSpace(req.Duration)
	if duration == "" {
		duration = fmt.Sprintf("%d months", plan.DefaultMonths)
	}

	themeName := strings.TrimSpace(req.Theme)
	if themeName == "" {
		themeName = cfg.Render.Theme
	}
	theme, err := render.LookupTheme(themeName)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	planReq := plan.Request{Topic: req.Topic, Level: level, Duration: duration}
	if err := planReq.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.generatePlan(r.Context(), planReq)
	if err != nil {
		s.stats.RecordFailure()
		log.Printf("GENERATE_ERROR | topic=%s error=%v", truncateString(planReq.Topic, 50), err)
		if plan.IsGenerationFailed(err) {
			s.writeError(w, http.StatusBadGateway, "Roadmap generation failed. Please try again.")
		} else {
			s.writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	opts, err := cfg.RenderOptions()
	if err != nil {
		// Config is validated on load, so this points at a live-reload bug.
		s.stats.RecordFailure()
		log.Printf("RENDER_CONFIG_ERROR | error=%v", err)
		s.writeError(w, http.StatusInternalServerError, "Rendering configuration invalid")
		return
	}
	opts.Theme = theme

	data, err := render.RenderPNG(p.Steps, opts)
	if err != nil {
		s.stats.RecordFailure()
		log.Printf("RENDER_ERROR | topic=%s error=%v", truncateString(p.Topic, 50), err)
		s.writeError(w, http.StatusInternalServerError, "Rendering failed")
		return
	}

	// Each request gets its own artifact name, so concurrent requests never
	// contend for a path.
	artifact := fmt.Sprintf("roadmap_%s.png", uuid.NewString())
	artifactPath := filepath.Join(cfg.Output.Dir, artifact)
	if err := util.AtomicWriteFile(artifactPath, data, 0644); err != nil {
		s.stats.RecordFailure()
		log.Printf("ARTIFACT_ERROR | path=%s error=%v", artifactPath, err)
		s.writeError(w, http.StatusInternalServerError, "Failed to write artifact")
		return
	}

	s.stats.RecordSuccess(p.Fallback)

	latencyMs := time.Since(startTime).Milliseconds()
	log.Printf("ROADMAP_COMPLETE | topic=%s steps=%d theme=%s fallback=%v latency=%dms",
		truncateString(p.Topic, 50), len(p.Steps), theme.Name, p.Fallback, latencyMs)

	s.writeJSON(w, http.StatusOK, RoadmapResponse{
		Topic:    p.Topic,
		Level:    p.Level.String(),
		Duration: p.Duration,
		Steps:    p.Steps,
		Theme:    theme.Name,
		PNG:      base64.StdEncoding.EncodeToString(data),
		File:     artifact,
		Fallback: p.Fallback,
	})
}

// generatePlan runs the configured generator, serving the built-in fallback
// plan when generation fails and the config allows it.
func (s *Server) generatePlan(ctx context.Context, req plan.Request) (*plan.Plan, error) {
	s.mu.RLock()
	gen := s.generator
	s.mu.RUnlock()

	if gen == nil {
		return nil, fmt.Errorf("%w: no generator configured", plan.ErrGenerationFailed)
	}

	p, err := gen.Generate(ctx, req)
	if err == nil {
		return p, nil
	}

	if s.config().LLM.FallbackEnabled && plan.IsGenerationFailed(err) {
		log.Printf("FALLBACK_PLAN | topic=%s cause=%v", truncateString(req.Topic, 50), err)
		return plan.FallbackPlan(req), nil
	}
	return nil, err
}

// ============================================================================
// THEMES HANDLER
// ============================================================================

// handleThemes handles GET /api/themes.
func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, ThemesResponse{
		Themes:  render.ThemeNames(),
		Default: s.config().Render.Theme,
	})
}

// ============================================================================
// HEALTH HANDLER
// ============================================================================

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	gen := s.generator
	s.mu.RUnlock()

	health := HealthResponse{
		Status:  "ok",
		Version: Version,
		Model:   s.config().LLM.Model,
	}

	if gen != nil {
		health.GeneratorStatus = "configured"
	} else {
		health.GeneratorStatus = "not_configured"
		health.Status = "degraded"
	}

	stats := s.stats.GetStats()
	health.UptimeSeconds = int64(s.stats.Uptime().Seconds())
	health.RoadmapsServed = stats.RoadmapsServed
	health.FallbacksServed = stats.FallbacksServed
	health.Failures = stats.Failures

	s.writeJSON(w, http.StatusOK, health)
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start starts the HTTP server and blocks until the listener fails or the
// server is shut down.
func (s *Server) Start() error {
	addr := s.Addr()

	// Build middleware chain, outermost first. CORS sits outside auth so
	// preflight requests never hit the token check.
	middlewares := []func(http.Handler) http.Handler{
		RecoveryMiddleware(),
		SecurityHeadersMiddleware(),
		LoggingMiddleware(log.Default()),
	}
	if s.limiter != nil {
		middlewares = append(middlewares, RateLimitMiddleware(s.limiter))
	}
	if s.cors != nil {
		middlewares = append(middlewares, CORSMiddleware(s.cors))
	}
	if s.auth != nil && s.auth.Enabled {
		middlewares = append(middlewares, AuthMiddleware(s.auth))
	}
	handler := Chain(middlewares...)(s.mux)

	s.mu.Lock()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	srv := s.server
	s.mu.Unlock()

	log.Printf("SERVER_START | addr=%s version=%s", addr, Version)
	return srv.ListenAndServe()
}

// Serve starts the server and blocks until ctx is canceled or the listener
// fails. On cancellation, in-flight requests are drained for up to
// ShutdownTimeout before the server exits.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()

	if srv == nil {
		return nil
	}

	stats := s.stats.GetStats()
	log.Printf("SERVER_SHUTDOWN | served=%d fallbacks=%d failures=%d",
		stats.RoadmapsServed, stats.FallbacksServed, stats.Failures)

	return srv.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": message,
			"code":    status,
		},
	})
}

// truncateString truncates a string to the specified length.
// Uses rune-based truncation to handle Unicode correctly.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
