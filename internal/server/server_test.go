// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// server_test.go - tests for routes, handlers, and server lifecycle
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/pathforge/internal/config"
	"github.com/jeranaias/pathforge/internal/plan"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// stubGenerator is a PlanGenerator whose behavior the test controls.
type stubGenerator struct {
	plan    *plan.Plan
	err     error
	lastReq plan.Request
	calls   int
}

func (g *stubGenerator) Generate(ctx context.Context, req plan.Request) (*plan.Plan, error) {
	g.calls++
	g.lastReq = req
	if g.err != nil {
		return nil, g.err
	}
	if g.plan != nil {
		return g.plan, nil
	}
	return &plan.Plan{
		Topic:       strings.TrimSpace(req.Topic),
		Level:       req.Level,
		Duration:    req.Duration,
		Steps:       []string{"Learn the basics", "Build a small project", "Ship something real"},
		GeneratedAt: time.Now(),
	}, nil
}

// testServer builds a server that writes artifacts into a temp dir.
func testServer(t *testing.T) (*Server, *stubGenerator) {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	gen := &stubGenerator{}
	return NewServer(cfg).WithGenerator(gen), gen
}

// postRoadmap sends a JSON body straight to the roadmap handler.
func postRoadmap(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/roadmap", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.handleRoadmap(w, req)
	return w
}

// decodeError pulls the message out of an error envelope response.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope), "error responses must be JSON envelopes")
	require.Equal(t, w.Code, envelope.Error.Code, "envelope code should match the HTTP status")
	return envelope.Error.Message
}

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewServer_NilConfig(t *testing.T) {
	s := NewServer(nil)

	require.NotNil(t, s)
	require.Equal(t, "127.0.0.1:8080", s.Addr())
	require.NotNil(t, s.limiter, "default config enables rate limiting")
	require.Nil(t, s.cors, "no CORS origin configured by default")
	require.False(t, s.auth.Enabled, "no auth token configured by default")
}

func TestNewServer_FromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 9999
	cfg.Server.AuthToken = "hunter2"
	cfg.Server.CORSOrigin = "http://localhost:3000"
	cfg.Server.RateLimit = 0

	s := NewServer(cfg)

	require.Equal(t, "0.0.0.0:9999", s.Addr())
	require.True(t, s.auth.Enabled)
	require.NotNil(t, s.cors)
	require.Nil(t, s.limiter, "rate limit 0 disables the limiter")
}

func TestUpdateConfig(t *testing.T) {
	s, _ := testServer(t)

	next := config.Default()
	next.Render.Theme = "dark"
	s.UpdateConfig(next)
	require.Equal(t, "dark", s.config().Render.Theme)

	// A nil update must not clobber the active config.
	s.UpdateConfig(nil)
	require.Equal(t, "dark", s.config().Render.Theme)
}

// =============================================================================
// ROADMAP HANDLER
// =============================================================================

func TestHandleRoadmap(t *testing.T) {
	s, gen := testServer(t)

	w := postRoadmap(t, s, `{"topic":"Machine Learning","level":"advanced","duration":"6 months","theme":"dark"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp RoadmapResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, "Machine Learning", resp.Topic)
	require.Equal(t, "Advanced", resp.Level)
	require.Equal(t, "6 months", resp.Duration)
	require.Equal(t, "dark", resp.Theme)
	require.Len(t, resp.Steps, 3)
	require.False(t, resp.Fallback)

	// The generator saw the parsed request, not the raw strings.
	require.Equal(t, plan.LevelAdvanced, gen.lastReq.Level)
	require.Equal(t, "6 months", gen.lastReq.Duration)

	// PNG payload decodes to a real PNG.
	data, err := base64.StdEncoding.DecodeString(resp.PNG)
	require.NoError(t, err, "png field must be valid base64")
	require.True(t, len(data) > len(pngMagic))
	require.Equal(t, pngMagic, data[:len(pngMagic)])

	// Artifact lands in the output dir under the reported name.
	require.True(t, strings.HasPrefix(resp.File, "roadmap_"))
	require.True(t, strings.HasSuffix(resp.File, ".png"))
	onDisk, err := os.ReadFile(filepath.Join(s.config().Output.Dir, resp.File))
	require.NoError(t, err, "artifact should exist on disk")
	require.Equal(t, data, onDisk, "artifact bytes should match the response payload")
}

func TestHandleRoadmap_Defaults(t *testing.T) {
	s, gen := testServer(t)

	w := postRoadmap(t, s, `{"topic":"Go"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp RoadmapResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, "Beginner", resp.Level, "omitted level defaults to beginner")
	require.Equal(t, "3 months", resp.Duration, "omitted duration defaults to 3 months")
	require.Equal(t, "purple", resp.Theme, "omitted theme defaults to the configured theme")
	require.Equal(t, plan.LevelBeginner, gen.lastReq.Level)
}

func TestHandleRoadmap_InvalidJSON(t *testing.T) {
	s, gen := testServer(t)

	w := postRoadmap(t, s, `{"topic": not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid request format", decodeError(t, w))
	require.Equal(t, 0, gen.calls, "malformed requests never reach the generator")
}

func TestHandleRoadmap_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty topic", `{"topic":"   "}`, "topic cannot be empty"},
		{"unknown level", `{"topic":"Go","level":"wizard"}`, "unknown level"},
		{"unknown theme", `{"topic":"Go","theme":"neon"}`, "unknown theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := testServer(t)
			w := postRoadmap(t, s, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Contains(t, decodeError(t, w), tt.wantMsg)
		})
	}
}

func TestHandleRoadmap_BodyTooLarge(t *testing.T) {
	s, _ := testServer(t)

	body := `{"topic":"` + strings.Repeat("a", MaxRequestBodySize) + `"}`
	w := postRoadmap(t, s, body)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.Contains(t, decodeError(t, w), "maximum size")
}

func TestHandleRoadmap_GenerationFailed(t *testing.T) {
	s, gen := testServer(t)
	gen.err = fmt.Errorf("%w: model unavailable", plan.ErrGenerationFailed)

	w := postRoadmap(t, s, `{"topic":"Go"}`)
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Equal(t, "Roadmap generation failed. Please try again.", decodeError(t, w),
		"clients get a generic message, not internal error details")

	stats := s.stats.GetStats()
	require.Equal(t, int64(1), stats.Failures)
	require.Equal(t, int64(0), stats.RoadmapsServed)
}

func TestHandleRoadmap_FallbackServed(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	cfg.LLM.FallbackEnabled = true
	gen := &stubGenerator{err: fmt.Errorf("%w: model unavailable", plan.ErrGenerationFailed)}
	s := NewServer(cfg).WithGenerator(gen)

	w := postRoadmap(t, s, `{"topic":"Rust"}`)
	require.Equal(t, http.StatusOK, w.Code, "fallback plan turns a generation failure into a success")

	var resp RoadmapResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.True(t, resp.Fallback)
	require.Len(t, resp.Steps, 5)
	require.Contains(t, resp.Steps[0], "Rust")

	stats := s.stats.GetStats()
	require.Equal(t, int64(1), stats.RoadmapsServed)
	require.Equal(t, int64(1), stats.FallbacksServed)
	require.Equal(t, int64(0), stats.Failures)
}

func TestHandleRoadmap_NoGenerator(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	s := NewServer(cfg)

	w := postRoadmap(t, s, `{"topic":"Go"}`)
	require.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandleRoadmap_NonGenerationError(t *testing.T) {
	s, gen := testServer(t)
	gen.err = errors.New("topic rejected")

	// Errors outside the generation-failed family read as bad requests.
	w := postRoadmap(t, s, `{"topic":"Go"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "topic rejected", decodeError(t, w))
}

// =============================================================================
// THEMES AND HEALTH HANDLERS
// =============================================================================

func TestHandleThemes(t *testing.T) {
	s, _ := testServer(t)

	w := httptest.NewRecorder()
	s.handleThemes(w, httptest.NewRequest("GET", "/api/themes", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp ThemesResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, []string{"blue", "dark", "purple"}, resp.Themes)
	require.Equal(t, "purple", resp.Default)
}

func TestHandleHealth_NoGenerator(t *testing.T) {
	s := NewServer(nil)

	w := httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest("GET", "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code, "healthz reports degraded in the body, not the status code")

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, "degraded", resp.Status)
	require.Equal(t, "not_configured", resp.GeneratorStatus)
	require.Equal(t, Version, resp.Version)
}

func TestHandleHealth_Configured(t *testing.T) {
	s, _ := testServer(t)

	w := postRoadmap(t, s, `{"topic":"Go"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest("GET", "/healthz", nil))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, "ok", resp.Status)
	require.Equal(t, "configured", resp.GeneratorStatus)
	require.Equal(t, "llama-3.3-70b-versatile", resp.Model)
	require.Equal(t, int64(1), resp.RoadmapsServed)
	require.Equal(t, int64(0), resp.Failures)
}

// =============================================================================
// ROUTING
// =============================================================================

func TestRoutes(t *testing.T) {
	s, _ := testServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"index", "GET", "/", http.StatusOK},
		{"themes", "GET", "/api/themes", http.StatusOK},
		{"health", "GET", "/healthz", http.StatusOK},
		{"roadmap wrong method", "GET", "/api/roadmap", http.StatusMethodNotAllowed},
		{"index wrong method", "DELETE", "/", http.StatusMethodNotAllowed},
		{"unknown path", "GET", "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.mux.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			require.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRoutes_RoadmapThroughMux(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest("POST", "/api/roadmap", strings.NewReader(`{"topic":"Go"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandleIndex(t *testing.T) {
	s, _ := testServer(t)

	w := httptest.NewRecorder()
	s.handleIndex(w, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")

	page := w.Body.String()
	require.Contains(t, page, "Learning Roadmap Generator")
	require.Contains(t, page, "Machine Learning", "form is pre-filled with the default topic")
	require.Contains(t, page, "purple", "theme options include the configured default")
	require.Contains(t, page, "Advanced", "level options come from the level registry")
}

// =============================================================================
// STATS
// =============================================================================

func TestServerStats(t *testing.T) {
	stats := NewServerStats()

	stats.RecordSuccess(false)
	stats.RecordSuccess(false)
	stats.RecordSuccess(true)
	stats.RecordFailure()

	got := stats.GetStats()
	require.Equal(t, int64(4), got.TotalRequests)
	require.Equal(t, int64(3), got.RoadmapsServed)
	require.Equal(t, int64(1), got.FallbacksServed)
	require.Equal(t, int64(1), got.Failures)
	require.False(t, got.StartTime.IsZero())
	require.True(t, stats.Uptime() >= 0)
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestServe_ContextCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	cfg.Server.Port = 0 // let the kernel pick a free port
	s := NewServer(cfg).WithGenerator(&stubGenerator{})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(ctx)
	}()

	// Give the listener a moment to come up, then ask for shutdown.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err, "context cancellation is a clean shutdown")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after context cancellation")
	}
}

func TestShutdown_NotStarted(t *testing.T) {
	s, _ := testServer(t)
	require.NoError(t, s.Shutdown(context.Background()), "shutting down a never-started server is a no-op")
}

// =============================================================================
// HELPERS
// =============================================================================

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short string", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated", "hello world", 5, "hello..."},
		{"empty", "", 5, ""},
		{"unicode", "héllo wörld", 5, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, truncateString(tt.input, tt.maxLen))
		})
	}
}
