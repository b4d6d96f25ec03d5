// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package groq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const testAPIKey = "gsk_testabcdefghijklmnopqrstuvwxyz0123456789"

const chatResponseJSON = `{
	"id": "chatcmpl-test",
	"model": "llama-3.3-70b-versatile",
	"choices": [{
		"message": {"role": "assistant", "content": "Learn the basics\nBuild a project\nShip it"},
		"finish_reason": "stop"
	}],
	"usage": {"prompt_tokens": 50, "completion_tokens": 20, "total_tokens": 70}
}`

func chatServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(testAPIKey).WithBaseURL(server.URL)
	return server, client
}

// =============================================================================
// CLIENT CONFIGURATION TESTS
// =============================================================================

func TestNewClient(t *testing.T) {
	client := NewClient(testAPIKey)

	if !client.IsConfigured() {
		t.Error("Client should be configured with valid API key")
	}
	if client.GetModel() != DefaultModel {
		t.Errorf("Default model = %s, want %s", client.GetModel(), DefaultModel)
	}

	emptyClient := NewClient("")
	if emptyClient.IsConfigured() {
		t.Error("Client with empty API key should not be configured")
	}
}

func TestClientMethodChaining(t *testing.T) {
	client := NewClient(testAPIKey).
		WithBaseURL("https://custom.api.com/").
		WithTimeout(30 * time.Second).
		WithMaxRetries(5).
		WithTemperature(0.9).
		WithMaxTokens(512)

	if client == nil {
		t.Fatal("Method chaining should return non-nil client")
	}
	if !client.IsConfigured() {
		t.Error("Client should still be configured after method chaining")
	}
}

func TestSetModel_FriendlyName(t *testing.T) {
	client := NewClient(testAPIKey)

	client.SetModel("llama-8b")
	if client.GetModel() != "llama-3.1-8b-instant" {
		t.Errorf("SetModel with friendly name = %s, want llama-3.1-8b-instant", client.GetModel())
	}

	client.SetModel("custom-model")
	if client.GetModel() != "custom-model" {
		t.Errorf("SetModel passthrough = %s, want custom-model", client.GetModel())
	}
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestChat_Success(t *testing.T) {
	var gotAuth string
	var gotReq ChatRequest

	_, client := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatResponseJSON))
	})

	resp, err := client.Chat(context.Background(), []ChatMessage{NewUserMessage("make a roadmap")})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if got := resp.GetContent(); !strings.Contains(got, "Learn the basics") {
		t.Errorf("content = %q", got)
	}
	if gotAuth != "Bearer "+testAPIKey {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != DefaultModel {
		t.Errorf("request model = %q, want %q", gotReq.Model, DefaultModel)
	}
	if gotReq.Stream {
		t.Error("request should not ask for streaming")
	}
}

func TestChat_NotConfigured(t *testing.T) {
	client := NewClient("")
	_, err := client.Chat(context.Background(), []ChatMessage{NewUserMessage("hi")})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestChat_AuthFailedNotRetried(t *testing.T) {
	var requestCount atomic.Int32
	_, client := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"code": "invalid_api_key", "message": "Invalid API Key"}}`))
	})

	_, err := client.Chat(context.Background(), []ChatMessage{NewUserMessage("hi")})
	if !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("error = %v, want ErrAuthFailed", err)
	}
	if n := requestCount.Load(); n != 1 {
		t.Errorf("auth failure was retried: %d requests", n)
	}
}

func TestChat_RetriesRateLimit(t *testing.T) {
	var requestCount atomic.Int32
	_, client := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		if requestCount.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": {"code": "rate_limit_exceeded", "message": "slow down"}}`))
			return
		}
		w.Write([]byte(chatResponseJSON))
	})

	resp, err := client.Chat(context.Background(), []ChatMessage{NewUserMessage("hi")})
	if err != nil {
		t.Fatalf("Chat failed after retry: %v", err)
	}
	if resp.GetContent() == "" {
		t.Error("empty content after successful retry")
	}
	if n := requestCount.Load(); n != 2 {
		t.Errorf("requests = %d, want 2 (one retry)", n)
	}
}

func TestChat_MaxRetriesExhausted(t *testing.T) {
	var requestCount atomic.Int32
	_, client := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"code": "server_error", "message": "boom"}}`))
	})
	client.WithMaxRetries(2)

	_, err := client.Chat(context.Background(), []ChatMessage{NewUserMessage("hi")})
	if err == nil {
		t.Fatal("Chat succeeded against a failing server")
	}
	if !strings.Contains(err.Error(), "max retries exceeded") {
		t.Errorf("error = %v, want max retries exceeded", err)
	}
	if n := requestCount.Load(); n != 2 {
		t.Errorf("requests = %d, want 2", n)
	}
}

func TestChat_ContextCanceled(t *testing.T) {
	_, client := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatResponseJSON))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Chat(ctx, []ChatMessage{NewUserMessage("hi")})
	if err == nil {
		t.Fatal("Chat succeeded with canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestGenerateCompletion(t *testing.T) {
	_, client := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatResponseJSON))
	})

	content, err := client.GenerateCompletion(context.Background(), "make a roadmap")
	if err != nil {
		t.Fatalf("GenerateCompletion failed: %v", err)
	}
	if !strings.Contains(content, "Build a project") {
		t.Errorf("content = %q", content)
	}
}

// =============================================================================
// CONCURRENT ACCESS TESTS
// =============================================================================

// ChatWithModel copies the client, so concurrent calls with different models
// must not race on the shared model field.
func TestChatWithModel_Concurrent(t *testing.T) {
	var requestCount atomic.Int32
	_, client := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		w.Write([]byte(chatResponseJSON))
	})

	var wg sync.WaitGroup
	errChan := make(chan error, 40)

	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			model := fmt.Sprintf("test-model-%d", n%4)
			if _, err := client.ChatWithModel(ctx, model, []ChatMessage{NewUserMessage("hello")}); err != nil {
				errChan <- fmt.Errorf("model %s: %w", model, err)
			}
		}(i)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		t.Errorf("concurrent ChatWithModel error: %v", err)
	}

	if client.GetModel() != DefaultModel {
		t.Errorf("original client model was modified: %s", client.GetModel())
	}
}

// =============================================================================
// API KEY TESTS
// =============================================================================

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		valid  bool
	}{
		{"valid key", "gsk_abcdefghijklmnopqrstuvwxyz0123456789", true},
		{"wrong prefix", "sk-or-abcdefghijklmnopqrstuvwxyz", false},
		{"too short", "gsk_short", false},
		{"low entropy", "gsk_aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"empty", "", false},
		{"whitespace padded", "  gsk_abcdefghijklmnopqrstuvwxyz0123456789  ", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateAPIKey(tc.apiKey); got != tc.valid {
				t.Errorf("ValidateAPIKey(%q) = %v, want %v", tc.apiKey, got, tc.valid)
			}
		})
	}
}

func TestAPIKeyMasked(t *testing.T) {
	client := NewClient(testAPIKey)
	masked := client.APIKeyMasked()

	if strings.Contains(masked, "gsk_test") {
		t.Errorf("masked key leaks key material: %q", masked)
	}
	if !strings.Contains(masked, "fingerprint=") {
		t.Errorf("masked key missing fingerprint: %q", masked)
	}

	empty := NewClient("")
	if empty.APIKeyMasked() != "[not set]" {
		t.Errorf("empty key masked = %q", empty.APIKeyMasked())
	}
}

// =============================================================================
// ERROR HANDLING TESTS
// =============================================================================

func TestAPIError(t *testing.T) {
	withCode := &APIError{Code: "invalid_api_key", Message: "API key is invalid", Status: 401}
	want := "Groq error [invalid_api_key] (HTTP 401): API key is invalid"
	if withCode.Error() != want {
		t.Errorf("Error() = %q, want %q", withCode.Error(), want)
	}

	noCode := &APIError{Message: "Server error", Status: 500}
	want = "Groq error (HTTP 500): Server error"
	if noCode.Error() != want {
		t.Errorf("Error() = %q, want %q", noCode.Error(), want)
	}
}

func TestIsRetryable(t *testing.T) {
	client := NewClient(testAPIKey)

	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"rate limited", ErrRateLimited, true},
		{"server error 500", &APIError{Status: 500, Message: "Internal Server Error"}, true},
		{"server error 503", &APIError{Status: 503, Message: "Service Unavailable"}, true},
		{"client error 400", &APIError{Status: 400, Message: "Bad Request"}, false},
		{"auth failed", ErrAuthFailed, false},
		{"context canceled", context.Canceled, false},
		{"context deadline", context.DeadlineExceeded, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := client.isRetryable(tc.err); got != tc.retryable {
				t.Errorf("isRetryable(%v) = %v, want %v", tc.err, got, tc.retryable)
			}
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	client := NewClient(testAPIKey)

	if d := client.calculateBackoff(0); d != 500*time.Millisecond {
		t.Errorf("backoff(0) = %v, want 500ms", d)
	}
	if d := client.calculateBackoff(1); d != time.Second {
		t.Errorf("backoff(1) = %v, want 1s", d)
	}
	if d := client.calculateBackoff(2); d != 2*time.Second {
		t.Errorf("backoff(2) = %v, want 2s", d)
	}
	if d := client.calculateBackoff(10); d != retryMaxDelay {
		t.Errorf("backoff(10) = %v, want cap %v", d, retryMaxDelay)
	}
}

// =============================================================================
// MODELS TESTS
// =============================================================================

func TestListModels(t *testing.T) {
	_, client := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("path = %s, want /models", r.URL.Path)
		}
		w.Write([]byte(`{
			"object": "list",
			"data": [
				{"id": "llama-3.3-70b-versatile", "owned_by": "Meta", "context_window": 131072, "active": true},
				{"id": "gemma2-9b-it", "owned_by": "Google", "context_window": 8192, "active": true}
			]
		}`))
	})

	models, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("models = %d, want 2", len(models))
	}
	if models[0].ID != "llama-3.3-70b-versatile" || models[0].ContextWindow != 131072 {
		t.Errorf("model[0] = %+v", models[0])
	}
}

func TestListModels_NotConfigured(t *testing.T) {
	client := NewClient("")
	if _, err := client.ListModels(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

// =============================================================================
// MESSAGE HELPER TESTS
// =============================================================================

func TestChatMessageHelpers(t *testing.T) {
	userMsg := NewUserMessage("user content")
	if userMsg.Role != "user" || userMsg.Content != "user content" {
		t.Errorf("NewUserMessage = %+v", userMsg)
	}

	systemMsg := NewSystemMessage("system content")
	if systemMsg.Role != "system" || systemMsg.Content != "system content" {
		t.Errorf("NewSystemMessage = %+v", systemMsg)
	}
}

func TestChatResponseGetContent(t *testing.T) {
	var resp ChatResponse
	if err := json.Unmarshal([]byte(chatResponseJSON), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := resp.GetContent(); !strings.HasPrefix(got, "Learn the basics") {
		t.Errorf("GetContent() = %q", got)
	}

	empty := &ChatResponse{}
	if empty.GetContent() != "" {
		t.Errorf("GetContent() on empty response = %q", empty.GetContent())
	}
}
