package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/config"
)

func TestLLMClientOpenAI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}

		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.Model != "gpt-4o-mini" {
			t.Errorf("unexpected model %q", payload.Model)
		}
		if len(payload.Messages) != 2 || payload.Messages[0].Role != "system" || payload.Messages[1].Role != "user" {
			t.Errorf("expected system+user messages, got %v", payload.Messages)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "생성된 요약"}},
			},
		})
	}))
	defer srv.Close()

	c := NewLLMClient(config.InsightConfig{
		Provider: "openai",
		Model:    "gpt-4o-mini",
		Endpoint: srv.URL,
	}, "test-key", testLogger)

	got, err := c.Generate(context.Background(), "system role", "user prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "생성된 요약" {
		t.Errorf("content = %q", got)
	}
}

func TestLLMClientOpenAINoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := NewLLMClient(config.InsightConfig{Provider: "openai", Endpoint: srv.URL}, "k", testLogger)
	if _, err := c.Generate(context.Background(), "s", "p"); err == nil {
		t.Fatal("expected error when the response has no choices")
	}
}

func TestLLMClientOllama(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload struct {
			System string `json:"system"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.Stream {
			t.Error("streaming must be disabled")
		}
		if payload.System != "s" || payload.Prompt != "p" {
			t.Errorf("unexpected payload %+v", payload)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "로컬 응답"})
	}))
	defer srv.Close()

	c := NewLLMClient(config.InsightConfig{Provider: "ollama", Endpoint: srv.URL}, "", testLogger)
	got, err := c.Generate(context.Background(), "s", "p")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "로컬 응답" {
		t.Errorf("content = %q", got)
	}
}

func TestLLMClientUnknownProvider(t *testing.T) {
	c := NewLLMClient(config.InsightConfig{Provider: "bard"}, "", testLogger)
	if _, err := c.Generate(context.Background(), "s", "p"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
