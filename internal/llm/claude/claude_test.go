package claude

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"earnings-analyst/internal/llm"
	"earnings-analyst/internal/store"
	"earnings-analyst/internal/types"
)

func testConfig() *store.Config {
	cfg := &store.Config{}
	cfg.LLM.Provider = "CLAUDE"
	cfg.LLM.Model = "claude-sonnet-4-20250514"
	cfg.LLM.MaxTokens = 2000
	cfg.LLM.Temperature = 0.2
	return cfg
}

func testClient(cfg *store.Config, serverURL string) *Client {
	c := NewClient(cfg, "test-key")
	c.endpoint = serverURL
	c.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return c
}

func TestExtractIntentToolUse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("Expected x-api-key header, got %s", got)
		}
		if got := r.Header.Get("anthropic-version"); got == "" {
			t.Error("Expected anthropic-version header")
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["tool_choice"]; !ok {
			t.Error("Expected forced tool_choice in request")
		}
		w.Write([]byte(`{"content":[{"type":"tool_use","name":"extract_info","input":{"year":2023,"ticker_or_company":"NVDA"}}],"stop_reason":"tool_use"}`))
	}))
	defer server.Close()

	c := testClient(testConfig(), server.URL)
	intent, err := c.ExtractIntent(context.Background(), "nvidia 2023 call")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if intent.Year != 2023 || intent.TickerOrCompany != "NVDA" {
		t.Errorf("Unexpected intent %+v", intent)
	}
}

func TestExtractIntentNoToolUseBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"type":"text","text":"Sure, which company?"}],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	c := testClient(testConfig(), server.URL)
	_, err := c.ExtractIntent(context.Background(), "earnings")
	if !errors.Is(err, llm.ErrIntentExtraction) {
		t.Fatalf("Expected ErrIntentExtraction, got %v", err)
	}
}

func TestAnalyzeConcatenatesTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"type":"text","text":"Part one. "},{"type":"text","text":"Part two."}],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	c := testClient(testConfig(), server.URL)
	out, err := c.Analyze(context.Background(), types.Transcript{Content: "..."})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if out != "Part one. Part two." {
		t.Errorf("Unexpected analysis %q", out)
	}
}

func TestAnalyzeEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	c := testClient(testConfig(), server.URL)
	_, err := c.Analyze(context.Background(), types.Transcript{Content: "..."})
	if !errors.Is(err, llm.ErrAnalysis) {
		t.Fatalf("Expected ErrAnalysis, got %v", err)
	}
}
