package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"earnings-analyst/internal/interfaces"
	"earnings-analyst/internal/llm"
	"earnings-analyst/internal/store"
	"earnings-analyst/internal/trace"
	"earnings-analyst/internal/types"
)

// Client implements IntentExtractor and Analyzer against the Anthropic
// messages API, using its tool-use contract for extraction.
type Client struct {
	cfg      *store.Config
	apiKey   string
	endpoint string
	http     *http.Client
	now      func() time.Time
}

var (
	_ interfaces.IntentExtractor = (*Client)(nil)
	_ interfaces.Analyzer        = (*Client)(nil)
)

// NewClient creates a Claude-backed client with the key injected at
// startup.
func NewClient(cfg *store.Config, apiKey string) *Client {
	endpoint := "https://api.anthropic.com/v1/messages"
	// Bedrock/Vertex/proxy deployments override the endpoint at startup
	if ep := os.Getenv("CLAUDE_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &Client{
		cfg:      cfg,
		apiKey:   apiKey,
		endpoint: endpoint,
		http:     &http.Client{Timeout: 120 * time.Second},
		now:      time.Now,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type  string          `json:"type"`
		Text  string          `json:"text,omitempty"`
		Name  string          `json:"name,omitempty"`
		Input json.RawMessage `json:"input,omitempty"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// ExtractIntent forces the extraction tool and parses its input block.
func (c *Client) ExtractIntent(ctx context.Context, query string) (types.ExtractedIntent, error) {
	ctx, span := trace.StartSpan(ctx, "claude-extract-intent")
	defer span.End()

	body := map[string]any{
		"model":      c.cfg.LLM.Model,
		"max_tokens": c.cfg.LLM.MaxTokens,
		"system":     llm.ExtractionSystemPrompt(c.now()),
		"messages":   []message{{Role: "user", Content: query}},
		"tools": []map[string]any{{
			"name":        llm.ExtractToolName,
			"description": llm.ExtractToolDescription,
			"input_schema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"year": map[string]any{
						"type":        "integer",
						"description": "The year mentioned in the input, or the current year if not specified",
					},
					"ticker_or_company": map[string]any{
						"type":        "string",
						"description": "The stock ticker or company name mentioned in the input",
					},
				},
				"required": []string{"year", "ticker_or_company"},
			},
		}},
		"tool_choice": map[string]any{"type": "tool", "name": llm.ExtractToolName},
	}

	var r messagesResponse
	if err := c.post(ctx, body, &r); err != nil {
		return types.ExtractedIntent{}, fmt.Errorf("%w: %v", llm.ErrIntentExtraction, err)
	}

	for _, block := range r.Content {
		if block.Type != "tool_use" || block.Name != llm.ExtractToolName {
			continue
		}
		var args struct {
			Year            int    `json:"year"`
			TickerOrCompany string `json:"ticker_or_company"`
		}
		if err := json.Unmarshal(block.Input, &args); err != nil {
			return types.ExtractedIntent{}, fmt.Errorf("%w: unparseable tool input: %v", llm.ErrIntentExtraction, err)
		}
		if args.Year == 0 || strings.TrimSpace(args.TickerOrCompany) == "" {
			return types.ExtractedIntent{}, fmt.Errorf("%w: missing required tool input", llm.ErrIntentExtraction)
		}
		return types.ExtractedIntent{
			Year:            args.Year,
			TickerOrCompany: args.TickerOrCompany,
			YearAssumed:     args.Year == c.now().Year(),
		}, nil
	}
	return types.ExtractedIntent{}, fmt.Errorf("%w: no tool_use block in response", llm.ErrIntentExtraction)
}

// Analyze runs the rubric completion over the transcript content.
func (c *Client) Analyze(ctx context.Context, transcript types.Transcript) (string, error) {
	ctx, span := trace.StartSpan(ctx, "claude-analyze-transcript")
	defer span.End()

	system := c.cfg.LLM.System
	if system == "" {
		system = llm.AnalysisSystemPrompt
	}

	body := map[string]any{
		"model":       c.cfg.LLM.Model,
		"max_tokens":  c.cfg.LLM.MaxTokens,
		"temperature": c.cfg.LLM.Temperature,
		"system":      system,
		"messages":    []message{{Role: "user", Content: llm.AnalysisUserPrompt(transcript.Content)}},
	}

	var r messagesResponse
	if err := c.post(ctx, body, &r); err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrAnalysis, err)
	}

	var sb strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("%w: empty completion content", llm.ErrAnalysis)
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, body map[string]any, out *messagesResponse) error {
	bb, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bb))
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("claude http %d: %s", resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
