package openai

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

// Client implements IntentExtractor and Analyzer against the OpenAI chat
// completions API. Intent extraction uses a single-tool call contract;
// analysis is a plain low-temperature completion.
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

// NewClient creates an OpenAI-backed client. The API key is injected at
// startup; nothing is read from ambient state at call time.
func NewClient(cfg *store.Config, apiKey string) *Client {
	endpoint := "https://api.openai.com/v1/chat/completions"
	// Proxies and gateways can override the endpoint at startup
	if ep := os.Getenv("OPENAI_API_ENDPOINT"); ep != "" {
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

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

// extractToolSchema builds the single callable tool the extraction call
// exposes, requiring both fields.
func extractToolSchema() []map[string]any {
	return []map[string]any{{
		"type": "function",
		"function": map[string]any{
			"name":        llm.ExtractToolName,
			"description": llm.ExtractToolDescription,
			"parameters": map[string]any{
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
		},
	}}
}

// ExtractIntent sends the query with the extraction tool schema and parses
// the tool-call arguments. Missing tool call or malformed arguments are
// fatal, never retried.
func (c *Client) ExtractIntent(ctx context.Context, query string) (types.ExtractedIntent, error) {
	ctx, span := trace.StartSpan(ctx, "openai-extract-intent")
	defer span.End()

	body := map[string]any{
		"model": c.cfg.LLM.Model,
		"messages": []message{
			{Role: "system", Content: llm.ExtractionSystemPrompt(c.now())},
			{Role: "user", Content: query},
		},
		"tools": extractToolSchema(),
	}

	var r chatResponse
	if err := c.post(ctx, body, &r); err != nil {
		return types.ExtractedIntent{}, fmt.Errorf("%w: %v", llm.ErrIntentExtraction, err)
	}

	if len(r.Choices) == 0 || len(r.Choices[0].Message.ToolCalls) == 0 {
		return types.ExtractedIntent{}, fmt.Errorf("%w: no tool call in response", llm.ErrIntentExtraction)
	}

	var args struct {
		Year            int    `json:"year"`
		TickerOrCompany string `json:"ticker_or_company"`
	}
	raw := r.Choices[0].Message.ToolCalls[0].Function.Arguments
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return types.ExtractedIntent{}, fmt.Errorf("%w: unparseable tool arguments: %v", llm.ErrIntentExtraction, err)
	}
	if args.Year == 0 || strings.TrimSpace(args.TickerOrCompany) == "" {
		return types.ExtractedIntent{}, fmt.Errorf("%w: missing required tool arguments", llm.ErrIntentExtraction)
	}

	return types.ExtractedIntent{
		Year:            args.Year,
		TickerOrCompany: args.TickerOrCompany,
		YearAssumed:     args.Year == c.now().Year(),
	}, nil
}

// Analyze runs the rubric completion over the transcript content.
func (c *Client) Analyze(ctx context.Context, transcript types.Transcript) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-analyze-transcript")
	defer span.End()

	system := c.cfg.LLM.System
	if system == "" {
		system = llm.AnalysisSystemPrompt
	}

	body := map[string]any{
		"model": c.cfg.LLM.Model,
		"messages": []message{
			{Role: "system", Content: system},
			{Role: "user", Content: llm.AnalysisUserPrompt(transcript.Content)},
		},
		"temperature": c.cfg.LLM.Temperature,
		"max_tokens":  c.cfg.LLM.MaxTokens,
	}

	var r chatResponse
	if err := c.post(ctx, body, &r); err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrAnalysis, err)
	}

	if len(r.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", llm.ErrAnalysis)
	}
	out := strings.TrimSpace(r.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("%w: empty completion content", llm.ErrAnalysis)
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, body map[string]any, out *chatResponse) error {
	bb, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bb))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("openai http %d: %s", resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
