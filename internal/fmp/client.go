package fmp

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"earnings-analyst/internal/api"
	"earnings-analyst/internal/interfaces"
	"earnings-analyst/internal/types"
)

// Client talks to the Financial Modeling Prep API. One credentialed client
// serves company search, batch earnings-call transcripts and historical
// daily prices.
type Client struct {
	api    *api.Client
	apiKey string
}

// Compile-time interface checks
var (
	_ interfaces.SymbolSearcher   = (*Client)(nil)
	_ interfaces.TranscriptSource = (*Client)(nil)
	_ interfaces.PriceSource      = (*Client)(nil)
)

// New creates an FMP client. The API key is injected at construction and
// never read from ambient state at call time.
func New(baseURL, apiKey string) *Client {
	c := api.NewClient(
		api.WithBaseURL(baseURL),
		api.WithTimeout(30*time.Second),
		api.WithLogging(true),
	)
	return &Client{api: c, apiKey: apiKey}
}

// SearchSymbol queries the company-search endpoint. Non-200 responses are
// errors; the resolver degrades on them.
func (c *Client) SearchSymbol(ctx context.Context, query string, limit int) ([]types.SearchMatch, error) {
	path := fmt.Sprintf("/api/v3/search?query=%s&limit=%d&apikey=%s",
		url.QueryEscape(query), limit, url.QueryEscape(c.apiKey))

	resp, err := c.api.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("search: HTTP %d", resp.StatusCode)
	}

	var matches []types.SearchMatch
	if err := resp.ParseJSON(&matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// BatchTranscripts performs one raw transcript request for (symbol, year).
// Status code and Retry-After are surfaced uninterpreted; only transport
// failures are errors.
func (c *Client) BatchTranscripts(ctx context.Context, symbol string, year int) (*types.TranscriptBatch, error) {
	path := fmt.Sprintf("/api/v4/batch_earning_call_transcript/%s?year=%d&apikey=%s",
		url.PathEscape(symbol), year, url.QueryEscape(c.apiKey))

	resp, err := c.api.GET(ctx, path, api.BrowserHeaders())
	if err != nil {
		return nil, err
	}

	batch := &types.TranscriptBatch{StatusCode: resp.StatusCode}
	if ra := resp.Headers.Get("Retry-After"); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil {
			batch.RetryAfterSeconds = secs
		}
	}
	if resp.StatusCode == 200 {
		// The endpoint answers 200 with an empty JSON array when no
		// transcript exists for the year; a decode failure here is a
		// malformed body, not an empty result.
		if err := resp.ParseJSON(&batch.Transcripts); err != nil {
			return nil, err
		}
	}
	return batch, nil
}

// historicalPrices mirrors the historical-price-full response shape.
type historicalPrices struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date  string  `json:"date"`
		Close float64 `json:"close"`
	} `json:"historical"`
}

// DailyCloses fetches daily closing prices for the chart window, returned
// ascending by date (the API serves newest first).
func (c *Client) DailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]types.PricePoint, error) {
	path := fmt.Sprintf("/api/v3/historical-price-full/%s?from=%s&to=%s&apikey=%s",
		url.PathEscape(symbol), from.Format("2006-01-02"), to.Format("2006-01-02"),
		url.QueryEscape(c.apiKey))

	resp, err := c.api.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("historical prices: HTTP %d", resp.StatusCode)
	}

	var hp historicalPrices
	if err := resp.ParseJSON(&hp); err != nil {
		return nil, err
	}

	points := make([]types.PricePoint, 0, len(hp.Historical))
	for _, h := range hp.Historical {
		d, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			continue
		}
		points = append(points, types.PricePoint{Date: d, Close: h.Close})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}
