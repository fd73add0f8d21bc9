package noop

import (
	"context"
	"fmt"
	"strings"
	"time"

	"earnings-analyst/internal/logger"
	"earnings-analyst/internal/types"
)

// Provider is a deterministic fallback used when no LLM provider is
// configured. It lets the rest of the pipeline run (and be tested) with
// fully reproducible outputs.
type Provider struct {
	now func() time.Time
}

// NewProvider returns a deterministic stub provider
func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

// NewProviderAt pins the provider's clock, for tests
func NewProviderAt(now func() time.Time) *Provider {
	return &Provider{now: now}
}

// ExtractIntent treats the whole query as the company reference and
// assumes the current year, mirroring the extractor's default-year rule.
func (p *Provider) ExtractIntent(ctx context.Context, query string) (types.ExtractedIntent, error) {
	logger.Debug(ctx, "Noop provider called for intent extraction", "query_len", len(query))
	return types.ExtractedIntent{
		Year:            p.now().Year(),
		TickerOrCompany: strings.TrimSpace(query),
		YearAssumed:     true,
	}, nil
}

// Analyze returns a fixed-format summary derived only from the transcript,
// so identical inputs always produce identical analyses.
func (p *Provider) Analyze(ctx context.Context, transcript types.Transcript) (string, error) {
	logger.Debug(ctx, "Noop provider called for analysis", "symbol", transcript.Symbol)
	return fmt.Sprintf(
		"No LLM provider configured. Stub analysis for %s (%d earnings call, %s): transcript of %d characters retrieved; configure llm.provider for a real analysis.",
		transcript.Symbol, transcript.Year, transcript.Date, len(transcript.Content),
	), nil
}
