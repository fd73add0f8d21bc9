// Package resolver maps company references (names or tickers) to exchange
// symbols via the company-search service.
package resolver

import (
	"context"

	"earnings-analyst/internal/interfaces"
	"earnings-analyst/internal/logger"
)

// Resolver resolves company references through a symbol searcher. Failure
// never blocks the pipeline: name-to-ticker mapping is fuzzy and the user
// may already have supplied a valid ticker, so empty results and service
// errors degrade to the raw input.
type Resolver struct {
	searcher interfaces.SymbolSearcher
}

var _ interfaces.TickerResolver = (*Resolver)(nil)

// New creates a resolver backed by the given searcher
func New(searcher interfaces.SymbolSearcher) *Resolver {
	return &Resolver{searcher: searcher}
}

// ResolveTicker returns the top search match's symbol, or the reference
// unchanged when the search yields nothing.
func (r *Resolver) ResolveTicker(ctx context.Context, reference string) string {
	matches, err := r.searcher.SearchSymbol(ctx, reference, 1)
	if err != nil {
		logger.Warn(ctx, "Ticker resolution degraded to raw input", "reference", reference, "error", err)
		return reference
	}
	if len(matches) == 0 {
		logger.Warn(ctx, "No ticker match found, using raw input", "reference", reference)
		return reference
	}

	logger.Info(ctx, "Ticker resolved", "reference", reference, "symbol", matches[0].Symbol)
	return matches[0].Symbol
}
