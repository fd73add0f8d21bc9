package interfaces

import (
	"context"

	"earnings-analyst/internal/types"
)

// SymbolSearcher queries the company-search service for ticker matches.
type SymbolSearcher interface {
	SearchSymbol(ctx context.Context, query string, limit int) ([]types.SearchMatch, error)
}

// TickerResolver maps a company reference (name or ticker) to an exchange
// symbol. It never fails: when resolution yields nothing it returns the
// reference unchanged and lets downstream stages judge it.
type TickerResolver interface {
	ResolveTicker(ctx context.Context, reference string) string
}
