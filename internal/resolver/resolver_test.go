package resolver

import (
	"context"
	"errors"
	"testing"

	"earnings-analyst/internal/types"
)

type fakeSearcher struct {
	matches []types.SearchMatch
	err     error
	queries []string
	limits  []int
}

func (f *fakeSearcher) SearchSymbol(ctx context.Context, query string, limit int) ([]types.SearchMatch, error) {
	f.queries = append(f.queries, query)
	f.limits = append(f.limits, limit)
	return f.matches, f.err
}

func TestResolveTickerTopMatch(t *testing.T) {
	searcher := &fakeSearcher{matches: []types.SearchMatch{
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "APLE", Name: "Apple Hospitality REIT"},
	}}
	r := New(searcher)

	got := r.ResolveTicker(context.Background(), "Apple")
	if got != "AAPL" {
		t.Errorf("Expected AAPL, got %s", got)
	}

	if len(searcher.limits) != 1 || searcher.limits[0] != 1 {
		t.Errorf("Expected a single search with limit 1, got %v", searcher.limits)
	}
}

func TestResolveTickerNoMatchReturnsInput(t *testing.T) {
	r := New(&fakeSearcher{})

	got := r.ResolveTicker(context.Background(), "Obscure Holdings Ltd")
	if got != "Obscure Holdings Ltd" {
		t.Errorf("Expected identity fallback, got %s", got)
	}
}

func TestResolveTickerErrorReturnsInput(t *testing.T) {
	r := New(&fakeSearcher{err: errors.New("search: HTTP 503")})

	got := r.ResolveTicker(context.Background(), "MSFT")
	if got != "MSFT" {
		t.Errorf("Expected identity fallback on error, got %s", got)
	}
}
