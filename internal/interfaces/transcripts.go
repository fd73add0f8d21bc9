package interfaces

import (
	"context"

	"earnings-analyst/internal/types"
)

// TranscriptSource performs one raw transcript-service request for a
// (symbol, year) pair. It returns the status code, Retry-After hint and
// decoded list without interpreting them; transport failures come back as
// errors. Retry and fallback policy lives in the fetcher.
type TranscriptSource interface {
	BatchTranscripts(ctx context.Context, symbol string, year int) (*types.TranscriptBatch, error)
}

// TranscriptFetcher retrieves one transcript for a (symbol, year) pair,
// retrying transient failures and falling back across earlier years.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, symbol string, year int) (types.Transcript, error)
}
