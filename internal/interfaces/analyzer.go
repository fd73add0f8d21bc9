package interfaces

import (
	"context"

	"earnings-analyst/internal/types"
)

// Analyzer produces a critical free-text summary of an earnings-call
// transcript.
type Analyzer interface {
	Analyze(ctx context.Context, transcript types.Transcript) (string, error)
}
