package interfaces

import (
	"context"

	"earnings-analyst/internal/types"
)

// IntentExtractor turns a free-text query into a structured intent via a
// language-model tool-call contract. A malformed or missing structured
// response is a fatal error, never retried.
type IntentExtractor interface {
	ExtractIntent(ctx context.Context, query string) (types.ExtractedIntent, error)
}
