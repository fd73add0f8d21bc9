package interfaces

import (
	"context"

	"earnings-analyst/internal/types"
)

// HeadlineSource collects recent news headlines for a symbol to give the
// report some market context.
type HeadlineSource interface {
	Headlines(ctx context.Context, symbol string, limit int) ([]types.Headline, error)
}
