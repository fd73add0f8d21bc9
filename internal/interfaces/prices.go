package interfaces

import (
	"context"
	"time"

	"earnings-analyst/internal/types"
)

// PriceSource returns daily closing prices for a symbol over a date
// range, ordered ascending by date.
type PriceSource interface {
	DailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]types.PricePoint, error)
}
