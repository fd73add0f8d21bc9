package interfaces

import (
	"context"
	"time"
)

// Sleeper abstracts backoff waits so the retry state machine can be unit
// tested without real sleeps. Implementations should honor context
// cancellation.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration)
}
