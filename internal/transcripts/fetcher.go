// Package transcripts implements the transcript-acquisition state machine:
// bounded transient retries per year nested inside bounded year fallback.
package transcripts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"earnings-analyst/internal/interfaces"
	"earnings-analyst/internal/logger"
	"earnings-analyst/internal/trace"
	"earnings-analyst/internal/types"
)

// ErrNotFound is returned after all year fallbacks produced empty results.
var ErrNotFound = errors.New("no transcript found")

// ErrAborted is returned after the transient-retry budget for a single
// year was exhausted (persistent rate limiting or transport failure). It
// surfaces to the user the same as ErrNotFound but is logged distinctly.
var ErrAborted = errors.New("transcript fetch aborted")

const defaultRetryAfter = 5 * time.Second

// Fetcher retrieves one transcript per (symbol, year) request.
//
// Retry policy, per year: a 200 with content wins immediately; a 200 with
// an empty list is not retryable and falls back to the previous year; a
// 429 sleeps for Retry-After and consumes an attempt; any other status or
// a transport failure sleeps 2^attempt seconds and consumes an attempt.
// Exhausting attempts aborts the whole fetch without further year
// fallback. All sleeps go through the injected Sleeper.
type Fetcher struct {
	source           interfaces.TranscriptSource
	sleeper          interfaces.Sleeper
	maxAttempts      int
	maxYearFallbacks int
}

var _ interfaces.TranscriptFetcher = (*Fetcher)(nil)

// New creates a fetcher. Non-positive budgets fall back to the service
// defaults (5 attempts, 3 years).
func New(source interfaces.TranscriptSource, sleeper interfaces.Sleeper, maxAttempts, maxYearFallbacks int) *Fetcher {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if maxYearFallbacks <= 0 {
		maxYearFallbacks = 3
	}
	if sleeper == nil {
		sleeper = RealSleeper{}
	}
	return &Fetcher{
		source:           source,
		sleeper:          sleeper,
		maxAttempts:      maxAttempts,
		maxYearFallbacks: maxYearFallbacks,
	}
}

// Fetch runs the two-level state machine for (symbol, year).
func (f *Fetcher) Fetch(ctx context.Context, symbol string, year int) (types.Transcript, error) {
	ctx, span := trace.StartSpan(ctx, "transcripts.Fetch")
	defer span.End()

	for fallback := 0; fallback < f.maxYearFallbacks; fallback++ {
		y := year - fallback
		transcript, empty, err := f.fetchYear(ctx, symbol, y)
		if err != nil {
			return types.Transcript{}, err
		}
		if !empty {
			logger.FetchEvent(ctx, symbol, "found", "year", transcript.Year, "date", transcript.Date)
			return transcript, nil
		}
		logger.FetchEvent(ctx, symbol, "year_empty", "year", y, "next_year", y-1)
	}

	logger.FetchEvent(ctx, symbol, "not_found", "first_year", year, "years_tried", f.maxYearFallbacks)
	return types.Transcript{}, fmt.Errorf("%w for %s in %d candidate years ending %d", ErrNotFound, symbol, f.maxYearFallbacks, year)
}

// fetchYear runs the transient-retry loop for a single year. empty=true
// means the service answered definitively that no transcript exists, which
// is the only outcome that permits year fallback.
func (f *Fetcher) fetchYear(ctx context.Context, symbol string, year int) (types.Transcript, bool, error) {
	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		batch, err := f.source.BatchTranscripts(ctx, symbol, year)
		if err != nil {
			if aborted := f.backoff(ctx, symbol, year, attempt, err); aborted {
				return types.Transcript{}, false, fmt.Errorf("%w: %s year %d: %v", ErrAborted, symbol, year, err)
			}
			continue
		}

		switch {
		case batch.StatusCode == 200 && len(batch.Transcripts) > 0:
			return batch.Transcripts[0], false, nil

		case batch.StatusCode == 200:
			// An empty list is a definitive absence, not a transient
			// condition; retrying the same year would hammer the same
			// empty result.
			return types.Transcript{}, true, nil

		case batch.StatusCode == 429:
			wait := time.Duration(batch.RetryAfterSeconds) * time.Second
			if wait <= 0 {
				wait = defaultRetryAfter
			}
			logger.FetchEvent(ctx, symbol, "rate_limited",
				"year", year,
				"retry_after_seconds", int(wait.Seconds()),
				"attempt", attempt+1,
				"max_attempts", f.maxAttempts,
			)
			f.sleeper.Sleep(ctx, wait)
			if attempt+1 == f.maxAttempts {
				return types.Transcript{}, false, fmt.Errorf("%w: %s year %d: rate limit persisted", ErrAborted, symbol, year)
			}

		default:
			err := fmt.Errorf("transcript service HTTP %d", batch.StatusCode)
			if aborted := f.backoff(ctx, symbol, year, attempt, err); aborted {
				return types.Transcript{}, false, fmt.Errorf("%w: %s year %d: %v", ErrAborted, symbol, year, err)
			}
		}
	}
	return types.Transcript{}, false, fmt.Errorf("%w: %s year %d", ErrAborted, symbol, year)
}

// backoff sleeps 2^attempt seconds and reports whether the retry budget is
// now exhausted.
func (f *Fetcher) backoff(ctx context.Context, symbol string, year, attempt int, cause error) bool {
	wait := time.Duration(1<<uint(attempt)) * time.Second
	logger.FetchEvent(ctx, symbol, "transport_retry",
		"year", year,
		"wait_seconds", int(wait.Seconds()),
		"attempt", attempt+1,
		"max_attempts", f.maxAttempts,
		"cause", cause.Error(),
	)
	f.sleeper.Sleep(ctx, wait)
	return attempt+1 == f.maxAttempts
}

// RealSleeper blocks on the wall clock, honoring context cancellation.
type RealSleeper struct{}

var _ interfaces.Sleeper = RealSleeper{}

func (RealSleeper) Sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
