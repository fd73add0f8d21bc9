package types

import (
	"time"
)

// ExtractedIntent is the structured result of intent extraction from a
// free-text query. Year defaults to the current calendar year when the
// query gives no time frame; YearAssumed marks that case so the surface
// can tell the user.
type ExtractedIntent struct {
	Year            int    `json:"year"`
	TickerOrCompany string `json:"ticker_or_company"`
	YearAssumed     bool   `json:"year_assumed,omitempty"`
}

// Transcript is a single earnings-call record for one ticker and fiscal
// year. Immutable once fetched; scoped to one pipeline run.
type Transcript struct {
	Symbol  string `json:"symbol"`
	Quarter int    `json:"quarter,omitempty"`
	Year    int    `json:"year"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// CallDate parses the transcript timestamp. The service returns second
// precision ("2006-01-02 15:04:05") but some records carry a bare date.
func (t Transcript) CallDate() (time.Time, error) {
	if d, err := time.Parse("2006-01-02 15:04:05", t.Date); err == nil {
		return d, nil
	}
	return time.Parse("2006-01-02", t.Date)
}

// TranscriptBatch is one raw response from the transcript service, handed
// to the fetcher uninterpreted so the retry state machine owns the policy.
type TranscriptBatch struct {
	StatusCode int
	// RetryAfterSeconds comes from the Retry-After header on 429
	// responses; 0 when the header is absent or unparseable.
	RetryAfterSeconds int
	Transcripts       []Transcript
}

// SearchMatch is one hit from the company-search service.
type SearchMatch struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Currency string `json:"currency,omitempty"`
	Exchange string `json:"stockExchange,omitempty"`
}

// PricePoint is one daily close, ordered ascending by date in a series.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Headline is one scraped news headline used for report context.
type Headline struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// Report is the assembled output of one pipeline run.
type Report struct {
	Transcript  Transcript   `json:"transcript"`
	Analysis    string       `json:"analysis"`
	Prices      []PricePoint `json:"prices,omitempty"`
	Headlines   []Headline   `json:"headlines,omitempty"`
	YearAssumed bool         `json:"year_assumed,omitempty"`
}
