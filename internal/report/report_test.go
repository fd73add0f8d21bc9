package report

import (
	"strings"
	"testing"
	"time"

	"earnings-analyst/internal/types"
)

func TestWindowBracketsCallDate(t *testing.T) {
	call := time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	start, end := Window(call, 30, now)

	if want := time.Date(2024, 2, 14, 17, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("Expected start %v, got %v", want, start)
	}
	if want := time.Date(2024, 4, 14, 17, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("Expected end %v, got %v", want, end)
	}
}

func TestWindowClampsEndToNow(t *testing.T) {
	call := time.Date(2024, 5, 20, 17, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, end := Window(call, 30, now)

	if !end.Equal(now) {
		t.Errorf("Expected end clamped to now %v, got %v", now, end)
	}
}

func TestRenderChartMarksCallDate(t *testing.T) {
	call := time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC)
	prices := []types.PricePoint{
		{Date: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), Close: 100},
		{Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), Close: 110},
		{Date: time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC), Close: 105},
	}

	chart := RenderChart(prices, call)

	lines := strings.Split(strings.TrimRight(chart, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 chart rows, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "<- earnings call") {
		t.Errorf("Expected marker on the call date row, got %q", lines[1])
	}
	if strings.Contains(lines[0], "<- earnings call") || strings.Contains(lines[2], "<- earnings call") {
		t.Error("Expected exactly one marked row")
	}
}

func TestRenderChartEmptySeries(t *testing.T) {
	if got := RenderChart(nil, time.Now()); got != "" {
		t.Errorf("Expected empty chart for empty series, got %q", got)
	}
}

func TestRenderReport(t *testing.T) {
	rep := &types.Report{
		Transcript: types.Transcript{
			Symbol:  "AAPL",
			Year:    2024,
			Date:    "2024-08-01 17:00:00",
			Content: "Operator: Good afternoon...",
		},
		Analysis:    "Revenue grew but guidance was vague.",
		YearAssumed: true,
		Headlines: []types.Headline{
			{Title: "Apple beats estimates", URL: "https://example.com/a"},
		},
	}

	out := Render(rep)

	for _, want := range []string{
		"## Transcript Analysis for AAPL - 2024-08-01 17:00:00",
		"Year not specified, using current year.",
		"### AI Analysis",
		"Revenue grew but guidance was vague.",
		"[Apple beats estimates](https://example.com/a)",
		"<summary>View Full Transcript</summary>",
		"Operator: Good afternoon...",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q", want)
		}
	}
}
