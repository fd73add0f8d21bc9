// Package report assembles the user-facing output: the chart window math,
// a plain-text price chart with a call-date marker, and the markdown
// report body. A graphical renderer can consume the same price series and
// marker date; this package only proves the contract.
package report

import (
	"fmt"
	"strings"
	"time"

	"earnings-analyst/internal/types"
)

const chartWidth = 40

// Window computes the price-chart date range bracketing the call date:
// windowDays before the call to windowDays after, with the end clamped to
// now so the range never extends into the future.
func Window(callDate time.Time, windowDays int, now time.Time) (start, end time.Time) {
	start = callDate.AddDate(0, 0, -windowDays)
	end = callDate.AddDate(0, 0, windowDays)
	if end.After(now) {
		end = now
	}
	return start, end
}

// RenderChart renders the closing-price series as horizontal bars with a
// marker on the first trading day on or after the call date.
func RenderChart(prices []types.PricePoint, callDate time.Time) string {
	if len(prices) == 0 {
		return ""
	}

	lo, hi := prices[0].Close, prices[0].Close
	for _, p := range prices {
		if p.Close < lo {
			lo = p.Close
		}
		if p.Close > hi {
			hi = p.Close
		}
	}

	var sb strings.Builder
	marked := false
	for _, p := range prices {
		bar := chartWidth / 2
		if hi > lo {
			bar = int((p.Close - lo) / (hi - lo) * chartWidth)
		}
		line := fmt.Sprintf("%s %8.2f |%s", p.Date.Format("2006-01-02"), p.Close, strings.Repeat("#", bar))
		if !marked && !p.Date.Before(truncateToDay(callDate)) {
			line += "  <- earnings call"
			marked = true
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Render produces the markdown report for one pipeline run
func Render(rep *types.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## Transcript Analysis for %s - %s\n\n", rep.Transcript.Symbol, rep.Transcript.Date)

	if rep.YearAssumed {
		sb.WriteString("_Year not specified, using current year._\n\n")
	}

	if chart := RenderChart(rep.Prices, callDateOrZero(rep.Transcript)); chart != "" {
		sb.WriteString("### Price around the call\n\n```\n")
		sb.WriteString(chart)
		sb.WriteString("```\n\n")
	}

	sb.WriteString("### AI Analysis\n\n")
	sb.WriteString(rep.Analysis)
	sb.WriteString("\n\n")

	if len(rep.Headlines) > 0 {
		sb.WriteString("### Recent headlines\n\n")
		for _, h := range rep.Headlines {
			fmt.Fprintf(&sb, "- [%s](%s)\n", h.Title, h.URL)
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("<details>\n<summary>View Full Transcript</summary>\n\n")
	sb.WriteString(rep.Transcript.Content)
	sb.WriteString("\n</details>\n")

	return sb.String()
}

func callDateOrZero(t types.Transcript) time.Time {
	d, err := t.CallDate()
	if err != nil {
		return time.Time{}
	}
	return d
}
