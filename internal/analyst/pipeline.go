// Package analyst composes the four pipeline stages: intent extraction,
// ticker resolution, transcript acquisition and analysis. Each stage's
// output feeds the next; any stage failure terminates the run with a
// single error and no partial report.
package analyst

import (
	"context"
	"time"

	"earnings-analyst/internal/interfaces"
	"earnings-analyst/internal/logger"
	"earnings-analyst/internal/report"
	"earnings-analyst/internal/trace"
	"earnings-analyst/internal/types"
)

// Pipeline runs one user query end to end. Each invocation owns its own
// intermediate values; a Pipeline is safe for concurrent use as long as
// its collaborators are.
type Pipeline struct {
	extractor interfaces.IntentExtractor
	resolver  interfaces.TickerResolver
	fetcher   interfaces.TranscriptFetcher
	analyzer  interfaces.Analyzer

	prices       interfaces.PriceSource
	headlines    interfaces.HeadlineSource
	windowDays   int
	maxHeadlines int

	now func() time.Time
}

// New creates a pipeline from the four required stages
func New(extractor interfaces.IntentExtractor, resolver interfaces.TickerResolver, fetcher interfaces.TranscriptFetcher, analyzer interfaces.Analyzer) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		resolver:   resolver,
		fetcher:    fetcher,
		analyzer:   analyzer,
		windowDays: 30,
		now:        time.Now,
	}
}

// WithPriceSource enables the price-chart section
func (p *Pipeline) WithPriceSource(src interfaces.PriceSource, windowDays int) *Pipeline {
	p.prices = src
	if windowDays > 0 {
		p.windowDays = windowDays
	}
	return p
}

// WithHeadlineSource enables the recent-headlines section
func (p *Pipeline) WithHeadlineSource(src interfaces.HeadlineSource, maxHeadlines int) *Pipeline {
	p.headlines = src
	p.maxHeadlines = maxHeadlines
	return p
}

// Run executes extract, resolve, fetch, analyze for one query. The price
// series and headlines are presentational extras: their failures degrade
// to empty sections rather than discarding a paid-for analysis.
func (p *Pipeline) Run(ctx context.Context, query string) (*types.Report, error) {
	ctx, span := trace.StartSpan(ctx, "analyst.Run")
	defer span.End()

	intent, err := p.extractor.ExtractIntent(ctx, query)
	if err != nil {
		return nil, err
	}
	if intent.YearAssumed {
		logger.Info(ctx, "Year not specified, using current year", "year", intent.Year)
	}

	symbol := p.resolver.ResolveTicker(ctx, intent.TickerOrCompany)

	transcript, err := p.fetcher.Fetch(ctx, symbol, intent.Year)
	if err != nil {
		return nil, err
	}

	analysis, err := p.analyzer.Analyze(ctx, transcript)
	if err != nil {
		return nil, err
	}

	rep := &types.Report{
		Transcript:  transcript,
		Analysis:    analysis,
		YearAssumed: intent.YearAssumed,
	}
	p.addPrices(ctx, rep)
	p.addHeadlines(ctx, rep)
	return rep, nil
}

func (p *Pipeline) addPrices(ctx context.Context, rep *types.Report) {
	if p.prices == nil {
		return
	}
	callDate, err := rep.Transcript.CallDate()
	if err != nil {
		logger.Warn(ctx, "Unparseable call date, skipping price chart", "date", rep.Transcript.Date, "error", err)
		return
	}
	start, end := report.Window(callDate, p.windowDays, p.now())
	prices, err := p.prices.DailyCloses(ctx, rep.Transcript.Symbol, start, end)
	if err != nil {
		logger.Warn(ctx, "Price series unavailable, skipping chart", "symbol", rep.Transcript.Symbol, "error", err)
		return
	}
	rep.Prices = prices
}

func (p *Pipeline) addHeadlines(ctx context.Context, rep *types.Report) {
	if p.headlines == nil {
		return
	}
	headlines, err := p.headlines.Headlines(ctx, rep.Transcript.Symbol, p.maxHeadlines)
	if err != nil {
		logger.Warn(ctx, "Headlines unavailable", "symbol", rep.Transcript.Symbol, "error", err)
		return
	}
	rep.Headlines = headlines
}
