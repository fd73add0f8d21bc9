package llmobs

import (
	"context"

	"earnings-analyst/internal/interfaces"
	"earnings-analyst/internal/logger"
	"earnings-analyst/internal/trace"
	"earnings-analyst/internal/types"
)

// observableExtractor wraps an IntentExtractor with logging and tracing
type observableExtractor struct {
	extractor interfaces.IntentExtractor
}

var _ interfaces.IntentExtractor = (*observableExtractor)(nil)

// WrapExtractor wraps an intent extractor with observability middleware
func WrapExtractor(extractor interfaces.IntentExtractor) interfaces.IntentExtractor {
	return &observableExtractor{extractor: extractor}
}

func (oe *observableExtractor) ExtractIntent(ctx context.Context, query string) (types.ExtractedIntent, error) {
	ctx, span := trace.StartSpan(ctx, "llm.ExtractIntent")
	defer span.End()

	// Skip(1) so the log reports the actual caller, not this wrapper
	logger.DebugSkip(ctx, 1, "Requesting intent extraction", "query_len", len(query))

	intent, err := oe.extractor.ExtractIntent(ctx, query)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to extract intent", err)
		return types.ExtractedIntent{}, err
	}

	logger.InfoSkip(ctx, 1, "Intent extracted",
		"year", intent.Year,
		"reference", intent.TickerOrCompany,
		"year_assumed", intent.YearAssumed,
	)
	return intent, nil
}

// observableAnalyzer wraps an Analyzer with logging and tracing
type observableAnalyzer struct {
	analyzer interfaces.Analyzer
}

var _ interfaces.Analyzer = (*observableAnalyzer)(nil)

// WrapAnalyzer wraps an analyzer with observability middleware
func WrapAnalyzer(analyzer interfaces.Analyzer) interfaces.Analyzer {
	return &observableAnalyzer{analyzer: analyzer}
}

func (oa *observableAnalyzer) Analyze(ctx context.Context, transcript types.Transcript) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Analyze")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Requesting transcript analysis",
		"symbol", transcript.Symbol,
		"year", transcript.Year,
		"content_len", len(transcript.Content),
	)

	analysis, err := oa.analyzer.Analyze(ctx, transcript)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to analyze transcript", err,
			"symbol", transcript.Symbol,
		)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Transcript analysis received",
		"symbol", transcript.Symbol,
		"analysis_len", len(analysis),
	)
	return analysis, nil
}
