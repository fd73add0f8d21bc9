package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"earnings-analyst/internal/analyst"
	"earnings-analyst/internal/fmp"
	"earnings-analyst/internal/interfaces"
	"earnings-analyst/internal/llm/claude"
	"earnings-analyst/internal/llm/llmobs"
	"earnings-analyst/internal/llm/noop"
	"earnings-analyst/internal/llm/openai"
	"earnings-analyst/internal/logger"
	"earnings-analyst/internal/news"
	"earnings-analyst/internal/resolver"
	"earnings-analyst/internal/store"
	"earnings-analyst/internal/trace"
	"earnings-analyst/internal/transcripts"

	"github.com/joho/godotenv"
)

// initializeSystem initializes env, logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// initializeProvider returns the LLM-backed extractor and analyzer for
// the configured provider, wrapped with observability middleware. API
// keys are read once here and injected into the clients.
func initializeProvider(ctx context.Context, cfg *store.Config) (interfaces.IntentExtractor, interfaces.Analyzer) {
	var (
		extractor interfaces.IntentExtractor
		analyzer  interfaces.Analyzer
	)

	switch cfg.LLM.Provider {
	case "OPENAI":
		key := requireKey(ctx, cfg.LLM.APIKeyEnv)
		c := openai.NewClient(cfg, key)
		extractor, analyzer = c, c
	case "CLAUDE":
		key := requireKey(ctx, cfg.LLM.APIKeyEnv)
		c := claude.NewClient(cfg, key)
		extractor, analyzer = c, c
	default:
		p := noop.NewProvider()
		extractor, analyzer = p, p
		logger.Warn(ctx, "No LLM provider configured - using deterministic stub responses")
	}

	return llmobs.WrapExtractor(extractor), llmobs.WrapAnalyzer(analyzer)
}

func requireKey(ctx context.Context, env string) string {
	key := os.Getenv(env)
	if key == "" {
		logger.Warn(ctx, "LLM API key is empty - calls will fail", "env", env)
	}
	return key
}

// buildPipeline wires the full query pipeline from config
func buildPipeline(ctx context.Context, cfg *store.Config) *analyst.Pipeline {
	fmpClient := fmp.New(cfg.FMP.BaseURL, os.Getenv(cfg.FMP.APIKeyEnv))

	extractor, analyzer := initializeProvider(ctx, cfg)

	fetcher := transcripts.New(
		fmpClient,
		transcripts.RealSleeper{},
		cfg.Fetch.MaxAttempts,
		cfg.Fetch.MaxYearFallbacks,
	)

	p := analyst.New(extractor, resolver.New(fmpClient), fetcher, analyzer).
		WithPriceSource(fmpClient, cfg.Chart.WindowDays)

	if cfg.News.Enabled {
		scraper := news.NewScraper(time.Duration(cfg.News.TimeoutSeconds) * time.Second)
		p = p.WithHeadlineSource(scraper, cfg.News.MaxHeadlines)
	}

	return p
}
