package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"earnings-analyst/internal/llm"
	"earnings-analyst/internal/logger"
	"earnings-analyst/internal/report"
	"earnings-analyst/internal/trace"
	"earnings-analyst/internal/transcripts"
)

// userFailureNotice is the single user-visible failure message; the logs
// carry the distinct cause.
const userFailureNotice = "Unable to fetch or analyze the transcript. Please try a different query."

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer trace.Shutdown(context.Background())

	cfg, err := loadConfig(ctx, *configPath)
	if err != nil {
		os.Exit(1)
	}

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query == "" {
		query = promptForQuery()
	}
	if query == "" {
		fmt.Fprintln(os.Stderr, "no query given")
		os.Exit(1)
	}

	pipeline := buildPipeline(ctx, cfg)

	rep, err := pipeline.Run(ctx, query)
	if err != nil {
		logFailure(ctx, err)
		fmt.Fprintln(os.Stderr, userFailureNotice)
		os.Exit(1)
	}

	fmt.Println(report.Render(rep))
}

func promptForQuery() string {
	fmt.Print("What earnings call transcript would you like analyzed? ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// logFailure records the distinct cause before the uniform user notice
func logFailure(ctx context.Context, err error) {
	switch {
	case errors.Is(err, transcripts.ErrNotFound):
		logger.ErrorWithErr(ctx, "Transcript not found after year fallback", err)
	case errors.Is(err, transcripts.ErrAborted):
		logger.ErrorWithErr(ctx, "Transcript fetch aborted after transient retries", err)
	case errors.Is(err, llm.ErrIntentExtraction):
		logger.ErrorWithErr(ctx, "Intent extraction failed", err)
	case errors.Is(err, llm.ErrAnalysis):
		logger.ErrorWithErr(ctx, "Transcript analysis failed", err)
	default:
		logger.ErrorWithErr(ctx, "Pipeline run failed", err)
	}
}
