package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: OPENAI\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected config to load, got %v", err)
	}

	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("Expected default model gpt-4o, got %s", cfg.LLM.Model)
	}
	if cfg.LLM.MaxTokens != 2000 {
		t.Errorf("Expected default max_tokens 2000, got %d", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Temperature != 0.2 {
		t.Errorf("Expected default temperature 0.2, got %f", cfg.LLM.Temperature)
	}
	if cfg.LLM.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("Expected default api_key_env OPENAI_API_KEY, got %s", cfg.LLM.APIKeyEnv)
	}
	if cfg.Fetch.MaxAttempts != 5 {
		t.Errorf("Expected default max_attempts 5, got %d", cfg.Fetch.MaxAttempts)
	}
	if cfg.Fetch.MaxYearFallbacks != 3 {
		t.Errorf("Expected default max_year_fallbacks 3, got %d", cfg.Fetch.MaxYearFallbacks)
	}
	if cfg.Chart.WindowDays != 30 {
		t.Errorf("Expected default window_days 30, got %d", cfg.Chart.WindowDays)
	}
	if cfg.FMP.BaseURL != "https://financialmodelingprep.com" {
		t.Errorf("Unexpected default FMP base URL %s", cfg.FMP.BaseURL)
	}
}

func TestLoadConfigClaudeKeyDefault(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: CLAUDE\n  model: claude-sonnet-4-20250514\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected config to load, got %v", err)
	}
	if cfg.LLM.APIKeyEnv != "CLAUDE_API_KEY" {
		t.Errorf("Expected CLAUDE_API_KEY default, got %s", cfg.LLM.APIKeyEnv)
	}
}

func TestLoadConfigEmptyProviderDefaultsToNoop(t *testing.T) {
	path := writeConfig(t, "fetch:\n  max_attempts: 2\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected config to load, got %v", err)
	}
	if cfg.LLM.Provider != "NOOP" {
		t.Errorf("Expected NOOP provider default, got %s", cfg.LLM.Provider)
	}
	if cfg.Fetch.MaxAttempts != 2 {
		t.Errorf("Expected max_attempts 2 to survive, got %d", cfg.Fetch.MaxAttempts)
	}
}

func TestLoadConfigInvalidProvider(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: GEMINI\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("Expected validation error for unknown provider")
	}
	if !strings.Contains(err.Error(), "llm.provider") {
		t.Errorf("Expected provider message, got %v", err)
	}
}

func TestLoadConfigInvalidTemperature(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: OPENAI\n  temperature: 3.5\n")

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("Expected validation error for out-of-range temperature")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}
