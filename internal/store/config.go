package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LLM struct {
		Provider    string  `yaml:"provider"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		System      string  `yaml:"system"`
		APIKeyEnv   string  `yaml:"api_key_env"`
	} `yaml:"llm"`
	FMP struct {
		BaseURL   string `yaml:"base_url"`
		APIKeyEnv string `yaml:"api_key_env"`
	} `yaml:"fmp"`
	Fetch struct {
		MaxAttempts      int `yaml:"max_attempts"`
		MaxYearFallbacks int `yaml:"max_year_fallbacks"`
	} `yaml:"fetch"`
	Chart struct {
		WindowDays int `yaml:"window_days"`
	} `yaml:"chart"`
	News struct {
		Enabled        bool `yaml:"enabled"`
		MaxHeadlines   int  `yaml:"max_headlines"`
		TimeoutSeconds int  `yaml:"timeout_seconds"`
	} `yaml:"news"`
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "OPENAI", "CLAUDE", "NOOP":
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI', 'CLAUDE', or 'NOOP'", c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0-2, got %.2f", c.LLM.Temperature)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.Fetch.MaxAttempts <= 0 {
		return fmt.Errorf("fetch.max_attempts must be positive, got %d", c.Fetch.MaxAttempts)
	}
	if c.Fetch.MaxYearFallbacks <= 0 {
		return fmt.Errorf("fetch.max_year_fallbacks must be positive, got %d", c.Fetch.MaxYearFallbacks)
	}
	if c.Chart.WindowDays <= 0 {
		return fmt.Errorf("chart.window_days must be positive, got %d", c.Chart.WindowDays)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = "NOOP"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2000
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.2
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = defaultKeyEnv(c.LLM.Provider)
	}
	if c.FMP.BaseURL == "" {
		c.FMP.BaseURL = "https://financialmodelingprep.com"
	}
	if c.FMP.APIKeyEnv == "" {
		c.FMP.APIKeyEnv = "FMP_API_KEY"
	}
	if c.Fetch.MaxAttempts == 0 {
		c.Fetch.MaxAttempts = 5
	}
	if c.Fetch.MaxYearFallbacks == 0 {
		c.Fetch.MaxYearFallbacks = 3
	}
	if c.Chart.WindowDays == 0 {
		c.Chart.WindowDays = 30
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 5
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 15
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func defaultKeyEnv(provider string) string {
	switch provider {
	case "CLAUDE":
		return "CLAUDE_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}
