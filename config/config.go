// Package config loads the completion backend settings from the
// environment, with optional .env support.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is the DashScope OpenAI-compatible endpoint the
	// reference deployment talks to. Any OpenAI-compatible base URL works.
	DefaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

	DefaultModel     = "qwen-max"
	DefaultMaxTokens = 1000
)

// Config holds the completion backend settings.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// Load reads configuration from a .env file (when present) and the
// environment. The API key is the one setting with no default.
func Load() (*Config, error) {
	// Best effort: a missing .env just means plain environment variables.
	_ = godotenv.Load()

	apiKey := os.Getenv("DASHSCOPE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("DASHSCOPE_API_KEY is not set")
	}

	cfg := &Config{
		APIKey:    apiKey,
		BaseURL:   envOr("MCPCHAT_BASE_URL", DefaultBaseURL),
		Model:     envOr("MCPCHAT_MODEL", DefaultModel),
		MaxTokens: DefaultMaxTokens,
	}

	if v := os.Getenv("MCPCHAT_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("MCPCHAT_MAX_TOKENS must be a positive integer, got %q", v)
		}
		cfg.MaxTokens = n
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
