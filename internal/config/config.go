// Package config loads pipeline settings from the environment with
// sensible defaults for a single-host deployment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Delivery settings
	TelegramToken  string
	TelegramChatID string
	DryRun         bool // build and audit the bulletin but send nothing

	// Embedding settings
	GeminiAPIKey     string
	MaxEmbedRequests int // daily model-request budget (0 = unlimited)
	EmbedTimeout     time.Duration

	// Source settings
	SourcesConfigPath    string
	CategoriesConfigPath string // optional; built-in table when empty

	// Pipeline settings
	RawDir            string
	OutputDir         string
	ScrapeConcurrency int
	RequestTimeout    time.Duration

	// History settings
	DatabaseURL     string // PostgreSQL history when set, file history otherwise
	HistoryFilePath string
	HistoryTTLHours int

	// App settings
	Schedule string // cron spec; empty means run once and exit
	Debug    bool
}

func Load() (*Config, error) {
	cfg := &Config{
		SourcesConfigPath: "configs/sources.yaml",
		MaxEmbedRequests:  200,
		EmbedTimeout:      15 * time.Second,
		RawDir:            "data",
		OutputDir:         "data",
		ScrapeConcurrency: 4,
		RequestTimeout:    15 * time.Second,
		HistoryFilePath:   "sent_stories.json",
		HistoryTTLHours:   48,
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.Schedule = os.Getenv("CGNEWS_SCHEDULE")

	cfg.SourcesConfigPath = getEnvOrDefault("SOURCES_CONFIG_PATH", cfg.SourcesConfigPath)
	cfg.CategoriesConfigPath = os.Getenv("CATEGORIES_CONFIG_PATH")
	cfg.RawDir = getEnvOrDefault("RAW_DIR", cfg.RawDir)
	cfg.OutputDir = getEnvOrDefault("OUTPUT_DIR", cfg.OutputDir)
	cfg.HistoryFilePath = getEnvOrDefault("HISTORY_FILE_PATH", cfg.HistoryFilePath)
	cfg.HistoryTTLHours = getEnvIntOrDefault("HISTORY_TTL_HOURS", cfg.HistoryTTLHours)
	cfg.MaxEmbedRequests = getEnvIntOrDefault("MAX_EMBED_REQUESTS", cfg.MaxEmbedRequests)
	cfg.ScrapeConcurrency = getEnvIntOrDefault("SCRAPE_CONCURRENCY", cfg.ScrapeConcurrency)

	if v := os.Getenv("EMBED_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.EmbedTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	if os.Getenv("CGNEWS_DRY_RUN") == "true" {
		cfg.DryRun = true
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if !c.DryRun {
		if c.TelegramToken == "" {
			return fmt.Errorf("TELEGRAM_TOKEN is required (or set CGNEWS_DRY_RUN=true)")
		}
		if c.TelegramChatID == "" {
			return fmt.Errorf("TELEGRAM_CHAT_ID is required (or set CGNEWS_DRY_RUN=true)")
		}
	}
	if c.HistoryTTLHours <= 0 {
		return fmt.Errorf("HISTORY_TTL_HOURS must be positive")
	}
	return nil
}
