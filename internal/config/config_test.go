package config

import (
	"testing"
	"time"
)

func clearPipelineEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "GEMINI_API_KEY", "DATABASE_URL",
		"CGNEWS_SCHEDULE", "SOURCES_CONFIG_PATH", "CATEGORIES_CONFIG_PATH",
		"RAW_DIR", "OUTPUT_DIR", "HISTORY_FILE_PATH", "HISTORY_TTL_HOURS",
		"MAX_EMBED_REQUESTS", "SCRAPE_CONCURRENCY", "EMBED_TIMEOUT_SECONDS",
		"REQUEST_TIMEOUT_SECONDS", "CGNEWS_DRY_RUN", "DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearPipelineEnv(t)
	t.Setenv("CGNEWS_DRY_RUN", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.SourcesConfigPath != "configs/sources.yaml" {
		t.Errorf("SourcesConfigPath = %q", cfg.SourcesConfigPath)
	}
	if cfg.MaxEmbedRequests != 200 {
		t.Errorf("MaxEmbedRequests = %d, want 200", cfg.MaxEmbedRequests)
	}
	if cfg.EmbedTimeout != 15*time.Second {
		t.Errorf("EmbedTimeout = %v", cfg.EmbedTimeout)
	}
	if cfg.RawDir != "data" || cfg.OutputDir != "data" {
		t.Errorf("dirs = %q/%q, want data/data", cfg.RawDir, cfg.OutputDir)
	}
	if cfg.ScrapeConcurrency != 4 {
		t.Errorf("ScrapeConcurrency = %d, want 4", cfg.ScrapeConcurrency)
	}
	if cfg.HistoryTTLHours != 48 {
		t.Errorf("HistoryTTLHours = %d, want 48", cfg.HistoryTTLHours)
	}
	if !cfg.DryRun {
		t.Error("DryRun should be set")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearPipelineEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("MAX_EMBED_REQUESTS", "50")
	t.Setenv("SCRAPE_CONCURRENCY", "8")
	t.Setenv("EMBED_TIMEOUT_SECONDS", "30")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("CGNEWS_SCHEDULE", "0 17 * * *")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.TelegramToken != "tok" || cfg.TelegramChatID != "-100123" {
		t.Errorf("telegram creds = %q/%q", cfg.TelegramToken, cfg.TelegramChatID)
	}
	if cfg.MaxEmbedRequests != 50 {
		t.Errorf("MaxEmbedRequests = %d, want 50", cfg.MaxEmbedRequests)
	}
	if cfg.ScrapeConcurrency != 8 {
		t.Errorf("ScrapeConcurrency = %d, want 8", cfg.ScrapeConcurrency)
	}
	if cfg.EmbedTimeout != 30*time.Second {
		t.Errorf("EmbedTimeout = %v, want 30s", cfg.EmbedTimeout)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Schedule != "0 17 * * *" {
		t.Errorf("Schedule = %q", cfg.Schedule)
	}
}

func TestLoad_RequiresTelegramUnlessDryRun(t *testing.T) {
	clearPipelineEnv(t)

	if _, err := Load(); err == nil {
		t.Error("missing telegram creds must fail validation")
	}

	t.Setenv("TELEGRAM_TOKEN", "tok")
	if _, err := Load(); err == nil {
		t.Error("missing chat id must fail validation")
	}

	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	if _, err := Load(); err != nil {
		t.Errorf("complete creds should validate: %v", err)
	}
}

func TestValidate_HistoryTTL(t *testing.T) {
	cfg := &Config{DryRun: true, HistoryTTLHours: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("non-positive TTL must fail validation")
	}

	cfg.HistoryTTLHours = 48
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestLoad_BadIntFallsBackToDefault(t *testing.T) {
	clearPipelineEnv(t)
	t.Setenv("CGNEWS_DRY_RUN", "true")
	t.Setenv("MAX_EMBED_REQUESTS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxEmbedRequests != 200 {
		t.Errorf("malformed int should keep default, got %d", cfg.MaxEmbedRequests)
	}
}
