package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d; want 3000", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v; want 1h", cfg.TokenTTL)
	}
	if cfg.LLMBaseURL != "https://api.aimlapi.com" {
		t.Errorf("LLMBaseURL = %q; want aimlapi default", cfg.LLMBaseURL)
	}
	if cfg.LLMModel != "gpt-4" {
		t.Errorf("LLMModel = %q; want gpt-4", cfg.LLMModel)
	}
	// Debug mode falls back to a local SQLite file.
	if cfg.SQLitePath == "" {
		t.Error("SQLitePath empty; want debug fallback")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("DATABASE_URL", "postgres://localhost/insurehub")
	t.Setenv("LLM_API_KEY", "key")
	t.Setenv("LLM_TIMEOUT", "10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != 8081 {
		t.Errorf("Port = %d; want 8081", cfg.Port)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %v; want 30m", cfg.TokenTTL)
	}
	if cfg.LLMTimeout != 10*time.Second {
		t.Errorf("LLMTimeout = %v; want 10s", cfg.LLMTimeout)
	}
	if cfg.DatabaseURL == "" {
		t.Error("DatabaseURL empty; want override")
	}
}

func TestLoad_RequiresSecretInProduction(t *testing.T) {
	t.Setenv("DEBUG", "false")
	t.Setenv("DATABASE_URL", "postgres://localhost/insurehub")
	t.Setenv("LLM_API_KEY", "key")

	if _, err := Load(); err == nil {
		t.Error("Load() = nil error; want failure on default TOKEN_SECRET")
	}
}

func TestLoad_RequiresStoreInProduction(t *testing.T) {
	t.Setenv("DEBUG", "false")
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("LLM_API_KEY", "key")

	if _, err := Load(); err == nil {
		t.Error("Load() = nil error; want failure with no store configured")
	}
}
