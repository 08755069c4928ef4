package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port  int
	Debug bool

	// Storage. DatabaseURL selects Postgres; SQLitePath selects the embedded
	// local store. When both are empty the server refuses to start outside
	// debug mode.
	DatabaseURL string
	SQLitePath  string

	// Identity tokens
	TokenSecret string
	TokenTTL    time.Duration

	// Completion service
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string
	LLMTimeout time.Duration

	// Purchase events (optional; disabled when empty)
	RabbitMQURL string

	// Catalog. Empty means the embedded default dataset.
	CatalogPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnvInt("PORT", 3000),
		Debug:       getEnvBool("DEBUG", false),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", ""),
		TokenSecret: getEnv("TOKEN_SECRET", "change-me-in-production"),
		TokenTTL:    getEnvDuration("TOKEN_TTL", time.Hour),
		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		LLMBaseURL:  getEnv("LLM_BASE_URL", "https://api.aimlapi.com"),
		LLMModel:    getEnv("LLM_MODEL", "gpt-4"),
		LLMTimeout:  getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),
		CatalogPath: getEnv("CATALOG_PATH", ""),
	}

	// Validate required settings
	if cfg.TokenSecret == "change-me-in-production" && !cfg.Debug {
		return nil, fmt.Errorf("TOKEN_SECRET must be set in production")
	}
	if cfg.LLMAPIKey == "" && !cfg.Debug {
		return nil, fmt.Errorf("LLM_API_KEY must be set in production")
	}
	if cfg.DatabaseURL == "" && cfg.SQLitePath == "" {
		if !cfg.Debug {
			return nil, fmt.Errorf("DATABASE_URL or SQLITE_PATH must be set in production")
		}
		cfg.SQLitePath = "insurehub.db"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
