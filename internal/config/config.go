package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Store backend selection values.
const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

// Config holds the environment driven configuration for the chat service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"chat-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"CHAT_API_PORT" envDefault:"8080"`
	LogLevel        string        `env:"CHAT_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"CHAT_LOG_FORMAT" envDefault:"console"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Observability
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTLPHeaders  string `env:"OTEL_EXPORTER_OTLP_HEADERS" envDefault:""`

	// Store Backend Selection
	StoreBackend string `env:"CHAT_STORE_BACKEND" envDefault:"postgres"` // Options: "postgres" or "memory"

	// Database (required when the postgres backend is selected)
	DBPostgresqlDSN string        `env:"DB_POSTGRESQL_DSN"`
	DBMaxIdleConns  int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns  int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime  time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	// Model Provider (OpenAI-compatible chat completion endpoint)
	ModelBaseURL     string        `env:"CHAT_MODEL_BASE_URL" envDefault:"https://api.openai.com/v1"`
	ModelAPIKey      string        `env:"CHAT_MODEL_API_KEY"`
	ModelName        string        `env:"CHAT_MODEL" envDefault:"gpt-4.1-mini"`
	ModelMaxTokens   int           `env:"CHAT_MODEL_MAX_TOKENS" envDefault:"300"`
	ModelTemperature float64       `env:"CHAT_MODEL_TEMPERATURE" envDefault:"0.7"`
	ModelTimeout     time.Duration `env:"CHAT_MODEL_TIMEOUT" envDefault:"120s"`

	// Boundary rate limiting
	RateLimitEnabled   bool    `env:"CHAT_RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitPerMinute float64 `env:"CHAT_RATE_LIMIT_PER_MINUTE" envDefault:"100"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.ModelBaseURL = strings.TrimSpace(cfg.ModelBaseURL)
	cfg.ModelAPIKey = strings.TrimSpace(cfg.ModelAPIKey)
	cfg.DBPostgresqlDSN = strings.TrimSpace(cfg.DBPostgresqlDSN)

	switch cfg.StoreBackend {
	case StoreBackendPostgres:
		if cfg.DBPostgresqlDSN == "" {
			return nil, fmt.Errorf("DB_POSTGRESQL_DSN is required when CHAT_STORE_BACKEND is %q", StoreBackendPostgres)
		}
	case StoreBackendMemory:
	default:
		return nil, fmt.Errorf("unsupported CHAT_STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.ModelBaseURL == "" {
		return nil, fmt.Errorf("CHAT_MODEL_BASE_URL must not be empty")
	}
	if cfg.ModelAPIKey == "" {
		return nil, fmt.Errorf("CHAT_MODEL_API_KEY is required")
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsMemoryStore reports whether the volatile in-process store is selected.
func (c *Config) IsMemoryStore() bool {
	return c.StoreBackend == StoreBackendMemory
}
