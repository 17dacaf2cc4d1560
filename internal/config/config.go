package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"dextools-mcp/internal/dextools"
)

// Transports understood by the serve command.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds the MCP service configuration.
type Config struct {
	// DEXTools API
	APIKey     string `env:"DEXTOOLS_API_KEY"`
	Plan       string `env:"DEXTOOLS_PLAN" envDefault:"trial"`
	BaseURL    string `env:"DEXTOOLS_BASE_URL"`
	APITimeout int    `env:"DEXTOOLS_TIMEOUT_SEC" envDefault:"30"`

	// Server
	Transport string `env:"MCP_TRANSPORT" envDefault:"stdio"`
	Port      int    `env:"MCP_PORT" envDefault:"8080"`
	TimeoutMS int    `env:"TIMEOUT_MS" envDefault:"35000"`

	// Redis response cache, disabled when RedisURL is empty
	RedisURL      string `env:"REDIS_URL"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTLSec   int    `env:"CACHE_TTL_SEC" envDefault:"60"`

	// Observability
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	PrometheusPort int    `env:"PROMETHEUS_PORT" envDefault:"9092"`
}

// Timeout returns the HTTP request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// RemoteTimeout returns the DEXTools HTTP client timeout.
func (c *Config) RemoteTimeout() time.Duration {
	return time.Duration(c.APITimeout) * time.Second
}

// CacheTTL returns the response cache TTL.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

// CacheEnabled reports whether a Redis URL is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// LoadFromEnv loads configuration from environment variables. When envFile
// is non-empty it is read first; a missing file is not an error and
// variables already set in the environment win.
func LoadFromEnv(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	cfg.Plan = strings.ToLower(strings.TrimSpace(cfg.Plan))
	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return dextools.ErrMissingAPIKey
	}

	if !dextools.ValidPlan(c.Plan) {
		return fmt.Errorf("invalid DEXTOOLS_PLAN: %s", c.Plan)
	}

	if c.Transport != TransportStdio && c.Transport != TransportHTTP {
		return fmt.Errorf("invalid MCP_TRANSPORT: %s (want stdio or http)", c.Transport)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	if c.PrometheusPort < 0 || c.PrometheusPort > 65535 {
		return fmt.Errorf("invalid prometheus port: %d", c.PrometheusPort)
	}

	if c.TimeoutMS < 1 {
		return fmt.Errorf("timeout must be at least 1ms, got %dms", c.TimeoutMS)
	}

	if c.APITimeout < 1 {
		return fmt.Errorf("DEXTOOLS_TIMEOUT_SEC must be at least 1, got %d", c.APITimeout)
	}

	if c.CacheEnabled() && c.CacheTTLSec < 1 {
		return fmt.Errorf("CACHE_TTL_SEC must be at least 1, got %d", c.CacheTTLSec)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}
