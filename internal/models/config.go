// Package models - Service configuration and operational settings.
// This file defines configuration structures for all service components.
//
// Configuration Philosophy:
// - Hierarchical configuration with logical grouping (server, storage, security, etc.)
// - Environment-friendly defaults that work out of the box
// - Comprehensive validation to catch misconfigurations early
// - Security-first approach with safe defaults
package models

import (
	"errors"
	"fmt"
	"time"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypePostgres = "postgres"
	StorageTypeSQLite   = "sqlite"
)

// Config is the root configuration structure containing all service settings.
type Config struct {
	Server        ServerConfig        `yaml:"server" json:"server"`               // HTTP server configuration
	Storage       StorageConfig       `yaml:"storage" json:"storage"`             // User persistence settings
	Security      SecurityConfig      `yaml:"security" json:"security"`           // Authentication settings
	RateLimit     RateLimitConfig     `yaml:"rate_limit" json:"rate_limit"`       // Tier quotas and window
	LLM           LLMConfig           `yaml:"llm" json:"llm"`                     // Downstream AI provider
	Logging       LoggingConfig       `yaml:"logging" json:"logging"`             // Logging and output configuration
	Metrics       MetricsConfig       `yaml:"metrics" json:"metrics"`             // Monitoring and metrics
	Observability ObservabilityConfig `yaml:"observability" json:"observability"` // Tracing configuration
}

type ServerConfig struct {
	Port         int           `yaml:"port" json:"port"`
	Host         string        `yaml:"host" json:"host"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" json:"idle_timeout"`
	TLSEnabled   bool          `yaml:"tls_enabled" json:"tls_enabled"`
	TLSCertFile  string        `yaml:"tls_cert_file" json:"tls_cert_file"`
	TLSKeyFile   string        `yaml:"tls_key_file" json:"tls_key_file"`
	// DebugEndpoints enables the limiter snapshot and reset endpoints.
	// Keep disabled in production deployments.
	DebugEndpoints bool `yaml:"debug_endpoints" json:"debug_endpoints"`
}

type StorageConfig struct {
	Type     string         `yaml:"type" json:"type"`
	Database DatabaseConfig `yaml:"database" json:"database"`
}

type DatabaseConfig struct {
	DSN          string `yaml:"dsn" json:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns" json:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns" json:"max_idle_conns"`
}

type SecurityConfig struct {
	JWTSecret  string        `yaml:"jwt_secret" json:"jwt_secret"`
	JWTIssuer  string        `yaml:"jwt_issuer" json:"jwt_issuer"`
	TokenTTL   time.Duration `yaml:"token_ttl" json:"token_ttl"`
	BCryptCost int           `yaml:"bcrypt_cost" json:"bcrypt_cost"`
}

// RateLimitConfig holds the per-tier quota table and the shared counting
// window. Tiers not present in the table fall back to the guest quota.
type RateLimitConfig struct {
	TierLimits      map[string]int `yaml:"tier_limits" json:"tier_limits"`
	Window          time.Duration  `yaml:"window" json:"window"`
	CleanupInterval time.Duration  `yaml:"cleanup_interval" json:"cleanup_interval"`
}

type LLMConfig struct {
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	APIKey      string        `yaml:"api_key" json:"api_key"`
	Model       string        `yaml:"model" json:"model"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens"`
	Temperature float64       `yaml:"temperature" json:"temperature"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
}

type LoggingConfig struct {
	Level    string `yaml:"level" json:"level"`
	Format   string `yaml:"format" json:"format"`
	Output   string `yaml:"output" json:"output"`
	FilePath string `yaml:"file_path" json:"file_path"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
	Port    int    `yaml:"port" json:"port"`
}

type ObservabilityConfig struct {
	ServiceName string        `yaml:"service_name" json:"service_name"`
	Tracing     TracingConfig `yaml:"tracing" json:"tracing"`
}

type TracingConfig struct {
	Enabled      bool    `yaml:"enabled" json:"enabled"`
	Exporter     string  `yaml:"exporter" json:"exporter"` // "stdout" or "otlp"
	OTLPEndpoint string  `yaml:"otlp_endpoint" json:"otlp_endpoint"`
	SampleRate   float64 `yaml:"sample_rate" json:"sample_rate"`
}

// NewDefaultConfig creates a configuration with production-ready defaults.
// The tier table and window match the documented quota policy; the bundled
// model settings target an OpenAI-compatible endpoint.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Storage: StorageConfig{
			Type: StorageTypeMemory,
			Database: DatabaseConfig{
				MaxOpenConns: 10,
				MaxIdleConns: 5,
			},
		},
		Security: SecurityConfig{
			JWTIssuer:  "aigate",
			TokenTTL:   24 * time.Hour,
			BCryptCost: 10,
		},
		RateLimit: RateLimitConfig{
			TierLimits: map[string]int{
				TierGuest:   10,
				TierFree:    100,
				TierPremium: 1000,
			},
			Window:          time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
		LLM: LLMConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			MaxTokens:   1024,
			Temperature: 0.7,
			Timeout:     60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
			Port:    9090,
		},
		Observability: ObservabilityConfig{
			ServiceName: "aigate",
			Tracing: TracingConfig{
				Enabled:    false,
				Exporter:   "stdout",
				SampleRate: 1.0,
			},
		},
	}
}

// Validate checks the complete configuration for consistency.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage config: %w", err)
	}
	if err := c.Security.Validate(); err != nil {
		return fmt.Errorf("security config: %w", err)
	}
	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate limit config: %w", err)
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}
	return nil
}

func (sc *ServerConfig) Validate() error {
	if sc.Port < 1 || sc.Port > 65535 {
		return fmt.Errorf("invalid port: %d", sc.Port)
	}
	if sc.TLSEnabled && (sc.TLSCertFile == "" || sc.TLSKeyFile == "") {
		return errors.New("tls_cert_file and tls_key_file are required when TLS is enabled")
	}
	return nil
}

func (st *StorageConfig) Validate() error {
	switch st.Type {
	case StorageTypeMemory:
	case StorageTypePostgres, StorageTypeSQLite:
		if st.Database.DSN == "" {
			return fmt.Errorf("database DSN is required for %s storage", st.Type)
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", st.Type)
	}
	return nil
}

func (sec *SecurityConfig) Validate() error {
	if sec.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if sec.TokenTTL <= 0 {
		return errors.New("token_ttl must be positive")
	}
	if sec.BCryptCost < 4 || sec.BCryptCost > 31 {
		return fmt.Errorf("bcrypt_cost out of range: %d", sec.BCryptCost)
	}
	return nil
}

// Validate rejects quota tables the limiter cannot honor. A zero quota is
// legal (always deny); a negative one is a configuration error.
func (rl *RateLimitConfig) Validate() error {
	if len(rl.TierLimits) == 0 {
		return errors.New("at least one tier limit is required")
	}
	if _, ok := rl.TierLimits[TierGuest]; !ok {
		return errors.New("tier_limits must include the guest tier")
	}
	for tier, limit := range rl.TierLimits {
		if limit < 0 {
			return fmt.Errorf("tier %q has negative limit %d", tier, limit)
		}
	}
	if rl.Window <= 0 {
		return errors.New("window must be positive")
	}
	if rl.CleanupInterval <= 0 {
		return errors.New("cleanup_interval must be positive")
	}
	return nil
}

func (lc *LLMConfig) Validate() error {
	if lc.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if lc.Model == "" {
		return errors.New("model is required")
	}
	if lc.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

func (lg *LoggingConfig) Validate() error {
	switch lg.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", lg.Level)
	}
	switch lg.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported log format: %s", lg.Format)
	}
	if lg.Output == "file" && lg.FilePath == "" {
		return errors.New("file_path is required when output is file")
	}
	return nil
}

func (mc *MetricsConfig) Validate() error {
	if !mc.Enabled {
		return nil
	}
	if mc.Port < 1 || mc.Port > 65535 {
		return fmt.Errorf("invalid metrics port: %d", mc.Port)
	}
	if mc.Path == "" {
		return errors.New("metrics path is required when metrics are enabled")
	}
	return nil
}
