// Package config loads service configuration from a YAML file and
// AIGATE_-prefixed environment variables, with environment taking precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/saiful-70/ai-rate-limiter/internal/models"
)

// Load loads configuration from file and environment variables.
func Load(configPath string) (*models.Config, error) {
	// Start with default configuration
	config := models.NewDefaultConfig()

	// Load from file if provided and exists
	if configPath != "" {
		if err := loadFromFile(config, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Override with environment variables
	loadFromEnvironment(config)

	// Validate the final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(config *models.Config, filePath string) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", filePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

// loadFromEnvironment loads configuration from environment variables.
func loadFromEnvironment(config *models.Config) {
	// Server configuration
	if port := os.Getenv("AIGATE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if host := os.Getenv("AIGATE_HOST"); host != "" {
		config.Server.Host = host
	}

	if timeout := os.Getenv("AIGATE_READ_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Server.ReadTimeout = d
		}
	}

	if timeout := os.Getenv("AIGATE_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Server.WriteTimeout = d
		}
	}

	if timeout := os.Getenv("AIGATE_IDLE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Server.IdleTimeout = d
		}
	}

	if tls := os.Getenv("AIGATE_TLS_ENABLED"); tls != "" {
		config.Server.TLSEnabled = strings.ToLower(tls) == "true"
	}

	if certFile := os.Getenv("AIGATE_TLS_CERT_FILE"); certFile != "" {
		config.Server.TLSCertFile = certFile
	}

	if keyFile := os.Getenv("AIGATE_TLS_KEY_FILE"); keyFile != "" {
		config.Server.TLSKeyFile = keyFile
	}

	if debug := os.Getenv("AIGATE_DEBUG_ENDPOINTS"); debug != "" {
		config.Server.DebugEndpoints = strings.ToLower(debug) == "true"
	}

	// Storage configuration
	if storageType := os.Getenv("AIGATE_STORAGE_TYPE"); storageType != "" {
		config.Storage.Type = storageType
	}

	if dsn := os.Getenv("AIGATE_DATABASE_DSN"); dsn != "" {
		config.Storage.Database.DSN = dsn
	}

	if maxOpen := os.Getenv("AIGATE_DATABASE_MAX_OPEN_CONNS"); maxOpen != "" {
		if conns, err := strconv.Atoi(maxOpen); err == nil {
			config.Storage.Database.MaxOpenConns = conns
		}
	}

	// Security configuration
	if secret := os.Getenv("AIGATE_JWT_SECRET"); secret != "" {
		config.Security.JWTSecret = secret
	}

	if issuer := os.Getenv("AIGATE_JWT_ISSUER"); issuer != "" {
		config.Security.JWTIssuer = issuer
	}

	if ttl := os.Getenv("AIGATE_TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			config.Security.TokenTTL = d
		}
	}

	if cost := os.Getenv("AIGATE_BCRYPT_COST"); cost != "" {
		if c, err := strconv.Atoi(cost); err == nil {
			config.Security.BCryptCost = c
		}
	}

	// Rate limit configuration. Tier quotas are set individually, e.g.
	// AIGATE_TIER_LIMIT_PREMIUM=2000; unknown tiers extend the table.
	for _, env := range os.Environ() {
		const prefix = "AIGATE_TIER_LIMIT_"
		if !strings.HasPrefix(env, prefix) {
			continue
		}
		pair := strings.SplitN(strings.TrimPrefix(env, prefix), "=", 2)
		if len(pair) != 2 {
			continue
		}
		if limit, err := strconv.Atoi(pair[1]); err == nil {
			config.RateLimit.TierLimits[strings.ToLower(pair[0])] = limit
		}
	}

	if window := os.Getenv("AIGATE_RATE_LIMIT_WINDOW"); window != "" {
		if d, err := time.ParseDuration(window); err == nil {
			config.RateLimit.Window = d
		}
	}

	if cleanup := os.Getenv("AIGATE_RATE_LIMIT_CLEANUP_INTERVAL"); cleanup != "" {
		if d, err := time.ParseDuration(cleanup); err == nil {
			config.RateLimit.CleanupInterval = d
		}
	}

	// LLM configuration
	if baseURL := os.Getenv("AIGATE_LLM_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}

	if apiKey := os.Getenv("AIGATE_LLM_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}

	if model := os.Getenv("AIGATE_LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}

	if maxTokens := os.Getenv("AIGATE_LLM_MAX_TOKENS"); maxTokens != "" {
		if n, err := strconv.Atoi(maxTokens); err == nil {
			config.LLM.MaxTokens = n
		}
	}

	if timeout := os.Getenv("AIGATE_LLM_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.LLM.Timeout = d
		}
	}

	// Logging configuration
	if level := os.Getenv("AIGATE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if format := os.Getenv("AIGATE_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	if output := os.Getenv("AIGATE_LOG_OUTPUT"); output != "" {
		config.Logging.Output = output
	}

	if filePath := os.Getenv("AIGATE_LOG_FILE_PATH"); filePath != "" {
		config.Logging.FilePath = filePath
	}

	// Metrics configuration
	if metrics := os.Getenv("AIGATE_METRICS_ENABLED"); metrics != "" {
		config.Metrics.Enabled = strings.ToLower(metrics) == "true"
	}

	if path := os.Getenv("AIGATE_METRICS_PATH"); path != "" {
		config.Metrics.Path = path
	}

	if port := os.Getenv("AIGATE_METRICS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Metrics.Port = p
		}
	}

	// Observability configuration
	if name := os.Getenv("AIGATE_SERVICE_NAME"); name != "" {
		config.Observability.ServiceName = name
	}

	if tracing := os.Getenv("AIGATE_TRACING_ENABLED"); tracing != "" {
		config.Observability.Tracing.Enabled = strings.ToLower(tracing) == "true"
	}

	if exporter := os.Getenv("AIGATE_TRACING_EXPORTER"); exporter != "" {
		config.Observability.Tracing.Exporter = exporter
	}

	if endpoint := os.Getenv("AIGATE_OTLP_ENDPOINT"); endpoint != "" {
		config.Observability.Tracing.OTLPEndpoint = endpoint
	}

	if rate := os.Getenv("AIGATE_TRACING_SAMPLE_RATE"); rate != "" {
		if f, err := strconv.ParseFloat(rate, 64); err == nil {
			config.Observability.Tracing.SampleRate = f
		}
	}
}
