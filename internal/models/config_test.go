package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	// Test server defaults
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 30*time.Second, config.Server.ReadTimeout)
	assert.False(t, config.Server.TLSEnabled)
	assert.False(t, config.Server.DebugEndpoints)

	// Test storage defaults
	assert.Equal(t, StorageTypeMemory, config.Storage.Type)
	assert.Equal(t, 10, config.Storage.Database.MaxOpenConns)
	assert.Equal(t, 5, config.Storage.Database.MaxIdleConns)

	// Test security defaults
	assert.Empty(t, config.Security.JWTSecret)
	assert.Equal(t, "aigate", config.Security.JWTIssuer)
	assert.Equal(t, 24*time.Hour, config.Security.TokenTTL)
	assert.Equal(t, 10, config.Security.BCryptCost)

	// Test rate limit defaults
	assert.Equal(t, 10, config.RateLimit.TierLimits[TierGuest])
	assert.Equal(t, 100, config.RateLimit.TierLimits[TierFree])
	assert.Equal(t, 1000, config.RateLimit.TierLimits[TierPremium])
	assert.Equal(t, time.Hour, config.RateLimit.Window)
	assert.Equal(t, 10*time.Minute, config.RateLimit.CleanupInterval)

	// Test LLM defaults
	assert.Equal(t, "https://api.openai.com/v1", config.LLM.BaseURL)
	assert.Equal(t, "gpt-4o-mini", config.LLM.Model)
	assert.Equal(t, 60*time.Second, config.LLM.Timeout)

	// Test logging defaults
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "json", config.Logging.Format)
	assert.Equal(t, "stdout", config.Logging.Output)

	// Test metrics defaults
	assert.True(t, config.Metrics.Enabled)
	assert.Equal(t, "/metrics", config.Metrics.Path)
	assert.Equal(t, 9090, config.Metrics.Port)

	// Test observability defaults
	assert.Equal(t, "aigate", config.Observability.ServiceName)
	assert.False(t, config.Observability.Tracing.Enabled)
	assert.Equal(t, "stdout", config.Observability.Tracing.Exporter)
	assert.Equal(t, 1.0, config.Observability.Tracing.SampleRate)
}

func validTestConfig() *Config {
	config := NewDefaultConfig()
	config.Security.JWTSecret = "test-secret"
	return config
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "invalid port",
			mutate:      func(c *Config) { c.Server.Port = -1 },
			expectError: true,
			errorMsg:    "invalid port",
		},
		{
			name:        "tls without cert",
			mutate:      func(c *Config) { c.Server.TLSEnabled = true },
			expectError: true,
			errorMsg:    "tls_cert_file",
		},
		{
			name:        "unsupported storage type",
			mutate:      func(c *Config) { c.Storage.Type = "redis" },
			expectError: true,
			errorMsg:    "unsupported storage type",
		},
		{
			name:        "sqlite without dsn",
			mutate:      func(c *Config) { c.Storage.Type = StorageTypeSQLite },
			expectError: true,
			errorMsg:    "DSN is required",
		},
		{
			name:        "missing jwt secret",
			mutate:      func(c *Config) { c.Security.JWTSecret = "" },
			expectError: true,
			errorMsg:    "jwt_secret",
		},
		{
			name:        "bcrypt cost out of range",
			mutate:      func(c *Config) { c.Security.BCryptCost = 99 },
			expectError: true,
			errorMsg:    "bcrypt_cost",
		},
		{
			name:        "empty tier table",
			mutate:      func(c *Config) { c.RateLimit.TierLimits = nil },
			expectError: true,
			errorMsg:    "at least one tier",
		},
		{
			name:        "missing guest tier",
			mutate:      func(c *Config) { delete(c.RateLimit.TierLimits, TierGuest) },
			expectError: true,
			errorMsg:    "guest",
		},
		{
			name:        "negative tier limit",
			mutate:      func(c *Config) { c.RateLimit.TierLimits[TierFree] = -5 },
			expectError: true,
			errorMsg:    "negative limit",
		},
		{
			name:        "zero tier limit is legal",
			mutate:      func(c *Config) { c.RateLimit.TierLimits[TierGuest] = 0 },
		},
		{
			name:        "non-positive window",
			mutate:      func(c *Config) { c.RateLimit.Window = 0 },
			expectError: true,
			errorMsg:    "window",
		},
		{
			name:        "non-positive cleanup interval",
			mutate:      func(c *Config) { c.RateLimit.CleanupInterval = -time.Minute },
			expectError: true,
			errorMsg:    "cleanup_interval",
		},
		{
			name:        "missing llm base url",
			mutate:      func(c *Config) { c.LLM.BaseURL = "" },
			expectError: true,
			errorMsg:    "base_url",
		},
		{
			name:        "missing llm model",
			mutate:      func(c *Config) { c.LLM.Model = "" },
			expectError: true,
			errorMsg:    "model",
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.Logging.Level = "loud" },
			expectError: true,
			errorMsg:    "log level",
		},
		{
			name:        "file logging without path",
			mutate:      func(c *Config) { c.Logging.Output = "file" },
			expectError: true,
			errorMsg:    "file_path",
		},
		{
			name:        "invalid metrics port",
			mutate:      func(c *Config) { c.Metrics.Port = 0 },
			expectError: true,
			errorMsg:    "metrics port",
		},
		{
			name:        "metrics disabled skips metrics validation",
			mutate:      func(c *Config) { c.Metrics.Enabled = false; c.Metrics.Port = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validTestConfig()
			tt.mutate(config)

			err := config.Validate()
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
