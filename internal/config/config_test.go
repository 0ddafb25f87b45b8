// Package config provides configuration management for the backtest console.
package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validConfigPath     = "testdata/valid_config.yaml"
	expansionConfigPath = "testdata/expansion_config.yaml"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "backtest-console", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 2*time.Second, cfg.PollInterval())
	assert.Equal(t, 60*time.Second, cfg.CacheTTL())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

// TestLoadConfigMissingFileUsesDefaults tests that a missing file falls back
// to defaults instead of failing
func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("testdata/nonexistent.yaml")
	require.NoError(t, err)

	assert.Equal(t, "backtest-console", cfg.App.Name)
	assert.Equal(t, 30, cfg.API.RequestTimeoutSeconds)
	assert.Equal(t, 2, cfg.Polling.IntervalSeconds)
}

// TestLoadConfigExpandsEnvironmentPlaceholders tests ${VAR} expansion in the
// YAML file
func TestLoadConfigExpandsEnvironmentPlaceholders(t *testing.T) {
	os.Setenv("TEST_API_TOKEN", "secret-token-value")
	defer os.Unsetenv("TEST_API_TOKEN")

	cfg, err := Load(expansionConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "secret-token-value", cfg.API.AuthToken)
}

// TestValidateAcceptsValidConfig tests the validation happy path
func TestValidateAcceptsValidConfig(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)
	assert.NoError(t, Validate(cfg))
}

// TestValidateRejectsBadEnvironment tests the custom environment rule
func TestValidateRejectsBadEnvironment(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)

	cfg.App.Environment = "sandbox"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "development, staging, production")
}

// TestValidateRejectsBadLogLevel tests the custom log level rule
func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)

	cfg.App.LogLevel = "verbose"
	assert.Error(t, Validate(cfg))
}

// TestValidateCrossFieldRules tests URL, scheme-in-production and polling
// interval constraints
func TestValidateCrossFieldRules(t *testing.T) {
	base, err := Load(validConfigPath)
	require.NoError(t, err)

	t.Run("Relative URL rejected", func(t *testing.T) {
		cfg := *base
		cfg.API.BaseURL = "localhost:8000"
		assert.Error(t, Validate(&cfg))
	})

	t.Run("Production requires https", func(t *testing.T) {
		cfg := *base
		cfg.App.Environment = "production"
		err := Validate(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "https")

		cfg.API.BaseURL = "https://backtests.example.com/api/v1"
		assert.NoError(t, Validate(&cfg))
	})

	t.Run("Poll interval bounded by request timeout", func(t *testing.T) {
		cfg := *base
		cfg.Polling.IntervalSeconds = 60
		cfg.API.RequestTimeoutSeconds = 30
		assert.Error(t, Validate(&cfg))
	})
}
