// Package config provides configuration management for the backtest console.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()

	// Defaults keep the console usable with a minimal config file
	v.SetDefault("app.name", "backtest-console")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("api.request_timeout_seconds", 30)
	v.SetDefault("api.retry_attempts", 3)
	v.SetDefault("api.rate_limit_per_second", 10.0)
	v.SetDefault("api.circuit_breaker_max", 5)
	v.SetDefault("cache.ttl_seconds", 60)
	v.SetDefault("cache.max_size", 512)
	v.SetDefault("polling.interval_seconds", 2)
	v.SetDefault("prefs.path", defaultPrefsPath())
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9190)
	v.SetDefault("metrics.path", "/metrics")

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If the file doesn't exist, continue with defaults and environment variables

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("BACKTEST_CONSOLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func defaultPrefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".backtest-console/prefs.json"
	}
	return home + "/.backtest-console/prefs.json"
}
