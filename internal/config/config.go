// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Webhook WebhookConfig `mapstructure:"webhook"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// WebhookConfig holds the analysis and news webhook endpoints.
type WebhookConfig struct {
	AnalysisURL string        `mapstructure:"analysis_url"`
	NewsURL     string        `mapstructure:"news_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds the analysis cache configuration.
type CacheConfig struct {
	// Entries older than StaleThreshold are still served but trigger a
	// background refresh.
	StaleThreshold time.Duration `mapstructure:"stale_threshold"`
	// DBPath is the SQLite file backing the cache. Empty means in-memory only.
	DBPath string `mapstructure:"db_path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
	// ShowAge annotates cache-served answers with their age in minutes.
	ShowAge bool `mapstructure:"show_age"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/saham-analyst"
	}
	return filepath.Join(home, ".config", "saham-analyst")
}

// DefaultDBPath returns the default cache database path.
func DefaultDBPath() string {
	return filepath.Join(DefaultConfigDir(), "cache.db")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("webhook.timeout", 30*time.Second)
	v.SetDefault("cache.stale_threshold", 60*time.Minute)
	v.SetDefault("cache.db_path", DefaultDBPath())
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.show_age", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createTemplateConfig(configDir); err != nil {
				return err
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SAHAM_ANALYSIS_URL"); v != "" {
		cfg.Webhook.AnalysisURL = v
	}
	if v := os.Getenv("SAHAM_NEWS_URL"); v != "" {
		cfg.Webhook.NewsURL = v
	}
	if v := os.Getenv("SAHAM_CACHE_DB"); v != "" {
		cfg.Cache.DBPath = v
	}
	if v := os.Getenv("SAHAM_STALE_MINUTES"); v != "" {
		if mins, err := strconv.Atoi(v); err == nil && mins > 0 {
			cfg.Cache.StaleThreshold = time.Duration(mins) * time.Minute
		}
	}
	if v := os.Getenv("SAHAM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Webhook.Timeout <= 0 {
		return fmt.Errorf("webhook timeout must be positive")
	}
	if c.Cache.StaleThreshold <= 0 {
		return fmt.Errorf("cache stale_threshold must be positive")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}
