// Package config loads gameday settings from an optional YAML file and
// GAMEDAY_* environment variables on top of built-in defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/gameday/internal/feed"
	"github.com/pfrederiksen/gameday/internal/logger"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// GAMEDAY_FEED_GAMEDAY_BASE_URL or GAMEDAY_HTTP_TIMEOUT.
const EnvPrefix = "GAMEDAY"

// Config represents the complete application configuration
type Config struct {
	Feed    FeedConfig    `mapstructure:"feed"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Retry   RetryConfig   `mapstructure:"retry"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// FeedConfig holds the feed host locations
type FeedConfig struct {
	GamedayBaseURL  string `mapstructure:"gameday_base_url"`
	TendencyBaseURL string `mapstructure:"tendency_base_url"`
}

// HTTPConfig holds the HTTP client settings
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// RetryConfig holds the caller-side retry policy for transient feed failures
type RetryConfig struct {
	MaxAttempts     int           `mapstructure:"max_attempts"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from path and environment variables. An empty path
// skips the file and uses defaults plus environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("feed.gameday_base_url", feed.DefaultGamedayBase)
	v.SetDefault("feed.tendency_base_url", feed.DefaultTendencyBase)

	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.user_agent", feed.DefaultUserAgent)

	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_interval", "500ms")
	v.SetDefault("retry.max_interval", "5s")

	v.SetDefault("logging.level", "warn")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Feed.GamedayBaseURL == "" {
		return fmt.Errorf("feed.gameday_base_url is required")
	}
	if c.Feed.TendencyBaseURL == "" {
		return fmt.Errorf("feed.tendency_base_url is required")
	}

	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive")
	}

	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1")
	}
	if c.Retry.InitialInterval < 0 || c.Retry.MaxInterval < 0 {
		return fmt.Errorf("retry intervals must not be negative")
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	return nil
}

// Layout returns the feed URL layout for the configured hosts.
func (c *Config) Layout() feed.Layout {
	return feed.Layout{
		GamedayBase:  c.Feed.GamedayBaseURL,
		TendencyBase: c.Feed.TendencyBaseURL,
	}
}
