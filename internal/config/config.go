// Package config loads CLI and server settings from an optional config file and HELEN_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/robert-malhotra/go-helen-express/pkg/criteria"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HELEN"

// ErrNoBaseURL is returned by RequireBaseURL when no backend URL is configured.
var ErrNoBaseURL = errors.New("config: no backend URL (set --url or HELEN_BASE_URL)")

// Config holds the settings shared by the CLI commands and the API server.
type Config struct {
	BaseURL  string        `mapstructure:"base_url"`
	Token    string        `mapstructure:"token"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
	PageSize int           `mapstructure:"page_size"`
	LogLevel string        `mapstructure:"log_level"`
	LogJSON  bool          `mapstructure:"log_json"`
	Addr     string        `mapstructure:"addr"`
}

var defaults = map[string]any{
	"base_url":  "",
	"token":     "",
	"api_key":   "",
	"timeout":   30 * time.Second,
	"page_size": criteria.DefaultPageSize,
	"log_level": "info",
	"log_json":  false,
	"addr":      ":8081",
}

// Load reads the config file at path, if path is not empty, and overlays HELEN_*
// environment variables (HELEN_BASE_URL, HELEN_TIMEOUT, ...). Missing values take
// their defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the loaded values. An empty BaseURL is valid; commands that talk to
// the backend call RequireBaseURL.
func (c *Config) Validate() error {
	var errs []error
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("config: base_url %q must be an absolute http(s) URL", c.BaseURL))
		}
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("config: timeout must be positive, got %s", c.Timeout))
	}
	if c.PageSize < 1 || c.PageSize > criteria.MaxPageSize {
		errs = append(errs, fmt.Errorf("config: page_size must be between 1 and %d, got %d", criteria.MaxPageSize, c.PageSize))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("config: log_level: %w", err))
	}
	if c.Addr == "" {
		errs = append(errs, errors.New("config: addr cannot be empty"))
	}
	return errors.Join(errs...)
}

// RequireBaseURL fails with ErrNoBaseURL when no backend URL is set.
func (c *Config) RequireBaseURL() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	return nil
}
