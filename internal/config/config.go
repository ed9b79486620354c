// Package config loads dashboard configuration from file and
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration
type Config struct {
	Refresh     RefreshConfig     `mapstructure:"refresh"`
	API         APIConfig         `mapstructure:"api"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Log         LogConfig         `mapstructure:"log"`
}

// RefreshConfig defines the poll cadence. Durations are strings in Go
// duration syntax, e.g. "30s" or "10m".
type RefreshConfig struct {
	FocusedInterval   string `mapstructure:"focused_interval"`
	UnfocusedInterval string `mapstructure:"unfocused_interval"`
	UserInterval      string `mapstructure:"user_interval"` // startup override; empty means focus-based
}

// APIConfig defines how the usage endpoint is reached
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`
}

// CredentialsConfig overrides where OAuth credentials are looked up
type CredentialsConfig struct {
	File    string `mapstructure:"file"`    // credentials JSON path; empty means ~/.claude/.credentials.json
	Service string `mapstructure:"service"` // OS keyring service name
}

// LogConfig defines diagnostic logging behavior
type LogConfig struct {
	File string `mapstructure:"file"` // empty disables logging
}

// Focused returns the parsed focused-terminal poll interval.
func (c RefreshConfig) Focused() time.Duration {
	d, _ := time.ParseDuration(c.FocusedInterval)
	return d
}

// Unfocused returns the parsed unfocused-terminal poll interval.
func (c RefreshConfig) Unfocused() time.Duration {
	d, _ := time.ParseDuration(c.UnfocusedInterval)
	return d
}

// User returns the parsed startup override, or zero when none is set.
func (c RefreshConfig) User() time.Duration {
	if c.UserInterval == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.UserInterval)
	return d
}

// RequestTimeout returns the parsed per-poll HTTP timeout.
func (c APIConfig) RequestTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Load loads configuration from file and environment variables. With an
// empty configPath the default locations are searched and a missing file
// is fine; an explicit path that cannot be read is an error.
func Load(fs afero.Fs, configPath string) (*Config, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	v := viper.New()
	v.SetFs(fs)

	// Set defaults
	setDefaults(v)

	// Configure viper
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("glidetop")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.config/glidetop")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("GLIDETOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and environment variables
	}

	// Unmarshal config
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Refresh defaults
	v.SetDefault("refresh.focused_interval", "30s")
	v.SetDefault("refresh.unfocused_interval", "10m")
	v.SetDefault("refresh.user_interval", "")

	// API defaults
	v.SetDefault("api.base_url", "https://api.anthropic.com")
	v.SetDefault("api.timeout", "10s")

	// Credentials defaults
	v.SetDefault("credentials.file", "")
	v.SetDefault("credentials.service", "Claude Code-credentials")

	// Log defaults
	v.SetDefault("log.file", "")
}

// validate validates the configuration
func validate(cfg *Config) error {
	if err := requirePositiveDuration("refresh.focused_interval", cfg.Refresh.FocusedInterval); err != nil {
		return err
	}
	if err := requirePositiveDuration("refresh.unfocused_interval", cfg.Refresh.UnfocusedInterval); err != nil {
		return err
	}
	if cfg.Refresh.UserInterval != "" {
		if err := requirePositiveDuration("refresh.user_interval", cfg.Refresh.UserInterval); err != nil {
			return err
		}
	}
	if err := requirePositiveDuration("api.timeout", cfg.API.Timeout); err != nil {
		return err
	}
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if cfg.Credentials.Service == "" {
		return fmt.Errorf("credentials.service is required")
	}
	return nil
}

func requirePositiveDuration(key, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, value)
	}
	if d <= 0 {
		return fmt.Errorf("invalid %s: must be positive, got %q", key, value)
	}
	return nil
}
