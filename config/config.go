package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/s0up4200/krakenctl/auth"
	"github.com/s0up4200/krakenctl/kraken"
)

// Load loads the configuration from file.
// Without an explicit path a missing config file is not an error and defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".krakenctl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/krakenctl/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// HTTP defaults
	v.SetDefault("http.base_url", kraken.DefaultBaseURL)
	v.SetDefault("http.timeout", kraken.DefaultTimeout)

	// Auth defaults
	v.SetDefault("auth.flow", string(auth.CodeFlow))
	v.SetDefault("auth.redirect_url", "http://localhost")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.HTTP.BaseURL == "" {
		return fmt.Errorf("http.base_url is required")
	}

	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", cfg.HTTP.Timeout)
	}

	if !auth.ResponseType(cfg.Auth.Flow).Valid() {
		return fmt.Errorf("invalid auth.flow: %s (must be 'code' or 'token')", cfg.Auth.Flow)
	}

	if _, err := auth.ParseScopes(cfg.Auth.Scopes); err != nil {
		return fmt.Errorf("invalid auth.scopes: %w", err)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
