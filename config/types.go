package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Credentials CredentialsConfig `mapstructure:"credentials"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// CredentialsConfig selects where the client id and token come from.
// An empty File means the TWITCH_CLIENT_ID and TWITCH_OAUTH_TOKEN environment variables.
type CredentialsConfig struct {
	File string `mapstructure:"file"`
}

// HTTPConfig holds transport settings for the API client
type HTTPConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// AuthConfig holds defaults for building authorization URLs
type AuthConfig struct {
	Flow        string   `mapstructure:"flow"`
	RedirectURL string   `mapstructure:"redirect_url"`
	Scopes      []string `mapstructure:"scopes"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
