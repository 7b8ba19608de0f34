package credentials

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Environment variables consulted by FromEnv.
const (
	EnvClientID = "TWITCH_CLIENT_ID"
	EnvToken    = "TWITCH_OAUTH_TOKEN"
)

// Source produces Credentials at client construction time
type Source interface {
	Load() (*Credentials, error)
}

// file is the on-disk key-value schema
type file struct {
	ClientID string `toml:"client_id,omitempty"`
	Token    string `toml:"token,omitempty"`
}

type fileSource struct {
	path string
}

// FromFile reads a TOML credential file with client_id and token keys
func FromFile(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &ConfigError{Op: "read", Path: s.path, Err: err}
	}

	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, &ConfigError{Op: "parse", Path: s.path, Err: err}
	}

	return New(f.ClientID, f.Token), nil
}

func (s fileSource) String() string {
	return "file:" + s.path
}

type envSource struct{}

// FromEnv reads TWITCH_CLIENT_ID and TWITCH_OAUTH_TOKEN.
// Unset variables yield empty fields; authenticated calls then fail with ErrMissingCredentials.
func FromEnv() Source {
	return envSource{}
}

func (envSource) Load() (*Credentials, error) {
	v := viper.New()
	if err := v.BindEnv("client_id", EnvClientID); err != nil {
		return nil, fmt.Errorf("bind %s: %w", EnvClientID, err)
	}
	if err := v.BindEnv("token", EnvToken); err != nil {
		return nil, fmt.Errorf("bind %s: %w", EnvToken, err)
	}

	return New(v.GetString("client_id"), v.GetString("token")), nil
}

func (envSource) String() string {
	return "env"
}

// Load is shorthand for src.Load
func Load(src Source) (*Credentials, error) {
	if src == nil {
		return nil, fmt.Errorf("credentials source is required")
	}
	return src.Load()
}

// Save writes the current state to path in the credential file format.
// Empty fields are omitted. The file is created with mode 0600.
func (c *Credentials) Save(path string) error {
	snap := c.Snapshot()

	data, err := toml.Marshal(file{ClientID: snap.ClientID, Token: snap.Token})
	if err != nil {
		return &ConfigError{Op: "write", Path: path, Err: err}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return &ConfigError{Op: "write", Path: path, Err: err}
	}
	return nil
}
