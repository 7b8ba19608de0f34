package credentials

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredentials is matched by every MissingError.
var ErrMissingCredentials = errors.New("missing credentials")

// MissingError reports which credential fields were empty when an authenticated call was attempted
type MissingError struct {
	Fields []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s: %s not set", ErrMissingCredentials, strings.Join(e.Fields, ", "))
}

// Is lets errors.Is match ErrMissingCredentials
func (e *MissingError) Is(target error) bool {
	return target == ErrMissingCredentials
}

// ConfigError describes a credential file that could not be read, parsed or written
type ConfigError struct {
	Op   string // "read", "parse" or "write"
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("credentials %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
