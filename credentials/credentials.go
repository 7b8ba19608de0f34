// Package credentials loads, rotates and persists the client id and OAuth token.
package credentials

import (
	"sync"
)

// Credentials holds the client identifier and OAuth token used to sign API requests.
// It is safe for concurrent use; token rotation never blocks in-flight requests
// that already took a Snapshot.
type Credentials struct {
	mu       sync.RWMutex
	clientID string
	token    string
}

// Snapshot is an immutable copy of Credentials taken for a single request
type Snapshot struct {
	ClientID string
	Token    string
}

// New creates Credentials from explicit values
func New(clientID, token string) *Credentials {
	return &Credentials{
		clientID: clientID,
		token:    token,
	}
}

// ClientID returns the client identifier
func (c *Credentials) ClientID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clientID
}

// Token returns the current OAuth token
func (c *Credentials) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the OAuth token in place
func (c *Credentials) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Snapshot returns a consistent copy of both fields
func (c *Credentials) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		ClientID: c.clientID,
		Token:    c.token,
	}
}

// Validate reports ErrMissingCredentials unless both fields are set
func (s Snapshot) Validate() error {
	switch {
	case s.ClientID == "" && s.Token == "":
		return &MissingError{Fields: []string{"client_id", "token"}}
	case s.ClientID == "":
		return &MissingError{Fields: []string{"client_id"}}
	case s.Token == "":
		return &MissingError{Fields: []string{"token"}}
	}
	return nil
}
