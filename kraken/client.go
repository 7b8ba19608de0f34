package kraken

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/s0up4200/krakenctl/credentials"
)

const (
	// DefaultBaseURL is the root every request path is appended to
	DefaultBaseURL = "https://api.twitch.tv/kraken"
	// MediaType is the versioned Accept header value
	MediaType = "application/vnd.twitchtv.v5+json"
)

// Client represents a Twitch Kraken API client
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	creds      *credentials.Credentials
	logger     zerolog.Logger
}

// NewClient creates a new client with credentials loaded from src
func NewClient(src credentials.Source, opts ...Option) (*Client, error) {
	creds, err := credentials.Load(src)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	return NewClientWithCredentials(creds, opts...), nil
}

// NewClientWithCredentials creates a new client that owns creds
func NewClientWithCredentials(creds *credentials.Credentials, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if o.logger != nil {
		logger = *o.logger
	}

	if creds == nil {
		creds = credentials.New("", "")
	}

	return &Client{
		baseURL:    o.baseURL,
		userAgent:  o.userAgent,
		httpClient: httpClient,
		creds:      creds,
		logger:     logger,
	}
}

// ClientID returns the client identifier requests are sent with
func (c *Client) ClientID() string {
	return c.creds.ClientID()
}

// HTTPClient returns the HTTP client requests are sent through
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Credentials returns the credentials owned by the client
func (c *Client) Credentials() *credentials.Credentials {
	return c.creds
}

// SetToken rotates the OAuth token without touching the transport
func (c *Client) SetToken(token string) {
	c.creds.SetToken(token)
}

// RotateToken pulls a fresh token from ts and installs it
func (c *Client) RotateToken(ts oauth2.TokenSource) error {
	tok, err := ts.Token()
	if err != nil {
		return fmt.Errorf("failed to obtain token: %w", err)
	}
	if tok == nil || tok.AccessToken == "" {
		return fmt.Errorf("token source returned an empty access token")
	}

	c.creds.SetToken(tok.AccessToken)
	c.logger.Debug().Str("token_type", tok.Type()).Msg("Rotated OAuth token")
	return nil
}

// SaveCredentials persists the current credentials to path
func (c *Client) SaveCredentials(path string) error {
	return c.creds.Save(path)
}

// TestConnection verifies the token against the API root
func (c *Client) TestConnection(ctx context.Context) (*TokenStatus, error) {
	root, err := Get[Root](ctx, c, "/")
	if err != nil {
		return nil, err
	}
	if !root.Token.Valid {
		return &root.Token, fmt.Errorf("token is not valid for client %s", c.creds.ClientID())
	}
	return &root.Token, nil
}
