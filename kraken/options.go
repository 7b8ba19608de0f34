package kraken

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single request when no http.Client is supplied
const DefaultTimeout = 30 * time.Second

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout    time.Duration
	httpClient *http.Client
	logger     *zerolog.Logger
	baseURL    string
	userAgent  string
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout: DefaultTimeout,
		baseURL: DefaultBaseURL,
	}
}

// WithTimeout sets the HTTP client timeout.
// Ignored when WithHTTPClient is also given.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient uses the given client as the transport handle.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithLogger sets the logger used for request tracing and decode diagnostics.
// The default logger writes to stderr.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = &logger
	}
}

// WithBaseURL overrides the API root, mostly useful against a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}
