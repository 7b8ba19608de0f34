package kraken

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/s0up4200/krakenctl/credentials"
)

var (
	errNotErrorShape   = errors.New("body does not match the API error shape")
	errUnexpectedShape = errors.New("body is not the requested type")
)

// Do sends an authenticated request and decodes the JSON response into out.
// A nil body sends no payload; a nil out discards a successful response.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	snap := c.creds.Snapshot()
	if err := snap.Validate(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, method, path, body, snap)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Method: method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, URL: req.URL.String(), Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("Kraken API request")

	if err := c.decode(resp.StatusCode, data, out); err != nil {
		if errors.Is(err, ErrEmptyResponse) {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		return err
	}
	return nil
}

// newRequest composes the absolute URL and attaches the auth headers
func (c *Client) newRequest(ctx context.Context, method, path string, body any, snap credentials.Snapshot) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	requestURL := c.baseURL + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("failed to encode request body: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", MediaType)
	req.Header.Set("Client-ID", snap.ClientID)
	req.Header.Set("Authorization", "OAuth "+snap.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	return req, nil
}

// decode turns a fully read body into out or one of the pipeline errors.
// Non-2xx responses skip the success shape and go straight to the error shape.
// A 2xx body carrying an error object with a numeric status >= 400 and an
// error text is treated as an APIError even if it would decode into out.
func (c *Client) decode(status int, data []byte, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyResponse
	}

	if status < 200 || status > 299 {
		apiErr, err := decodeAPIError(data, status)
		if err == nil {
			return apiErr
		}
		decodeErr := &DecodeError{StatusCode: status, Body: string(data), Err: err}
		c.logDecodeFailure(decodeErr)
		return decodeErr
	}

	if apiErr, ok := embeddedAPIError(data); ok {
		apiErr.Cause = &DecodeError{
			StatusCode: status,
			Body:       string(data),
			Err:        fmt.Errorf("%w: got error object with status %d", errUnexpectedShape, apiErr.StatusCode),
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	err := json.Unmarshal(data, out)
	if err == nil {
		return nil
	}

	decodeErr := &DecodeError{StatusCode: status, Body: string(data), Err: err}
	if apiErr, err := decodeAPIError(data, status); err == nil {
		apiErr.Cause = decodeErr
		return apiErr
	}

	c.logDecodeFailure(decodeErr)
	return decodeErr
}

func (c *Client) logDecodeFailure(err *DecodeError) {
	c.logger.Error().
		Err(err.Err).
		Int("status", err.StatusCode).
		Str("body", err.Body).
		Msg("Failed to parse Kraken API response")
}

// decodeAPIError parses data as a structured API error object.
// The returned error is the JSON parse error, or errNotErrorShape when
// the body is valid JSON without any error field.
func decodeAPIError(data []byte, status int) (*APIError, error) {
	var apiErr APIError
	if err := json.Unmarshal(data, &apiErr); err != nil {
		return nil, err
	}
	if apiErr.empty() {
		return nil, errNotErrorShape
	}
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = status
	}
	return &apiErr, nil
}

// embeddedAPIError matches only unambiguous error objects: an integer
// status of at least 400 and a non-empty error text.
func embeddedAPIError(data []byte) (*APIError, bool) {
	var apiErr APIError
	if err := json.Unmarshal(data, &apiErr); err != nil {
		return nil, false
	}
	if apiErr.StatusCode < 400 || apiErr.ErrorText == "" {
		return nil, false
	}
	return &apiErr, true
}

// Get fetches path and decodes the response as T
func Get[T any](ctx context.Context, r Requester, path string) (T, error) {
	return send[T](ctx, r, http.MethodGet, path, nil)
}

// Post sends body as JSON to path and decodes the response as T
func Post[T any](ctx context.Context, r Requester, path string, body any) (T, error) {
	return send[T](ctx, r, http.MethodPost, path, body)
}

// Put sends body as JSON to path and decodes the response as T
func Put[T any](ctx context.Context, r Requester, path string, body any) (T, error) {
	return send[T](ctx, r, http.MethodPut, path, body)
}

// Delete issues a DELETE for path and decodes the response as T
func Delete[T any](ctx context.Context, r Requester, path string) (T, error) {
	return send[T](ctx, r, http.MethodDelete, path, nil)
}

func send[T any](ctx context.Context, r Requester, method, path string, body any) (T, error) {
	var out T
	if err := r.Do(ctx, method, path, body, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
