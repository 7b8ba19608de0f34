package kraken

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &APIError{
			StatusCode: 404,
			ErrorText:  "Not Found",
			Message:    "Channel 'nobody' does not exist",
		}
		assert.Equal(t, "kraken API error: status 404: Not Found: Channel 'nobody' does not exist", err.Error())
	})

	t.Run("Error message falls back to status text", func(t *testing.T) {
		err := &APIError{StatusCode: 401}
		assert.Equal(t, "kraken API error: status 401: Unauthorized", err.Error())
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := &APIError{StatusCode: 404}
		assert.True(t, err.IsNotFound())

		err.StatusCode = 500
		assert.False(t, err.IsNotFound())
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, true},
			{404, false},
			{500, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			assert.Equal(t, tt.expected, err.IsUnauthorized())
		}
	})

	t.Run("JSON round trip", func(t *testing.T) {
		original := APIError{
			StatusCode: 422,
			ErrorText:  "Unprocessable Entity",
			Message:    "Invalid game",
			Cause:      errors.New("dropped on encode"),
		}

		data, err := json.Marshal(original)
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":422,"error":"Unprocessable Entity","message":"Invalid game"}`, string(data))

		decoded, err := decodeAPIError(data, 200)
		require.NoError(t, err)
		assert.Equal(t, original.StatusCode, decoded.StatusCode)
		assert.Equal(t, original.ErrorText, decoded.ErrorText)
		assert.Equal(t, original.Message, decoded.Message)
		assert.Nil(t, decoded.Cause)
	})

	t.Run("Unwrap exposes cause", func(t *testing.T) {
		cause := &DecodeError{StatusCode: 200, Err: errors.New("bad")}
		err := &APIError{StatusCode: 400, Cause: cause}

		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr))
		assert.Same(t, cause, decodeErr)
	})
}

func TestDecodeAPIErrorRejectsOtherShapes(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"_id":1,"name":"dallas"}`,
		`[1,2,3]`,
		`not json`,
	}

	for _, body := range bodies {
		_, err := decodeAPIError([]byte(body), 200)
		assert.Error(t, err, body)
	}
}

func TestEmbeddedAPIError(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		match bool
	}{
		{"error object", `{"error":"Unprocessable Entity","status":422,"message":"Channel is not live"}`, true},
		{"status below 400", `{"error":"Moved","status":301}`, false},
		{"no error text", `{"status":500,"message":"oops"}`, false},
		{"string status", `{"error":"x","status":"live now"}`, false},
		{"channel", `{"_id":1,"name":"dallas","status":"speedrunning"}`, false},
		{"array", `[]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := embeddedAPIError([]byte(tt.body))
			assert.Equal(t, tt.match, ok)
		})
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	err := &DecodeError{StatusCode: 200, Err: errors.New("unexpected end of JSON input")}
	assert.Equal(t, "failed to decode response (status 200): unexpected end of JSON input", err.Error())

	encodeErr := &DecodeError{Err: errors.New("failed to encode request body: json: unsupported type: chan int")}
	assert.Equal(t, "failed to encode request body: json: unsupported type: chan int", encodeErr.Error())
}

func TestKindOf(t *testing.T) {
	decodeErr := &DecodeError{Err: errors.New("x")}

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"other", errors.New("boom"), KindUnknown},
		{"transport", &TransportError{Err: errors.New("reset")}, KindTransport},
		{"empty", fmt.Errorf("GET /x: %w", ErrEmptyResponse), KindEmptyResponse},
		{"decode", decodeErr, KindDecode},
		{"api", &APIError{StatusCode: 400}, KindAPI},
		{"api wrapping decode", &APIError{StatusCode: 400, Cause: decodeErr}, KindAPI},
		{"wrapped api", fmt.Errorf("fetch: %w", &APIError{StatusCode: 500}), KindAPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "empty_response", KindEmptyResponse.String())
	assert.Equal(t, "decode", KindDecode.String())
	assert.Equal(t, "api", KindAPI.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
