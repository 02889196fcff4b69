package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected *APIError
	}{
		{
			name:   "error object with code and details",
			status: 400,
			body:   `{"error":{"message":"Invalid provider","code":"INVALID_PROVIDER","details":{"id":7}}}`,
			expected: &APIError{
				StatusCode: 400,
				Code:       "INVALID_PROVIDER",
				Message:    "Invalid provider",
				Details:    json.RawMessage(`{"id":7}`),
			},
		},
		{
			name:   "error object without message",
			status: 500,
			body:   `{"error":{"code":"INTERNAL"}}`,
			expected: &APIError{
				StatusCode: 500,
				Code:       "INTERNAL",
				Message:    "HTTP 500",
			},
		},
		{
			name:   "message with field errors",
			status: 422,
			body:   `{"message":"Validation failed","errors":[{"field":"cif","message":"required"},{"field":"date","message":"invalid"}]}`,
			expected: &APIError{
				StatusCode: 422,
				Message:    "Validation failed - cif: required; date: invalid",
				FieldErrors: []FieldError{
					{Field: "cif", Message: "required"},
					{Field: "date", Message: "invalid"},
				},
			},
		},
		{
			name:   "message with mistyped field errors",
			status: 422,
			body:   `{"message":"Validation failed","errors":[{"field":"lines","message":["required"]}]}`,
			expected: &APIError{
				StatusCode: 422,
				Message:    "Validation failed",
			},
		},
		{
			name:   "message with errors object",
			status: 400,
			body:   `{"message":"Bad","errors":{"amount":"invalid"}}`,
			expected: &APIError{
				StatusCode: 400,
				Message:    "Bad",
			},
		},
		{
			name:   "field errors keep well-formed entries",
			status: 422,
			body:   `{"message":"Validation failed","errors":[{"field":"lines","message":["required"]},{"field":"date","message":"invalid"}]}`,
			expected: &APIError{
				StatusCode:  422,
				Message:     "Validation failed - date: invalid",
				FieldErrors: []FieldError{{Field: "date", Message: "invalid"}},
			},
		},
		{
			name:   "mistyped error object falls back to message",
			status: 400,
			body:   `{"error":"oops","message":"Bad request"}`,
			expected: &APIError{
				StatusCode: 400,
				Message:    "Bad request",
			},
		},
		{
			name:   "mistyped message",
			status: 400,
			body:   `{"message":42}`,
			expected: &APIError{
				StatusCode: 400,
				Message:    "HTTP 400",
			},
		},
		{
			name:   "message only",
			status: 404,
			body:   `{"message":"Not found"}`,
			expected: &APIError{
				StatusCode: 404,
				Message:    "Not found",
			},
		},
		{
			name:   "text envelope from non-JSON error page",
			status: 502,
			body:   `{"message":"<html>Bad Gateway</html>"}`,
			expected: &APIError{
				StatusCode: 502,
				Message:    "<html>Bad Gateway</html>",
			},
		},
		{
			name:   "unrecognized object",
			status: 403,
			body:   `{"foo":"bar"}`,
			expected: &APIError{
				StatusCode: 403,
				Message:    "HTTP 403",
			},
		},
		{
			name:   "non-object body",
			status: 400,
			body:   `["a","b"]`,
			expected: &APIError{
				StatusCode: 400,
				Message:    "HTTP 400",
			},
		},
		{
			name:   "empty body",
			status: 500,
			body:   ``,
			expected: &APIError{
				StatusCode: 500,
				Message:    "HTTP 500",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAPIError(tt.status, json.RawMessage(tt.body))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("NewAPIError() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name:     "without code",
			err:      &APIError{StatusCode: 404, Message: "Not found"},
			expected: "cuentica API error (status 404): Not found",
		},
		{
			name:     "with code",
			err:      &APIError{StatusCode: 400, Code: "BAD", Message: "Bad input"},
			expected: "cuentica API error (status 400, code BAD): Bad input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRateLimitError(t *testing.T) {
	retry := 60
	err := error(newRateLimitError(&retry))

	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) {
		t.Fatal("errors.As should match *RateLimitError")
	}
	if *rlErr.RetryAfterSeconds != 60 {
		t.Errorf("RetryAfterSeconds = %d, want 60", *rlErr.RetryAfterSeconds)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("errors.As should match the embedded *APIError")
	}
	if apiErr.StatusCode != 429 || apiErr.Code != RateLimitCode {
		t.Errorf("APIError = %+v, want status 429 and code %s", apiErr, RateLimitCode)
	}

	if got := err.Error(); got != "cuentica API rate limit exceeded (retry after 60s)" {
		t.Errorf("Error() = %q", got)
	}
	if got := newRateLimitError(nil).Error(); got != "cuentica API rate limit exceeded" {
		t.Errorf("Error() without hint = %q", got)
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{Message: "network error: connection refused", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if err.Timeout() {
		t.Error("Timeout() = true for a non-timeout error")
	}

	timeout := &NetworkError{Message: "request timeout", Cause: context.DeadlineExceeded}
	if !timeout.Timeout() {
		t.Error("Timeout() = false for a deadline error")
	}
}

func TestConfigError_Unwrap(t *testing.T) {
	err := &ConfigError{Message: ErrMissingToken.Error(), Err: ErrMissingToken}

	if !errors.Is(err, ErrMissingToken) {
		t.Error("errors.Is should match ErrMissingToken")
	}
	if got := err.Error(); got != "cuentica config error: API token is required" {
		t.Errorf("Error() = %q", got)
	}
}

func TestHelpers(t *testing.T) {
	notFound := fmt.Errorf("get customer: %w", &APIError{StatusCode: 404, Message: "Not found"})
	rateLimited := fmt.Errorf("list: %w", newRateLimitError(nil))
	network := &NetworkError{Message: "request timeout", Cause: context.DeadlineExceeded}

	tests := []struct {
		name        string
		err         error
		notFound    bool
		rateLimited bool
		status      int
		class       ErrorClass
	}{
		{"not found", notFound, true, false, 404, ErrorClassClient},
		{"rate limited", rateLimited, false, true, 429, ErrorClassRateLimit},
		{"server", &APIError{StatusCode: 503}, false, false, 503, ErrorClassServer},
		{"network", network, false, false, 0, ErrorClassNetwork},
		{"config", &ConfigError{Message: "x"}, false, false, 0, ErrorClassConfig},
		{"nil", nil, false, false, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.notFound)
			}
			if got := IsRateLimited(tt.err); got != tt.rateLimited {
				t.Errorf("IsRateLimited() = %v, want %v", got, tt.rateLimited)
			}
			if got := StatusCode(tt.err); got != tt.status {
				t.Errorf("StatusCode() = %d, want %d", got, tt.status)
			}
			if got := ClassOf(tt.err); got != tt.class {
				t.Errorf("ClassOf() = %q, want %q", got, tt.class)
			}
		})
	}
}
