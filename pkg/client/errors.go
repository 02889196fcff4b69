package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common errors returned by the client.
var (
	// ErrMissingToken is wrapped by the ConfigError returned when no API token is set.
	ErrMissingToken = errors.New("API token is required")
)

// RateLimitCode is the Code carried by every RateLimitError.
const RateLimitCode = "RATE_LIMIT_EXCEEDED"

// ErrorClass represents a classification of failed exchanges.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 429 rate limit errors.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents transport and timeout errors.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassConfig represents configuration errors.
	ErrorClassConfig ErrorClass = "config"
)

// FieldError is a single validation failure reported by the API.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx response from the Cuentica API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string

	// Details holds error.details from the body, if any
	Details json.RawMessage

	// FieldErrors holds the errors array of a validation response
	FieldErrors []FieldError
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("cuentica API error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("cuentica API error (status %d): %s", e.StatusCode, e.Message)
}

// Class returns the error class for the status code.
func (e *APIError) Class() ErrorClass {
	switch {
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrorClassRateLimit
	case e.StatusCode >= 500:
		return ErrorClassServer
	default:
		return ErrorClassClient
	}
}

// errorObject is the nested "error" shape of an error body.
type errorObject struct {
	Message *string         `json:"message"`
	Code    *string         `json:"code"`
	Details json.RawMessage `json:"details"`
}

// NewAPIError builds an APIError from a status code and a parsed body.
//
// The message is taken from, in order: error.message (with error.code and
// error.details attached), the top-level message followed by
// " - field: msg; field: msg" when an errors array is present, and finally
// "HTTP <status>". Each field is decoded on its own, so a malformed field
// only loses the information it carries.
func NewAPIError(status int, body json.RawMessage) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    fmt.Sprintf("HTTP %d", status),
	}

	var fields map[string]json.RawMessage
	if len(body) == 0 || json.Unmarshal(body, &fields) != nil {
		return apiErr
	}

	if obj, ok := decodeField[errorObject](fields, "error"); ok {
		if obj.Message != nil && *obj.Message != "" {
			apiErr.Message = *obj.Message
		}
		if obj.Code != nil {
			apiErr.Code = *obj.Code
		}
		if len(obj.Details) > 0 && string(obj.Details) != "null" {
			apiErr.Details = obj.Details
		}
		return apiErr
	}

	msg, ok := decodeField[string](fields, "message")
	if !ok {
		return apiErr
	}
	apiErr.Message = msg

	if fieldErrs := decodeFieldErrors(fields["errors"]); len(fieldErrs) > 0 {
		details := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, fe.Field+": "+fe.Message)
		}
		apiErr.Message += " - " + strings.Join(details, "; ")
		apiErr.FieldErrors = fieldErrs
	}

	return apiErr
}

// decodeField decodes fields[key] into T. Missing, null or mistyped values
// report false.
func decodeField[T any](fields map[string]json.RawMessage, key string) (T, bool) {
	var v T
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}
	return v, true
}

// decodeFieldErrors keeps the well-formed entries of an errors array.
func decodeFieldErrors(raw json.RawMessage) []FieldError {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	var out []FieldError
	for _, item := range items {
		var fe FieldError
		if json.Unmarshal(item, &fe) != nil {
			continue
		}
		out = append(out, fe)
	}
	return out
}

// RateLimitError is returned for HTTP 429.
// errors.As with an *APIError target also matches it.
type RateLimitError struct {
	APIError

	// RetryAfterSeconds is the Retry-After header value, nil when missing
	// or not numeric
	RetryAfterSeconds *int
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfterSeconds != nil {
		return fmt.Sprintf("cuentica API rate limit exceeded (retry after %ds)", *e.RetryAfterSeconds)
	}
	return "cuentica API rate limit exceeded"
}

// Unwrap exposes the embedded APIError.
func (e *RateLimitError) Unwrap() error {
	return &e.APIError
}

func newRateLimitError(retryAfterSeconds *int) *RateLimitError {
	return &RateLimitError{
		APIError: APIError{
			StatusCode: http.StatusTooManyRequests,
			Code:       RateLimitCode,
			Message:    "Rate limit exceeded",
		},
		RetryAfterSeconds: retryAfterSeconds,
	}
}

// ConfigError is returned by New and ConfigFromEnv for invalid configuration.
// It is never returned from a request.
type ConfigError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "cuentica config error: " + e.Message
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NetworkError is a transport failure. It carries no status code.
type NetworkError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return e.Message
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the exchange ran out of time.
func (e *NetworkError) Timeout() bool {
	return errors.Is(e.Cause, context.DeadlineExceeded)
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsRateLimited reports whether err is a rate limit failure.
func IsRateLimited(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}

// StatusCode returns the HTTP status carried by err, or 0 if it has none.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// ClassOf returns the error class of err for logs and metrics.
func ClassOf(err error) ErrorClass {
	var (
		rlErr   *RateLimitError
		apiErr  *APIError
		netErr  *NetworkError
		confErr *ConfigError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &rlErr):
		return ErrorClassRateLimit
	case errors.As(err, &apiErr):
		return apiErr.Class()
	case errors.As(err, &netErr):
		return ErrorClassNetwork
	case errors.As(err, &confErr):
		return ErrorClassConfig
	default:
		return ErrorClassNetwork
	}
}
