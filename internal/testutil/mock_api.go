// Package testutil provides testing utilities for the Cuentica client.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock API endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// RecordedRequest is a request seen by the mock server.
type RecordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body into v.
func (r RecordedRequest) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// MockAPI is a configurable mock Cuentica API server for testing.
// Handlers are keyed by "METHOD /path"; a key of just "/path" matches any method.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	requests []RecordedRequest
	counts   map[string]int
}

// NewMockAPI creates a new mock API server.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
		counts:   make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		query := make(map[string]string)
		for k, v := range r.URL.Query() {
			query[k] = v[0]
		}

		mock.mu.Lock()
		mock.requests = append(mock.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  query,
			Header: r.Header.Clone(),
			Body:   body,
		})
		mock.counts[r.Method+" "+r.URL.Path]++
		handler, exists := mock.handlers[r.Method+" "+r.URL.Path]
		if !exists {
			handler, exists = mock.handlers[r.URL.Path]
		}
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears all recorded requests.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.counts = make(map[string]int)
}

// SetHandler sets a custom handler for a route ("GET /customer" or "/customer").
func (m *MockAPI) SetHandler(route string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[route] = handler
}

// SetResponse configures a simple response for a route.
func (m *MockAPI) SetResponse(route string, resp MockResponse) {
	m.SetHandler(route, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			select {
			case <-time.After(resp.Delay):
			case <-r.Context().Done():
				return
			}
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// RequestCount returns the number of requests made to the server.
func (m *MockAPI) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// CountFor returns the number of requests for "METHOD /path".
func (m *MockAPI) CountFor(route string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counts[route]
}

// LastRequest returns the most recent request, or false if none was made.
func (m *MockAPI) LastRequest() (RecordedRequest, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.requests) == 0 {
		return RecordedRequest{}, false
	}
	return m.requests[len(m.requests)-1], true
}

// Requests returns a copy of all recorded requests.
func (m *MockAPI) Requests() []RecordedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// defaultHandler answers unknown routes the way the API does.
func (m *MockAPI) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, `{"error":{"message":"no mock for %s %s","code":"NOT_FOUND"}}`, r.Method, r.URL.Path)
}

// NewJSONResponse creates a JSON response with the given status.
func NewJSONResponse(status int, body string) MockResponse {
	return MockResponse{
		StatusCode: status,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewPageResponse creates a 200 list response with pagination headers.
func NewPageResponse(body string, page, totalPages, totalCount, perPage int) MockResponse {
	resp := NewJSONResponse(http.StatusOK, body)
	resp.Headers["X-Page"] = strconv.Itoa(page)
	resp.Headers["X-Total-Pages"] = strconv.Itoa(totalPages)
	resp.Headers["X-Total-Count"] = strconv.Itoa(totalCount)
	resp.Headers["X-Per-Page"] = strconv.Itoa(perPage)
	return resp
}

// NewNoContentResponse creates a 204 response.
func NewNoContentResponse() MockResponse {
	return MockResponse{StatusCode: http.StatusNoContent}
}

// NewRateLimitResponse creates a 429 response with a Retry-After header.
func NewRateLimitResponse(retryAfterSeconds int) MockResponse {
	resp := NewJSONResponse(http.StatusTooManyRequests, `{"message":"Rate limit exceeded"}`)
	resp.Headers["Retry-After"] = strconv.Itoa(retryAfterSeconds)
	return resp
}

// NewNotFoundResponse creates a 404 response in the API error format.
func NewNotFoundResponse(message string) MockResponse {
	return NewJSONResponse(http.StatusNotFound,
		fmt.Sprintf(`{"error":{"message":%q,"code":"NOT_FOUND"}}`, message))
}

// NewValidationErrorResponse creates a 422 response with one field error.
func NewValidationErrorResponse(field, message string) MockResponse {
	return NewJSONResponse(http.StatusUnprocessableEntity,
		fmt.Sprintf(`{"message":"Validation failed","errors":[{"field":%q,"message":%q}]}`, field, message))
}

// NewPDFResponse creates a 200 application/pdf response.
func NewPDFResponse(content string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       content,
		Headers: map[string]string{
			"Content-Type": "application/pdf",
		},
	}
}
