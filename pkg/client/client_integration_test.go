//go:build integration

package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupWireMock starts a WireMock container standing in for the Cuentica API.
func setupWireMock(t *testing.T) (string, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "wiremock/wiremock:3.9.1",
		ExposedPorts: []string{"8080/tcp"},
		WaitingFor:   wait.ForHTTP("/__admin/mappings").WithPort("8080/tcp"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start WireMock container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "8080")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cleanup := func() {
		container.Terminate(ctx)
	}

	return fmt.Sprintf("http://%s:%s", host, port.Port()), cleanup
}

// stub registers a WireMock mapping.
func stub(t *testing.T, baseURL, mapping string) {
	t.Helper()

	resp, err := http.Post(baseURL+"/__admin/mappings", "application/json", bytes.NewBufferString(mapping))
	if err != nil {
		t.Fatalf("Failed to register stub: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Register stub status = %d, want 201", resp.StatusCode)
	}
}

func newIntegrationClient(t *testing.T, baseURL string, timeout time.Duration) *Client {
	t.Helper()

	logger := zerolog.Nop()
	c, err := New(Config{
		APIToken: "integration-token",
		APIURL:   baseURL,
		Timeout:  timeout,
		Logger:   &logger,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return c
}

func TestIntegration_PaginatedCustomerList(t *testing.T) {
	baseURL, cleanup := setupWireMock(t)
	defer cleanup()

	// WireMock rejects the request unless the token matches and no
	// Content-Type is sent on the GET.
	stub(t, baseURL, `{
		"request": {
			"method": "GET",
			"urlPath": "/customer",
			"queryParameters": {"page_size": {"equalTo": "10"}},
			"headers": {
				"X-AUTH-TOKEN": {"equalTo": "integration-token"},
				"Content-Type": {"absent": true}
			}
		},
		"response": {
			"status": 200,
			"headers": {
				"Content-Type": "application/json",
				"X-Page": "1",
				"X-Total-Pages": "2",
				"X-Total-Count": "12",
				"X-Per-Page": "10"
			},
			"jsonBody": [{"id": 1, "name": "Acme"}]
		}
	}`)

	c := newIntegrationClient(t, baseURL, 5*time.Second)
	ctx := context.Background()
	opts := RequestOptions{Method: http.MethodGet, Path: "/customer", Query: Query{"page_size": 10}}

	first, err := Paginated[customer](ctx, c, opts)
	if err != nil {
		t.Fatalf("First request failed: %v", err)
	}
	if first.Cached || len(first.Data) != 1 || first.Pagination.TotalPages != 2 {
		t.Errorf("First response = %+v", first)
	}

	second, err := Paginated[customer](ctx, c, opts)
	if err != nil {
		t.Fatalf("Second request failed: %v", err)
	}
	if !second.Cached {
		t.Error("Second request should be served from cache")
	}
}

func TestIntegration_ErrorMapping(t *testing.T) {
	baseURL, cleanup := setupWireMock(t)
	defer cleanup()

	stub(t, baseURL, `{
		"request": {"method": "POST", "urlPath": "/provider"},
		"response": {
			"status": 422,
			"headers": {"Content-Type": "application/json"},
			"jsonBody": {"message": "Validation failed", "errors": [{"field": "cif", "message": "required"}]}
		}
	}`)
	stub(t, baseURL, `{
		"request": {"method": "GET", "urlPath": "/invoice"},
		"response": {"status": 429, "headers": {"Retry-After": "30"}}
	}`)
	stub(t, baseURL, `{
		"request": {"method": "GET", "urlPath": "/company"},
		"response": {"status": 200, "fixedDelayMilliseconds": 2000, "jsonBody": {}}
	}`)

	c := newIntegrationClient(t, baseURL, 500*time.Millisecond)
	ctx := context.Background()

	err := c.Request(ctx, RequestOptions{Method: http.MethodPost, Path: "/provider", Body: map[string]string{}}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Validation failed - cif: required" {
		t.Errorf("POST /provider error = %v", err)
	}

	err = c.Request(ctx, RequestOptions{Path: "/invoice"}, nil)
	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) || rlErr.RetryAfterSeconds == nil || *rlErr.RetryAfterSeconds != 30 {
		t.Errorf("GET /invoice error = %v", err)
	}

	err = c.Request(ctx, RequestOptions{Path: "/company"}, nil)
	var netErr *NetworkError
	if !errors.As(err, &netErr) || netErr.Message != "request timeout" {
		t.Errorf("GET /company error = %v", err)
	}
}
