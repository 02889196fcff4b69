package client

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestParseBody(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")

	tests := []struct {
		name        string
		contentType string
		data        string
		success     bool
		expected    string
		expectError bool
	}{
		{
			name:        "json object",
			contentType: "application/json",
			data:        `{"id":1}`,
			success:     true,
			expected:    `{"id":1}`,
		},
		{
			name:        "json with charset",
			contentType: "application/json; charset=utf-8",
			data:        ` [1,2] `,
			success:     true,
			expected:    `[1,2]`,
		},
		{
			name:        "empty json body",
			contentType: "application/json",
			data:        "",
			success:     true,
			expected:    `null`,
		},
		{
			name:        "pdf",
			contentType: "application/pdf",
			data:        string(pdf),
			success:     true,
			expected:    `{"pdf":"` + base64.StdEncoding.EncodeToString(pdf) + `"}`,
		},
		{
			name:        "plain text",
			contentType: "text/plain",
			data:        "OK",
			success:     true,
			expected:    `{"message":"OK"}`,
		},
		{
			name:        "missing content type",
			contentType: "",
			data:        "hello",
			success:     true,
			expected:    `{"message":"hello"}`,
		},
		{
			name:        "malformed json on success",
			contentType: "application/json",
			data:        `{"id":`,
			success:     true,
			expectError: true,
		},
		{
			name:        "malformed json on error falls back to text",
			contentType: "application/json",
			data:        `Internal error`,
			success:     false,
			expected:    `{"message":"Internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBody(tt.contentType, []byte(tt.data), tt.success)

			if tt.expectError {
				var netErr *NetworkError
				if !errors.As(err, &netErr) {
					t.Fatalf("expected *NetworkError, got %v", err)
				}
				if netErr.Message != "invalid JSON response body" {
					t.Errorf("Message = %q", netErr.Message)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("parseBody() = %s, want %s", got, tt.expected)
			}
		})
	}
}
