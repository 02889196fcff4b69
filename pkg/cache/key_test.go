package cache

import (
	"testing"
)

func TestCacheKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  CacheKey
		want string
	}{
		{
			name: "simple endpoint no params",
			key:  CacheKey{Endpoint: "/customer"},
			want: "customer",
		},
		{
			name: "empty query map",
			key:  CacheKey{Endpoint: "/customer", QueryParams: map[string]any{}},
			want: "customer",
		},
		{
			name: "entity path",
			key:  CacheKey{Endpoint: "/customer/42"},
			want: "customer/42",
		},
		{
			name: "multiple query params (sorted)",
			key: CacheKey{
				Endpoint:    "/customer",
				QueryParams: map[string]any{"b": 2, "a": 1},
			},
			want: "customer?a=1&b=2",
		},
		{
			name: "nil values dropped",
			key: CacheKey{
				Endpoint:    "/invoice",
				QueryParams: map[string]any{"page": 1, "status": nil},
			},
			want: "invoice?page=1",
		},
		{
			name: "only nil values",
			key: CacheKey{
				Endpoint:    "/invoice",
				QueryParams: map[string]any{"status": nil},
			},
			want: "invoice",
		},
		{
			name: "boolean value",
			key: CacheKey{
				Endpoint:    "/account",
				QueryParams: map[string]any{"active": true},
			},
			want: "account?active=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.key.String()
			if got != tt.want {
				t.Errorf("CacheKey.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestKeyFor_Determinism ensures insertion order does not change the key
func TestKeyFor_Determinism(t *testing.T) {
	a := KeyFor("/customer", map[string]any{"b": 2, "a": 1})
	b := KeyFor("/customer", map[string]any{"a": 1, "b": 2})

	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
	if a != "customer?a=1&b=2" {
		t.Errorf("KeyFor() = %q, want %q", a, "customer?a=1&b=2")
	}

	for i := 0; i < 10; i++ {
		if got := KeyFor("/customer", map[string]any{"z": "1", "m": "2", "a": "3"}); got != "customer?a=3&m=2&z=1" {
			t.Fatalf("iteration %d: KeyFor() = %q", i, got)
		}
	}
}

func TestParsePrefix(t *testing.T) {
	for _, p := range Prefixes() {
		got, ok := ParsePrefix(string(p))
		if !ok || got != p {
			t.Errorf("ParsePrefix(%q) = (%q, %v)", p, got, ok)
		}
	}

	if _, ok := ParsePrefix("customers"); ok {
		t.Error("ParsePrefix should reject plural resource names")
	}
}
