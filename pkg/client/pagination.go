package client

import (
	"net/http"
	"strconv"
	"strings"
)

// Pagination headers returned by list endpoints.
const (
	HeaderPage       = "X-Page"
	HeaderTotalPages = "X-Total-Pages"
	HeaderTotalCount = "X-Total-Count"
	HeaderPerPage    = "X-Per-Page"
)

// Defaults used when a pagination header is missing, negative or not numeric.
const (
	DefaultCurrentPage  = 1
	DefaultTotalPages   = 1
	DefaultTotalItems   = 0
	DefaultItemsPerPage = 25
)

// PaginationInfo is the server-reported page state of a list response.
// The API may ignore a requested page size; ItemsPerPage is what it used.
type PaginationInfo struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalItems   int `json:"total_items"`
	ItemsPerPage int `json:"items_per_page"`
}

// HasNext reports whether pages follow the current one.
func (p PaginationInfo) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// ParsePagination extracts PaginationInfo from response headers.
// Each field falls back to its default independently.
func ParsePagination(h http.Header) PaginationInfo {
	return PaginationInfo{
		CurrentPage:  headerInt(h, HeaderPage, DefaultCurrentPage),
		TotalPages:   headerInt(h, HeaderTotalPages, DefaultTotalPages),
		TotalItems:   headerInt(h, HeaderTotalCount, DefaultTotalItems),
		ItemsPerPage: headerInt(h, HeaderPerPage, DefaultItemsPerPage),
	}
}

func headerInt(h http.Header, name string, def int) int {
	n, ok := leadingInt(h.Get(name))
	if !ok {
		return def
	}
	return n
}

// leadingInt parses the leading decimal digits of v, so "5.5" is 5.
// Signs and values without leading digits report false.
func leadingInt(v string) (int, bool) {
	v = strings.TrimSpace(v)
	end := 0
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseRetryAfter returns the Retry-After header as whole seconds,
// truncating fractions. Returns nil if the header is missing or does not
// start with a digit.
func parseRetryAfter(h http.Header) *int {
	n, ok := leadingInt(h.Get("Retry-After"))
	if !ok {
		return nil
	}
	return &n
}
