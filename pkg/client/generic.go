package client

import "context"

// CachedResponse is a decoded value with its cache provenance.
type CachedResponse[T any] struct {
	Data   T
	Cached bool
}

// PaginatedResponse is one decoded page of a list.
type PaginatedResponse[T any] struct {
	Data       []T
	Pagination PaginationInfo
	Cached     bool
}

// Do performs an uncached call and decodes the response as T.
func Do[T any](ctx context.Context, c *Client, opts RequestOptions) (T, error) {
	var out T
	err := c.Request(ctx, opts, &out)
	return out, err
}

// Cached performs a cache-aware call and decodes the response as T.
func Cached[T any](ctx context.Context, c *Client, opts RequestOptions) (CachedResponse[T], error) {
	var out CachedResponse[T]
	cached, err := c.CachedRequest(ctx, opts, &out.Data)
	if err != nil {
		return CachedResponse[T]{}, err
	}
	out.Cached = cached
	return out, nil
}

// Paginated performs a cache-aware list call and decodes the items as []T.
func Paginated[T any](ctx context.Context, c *Client, opts RequestOptions) (PaginatedResponse[T], error) {
	var out PaginatedResponse[T]
	info, cached, err := c.PaginatedRequest(ctx, opts, &out.Data)
	if err != nil {
		return PaginatedResponse[T]{}, err
	}
	out.Pagination = info
	out.Cached = cached
	return out, nil
}
