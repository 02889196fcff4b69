package cuentica

import (
	"context"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
	"github.com/Sternrassler/cuentica-client/pkg/client"
	"github.com/Sternrassler/cuentica-client/pkg/pagination"
)

// tagPageSize is the largest page the tag endpoint serves.
const tagPageSize = 300

// Tag labels expenses, incomes and documents.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Count int    `json:"count,omitempty"`
}

// TagService reads /tag.
type TagService struct {
	service
}

// List returns one page of tags.
func (s *TagService) List(ctx context.Context, opts ListOptions) (client.PaginatedResponse[Tag], error) {
	return client.Paginated[Tag](ctx, s.client, client.RequestOptions{
		Path:  collectionPath(cache.PrefixTag),
		Query: opts.query(),
	})
}

// All returns every tag, fetching the remaining pages concurrently.
func (s *TagService) All(ctx context.Context) ([]Tag, error) {
	cfg := pagination.DefaultConfig()
	cfg.PageSize = tagPageSize
	fetch := pagination.Pages[Tag](s.client, client.RequestOptions{Path: collectionPath(cache.PrefixTag)})
	return pagination.FetchAll(ctx, fetch, cfg)
}
