package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sternrassler/cuentica-client/pkg/client"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrTooManyPages is returned when the reported page count exceeds Config.MaxPages.
var ErrTooManyPages = errors.New("too many pages")

// Config holds fetcher configuration.
type Config struct {
	// MaxConcurrency is the maximum number of pages fetched in parallel.
	// The API budget is 600 requests per 5 minutes, so keep this small.
	MaxConcurrency int

	// PageSize is sent as page_size when non-zero
	PageSize int

	// MaxPages caps the page count accepted from X-Total-Pages
	// (zero means DefaultConfig().MaxPages)
	MaxPages int
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 4,
		PageSize:       100,
		MaxPages:       500,
	}
}

// PageFunc fetches a single page.
type PageFunc[T any] func(ctx context.Context, page, pageSize int) ([]T, client.PaginationInfo, error)

// Pages returns a PageFunc that lists opts.Path through the client's
// paginated call shape, adding page and page_size to opts.Query.
func Pages[T any](c *client.Client, opts client.RequestOptions) PageFunc[T] {
	return func(ctx context.Context, page, pageSize int) ([]T, client.PaginationInfo, error) {
		q := client.Query{}
		for k, v := range opts.Query {
			q[k] = v
		}
		q["page"] = page
		if pageSize > 0 {
			q["page_size"] = pageSize
		}

		pageOpts := opts
		pageOpts.Query = q
		resp, err := client.Paginated[T](ctx, c, pageOpts)
		if err != nil {
			return nil, client.PaginationInfo{}, err
		}
		return resp.Data, resp.Pagination, nil
	}
}

// FetchAll fetches every page and returns the items in page order.
func FetchAll[T any](ctx context.Context, fetch PageFunc[T], cfg Config) ([]T, error) {
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = DefaultConfig().MaxConcurrency
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultConfig().MaxPages
	}
	start := time.Now()

	first, info, err := fetch(ctx, 1, cfg.PageSize)
	if err != nil {
		return nil, fmt.Errorf("fetch page 1: %w", err)
	}

	totalPages := info.TotalPages
	if totalPages <= 1 {
		log.Debug().
			Int("items", len(first)).
			Dur("duration", time.Since(start)).
			Msg("Fetch complete (single page)")
		return first, nil
	}
	if totalPages > cfg.MaxPages {
		return nil, fmt.Errorf("%w: server reports %d, limit is %d", ErrTooManyPages, totalPages, cfg.MaxPages)
	}

	log.Debug().
		Int("total_pages", totalPages).
		Int("total_items", info.TotalItems).
		Msg("Starting parallel page fetch")

	pages := make([][]T, totalPages)
	pages[0] = first

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxConcurrency)

	for page := 2; page <= totalPages; page++ {
		page := page
		g.Go(func() error {
			items, _, err := fetch(gctx, page, cfg.PageSize)
			if err != nil {
				log.Warn().Err(err).Int("page", page).Msg("Page fetch failed")
				return fmt.Errorf("fetch page %d: %w", page, err)
			}
			pages[page-1] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	n := 0
	for _, items := range pages {
		n += len(items)
	}
	all := make([]T, 0, n)
	for _, items := range pages {
		all = append(all, items...)
	}

	log.Debug().
		Int("pages", totalPages).
		Int("items", len(all)).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return all, nil
}
