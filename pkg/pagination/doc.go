// Package pagination fetches every page of a Cuentica list endpoint.
//
// List endpoints report their page state in the X-Page, X-Total-Pages,
// X-Total-Count and X-Per-Page headers. The API sometimes ignores the
// requested page size, so the fetcher trusts X-Total-Pages from the first
// response and never infers the page count from item counts.
//
// Example usage:
//
//	fetch := pagination.Pages[cuentica.Tag](c, client.RequestOptions{Path: "/tag"})
//	tags, err := pagination.FetchAll(ctx, fetch, pagination.DefaultConfig())
//
// The fetcher:
//   - Fetches the first page to learn the total page count
//   - Fetches the remaining pages with bounded concurrency
//   - Returns items in page order
//   - Fails on the first page error and cancels the pages in flight
//   - Refuses page counts above Config.MaxPages with ErrTooManyPages
package pagination
