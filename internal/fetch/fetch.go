// Package fetch retrieves page content for a check. Two strategies
// share one interface: a plain HTTP GET for static sites, and a
// headless browser for sites that gate content behind client-side
// rendering or bot checks.
package fetch

import (
	"context"
	"fmt"
)

// Fetcher retrieves the rendered HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Error is a page-fetch failure: network error, timeout, or a
// non-success HTTP status. It is fatal for the run — a page we could
// not read is never treated as a changed page.
type Error struct {
	URL        string
	StatusCode int // 0 when the request never completed
	Cause      error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }
