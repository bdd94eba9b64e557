package fetch

import (
	"context"
	"io"
	"net/http"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// maxBodySize caps the read to keep a runaway page from eating memory.
const maxBodySize = 10 << 20

// HTTPFetcher performs a single HTTP GET. No script execution.
type HTTPFetcher struct {
	client *http.Client
	ua     string
}

// Option configures a fetcher.
type Option func(*HTTPFetcher)

// WithClient sets a custom HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *HTTPFetcher) { f.client = c }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) { f.ua = ua }
}

// NewHTTP creates an HTTPFetcher. The timeout bounds the whole
// request, connect through body read.
func NewHTTP(timeout time.Duration, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		ua:     defaultUserAgent,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch GETs the page and returns its HTML. Any network failure,
// timeout, or non-2xx status is a *Error.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &Error{URL: pageURL, Cause: err}
	}
	req.Header.Set("User-Agent", f.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: pageURL, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &Error{URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", &Error{URL: pageURL, Cause: err}
	}

	return string(body), nil
}
