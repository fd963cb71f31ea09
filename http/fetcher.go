// Package http provides HTTP-based implementations of adlib.Fetcher and
// adlib.SourceService for archive mirrors that serve fully rendered markup
// without requiring JavaScript execution.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/adlib"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with the browser fetcher default (10s).
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements adlib.Fetcher at compile time.
var _ adlib.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// only for sources that serve the rendered page directly, such as
// archive snapshots and mirrors.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	proxy   *url.URL
}

// Option configures a Fetcher.
type Option func(*Fetcher) error

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) error {
		f.timeout = d
		return nil
	}
}

// WithProxy routes all requests through the given proxy URL
// (e.g. "http://proxy.internal:3128").
func WithProxy(proxyURL string) Option {
	return func(f *Fetcher) error {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return adlib.Errorf(adlib.EINVALID, "invalid proxy URL: %s", proxyURL)
		}
		f.proxy = u
		return nil
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	transport := http.DefaultTransport
	if f.proxy != nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.Proxy = http.ProxyURL(f.proxy)
		transport = t
	}

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}

	return f, nil
}

// Fetch retrieves the HTML content from the given URL. The response body
// is decoded to UTF-8 based on the Content-Type header and document
// metadata, so downstream extraction always sees UTF-8 text.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("determining charset: %w", err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
