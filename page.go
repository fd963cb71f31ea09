package adlib

import (
	"context"
	"time"
)

// Page is one fetched ad archive page as handed to the extraction
// engine: the source URL, the fully rendered page content, and the
// capture timestamp. The engine performs no I/O of its own; this struct
// is its entire input surface.
type Page struct {
	URL       string
	HTML      string
	FetchedAt time.Time
}

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch navigates to the URL and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Limiter provides per-domain rate limiting for outbound fetches.
type Limiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// SourceService resolves a source reference (sitemap URL, URL list
// file) into the list of archive page URLs to process.
type SourceService interface {
	DiscoverURLs(ctx context.Context, ref string) ([]string, error)
}
