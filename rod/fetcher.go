package rod

import (
	"context"
	"time"

	"github.com/fwojciec/adlib"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements adlib.Fetcher at compile time.
var _ adlib.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Archive pages assemble their creative markup client side, so a plain HTTP
// GET returns a shell document; driving a real browser yields the DOM the
// extractor needs. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher) error

// WithFetchTimeout bounds each Fetch call. A zero duration (the default)
// defers entirely to the caller's context.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) error {
		f.timeout = d
		return nil
	}
}

// WithBrowserOptions forwards options to the underlying BrowserManager,
// such as WithProxy or WithMaxPages.
func WithBrowserOptions(opts ...ManagerOption) Option {
	return func(f *Fetcher) error {
		manager, err := NewBrowserManager(opts...)
		if err != nil {
			return err
		}
		f.manager = manager
		return nil
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	if f.manager == nil {
		manager, err := NewBrowserManager()
		if err != nil {
			return nil, err
		}
		f.manager = manager
	}

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.manager.Closed() {
		return "", adlib.Errorf(adlib.EINVALID, "fetcher is closed")
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	browser := f.manager.Browser()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	// Wait for page to load
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()

	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
