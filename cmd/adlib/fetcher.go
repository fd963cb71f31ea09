package main

import (
	"context"
	"time"

	"github.com/fwojciec/adlib"
	"github.com/fwojciec/adlib/fs"
)

// Ensure snapshotFetcher implements adlib.Fetcher.
var _ adlib.Fetcher = (*snapshotFetcher)(nil)

// snapshotFetcher saves every successfully fetched page to a snapshot
// store before handing the HTML onward.
type snapshotFetcher struct {
	next  adlib.Fetcher
	store *fs.SnapshotStore
}

func newSnapshotFetcher(next adlib.Fetcher, store *fs.SnapshotStore) *snapshotFetcher {
	return &snapshotFetcher{next: next, store: store}
}

func (f *snapshotFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if err := f.store.Save(ctx, &adlib.Page{
		URL:       url,
		HTML:      html,
		FetchedAt: time.Now().UTC(),
	}); err != nil {
		return "", err
	}

	return html, nil
}

func (f *snapshotFetcher) Close() error {
	return f.next.Close()
}
