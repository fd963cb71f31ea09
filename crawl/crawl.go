// Package crawl provides the fetch-side orchestration around the
// extraction engine: bounded-concurrency fetching with retry and rate
// limiting, synthesis of failed records when a page can never be
// retrieved, and hand-off of exactly one finalized record per input URL
// to the sink.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/adlib"
	"golang.org/x/sync/errgroup"
)

// Seen-set sizing for input URL deduplication.
const (
	seenExpectedURLs      = 100000
	seenFalsePositiveRate = 0.001
)

// Crawler coordinates fetching, extraction, and storage of ad archive
// pages. The extraction engine itself performs no I/O; everything
// network-related (concurrency, retries, timeouts, rate limits) lives
// here.
type Crawler struct {
	Fetcher   adlib.Fetcher
	Extractor adlib.Extractor
	Records   adlib.RecordWriter

	// Limiter, if set, throttles requests per domain.
	Limiter adlib.Limiter

	// Concurrency bounds the number of parallel fetches. Defaults to 10.
	Concurrency int

	// FetchTimeout is the per-request time budget. Zero means no limit
	// beyond the caller's context.
	FetchTimeout time.Duration

	// RetryDelays are the backoff delays between fetch attempts.
	// Defaults to DefaultRetryDelays().
	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Succeeded  int // records with status success
	Errored    int // records with status error
	Failed     int // records with status failed (fetch exhausted)
	Duplicates int // input URLs skipped as already seen this run
	SinkErrors int // records the sink refused
	Bytes      int // total fetched page bytes
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Status    adlib.Status
	Error     error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// crawlResult pairs a finalized record with its input position and the
// size of the fetched content.
type crawlResult struct {
	position int
	record   *adlib.AdRecord
	bytes    int
}

// Run processes every URL in the list and hands exactly one finalized
// record per distinct URL to the sink. Duplicate input URLs are skipped
// so no URL yields more than one record in a run. An empty URL list is
// a configuration error reported before any work starts.
func (c *Crawler) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if len(urls) == 0 {
		return nil, adlib.Errorf(adlib.EINVALID, "no source URLs to crawl")
	}

	seen := NewSeenSet(seenExpectedURLs, seenFalsePositiveRate)
	var result Result
	var distinct []string
	for _, u := range urls {
		if !seen.Add(u) {
			result.Duplicates++
			continue
		}
		distinct = append(distinct, u)
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	total := len(distinct)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan crawlResult, total)

	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range distinct {
			g.Go(func() error {
				resultCh <- c.processURL(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in input order before writing: faults never
	// cross a document boundary, so a record is accounted for even
	// when its neighbors failed.
	results := make([]crawlResult, total)
	for res := range resultCh {
		completed.Add(1)
		results[res.position] = res

		if progress != nil {
			ev := ProgressEvent{
				Completed: int(completed.Load()),
				Total:     total,
				URL:       res.record.SourceURL,
				Status:    res.record.Status,
			}
			if res.record.Status == adlib.StatusSuccess {
				ev.Type = ProgressCompleted
			} else {
				ev.Type = ProgressFailed
				ev.Error = fmt.Errorf("%s", res.record.Error)
			}
			progress(ev)
		}
	}

	for _, res := range results {
		if res.record == nil {
			continue // context canceled before this URL was processed
		}
		if err := c.Records.CreateRecord(ctx, res.record); err != nil {
			result.SinkErrors++
			continue
		}
		switch res.record.Status {
		case adlib.StatusSuccess:
			result.Succeeded++
		case adlib.StatusError:
			result.Errored++
		case adlib.StatusFailed:
			result.Failed++
		}
		result.Bytes += res.bytes
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &result, nil
}

// processURL fetches one URL and produces its finalized record. A
// retry-exhausted fetch synthesizes a minimal failed record without
// invoking the extraction engine.
func (c *Crawler) processURL(ctx context.Context, position int, pageURL string) crawlResult {
	if c.Limiter != nil {
		if u, err := url.Parse(pageURL); err == nil {
			if err := c.Limiter.Wait(ctx, u.Hostname()); err != nil {
				return crawlResult{position: position, record: failedRecord(pageURL, 0, err)}
			}
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	fetchFn := func(ctx context.Context, u string) (string, error) {
		if c.FetchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.FetchTimeout)
			defer cancel()
		}
		return c.Fetcher.Fetch(ctx, u)
	}

	html, retries, err := FetchWithRetryDelays(ctx, pageURL, fetchFn, nil, delays)
	if err != nil {
		return crawlResult{position: position, record: failedRecord(pageURL, retries, err)}
	}

	rec := c.Extractor.Extract(&adlib.Page{
		URL:       pageURL,
		HTML:      html,
		FetchedAt: time.Now().UTC(),
	})
	rec.RetryCount = retries
	rec.ContentHash = computeHash(html)

	return crawlResult{position: position, record: rec, bytes: len(html)}
}

// failedRecord synthesizes the minimal record for a page that could
// never be fetched. The extraction engine is bypassed entirely.
func failedRecord(pageURL string, retries int, err error) *adlib.AdRecord {
	return &adlib.AdRecord{
		SourceURL:    pageURL,
		CreativeType: adlib.CreativeTypeUnknown,
		CrawledAt:    time.Now().UTC(),
		RetryCount:   retries,
		Status:       adlib.StatusFailed,
		Error:        err.Error(),
	}
}
