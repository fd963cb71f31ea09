package main

import (
	"fmt"
	"net/url"

	"github.com/fwojciec/adlib"
	"github.com/fwojciec/adlib/crawl"
)

// Validate rejects inconsistent crawl flags before any resource is opened.
// Kong runs it during argument parsing.
func (c *CrawlCmd) Validate() error {
	sources := 0
	if len(c.URLs) > 0 {
		sources++
	}
	if c.URLsFile != "" {
		sources++
	}
	if c.Sitemap != "" {
		sources++
	}
	if sources == 0 {
		return adlib.Errorf(adlib.EINVALID, "no URLs to crawl: pass URLs, --urls-file, or --sitemap")
	}
	if sources > 1 {
		return adlib.Errorf(adlib.EINVALID, "URLs, --urls-file, and --sitemap are mutually exclusive")
	}

	for _, raw := range c.URLs {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return adlib.Errorf(adlib.EINVALID, "invalid URL: %s", raw)
		}
	}

	if c.Concurrency <= 0 {
		return adlib.Errorf(adlib.EINVALID, "concurrency must be positive")
	}
	if c.Timeout <= 0 {
		return adlib.Errorf(adlib.EINVALID, "timeout must be positive")
	}
	if c.RPS <= 0 {
		return adlib.Errorf(adlib.EINVALID, "rps must be positive")
	}
	if c.Retries < 0 {
		return adlib.Errorf(adlib.EINVALID, "retries must not be negative")
	}

	return nil
}

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	urls, err := c.resolveURLs(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adlib.ErrorMessage(err))
		return err
	}

	// Dry-run mode: show resolved URLs without fetching
	if c.DryRun {
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling %d URLs\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  %s %s: %v\n", event.Status, crawl.TruncateURL(event.URL, 60), event.Error)
		case crawl.ProgressFinished:
			// Summary printed after the crawl completes
		}
	}

	result, err := deps.Crawler.Run(deps.Ctx, urls, progress)
	if err != nil {
		if deps.Snapshots != nil {
			_ = deps.Snapshots.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	if deps.Snapshots != nil {
		if err := deps.Snapshots.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error saving snapshots: %v\n", err)
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d records: %d success, %d error, %d failed (%s)\n",
		result.Succeeded+result.Errored+result.Failed,
		result.Succeeded, result.Errored, result.Failed,
		crawl.FormatBytes(result.Bytes))
	if result.Duplicates > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d duplicate URLs\n", result.Duplicates)
	}
	if result.SinkErrors > 0 {
		fmt.Fprintf(deps.Stderr, "%d records were rejected by the sink\n", result.SinkErrors)
	}

	return nil
}

// resolveURLs turns the configured source into the URL list to crawl.
func (c *CrawlCmd) resolveURLs(deps *Dependencies) ([]string, error) {
	switch {
	case len(c.URLs) > 0:
		return c.URLs, nil
	case c.URLsFile != "":
		return deps.URLFiles.DiscoverURLs(deps.Ctx, c.URLsFile)
	default:
		return deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap)
	}
}
