package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/adlib"
	"github.com/fwojciec/adlib/crawl"
	"github.com/fwojciec/adlib/fs"
	"github.com/fwojciec/adlib/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB      *sqlite.DB
	Records adlib.RecordService

	// Crawl-only dependencies, wired when the crawl command runs.
	Crawler   *crawl.Crawler
	Sitemaps  adlib.SourceService
	URLFiles  adlib.SourceService
	Snapshots *fs.SnapshotStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging, including per-strategy extraction detail"`

	Crawl   CrawlCmd   `cmd:"" help:"Fetch archive pages and extract ad records"`
	Records RecordsCmd `cmd:"" help:"List stored ad records"`
	Stats   StatsCmd   `cmd:"" help:"Show record counts per status"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URLs     []string `arg:"" optional:"" help:"Archive page URLs to crawl"`
	URLsFile string   `help:"File with newline-delimited archive page URLs"`
	Sitemap  string   `help:"Site URL whose sitemap lists the archive pages"`

	DryRun bool `help:"Print resolved URLs without fetching"`

	Concurrency int           `short:"c" default:"10" help:"Concurrent fetch limit"`
	Timeout     time.Duration `default:"10s" help:"Per-request fetch timeout"`
	RPS         float64       `default:"1.0" help:"Requests per second per domain"`
	Retries     int           `default:"3" help:"Fetch retries per URL before recording a failure"`

	HTTP  bool   `help:"Fetch with plain HTTP instead of a headless browser"`
	Proxy string `help:"Proxy address for outbound fetches"`

	TextExtractor string `default:"trafilatura" enum:"trafilatura,readability" help:"Fallback ad copy extractor"`

	NDJSON      string `help:"Append records to this NDJSON file instead of the database"`
	SnapshotDir string `help:"Save fetched page HTML under this directory"`
}

// RecordsCmd is the "records" subcommand.
type RecordsCmd struct {
	Status    string `help:"Filter by status (success, error, failed)" enum:",success,error,failed" default:""`
	SourceURL string `help:"Filter by source URL"`
	Limit     int    `default:"20" help:"Maximum records to show"`
	Offset    int    `help:"Records to skip"`
	Full      bool   `help:"Print full records as JSON lines"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}
