package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/adlib"
	"github.com/fwojciec/adlib/crawl"
	"github.com/fwojciec/adlib/fs"
	"github.com/fwojciec/adlib/goquery"
	"github.com/fwojciec/adlib/htmltomarkdown"
	adlibhttp "github.com/fwojciec/adlib/http"
	"github.com/fwojciec/adlib/readability"
	"github.com/fwojciec/adlib/rod"
	adlibslog "github.com/fwojciec/adlib/slog"
	"github.com/fwojciec/adlib/sqlite"
	"github.com/fwojciec/adlib/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// RecordService for end-to-end testing.
	RecordService adlib.RecordService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("adlib"),
		kong.Description("Crawl ad transparency archive pages into structured records"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'adlib --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ADLIB_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.RecordService = sqlite.NewRecordService(m.DB)
	deps.DB = m.DB
	deps.Records = m.RecordService

	// Wire crawl-specific dependencies
	if cmd == "crawl" {
		deps.Sitemaps = adlibslog.NewLoggingSourceService(adlibhttp.NewSitemapSource(nil), deps.Logger)
		deps.URLFiles = adlibslog.NewLoggingSourceService(fs.NewURLFileSource(), deps.Logger)

		if cli.Crawl.DryRun {
			return kongCtx.Run(deps)
		}

		sink := adlib.RecordWriter(m.RecordService)
		if cli.Crawl.NDJSON != "" {
			w, err := fs.NewWriter(cli.Crawl.NDJSON)
			if err != nil {
				return fmt.Errorf("failed to open output file %q: %w", cli.Crawl.NDJSON, err)
			}
			defer w.Close()
			sink = w
		}

		fetcher, err := newFetcher(&cli.Crawl)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed unless --http is set")
			return fmt.Errorf("failed to start fetcher: %w", err)
		}
		defer fetcher.Close()

		if cli.Crawl.SnapshotDir != "" {
			dir := filepath.Clean(cli.Crawl.SnapshotDir)
			deps.Snapshots = fs.NewSnapshotStore(filepath.Dir(dir), filepath.Base(dir))
			fetcher = newSnapshotFetcher(fetcher, deps.Snapshots)
		}

		if cli.Verbose {
			fetcher = adlibslog.NewLoggingFetcher(fetcher, deps.Logger)
		}

		var text adlib.TextExtractor
		switch cli.Crawl.TextExtractor {
		case "readability":
			text = readability.NewExtractor()
		default:
			text = trafilatura.NewExtractor()
		}

		extractor := goquery.NewExtractor(
			goquery.WithTextExtractor(text),
			goquery.WithConverter(htmltomarkdown.NewConverter()),
			goquery.WithObserver(adlibslog.NewObserver(deps.Logger)),
		)

		deps.Crawler = &crawl.Crawler{
			Fetcher:      fetcher,
			Extractor:    extractor,
			Records:      sink,
			Limiter:      crawl.NewDomainLimiter(cli.Crawl.RPS),
			Concurrency:  cli.Crawl.Concurrency,
			FetchTimeout: cli.Crawl.Timeout,
			RetryDelays:  crawl.RetryDelays(cli.Crawl.Retries),
		}
	}

	return kongCtx.Run(deps)
}

// newFetcher builds the page fetcher the crawl command will use.
func newFetcher(c *CrawlCmd) (adlib.Fetcher, error) {
	if c.HTTP {
		opts := []adlibhttp.Option{adlibhttp.WithTimeout(c.Timeout)}
		if c.Proxy != "" {
			opts = append(opts, adlibhttp.WithProxy(c.Proxy))
		}
		return adlibhttp.NewFetcher(opts...)
	}

	var browserOpts []rod.ManagerOption
	if c.Proxy != "" {
		browserOpts = append(browserOpts, rod.WithProxy(c.Proxy))
	}
	return rod.NewFetcher(rod.WithBrowserOptions(browserOpts...))
}

func defaultDBPath() string {
	if path := os.Getenv("ADLIB_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "adlib.db"
	}
	dir := filepath.Join(home, ".adlib")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "adlib.db")
}
