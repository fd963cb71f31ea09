package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/adlib"
	main "github.com/fwojciec/adlib/cmd/adlib"
	"github.com/fwojciec/adlib/crawl"
	"github.com/fwojciec/adlib/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawlCmd_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *main.CrawlCmd {
		return &main.CrawlCmd{
			URLs:        []string{"https://example.com/ad"},
			Concurrency: 10,
			Timeout:     1,
			RPS:         1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*main.CrawlCmd)
		wantErr string
	}{
		{
			name:   "valid flags pass",
			mutate: func(c *main.CrawlCmd) {},
		},
		{
			name: "no source",
			mutate: func(c *main.CrawlCmd) {
				c.URLs = nil
			},
			wantErr: "no URLs to crawl",
		},
		{
			name: "multiple sources",
			mutate: func(c *main.CrawlCmd) {
				c.URLsFile = "urls.txt"
			},
			wantErr: "mutually exclusive",
		},
		{
			name: "relative URL argument",
			mutate: func(c *main.CrawlCmd) {
				c.URLs = []string{"ads/archive"}
			},
			wantErr: "invalid URL",
		},
		{
			name: "zero concurrency",
			mutate: func(c *main.CrawlCmd) {
				c.Concurrency = 0
			},
			wantErr: "concurrency",
		},
		{
			name: "zero rps",
			mutate: func(c *main.CrawlCmd) {
				c.RPS = 0
			},
			wantErr: "rps",
		},
		{
			name: "negative retries",
			mutate: func(c *main.CrawlCmd) {
				c.Retries = -1
			},
			wantErr: "retries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := valid()
			tt.mutate(cmd)

			err := cmd.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, adlib.EINVALID, adlib.ErrorCode(err))
			assert.Contains(t, adlib.ErrorMessage(err), tt.wantErr)
		})
	}
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("dry run prints resolved URLs without crawling", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			URLFiles: &mock.SourceService{
				DiscoverURLsFn: func(ctx context.Context, ref string) ([]string, error) {
					return []string{"https://example.com/ad/1", "https://example.com/ad/2"}, nil
				},
			},
		}

		cmd := &main.CrawlCmd{URLsFile: "urls.txt", DryRun: true}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "https://example.com/ad/1\nhttps://example.com/ad/2\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("crawls URL arguments and prints summary", func(t *testing.T) {
		t.Parallel()

		var written []*adlib.AdRecord
		sink := &mock.RecordWriter{
			CreateRecordFn: func(ctx context.Context, rec *adlib.AdRecord) error {
				written = append(written, rec)
				return nil
			},
		}

		crawler := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "<html><body>ad</body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(page *adlib.Page) *adlib.AdRecord {
					return &adlib.AdRecord{
						SourceURL:    page.URL,
						CreativeType: adlib.CreativeTypeUnknown,
						CrawledAt:    page.FetchedAt,
						Status:       adlib.StatusSuccess,
					}
				},
			},
			Records: sink,
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Crawler: crawler,
		}

		cmd := &main.CrawlCmd{
			URLs: []string{"https://example.com/ad/1", "https://example.com/ad/2"},
		}
		require.NoError(t, cmd.Run(deps))

		assert.Len(t, written, 2)
		output := stdout.String()
		assert.Contains(t, output, "Crawling 2 URLs")
		assert.Contains(t, output, "Wrote 2 records: 2 success, 0 error, 0 failed")
	})

	t.Run("reports failed fetches in summary", func(t *testing.T) {
		t.Parallel()

		crawler := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "", adlib.Errorf(adlib.EINTERNAL, "connection refused")
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(page *adlib.Page) *adlib.AdRecord {
					t.Fatal("extractor must not run for failed fetches")
					return nil
				},
			},
			Records: &mock.RecordWriter{
				CreateRecordFn: func(ctx context.Context, rec *adlib.AdRecord) error {
					return nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Crawler: crawler,
		}

		cmd := &main.CrawlCmd{URLs: []string{"https://example.com/ad/1"}}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "0 success, 0 error, 1 failed")
		assert.Contains(t, stderr.String(), "connection refused")
	})

	t.Run("source discovery failure aborts the crawl", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Sitemaps: &mock.SourceService{
				DiscoverURLsFn: func(ctx context.Context, ref string) ([]string, error) {
					return nil, adlib.Errorf(adlib.EINVALID, "source URL must be absolute: %s", ref)
				},
			},
		}

		cmd := &main.CrawlCmd{Sitemap: "not-a-url"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
		assert.Empty(t, stdout.String())
	})
}
