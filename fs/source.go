package fs

import (
	"bufio"
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/fwojciec/adlib"
)

// Ensure URLFileSource implements adlib.SourceService at compile time.
var _ adlib.SourceService = (*URLFileSource)(nil)

// URLFileSource reads archive page URLs from a newline-delimited text
// file. Blank lines and lines starting with # are skipped.
type URLFileSource struct{}

// NewURLFileSource creates a new URLFileSource.
func NewURLFileSource() *URLFileSource {
	return &URLFileSource{}
}

// DiscoverURLs reads the file at ref and returns its URLs in file order.
// Every URL must be absolute; a file with no URLs is an error since a
// crawl with no inputs is almost certainly a misconfiguration.
func (s *URLFileSource) DiscoverURLs(ctx context.Context, ref string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(ref)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		u, err := url.Parse(line)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, adlib.Errorf(adlib.EINVALID, "invalid URL in %s: %s", ref, line)
		}

		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(urls) == 0 {
		return nil, adlib.Errorf(adlib.EINVALID, "no URLs found in %s", ref)
	}

	return urls, nil
}
