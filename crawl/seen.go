package crawl

import (
	"strings"
	"sync"

	"github.com/fwojciec/adlib/bloom"
)

// SeenSet deduplicates input URLs with a Bloom filter so that every
// distinct URL yields at most one record per run. It is safe for
// concurrent use by multiple goroutines.
type SeenSet struct {
	mu   sync.Mutex
	seen *bloom.Filter
}

// NewSeenSet creates a SeenSet sized for n expected URLs with the given
// false positive rate.
func NewSeenSet(n uint, fpRate float64) *SeenSet {
	return &SeenSet{seen: bloom.NewFilter(n, fpRate)}
}

// Add records a URL and reports whether it was new. URL fragments are
// stripped first: URLs differing only by fragment address the same page.
func (s *SeenSet) Add(url string) bool {
	if idx := strings.Index(url, "#"); idx != -1 {
		url = url[:idx]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.seen.TestAndAdd(url)
}

// Seen reports whether the URL has been recorded.
func (s *SeenSet) Seen(url string) bool {
	if idx := strings.Index(url, "#"); idx != -1 {
		url = url[:idx]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen.Test(url)
}
