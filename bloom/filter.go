// Package bloom provides the probabilistic URL set behind input
// deduplication. A crawl may receive hundreds of thousands of archive
// page URLs; the filter answers "seen before?" in constant space, at
// the cost of occasional false positives (a duplicate is dropped that
// was not one). False negatives never happen, so no URL is ever
// crawled twice.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a Bloom filter over URLs.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether the URL may have been recorded. False positives
// are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd records a URL and reports whether it may have been
// recorded before, in a single pass over the filter bits.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of distinct URLs
// recorded.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
