// Package bloom provides approximate seen-URL tracking using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks URLs that have already been scheduled for scraping.
// False positives are possible (a new URL may rarely be reported as seen);
// false negatives are not.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen records the URL and reports whether it was already present.
func (f *Filter) Seen(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of URLs recorded.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
