// Package bloom remembers extracted article URLs with a Bloom filter.
//
// A filter can be saved after a run and loaded by the next one so that
// articles already written are skipped. False positives skip a fresh URL
// at the configured rate; false negatives never happen.
package bloom

import (
	"io"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter is a concurrency-safe set of canonical article URLs.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Load reads a filter previously written with Save.
func Load(r io.Reader) (*Filter, error) {
	f := &bloom.BloomFilter{}
	if _, err := f.ReadFrom(r); err != nil {
		return nil, err
	}
	return &Filter{f: f}, nil
}

// Save writes the filter to w.
func (f *Filter) Save(w io.Writer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.f.WriteTo(w)
	return err
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(url)
}

// Test returns true if the URL might be in the filter.
func (f *Filter) Test(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(url)
}

// Seen adds url and reports whether it was (probably) present before.
// Concurrent callers racing on one URL see exactly one false.
func (f *Filter) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
