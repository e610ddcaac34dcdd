// Package mock provides function-field mock implementations of the pagerow
// interfaces for testing.
package mock

import (
	"context"

	"github.com/pagerow/pagerow"
)

var _ pagerow.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagerow.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*pagerow.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagerow.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
