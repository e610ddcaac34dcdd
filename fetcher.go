package pagerow

import "context"

// FetchResult holds the body of a fetched page along with the URL that
// actually served it after any redirects.
type FetchResult struct {
	HTML         string
	EffectiveURL string
}

// Fetcher retrieves HTML pages from URLs.
// Implementations may use plain HTTP or browser automation for
// JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the page at url. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
