package pagerow

import "context"

// URLSource discovers page URLs for batch scraping.
// Implementations hide where the URLs come from (e.g., sitemap XML).
type URLSource interface {
	Discover(ctx context.Context, sourceURL string) ([]string, error)
}
