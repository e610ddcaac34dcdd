package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/pagerow/pagerow"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches a URL, retrying with the given backoff delays on
// failure (one initial attempt plus one retry per delay). Retry attempts are
// reported through logger. Retrying lives here, on the fetch side; record
// extraction itself is never retried.
func FetchWithRetry(ctx context.Context, url string, fetcher pagerow.Fetcher, logger *slog.Logger, delays []time.Duration) (*pagerow.FetchResult, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger.Warn("fetch failed, retrying",
				"url", url,
				"attempt", attempt+2,
				"err", err,
			)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
