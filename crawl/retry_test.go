package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pagerow/pagerow"
	"github.com/pagerow/pagerow/crawl"
	"github.com/pagerow/pagerow/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*pagerow.FetchResult, error) {
				calls++
				return &pagerow.FetchResult{HTML: "ok", EffectiveURL: url}, nil
			},
		}

		result, err := crawl.FetchWithRetry(context.Background(), "https://a.com", fetcher, nil, crawl.DefaultRetryDelays())

		require.NoError(t, err)
		assert.Equal(t, "ok", result.HTML)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*pagerow.FetchResult, error) {
				calls++
				if calls < 3 {
					return nil, errors.New("transient")
				}
				return &pagerow.FetchResult{HTML: "ok", EffectiveURL: url}, nil
			},
		}

		result, err := crawl.FetchWithRetry(context.Background(), "https://a.com", fetcher, nil,
			[]time.Duration{0, 0, 0})

		require.NoError(t, err)
		assert.Equal(t, "ok", result.HTML)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		wantErr := errors.New("permanent")
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*pagerow.FetchResult, error) {
				calls++
				return nil, wantErr
			},
		}

		_, err := crawl.FetchWithRetry(context.Background(), "https://a.com", fetcher, nil,
			[]time.Duration{0, 0})

		require.Error(t, err)
		assert.Equal(t, wantErr, err)
		assert.Equal(t, 3, calls) // 1 initial + 2 retries
	})

	t.Run("no delays means a single attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*pagerow.FetchResult, error) {
				calls++
				return nil, errors.New("boom")
			},
		}

		_, err := crawl.FetchWithRetry(context.Background(), "https://a.com", fetcher, nil, nil)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled context stops retrying", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*pagerow.FetchResult, error) {
				cancel()
				return nil, errors.New("boom")
			},
		}

		_, err := crawl.FetchWithRetry(ctx, "https://a.com", fetcher, nil,
			[]time.Duration{time.Hour})

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
