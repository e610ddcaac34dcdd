// Package crawl orchestrates batch scraping: it fetches pages, extracts
// content records, writes CSV output, and records run history, processing
// URLs concurrently with per-host rate limiting and fetch retries.
package crawl

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pagerow/pagerow"
	"github.com/pagerow/pagerow/bloom"
	"golang.org/x/sync/errgroup"
)

// Dedup filter sizing for input URL lists.
const (
	dedupExpectedURLs      = 10000
	dedupFalsePositiveRate = 0.001
)

// ProgressType identifies the outcome of a single URL.
type ProgressType int

// Progress event types.
const (
	// ProgressSaved means records were extracted and written to a file.
	ProgressSaved ProgressType = iota
	// ProgressEmpty means the page yielded no extractable content.
	// This is a valid outcome, not an error; no file is written.
	ProgressEmpty
	// ProgressFailed means fetching, extraction, or writing failed.
	ProgressFailed
)

// ProgressEvent reports the outcome of one URL during a batch run.
type ProgressEvent struct {
	Type       ProgressType
	URL        string
	OutputPath string
	Records    int
	Completed  int
	Total      int
	Error      error
}

// ProgressFunc is called as URLs complete. Calls are serialized.
type ProgressFunc func(ProgressEvent)

// Result summarizes a batch run.
type Result struct {
	Saved   int
	Empty   int
	Failed  int
	Records int
}

// Scraper coordinates fetching, extraction, and output for a batch of URLs.
// Fetcher, Extractor, and Writer are required; the rest are optional.
type Scraper struct {
	Fetcher   pagerow.Fetcher
	Extractor pagerow.Extractor
	Writer    pagerow.RecordWriter

	// Runs, when set, records a history entry for every saved page.
	Runs pagerow.RunService

	// Limiter, when set, paces requests per host.
	Limiter *HostLimiter

	// RetryDelays configures fetch retry backoff. Nil means DefaultRetryDelays.
	RetryDelays []time.Duration

	// Concurrency limits parallel URL processing. Values <= 0 mean 4.
	Concurrency int

	Logger *slog.Logger
}

// Run scrapes all URLs and returns a summary. Duplicate and blank input
// URLs are skipped. A failure on one URL never aborts the others; Run only
// returns an error when the context is canceled.
func (s *Scraper) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	unique := dedupe(urls)
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	var (
		mu        sync.Mutex
		result    Result
		completed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, pageURL := range unique {
		pageURL := pageURL
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			event := s.scrapeOne(gctx, pageURL, logger, delays)

			mu.Lock()
			completed++
			event.Completed = completed
			event.Total = len(unique)
			switch event.Type {
			case ProgressSaved:
				result.Saved++
				result.Records += event.Records
			case ProgressEmpty:
				result.Empty++
			case ProgressFailed:
				result.Failed++
			}
			if progress != nil {
				progress(event)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return &result, err
	}
	return &result, nil
}

// scrapeOne processes a single URL end to end. All failures are contained
// to the returned event.
func (s *Scraper) scrapeOne(ctx context.Context, pageURL string, logger *slog.Logger, delays []time.Duration) ProgressEvent {
	event := ProgressEvent{URL: pageURL}

	if err := s.Limiter.Wait(ctx, hostOf(pageURL)); err != nil {
		event.Type = ProgressFailed
		event.Error = err
		return event
	}

	fetched, err := FetchWithRetry(ctx, pageURL, s.Fetcher, logger, delays)
	if err != nil {
		logger.Warn("fetch failed", "url", pageURL, "err", err)
		event.Type = ProgressFailed
		event.Error = err
		return event
	}

	// The effective URL after redirects is the base for link resolution.
	records, err := s.Extractor.Extract(fetched.HTML, fetched.EffectiveURL)
	if err != nil {
		logger.Warn("extraction failed", "url", pageURL, "err", err)
		event.Type = ProgressFailed
		event.Error = err
		return event
	}

	if len(records) == 0 {
		logger.Info("no extractable content", "url", pageURL)
		event.Type = ProgressEmpty
		return event
	}

	path, err := s.Writer.WriteRecords(ctx, fetched.EffectiveURL, records)
	if err != nil {
		logger.Warn("write failed", "url", pageURL, "err", err)
		event.Type = ProgressFailed
		event.Error = err
		return event
	}

	if s.Runs != nil {
		run := &pagerow.Run{
			SourceURL:    pageURL,
			EffectiveURL: fetched.EffectiveURL,
			OutputPath:   path,
			RecordCount:  len(records),
			ContentHash:  hashContent(fetched.HTML),
		}
		if err := s.Runs.CreateRun(ctx, run); err != nil {
			// History is best-effort; the CSV file is already on disk.
			logger.Warn("failed to record run", "url", pageURL, "err", err)
		}
	}

	event.Type = ProgressSaved
	event.OutputPath = path
	event.Records = len(records)
	return event
}

// dedupe drops blank and repeated URLs while preserving input order.
func dedupe(urls []string) []string {
	seen := bloom.NewFilter(dedupExpectedURLs, dedupFalsePositiveRate)
	unique := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || seen.Seen(u) {
			continue
		}
		unique = append(unique, u)
	}
	return unique
}

// hostOf extracts the host for rate limiting. Scheme-less URLs are parsed
// the way the fetcher will fetch them.
func hostOf(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// hashContent computes the xxHash of page content as a hex string.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}
