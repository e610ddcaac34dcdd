package main

import (
	"fmt"
	"net/url"

	"github.com/pagerow/pagerow"
	"github.com/pagerow/pagerow/crawl"
	"github.com/pagerow/pagerow/fs"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	urls, err := c.collectURLs(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagerow.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs to scrape: pass URLs as arguments or use --file or --sitemap")
	}

	fmt.Fprintf(deps.Stdout, "Scraping %d URLs\n", len(urls))

	scraper := &crawl.Scraper{
		Fetcher:     deps.Fetcher,
		Extractor:   deps.Extractor,
		Writer:      deps.Writer,
		Runs:        deps.Runs,
		Limiter:     deps.Limiter,
		RetryDelays: deps.RetryDelays,
		Concurrency: c.Concurrency,
		Logger:      deps.Logger,
	}

	progress := func(p crawl.ProgressEvent) {
		switch p.Type {
		case crawl.ProgressSaved:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s -> %s (%d records)\n",
				p.Completed, p.Total, truncateURL(p.URL, 60), p.OutputPath, p.Records)
		case crawl.ProgressEmpty:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s: no content\n",
				p.Completed, p.Total, truncateURL(p.URL, 60))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] skip %s: %v\n",
				p.Completed, p.Total, truncateURL(p.URL, 60), p.Error)
		}
	}

	result, err := scraper.Run(deps.Ctx, urls, progress)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages (%d records), %d empty, %d failed\n",
		result.Saved, result.Records, result.Empty, result.Failed)

	if result.Saved == 0 && result.Failed > 0 {
		return fmt.Errorf("all URLs failed")
	}
	return nil
}

// collectURLs assembles the input URL list from arguments, an input file,
// and sitemap discovery, in that order.
func (c *ScrapeCmd) collectURLs(deps *Dependencies) ([]string, error) {
	urls := append([]string(nil), c.URLs...)

	if c.File != "" {
		fromFile, err := fs.ReadURLList(c.File)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fromFile...)
	}

	if c.Sitemap != "" {
		discovered, err := deps.Source.Discover(deps.Ctx, c.Sitemap)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(deps.Stdout, "Found %d URLs in sitemap\n", len(discovered))
		urls = append(urls, discovered...)
	}

	return urls, nil
}

// truncateURL shortens a URL for display by showing only the path.
func truncateURL(rawURL string, maxLen int) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Path == "" {
		if len(rawURL) <= maxLen {
			return rawURL
		}
		return rawURL[:maxLen-3] + "..."
	}

	path := parsed.Host + parsed.Path
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}
