package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/pagerow/pagerow"
	"github.com/pagerow/pagerow/crawl"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable verbose logging"`
	DB      string `env:"PAGEROW_DB" default:"pagerow.db" help:"Path to the run history database"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape URLs and save extracted records to CSV files"`
	Runs   RunsCmd   `cmd:"" help:"List past scrape runs"`
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher   pagerow.Fetcher
	Extractor pagerow.Extractor
	Writer    pagerow.RecordWriter
	Source    pagerow.URLSource
	Runs      pagerow.RunService
	Limiter   *crawl.HostLimiter

	// RetryDelays overrides the scraper's fetch retry backoff. Nil keeps
	// the default schedule.
	RetryDelays []time.Duration
}

// ScrapeCmd handles the main scrape operation.
type ScrapeCmd struct {
	URLs        []string      `arg:"" optional:"" help:"URLs to scrape"`
	File        string        `short:"f" help:"Read URLs from a file (plain text, CSV with a url column, or NDJSON)"`
	Sitemap     string        `short:"s" help:"Discover URLs from a sitemap"`
	Out         string        `short:"o" default:"scraped" help:"Output directory for CSV files"`
	Render      bool          `help:"Render pages in a headless browser before extraction"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64       `default:"1" help:"Maximum requests per second per host"`
	Timeout     time.Duration `short:"t" default:"15s" help:"Fetch timeout per page"`
}

// RunsCmd lists recorded scrape runs.
type RunsCmd struct {
	Source string `help:"Only show runs for this source URL"`
	Limit  int    `default:"20" help:"Maximum number of runs to show"`
}
