package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pagerow/pagerow/crawl"
	"github.com/pagerow/pagerow/fs"
	"github.com/pagerow/pagerow/goquery"
	pagehttp "github.com/pagerow/pagerow/http"
	"github.com/pagerow/pagerow/rod"
	pageslog "github.com/pagerow/pagerow/slog"
	"github.com/pagerow/pagerow/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagerow"),
		kong.Description("Extract structured content from web pages into CSV files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	db := sqlite.NewDB(cli.DB)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open run history database: %w", err)
	}
	defer db.Close()
	deps.Runs = sqlite.NewRunService(db)

	if strings.HasPrefix(kctx.Command(), "scrape") {
		if err := m.wireScrape(deps, cli); err != nil {
			return err
		}
		if deps.Fetcher != nil {
			defer deps.Fetcher.Close()
		}
	}

	return kctx.Run(deps)
}

// wireScrape builds the fetch and extraction pipeline from the scrape flags.
func (m *Main) wireScrape(deps *Dependencies, cli *CLI) error {
	if cli.Scrape.Render {
		rodFetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		deps.Fetcher = rodFetcher
	} else {
		deps.Fetcher = pagehttp.NewFetcher(
			pagehttp.WithTimeout(cli.Scrape.Timeout),
			pagehttp.WithLogger(deps.Logger),
		)
	}
	deps.Fetcher = pageslog.NewLoggingFetcher(deps.Fetcher, deps.Logger)

	deps.Extractor = pageslog.NewLoggingExtractor(goquery.NewExtractor(deps.Logger), deps.Logger)
	deps.Writer = fs.NewWriter(cli.Scrape.Out)
	deps.Source = pagehttp.NewSitemapSource(nil)
	deps.Limiter = crawl.NewHostLimiter(cli.Scrape.RPS)

	return nil
}
