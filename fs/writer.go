// Package fs provides file-based output for extracted records.
package fs

import (
	"context"
	"encoding/csv"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pagerow/pagerow"
)

// maxFilenameLen caps the stem derived from a URL before the .csv suffix.
const maxFilenameLen = 100

var (
	schemeRe      = regexp.MustCompile(`^https?://`)
	wwwRe         = regexp.MustCompile(`^www\.`)
	invalidCharRe = regexp.MustCompile(`[\\/*?:"<>|]+`)
)

// Filename derives a safe CSV filename from a page URL.
// Example: https://www.example.com/docs/api → example.com_docs_api.csv
func Filename(rawURL string) string {
	if rawURL == "" {
		return "scraped_data_invalid_url.csv"
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		// Unparseable URL: sanitize whatever follows the scheme separator.
		part := rawURL
		if idx := strings.Index(part, "//"); idx != -1 {
			part = part[idx+2:]
		}
		safe := invalidCharRe.ReplaceAllString(part, "_")
		if len(safe) > maxFilenameLen {
			safe = safe[:maxFilenameLen]
		}
		return safe + ".csv"
	}

	name := u.Host + u.Path
	name = schemeRe.ReplaceAllString(name, "")
	name = wwwRe.ReplaceAllString(name, "")
	name = invalidCharRe.ReplaceAllString(name, "_")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.Trim(name, "_.")
	if len(name) > maxFilenameLen {
		name = name[:maxFilenameLen] + "..."
	}
	if name == "" {
		name = "scraped_data"
	}
	return name + ".csv"
}

// csvHeader is the column layout for record files.
var csvHeader = []string{"type", "text", "url"}

// Ensure Writer implements pagerow.RecordWriter at compile time.
var _ pagerow.RecordWriter = (*Writer)(nil)

// Writer writes extracted records as CSV files in a directory, one file per
// source page with the filename derived from the page URL.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes into baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteRecords writes the records for sourceURL and returns the file path.
// An existing file for the same URL is overwritten.
func (w *Writer) WriteRecords(ctx context.Context, sourceURL string, records []pagerow.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(w.baseDir, Filename(sourceURL))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		f.Close()
		return "", err
	}
	for _, r := range records {
		if err := cw.Write([]string{string(r.Kind), r.Text, r.URL}); err != nil {
			f.Close()
			return "", err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
