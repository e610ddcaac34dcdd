package pagerow

import (
	"context"
	"time"
)

// Run records one completed scrape of a single page.
type Run struct {
	ID           string    `json:"id"`
	SourceURL    string    `json:"sourceUrl"`
	EffectiveURL string    `json:"effectiveUrl"`
	OutputPath   string    `json:"outputPath"`
	RecordCount  int       `json:"recordCount"`
	ContentHash  string    `json:"contentHash"`
	FetchedAt    time.Time `json:"fetchedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "run source URL required")
	}
	return nil
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunService represents a service for recording and querying scrape history.
type RunService interface {
	// CreateRun records a completed scrape.
	CreateRun(ctx context.Context, run *Run) error

	// FindRuns retrieves runs matching the filter, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}
