package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pagerow/pagerow"
)

// Compile-time interface verification.
var _ pagerow.RunService = (*RunService)(nil)

// RunService implements pagerow.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records a completed scrape. The ID and fetch timestamp are
// assigned here.
func (s *RunService) CreateRun(ctx context.Context, run *pagerow.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.FetchedAt.IsZero() {
		run.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source_url, effective_url, output_path, record_count, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SourceURL, run.EffectiveURL, run.OutputPath, run.RecordCount,
		run.ContentHash, run.FetchedAt.Format(time.RFC3339))

	return err
}

// FindRuns retrieves runs matching the filter, most recent first.
func (s *RunService) FindRuns(ctx context.Context, filter pagerow.RunFilter) ([]*pagerow.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, source_url, effective_url, output_path, record_count, content_hash, fetched_at FROM runs WHERE 1=1`)

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY fetched_at DESC, id")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*pagerow.Run
	for rows.Next() {
		var run pagerow.Run
		var fetchedAt string
		if err := rows.Scan(&run.ID, &run.SourceURL, &run.EffectiveURL, &run.OutputPath,
			&run.RecordCount, &run.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}
		run.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
