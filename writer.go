package pagerow

import "context"

// RecordWriter persists extracted records for a single source page.
type RecordWriter interface {
	// WriteRecords writes the records extracted from sourceURL and returns
	// the path of the written file.
	WriteRecords(ctx context.Context, sourceURL string, records []Record) (path string, err error)
}
