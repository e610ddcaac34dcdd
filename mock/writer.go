package mock

import (
	"context"

	"github.com/pagerow/pagerow"
)

var _ pagerow.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of pagerow.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, sourceURL string, records []pagerow.Record) (string, error)
}

func (w *RecordWriter) WriteRecords(ctx context.Context, sourceURL string, records []pagerow.Record) (string, error) {
	return w.WriteRecordsFn(ctx, sourceURL, records)
}
