package slog

import (
	"log/slog"
	"time"

	"github.com/pagerow/pagerow"
)

// Ensure LoggingExtractor implements pagerow.Extractor.
var _ pagerow.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   pagerow.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagerow.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(rawHTML string, baseURL string) (records []pagerow.Record, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"base", baseURL,
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(rawHTML, baseURL)
}
