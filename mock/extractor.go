package mock

import "github.com/pagerow/pagerow"

var _ pagerow.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagerow.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML string, baseURL string) ([]pagerow.Record, error)
}

func (e *Extractor) Extract(rawHTML string, baseURL string) ([]pagerow.Record, error) {
	return e.ExtractFn(rawHTML, baseURL)
}
