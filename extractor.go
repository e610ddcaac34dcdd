package pagerow

// Extractor converts an HTML document into a flat, ordered sequence of
// content records.
type Extractor interface {
	// Extract parses rawHTML and returns records in document order:
	// classified elements first, then recovered text chunks. Link and image
	// URLs are resolved against baseURL.
	//
	// A document that parses but contains no extractable content yields an
	// empty result and a nil error. A parse failure returns an EINVALID
	// error and no records.
	Extract(rawHTML string, baseURL string) ([]Record, error)
}
