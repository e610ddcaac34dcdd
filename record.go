package pagerow

import "fmt"

// RecordKind identifies the type of content a Record holds.
type RecordKind string

// Record kinds produced by extraction.
const (
	KindHeading1    RecordKind = "heading_h1"
	KindHeading2    RecordKind = "heading_h2"
	KindHeading3    RecordKind = "heading_h3"
	KindHeading4    RecordKind = "heading_h4"
	KindHeading5    RecordKind = "heading_h5"
	KindHeading6    RecordKind = "heading_h6"
	KindParagraph   RecordKind = "paragraph"
	KindListItem    RecordKind = "list_item"
	KindLink        RecordKind = "link"
	KindImage       RecordKind = "image"
	KindTableHeader RecordKind = "table_header"
	KindTableData   RecordKind = "table_data"
	KindTextChunk   RecordKind = "text_chunk"
)

// HeadingKind returns the record kind for a heading level between 1 and 6.
func HeadingKind(level int) RecordKind {
	return RecordKind(fmt.Sprintf("heading_h%d", level))
}

// Record is a single unit of extracted content. Records have no identity
// beyond their position in the output sequence.
//
// Text holds the cleaned text content for most kinds. For links it is the
// link text (falling back to the title attribute, then the resolved URL);
// for images it is the alt text, which may be empty.
//
// URL is set only for links (resolved href) and images (resolved source).
type Record struct {
	Kind RecordKind `json:"kind"`
	Text string     `json:"text"`
	URL  string     `json:"url,omitempty"`
}
