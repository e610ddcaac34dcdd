// Package goquery implements content-record extraction over parsed HTML
// documents. Extraction runs in two passes: a classification pass over a
// fixed set of primary tags, then a recovery pass that picks up orphan text
// living in generic containers.
package goquery

import (
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagerow/pagerow"
	"golang.org/x/net/html"
)

// primarySelector enumerates every element eligible for direct
// classification, in document order.
const primarySelector = "h1,h2,h3,h4,h5,h6,p,li,a,img,th,td"

// primaryTags mirrors primarySelector for tag-name lookups during the
// recovery pass.
var primaryTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "li": true, "a": true, "img": true, "th": true, "td": true,
}

// nonContentContainers are tags whose direct text is markup or metadata,
// never page content. Text found directly under them is ignored by the
// recovery pass.
var nonContentContainers = map[string]bool{
	"script": true, "style": true, "noscript": true, "meta": true,
	"link": true, "title": true, "head": true, "html": true, "body": true,
}

// Ensure Extractor implements pagerow.Extractor at compile time.
var _ pagerow.Extractor = (*Extractor)(nil)

// Extractor extracts typed content records from HTML documents.
// It is stateless and safe for concurrent use; each extraction owns its
// consumed-node set.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates a new Extractor. Warnings (malformed URLs, missing
// body) are reported through logger; a nil logger discards them.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{logger: logger}
}

// Extract parses rawHTML and returns content records in document order:
// classified elements first, then recovered text chunks.
func (e *Extractor) Extract(rawHTML string, baseURL string) ([]pagerow.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pagerow.Errorf(pagerow.EINVALID, "failed to parse HTML: %v", err)
	}
	return e.ExtractDocument(doc, baseURL)
}

// ExtractDocument extracts records from an already-parsed document.
// Extraction roots at the body element when present; otherwise it degrades
// to the document root with a logged warning.
func (e *Extractor) ExtractDocument(doc *goquery.Document, baseURL string) ([]pagerow.Record, error) {
	root := doc.Selection
	if body := doc.Find("body").First(); body.Length() > 0 {
		root = body
	} else {
		e.logger.Warn("no body element found, extracting from document root")
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		e.logger.Warn("invalid base URL, references will not be resolved",
			"base", baseURL, "err", err)
		base = nil
	}

	// Owned exclusively by this call. Membership only grows: a consumed
	// node is never unconsumed within a run.
	consumed := make(map[*html.Node]bool)

	records := e.classify(root, base, consumed)
	records = append(records, e.recoverText(root, consumed)...)
	return records, nil
}

// classify visits every primary element under root in document order and
// converts each into at most one record. When an element yields a record,
// the element and its entire subtree are marked consumed so nested primary
// elements (an <a> inside an already-classified <p>) are never reported
// again.
func (e *Extractor) classify(root *goquery.Selection, base *url.URL, consumed map[*html.Node]bool) []pagerow.Record {
	var records []pagerow.Record

	root.Find(primarySelector).Each(func(_ int, sel *goquery.Selection) {
		node := sel.Nodes[0]
		if consumed[node] {
			return
		}

		record, ok := e.classifyElement(sel, node.Data, base)
		if !ok {
			// No record: the element stays unconsumed so its text remains
			// visible to later passes.
			return
		}

		records = append(records, record)
		consume(node, consumed)
	})

	return records
}

// classifyElement applies the per-tag classification rules. The boolean
// result reports whether the element produced a record.
func (e *Extractor) classifyElement(sel *goquery.Selection, tag string, base *url.URL) (pagerow.Record, bool) {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if text := cleanText(sel.Text()); text != "" {
			return pagerow.Record{Kind: pagerow.HeadingKind(int(tag[1] - '0')), Text: text}, true
		}

	case "p":
		if text := cleanText(sel.Text()); text != "" {
			return pagerow.Record{Kind: pagerow.KindParagraph, Text: text}, true
		}

	case "li":
		if text := cleanText(sel.Text()); text != "" {
			return pagerow.Record{Kind: pagerow.KindListItem, Text: text}, true
		}

	case "a":
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return pagerow.Record{}, false
		}
		resolved := e.resolveRef(base, href)
		text := cleanText(sel.Text())
		if text == "" {
			text = cleanText(sel.AttrOr("title", ""))
		}
		if text == "" {
			text = resolved
		}
		return pagerow.Record{Kind: pagerow.KindLink, Text: text, URL: resolved}, true

	case "img":
		src := sel.AttrOr("data-src", "")
		if src == "" {
			src = sel.AttrOr("src", "")
		}
		if src == "" {
			return pagerow.Record{}, false
		}
		return pagerow.Record{
			Kind: pagerow.KindImage,
			Text: cleanText(sel.AttrOr("alt", "")),
			URL:  e.resolveRef(base, src),
		}, true

	case "th":
		if text := cleanText(sel.Text()); text != "" {
			return pagerow.Record{Kind: pagerow.KindTableHeader, Text: text}, true
		}

	case "td":
		if text := cleanText(sel.Text()); text != "" {
			return pagerow.Record{Kind: pagerow.KindTableData, Text: text}, true
		}
	}

	return pagerow.Record{}, false
}

// recoverText makes a second pass over all text nodes under root in document
// order and emits a text_chunk for any content not already represented by a
// classified record.
func (e *Extractor) recoverText(root *goquery.Selection, consumed map[*html.Node]bool) []pagerow.Record {
	var records []pagerow.Record

	for _, rootNode := range root.Nodes {
		visitTextNodes(rootNode, func(n *html.Node) {
			if consumed[n] {
				return
			}

			parent := n.Parent
			if parent != nil && parent.Type == html.ElementNode && nonContentContainers[parent.Data] {
				consumed[n] = true
				return
			}

			text := cleanText(n.Data)
			if text == "" {
				consumed[n] = true
				return
			}

			// Content owned by a classified record, or inside a primary
			// element that the classification pass already had its chance
			// at, is not re-emitted.
			if parent != nil && parent.Type == html.ElementNode && (consumed[parent] || primaryTags[parent.Data]) {
				return
			}

			records = append(records, pagerow.Record{Kind: pagerow.KindTextChunk, Text: text})
			consumed[n] = true
		})
	}

	return records
}

// resolveRef resolves a possibly-relative reference against the base URL.
// A reference that cannot be parsed falls back to its raw value with a
// logged warning; extraction never aborts over a bad URL.
func (e *Extractor) resolveRef(base *url.URL, ref string) string {
	if base == nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		e.logger.Warn("could not resolve reference, using raw value",
			"ref", ref, "base", base.String(), "err", err)
		return ref
	}
	return base.ResolveReference(parsed).String()
}

// consume marks n and every descendant node, elements and text alike, as
// already represented in the output.
func consume(n *html.Node, consumed map[*html.Node]bool) {
	consumed[n] = true
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		consume(c, consumed)
	}
}

// visitTextNodes calls fn for every text node in n's subtree, in document
// order.
func visitTextNodes(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.TextNode {
		fn(n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		visitTextNodes(c, fn)
	}
}

// cleanText collapses runs of whitespace (including newlines and tabs) to a
// single space and trims the ends.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
