package http

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/pagerow/pagerow"
)

// maxSitemapDepth bounds sitemapindex recursion so a cyclic index cannot
// loop forever.
const maxSitemapDepth = 5

// Ensure SitemapSource implements pagerow.URLSource.
var _ pagerow.URLSource = (*SitemapSource)(nil)

// SitemapSource discovers page URLs from a sitemap XML document. Both
// <urlset> sitemaps and nested <sitemapindex> indexes are supported.
type SitemapSource struct {
	client *http.Client
}

// NewSitemapSource creates a new SitemapSource with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapSource(client *http.Client) *SitemapSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSource{client: client}
}

// Discover fetches the sitemap at sourceURL and returns the page URLs it
// lists, in sitemap order. Duplicate URLs are dropped.
func (s *SitemapSource) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	seen := make(map[string]bool)
	urls := []string{}
	if err := s.collect(ctx, sourceURL, seen, &urls, 0); err != nil {
		return nil, err
	}
	return urls, nil
}

func (s *SitemapSource) collect(ctx context.Context, sitemapURL string, seen map[string]bool, urls *[]string, depth int) error {
	if depth >= maxSitemapDepth {
		return pagerow.Errorf(pagerow.EINVALID, "sitemap index nesting exceeds %d levels", maxSitemapDepth)
	}
	if seen[sitemapURL] {
		return nil
	}
	seen[sitemapURL] = true

	body, err := s.fetch(ctx, sitemapURL)
	if err != nil {
		return err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return pagerow.Errorf(pagerow.EINVALID, "failed to parse sitemap XML from %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return pagerow.Errorf(pagerow.EINVALID, "sitemap %s has no root element", sitemapURL)
	}

	switch root.Tag {
	case "urlset":
		for _, urlEl := range root.SelectElements("url") {
			loc := urlEl.SelectElement("loc")
			if loc == nil {
				continue
			}
			u := trimmedText(loc)
			if u == "" || seen[u] {
				continue
			}
			seen[u] = true
			*urls = append(*urls, u)
		}
	case "sitemapindex":
		for _, smEl := range root.SelectElements("sitemap") {
			loc := smEl.SelectElement("loc")
			if loc == nil {
				continue
			}
			if u := trimmedText(loc); u != "" {
				if err := s.collect(ctx, u, seen, urls, depth+1); err != nil {
					return err
				}
			}
		}
	default:
		return pagerow.Errorf(pagerow.EINVALID, "unexpected sitemap root element <%s> in %s", root.Tag, sitemapURL)
	}

	return nil
}

func (s *SitemapSource) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pagerow.Errorf(pagerow.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	return io.ReadAll(resp.Body)
}

func trimmedText(el *etree.Element) string {
	return strings.TrimSpace(el.Text())
}
