package goquery_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/pagerow/pagerow"
	pagerowgoquery "github.com/pagerow/pagerow/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestExtract_EndToEnd(t *testing.T) {
	t.Parallel()

	e := pagerowgoquery.NewExtractor(nil)

	doc := `<body><h1>Title</h1><p>Intro <a href="/x">link</a></p><div>Stray text</div></body>`
	records, err := e.Extract(doc, "https://ex.com/")

	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, pagerow.Record{Kind: pagerow.KindHeading1, Text: "Title"}, records[0])
	// The nested <a> is consumed into the paragraph's text and never
	// classified as a separate link.
	assert.Equal(t, pagerow.Record{Kind: pagerow.KindParagraph, Text: "Intro link"}, records[1])
	assert.Equal(t, pagerow.Record{Kind: pagerow.KindTextChunk, Text: "Stray text"}, records[2])
}

func TestExtract_WhitespaceNormalization(t *testing.T) {
	t.Parallel()

	e := pagerowgoquery.NewExtractor(nil)

	records, err := e.Extract("<body><p>  Hello\n\tworld  </p></body>", "https://ex.com/")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Hello world", records[0].Text)
}

func TestExtract_Headings(t *testing.T) {
	t.Parallel()

	e := pagerowgoquery.NewExtractor(nil)

	records, err := e.Extract("<body><h2>Two</h2><h6>Six</h6><h3>  </h3></body>", "https://ex.com/")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, pagerow.KindHeading2, records[0].Kind)
	assert.Equal(t, "Two", records[0].Text)
	assert.Equal(t, pagerow.KindHeading6, records[1].Kind)
	assert.Equal(t, "Six", records[1].Text)
}

func TestExtract_Links(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative href against base", func(t *testing.T) {
		t.Parallel()

		e := pagerowgoquery.NewExtractor(nil)
		records, err := e.Extract(`<body><a href="b.png">Pic</a></body>`, "https://example.com/a/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, pagerow.KindLink, records[0].Kind)
		assert.Equal(t, "Pic", records[0].Text)
		assert.Equal(t, "https://example.com/a/b.png", records[0].URL)
	})

	t.Run("text falls back to title attribute", func(t *testing.T) {
		t.Parallel()

		e := pagerowgoquery.NewExtractor(nil)
		records, err := e.Extract(`<body><a href="/x" title=" The  Title "></a></body>`, "https://ex.com/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "The Title", records[0].Text)
		assert.Equal(t, "https://ex.com/x", records[0].URL)
	})

	t.Run("text falls back to resolved URL", func(t *testing.T) {
		t.Parallel()

		e := pagerowgoquery.NewExtractor(nil)
		records, err := e.Extract(`<body><a href="/x"></a></body>`, "https://ex.com/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "https://ex.com/x", records[0].Text)
		assert.Equal(t, "https://ex.com/x", records[0].URL)
	})

	t.Run("anchor without href is skipped, text stays suppressed", func(t *testing.T) {
		t.Parallel()

		e := pagerowgoquery.NewExtractor(nil)
		records, err := e.Extract(`<body><div><a>no destination</a></div></body>`, "https://ex.com/")

		require.NoError(t, err)
		// Text inside a primary element is never reported as a text chunk,
		// even when its element produced no record.
		assert.Empty(t, records)
	})

	t.Run("malformed reference falls back to raw value with warning", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		e := pagerowgoquery.NewExtractor(logger)
		records, err := e.Extract(`<body><a href="%zz">bad</a><p>after</p></body>`, "https://ex.com/")

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "%zz", records[0].URL)
		assert.Equal(t, pagerow.KindParagraph, records[1].Kind)
		assert.Contains(t, buf.String(), "could not resolve reference")
	})

	t.Run("invalid base URL leaves references unresolved", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		e := pagerowgoquery.NewExtractor(logger)
		records, err := e.Extract(`<body><a href="/x">link</a></body>`, "://bad")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "/x", records[0].URL)
		assert.Contains(t, buf.String(), "invalid base URL")
	})
}

func TestExtract_Images(t *testing.T) {
	t.Parallel()

	t.Run("prefers data-src over src", func(t *testing.T) {
		t.Parallel()

		e := pagerowgoquery.NewExtractor(nil)
		records, err := e.Extract(
			`<body><img data-src="/lazy.png" src="/eager.png" alt=" a  cat "></body>`,
			"https://ex.com/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, pagerow.KindImage, records[0].Kind)
		assert.Equal(t, "https://ex.com/lazy.png", records[0].URL)
		assert.Equal(t, "a cat", records[0].Text)
	})

	t.Run("alt defaults to empty", func(t *testing.T) {
		t.Parallel()

		e := pagerowgoquery.NewExtractor(nil)
		records, err := e.Extract(`<body><img src="b.png"></body>`, "https://example.com/a/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "https://example.com/a/b.png", records[0].URL)
		assert.Empty(t, records[0].Text)
	})

	t.Run("img without any source is skipped", func(t *testing.T) {
		t.Parallel()

		e := pagerowgoquery.NewExtractor(nil)
		records, err := e.Extract(`<body><img alt="nothing"></body>`, "https://ex.com/")

		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestExtract_TableCells(t *testing.T) {
	t.Parallel()

	e := pagerowgoquery.NewExtractor(nil)
	records, err := e.Extract(
		`<body><table><tr><th>Name</th><th>Age</th></tr><tr><td>Ada</td><td>36</td></tr></table></body>`,
		"https://ex.com/")

	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, pagerow.Record{Kind: pagerow.KindTableHeader, Text: "Name"}, records[0])
	assert.Equal(t, pagerow.Record{Kind: pagerow.KindTableHeader, Text: "Age"}, records[1])
	assert.Equal(t, pagerow.Record{Kind: pagerow.KindTableData, Text: "Ada"}, records[2])
	assert.Equal(t, pagerow.Record{Kind: pagerow.KindTableData, Text: "36"}, records[3])
}

func TestExtract_NestedPrimaryConsumption(t *testing.T) {
	t.Parallel()

	t.Run("paragraph inside link is consumed by the link", func(t *testing.T) {
		t.Parallel()

		e := pagerowgoquery.NewExtractor(nil)
		records, err := e.Extract(`<body><a href="/x"><p>wrapped</p></a></body>`, "https://ex.com/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, pagerow.KindLink, records[0].Kind)
		assert.Equal(t, "wrapped", records[0].Text)
	})

	t.Run("list items inside a classified list item are not duplicated", func(t *testing.T) {
		t.Parallel()

		e := pagerowgoquery.NewExtractor(nil)
		records, err := e.Extract(
			`<body><ul><li>outer <ul><li>inner</li></ul></li></ul></body>`,
			"https://ex.com/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, pagerow.KindListItem, records[0].Kind)
		assert.Equal(t, "outer inner", records[0].Text)
	})
}

func TestExtract_OrphanTextRecovery(t *testing.T) {
	t.Parallel()

	t.Run("recovers text from generic containers", func(t *testing.T) {
		t.Parallel()

		e := pagerowgoquery.NewExtractor(nil)
		records, err := e.Extract(
			`<body><div>first</div><section><span>second</span></section></body>`,
			"https://ex.com/")

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, pagerow.Record{Kind: pagerow.KindTextChunk, Text: "first"}, records[0])
		assert.Equal(t, pagerow.Record{Kind: pagerow.KindTextChunk, Text: "second"}, records[1])
	})

	t.Run("recovered chunks follow classified records, never interleaved", func(t *testing.T) {
		t.Parallel()

		e := pagerowgoquery.NewExtractor(nil)
		records, err := e.Extract(
			`<body><div>before</div><h1>Title</h1><div>after</div></body>`,
			"https://ex.com/")

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, pagerow.KindHeading1, records[0].Kind)
		assert.Equal(t, "before", records[1].Text)
		assert.Equal(t, "after", records[2].Text)
	})

	t.Run("ignores script and style text", func(t *testing.T) {
		t.Parallel()

		e := pagerowgoquery.NewExtractor(nil)
		records, err := e.Extract(
			`<body><script>var x = 1;</script><style>p { color: red }</style><div>real</div></body>`,
			"https://ex.com/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "real", records[0].Text)
	})

	t.Run("text consumed by classification is not recovered", func(t *testing.T) {
		t.Parallel()

		e := pagerowgoquery.NewExtractor(nil)
		records, err := e.Extract(
			`<body><p>para <span>deep</span></p></body>`,
			"https://ex.com/")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, pagerow.KindParagraph, records[0].Kind)
		assert.Equal(t, "para deep", records[0].Text)
	})
}

func TestExtract_Idempotence(t *testing.T) {
	t.Parallel()

	e := pagerowgoquery.NewExtractor(nil)
	doc := `<body><h1>Title</h1><p>Intro <a href="/x">link</a></p><div>Stray</div>
<table><tr><td>cell</td></tr></table><img src="/i.png" alt="pic"></body>`

	first, err := e.Extract(doc, "https://ex.com/")
	require.NoError(t, err)
	second, err := e.Extract(doc, "https://ex.com/")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtract_EmptyDocument(t *testing.T) {
	t.Parallel()

	e := pagerowgoquery.NewExtractor(nil)
	records, err := e.Extract("", "https://ex.com/")

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtractDocument_NoBody(t *testing.T) {
	t.Parallel()

	// Build a fragment without a body context: <div><h1>Hi</h1>loose</div>.
	text := &html.Node{Type: html.TextNode, Data: "loose"}
	headingText := &html.Node{Type: html.TextNode, Data: "Hi"}
	heading := &html.Node{Type: html.ElementNode, Data: "h1"}
	heading.AppendChild(headingText)
	div := &html.Node{Type: html.ElementNode, Data: "div"}
	div.AppendChild(heading)
	div.AppendChild(text)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := pagerowgoquery.NewExtractor(logger)
	records, err := e.ExtractDocument(gq.NewDocumentFromNode(div), "https://ex.com/")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, pagerow.Record{Kind: pagerow.KindHeading1, Text: "Hi"}, records[0])
	assert.Equal(t, pagerow.Record{Kind: pagerow.KindTextChunk, Text: "loose"}, records[1])
	assert.Contains(t, buf.String(), "no body element found")
}

func TestExtract_NoDuplicationInvariant(t *testing.T) {
	t.Parallel()

	e := pagerowgoquery.NewExtractor(nil)
	doc := `<body>
<p>alpha <a href="/a">beta</a> <img src="/c.png" alt="gamma"></p>
<ul><li>delta <a href="/e">epsilon</a></li></ul>
</body>`

	records, err := e.Extract(doc, "https://ex.com/")
	require.NoError(t, err)

	// Each text fragment appears in exactly one record.
	var all []string
	for _, r := range records {
		all = append(all, string(r.Kind)+":"+r.Text)
	}
	joined := strings.Join(all, "\n")
	assert.Equal(t, 1, strings.Count(joined, "beta"))
	assert.Equal(t, 1, strings.Count(joined, "epsilon"))
	require.Len(t, records, 2)
	assert.Equal(t, pagerow.KindParagraph, records[0].Kind)
	assert.Equal(t, pagerow.KindListItem, records[1].Kind)
}
