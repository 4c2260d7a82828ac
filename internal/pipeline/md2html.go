package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"path"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-talksite/internal/markdown"
	"github.com/alnah/go-talksite/internal/yamlutil"
)

// Sentinel errors for HTML conversion.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrEmptyContent   = errors.New("markdown content cannot be empty")
	ErrLayoutParse    = errors.New("invalid page layout")
	ErrLayoutRender   = errors.New("page layout rendering failed")
)

// DefaultStylesheet is the stylesheet path relative to the site root.
const DefaultStylesheet = "assets/style.css"

// Highlight placeholders use Unicode Private Use Area characters, which pass
// through goldmark untouched and become <mark> tags afterwards.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	crlfOrCR         = regexp.MustCompile(`\r\n?`)
	highlightPattern = regexp.MustCompile(`==(\S(?:.*?\S)?)==`)
)

// HTMLConverter turns one Markdown document into a standalone HTML page.
type HTMLConverter interface {
	ToHTML(ctx context.Context, doc Document) (string, error)
}

// Document is one Markdown page to convert.
type Document struct {
	// Path is slash-separated and relative to the content root.
	Path   string
	Source []byte
}

// Root returns the relative path from the document's directory back to the
// site root, e.g. "../../" for "tags/ml/index.md".
func (d Document) Root() string {
	dir := path.Dir(path.Clean(d.Path))
	if dir == "." || dir == "/" {
		return ""
	}
	return strings.Repeat("../", strings.Count(dir, "/")+1)
}

// Site holds the values shared by every page of a build.
type Site struct {
	Title   string
	BaseURL string
	// Stylesheet is relative to the site root. Empty means DefaultStylesheet.
	Stylesheet string
}

// Prefix is prepended to site-wide links. The base URL is used verbatim when
// set; otherwise links are relative to the document.
func (s Site) Prefix(doc Document) string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	return doc.Root()
}

// StylesheetHref returns the stylesheet link for doc.
func (s Site) StylesheetHref(doc Document) string {
	sheet := s.Stylesheet
	if sheet == "" {
		sheet = DefaultStylesheet
	}
	return s.Prefix(doc) + sheet
}

// PageData is the value the layout template is executed with.
type PageData struct {
	Title      string
	SiteTitle  string
	Prefix     string
	Stylesheet string
	Layout     string
	Front      markdown.FrontMatter
	Content    template.HTML
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md     goldmark.Markdown
	layout *template.Template
	site   Site
}

// NewGoldmarkConverter parses layout and configures goldmark with GFM,
// footnotes and class-based syntax highlighting. Raw HTML is kept: listing
// pages embed generated fragments and record text is escaped when emitted.
func NewGoldmarkConverter(layout string, site Site) (*GoldmarkConverter, error) {
	tmpl, err := template.New("page").Parse(layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayoutParse, err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)
	return &GoldmarkConverter{md: md, layout: tmpl, site: site}, nil
}

// ToHTML converts doc to a standalone HTML5 document.
// Goldmark has no context support, so conversion runs in a goroutine and
// the caller's context is honored via select.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(bytes.TrimSpace(doc.Source)) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyContent, doc.Path)
	}

	front, body, err := markdown.ParseDocument(doc.Source)
	switch {
	case errors.Is(err, yamlutil.ErrNoFrontMatter):
		body = doc.Source
	case err != nil:
		return "", fmt.Errorf("%w: %s: %v", ErrHTMLConversion, doc.Path, err)
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(preprocess(string(body))), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %s: %v", ErrHTMLConversion, doc.Path, err)}
			return
		}
		out, err := c.render(doc, front, ConvertMarkPlaceholders(buf.String()))
		done <- result{html: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

func (c *GoldmarkConverter) render(doc Document, front markdown.FrontMatter, content string) (string, error) {
	title := front.Title
	if title == "" {
		title = c.site.Title
	}
	layout := front.Layout
	if layout == "" {
		layout = markdown.LayoutListing
	}

	data := PageData{
		Title:      title,
		SiteTitle:  c.site.Title,
		Prefix:     c.site.Prefix(doc),
		Stylesheet: c.site.StylesheetHref(doc),
		Layout:     layout,
		Front:      front,
		Content:    template.HTML(content), //nolint:gosec // goldmark output, record text escaped at emission
	}

	var buf bytes.Buffer
	if err := c.layout.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrLayoutRender, doc.Path, err)
	}
	return buf.String(), nil
}

// preprocess normalizes line endings and turns ==text== into highlight
// placeholders.
func preprocess(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")
	return highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}

// Compile-time interface check.
var _ HTMLConverter = (*GoldmarkConverter)(nil)
