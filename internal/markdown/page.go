// Package markdown renders talk records and listings as Markdown documents
// with YAML front matter.
//
// Every page has two regions. The notes block is owned by the site author and
// is carried over from the existing file on each regeneration. The
// auto-generated block is rewritten every time. Output is deterministic:
// identical input produces byte-identical files.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/alnah/go-talksite/internal/yamlutil"
)

// Block markers.
const (
	AutoStart  = "<!-- AUTO-GENERATED START -->"
	AutoEnd    = "<!-- AUTO-GENERATED END -->"
	NotesStart = "<!-- NOTES START (you can edit freely) -->"
	NotesEnd   = "<!-- NOTES END -->"
)

// DefaultNotes fills the notes block of a page written for the first time.
const DefaultNotes = "(Add your notes here. This block will be preserved when regenerating.)"

var notesBlock = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(NotesStart) + `(.*?)` + regexp.QuoteMeta(NotesEnd))

// Page is one generated document.
type Page struct {
	// Path is slash-separated and relative to the content root,
	// e.g. "T1/index.md".
	Path  string
	Front FrontMatter
	// Body is the content of the auto-generated block.
	Body string
}

// HTMLPath maps the page to its output path: "x/index.md" becomes
// "x/index.html".
func (p Page) HTMLPath() string {
	return HTMLPath(p.Path)
}

// HTMLPath replaces a trailing ".md" with ".html".
func HTMLPath(mdPath string) string {
	return strings.TrimSuffix(mdPath, ".md") + ".html"
}

// ExtractNotes returns the text between the notes markers of an existing
// page. ok is false when the page is empty or the markers were removed.
func ExtractNotes(existing []byte) (notes string, ok bool) {
	m := notesBlock.FindSubmatch(existing)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}

// Render writes the page. Notes found in existing are kept verbatim;
// otherwise the default notes are used.
func Render(p Page, existing []byte) ([]byte, error) {
	front, err := yamlutil.MarshalFrontMatter(p.Front)
	if err != nil {
		return nil, err
	}

	notes, ok := ExtractNotes(existing)
	if !ok {
		notes = "\n" + DefaultNotes + "\n"
	}

	var buf bytes.Buffer
	buf.Write(front)
	buf.WriteString(NotesStart)
	buf.WriteString(notes)
	buf.WriteString(NotesEnd)
	buf.WriteString("\n\n")
	buf.WriteString(AutoStart)
	buf.WriteString("\n")
	buf.WriteString(strings.TrimRight(p.Body, "\n"))
	buf.WriteString("\n")
	buf.WriteString(AutoEnd)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}
