package markdown

import (
	"regexp"
	"strings"
)

// markdownSpecial lists the characters that are backslash-escaped in record
// text. '$' and '&' are included because Pandoc reads dollar math and both
// converters decode entity references; '=' guards ==highlight== and setext
// underlines.
const markdownSpecial = "\\`*_[]<>#|~$&="

var (
	orderedMarker = regexp.MustCompile(`^(\d{1,9})([.)])(\s|$)`)
	linkReplacer  = strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29", "<", "%3C", ">", "%3E")
)

// EscapeInline escapes s so it renders as literal text inside a Markdown
// paragraph.
func EscapeInline(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune(markdownSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EscapeText escapes multi-line text. Inline markup characters and leading
// block markers are escaped, single line breaks become hard breaks and blank
// lines still separate paragraphs.
func EscapeText(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = escapeLine(line)
	}
	for i := 0; i < len(lines)-1; i++ {
		if lines[i] != "" && lines[i+1] != "" {
			lines[i] += "\\"
		}
	}
	return strings.Join(lines, "\n")
}

func escapeLine(line string) string {
	line = EscapeInline(line)
	if line == "" {
		return line
	}
	switch line[0] {
	case '-', '+':
		return "\\" + line
	}
	if m := orderedMarker.FindStringSubmatchIndex(line); m != nil {
		// "1. x" would start a list; escape the delimiter.
		return line[:m[4]] + "\\" + line[m[4]:]
	}
	return line
}

// linkDest makes a validated URL safe as a Markdown link destination.
func linkDest(url string) string {
	return linkReplacer.Replace(url)
}

// link renders [label](url), or the escaped label when url is empty.
func link(label, url string) string {
	if url == "" {
		return EscapeInline(label)
	}
	return "[" + EscapeInline(label) + "](" + linkDest(url) + ")"
}
