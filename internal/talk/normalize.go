package talk

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-slug"
)

var (
	spaceRun     = regexp.MustCompile(`\s+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// fallbackSlug is used when a value has no sluggable characters.
const fallbackSlug = "item"

// Norm trims s and collapses every whitespace run to a single space.
func Norm(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// NormText is Norm for multi-line text: each line is normalized, line breaks
// survive, and runs of blank lines shrink to one.
func NormText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = Norm(line)
	}
	s = strings.Join(lines, "\n")
	s = blankLineRun.ReplaceAllString(s, "\n\n")
	return strings.Trim(s, "\n")
}

// Slug turns a label into a lowercase path segment.
func Slug(s string) string {
	out, err := slug.Normalize(Norm(s))
	if err != nil || out == "" {
		return fallbackSlug
	}
	return out
}

// Tags is an ordered set of lowercase tags. Order is first-seen, which is
// what pages display; lookups treat it as a set.
type Tags []string

// NormalizeTags splits a comma-separated cell, trims and lowercases each
// tag, drops empties and duplicates. It is idempotent.
func NormalizeTags(s string) Tags {
	var out Tags
	seen := map[string]bool{}
	for _, part := range strings.Split(s, ",") {
		tag := strings.ToLower(Norm(part))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// Has reports whether tag is in the set, case-insensitively.
func (t Tags) Has(tag string) bool {
	tag = strings.ToLower(Norm(tag))
	for _, have := range t {
		if have == tag {
			return true
		}
	}
	return false
}

// String joins the tags as they would appear in a CSV cell.
func (t Tags) String() string {
	return strings.Join(t, ", ")
}
