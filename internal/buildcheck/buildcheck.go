// Package buildcheck verifies a generated site after HTML conversion.
//
// Check never writes to the site directory. It confirms that every expected
// page exists and is non-empty and runs a single structural pass over each
// HTML file. Pages without a title or stylesheet link and a stylesheet
// without a dark mode query are errors. Missing stats bar, talk cards,
// world map, chip cloud or --bg variable are warnings.
package buildcheck

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrBuildCheck is returned by Report.Err when at least one error was found.
var ErrBuildCheck = errors.New("build check failed")

// Kind classifies an issue.
type Kind string

// Issue kinds. Only KindWarning does not fail a build.
const (
	KindMissing   Kind = "missing"
	KindEmpty     Kind = "empty"
	KindMalformed Kind = "malformed"
	KindWarning   Kind = "warning"
)

// Site paths checked beyond the expected list.
const (
	StylesheetPath = "assets/style.css"
	IndexPath      = "index.html"
	PastPath       = "past/index.html"
	TagsPath       = "tags/index.html"
)

// Issue is one problem found in the output directory.
type Issue struct {
	// Path is slash-separated and relative to the checked directory.
	Path   string
	Kind   Kind
	Detail string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Path, i.Kind, i.Detail)
}

// Report collects the issues of one Check run.
type Report struct {
	// Pages is the number of HTML files that went through the structural pass.
	Pages  int
	Issues []Issue
}

// Errors returns the issues that fail a build.
func (r Report) Errors() []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Kind != KindWarning {
			out = append(out, is)
		}
	}
	return out
}

// Warnings returns the advisory issues.
func (r Report) Warnings() []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Kind == KindWarning {
			out = append(out, is)
		}
	}
	return out
}

// OK reports whether no error was found. Warnings do not count.
func (r Report) OK() bool {
	return len(r.Errors()) == 0
}

// Err wraps ErrBuildCheck with the error lines, or returns nil.
func (r Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, len(errs))
	for i, is := range errs {
		lines[i] = is.String()
	}
	return fmt.Errorf("%w: %d error(s)\n%s", ErrBuildCheck, len(errs), strings.Join(lines, "\n"))
}

func (r *Report) add(path string, kind Kind, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Path: path, Kind: kind, Detail: fmt.Sprintf(format, args...)})
}

// Check inspects dir. expected holds slash-separated paths relative to dir
// that must exist as non-empty files.
func Check(dir string, expected []string) Report {
	var r Report

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		r.add(".", KindMissing, "output directory %s not found", dir)
		return r
	}

	for _, rel := range expected {
		checkExpected(&r, dir, rel)
	}

	pages, err := htmlFiles(dir)
	if err != nil {
		r.add(".", KindMalformed, "walking output: %v", err)
		return r
	}
	if len(pages) == 0 {
		r.add(".", KindMissing, "no HTML files found")
	}

	classes := make(map[string]map[string]bool, len(pages))
	for _, rel := range pages {
		content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			r.add(rel, KindMissing, "reading: %v", err)
			continue
		}
		r.Pages++
		res := scan(string(content))
		for _, problem := range res.problems {
			r.add(rel, KindMalformed, "%s", problem)
		}
		if !res.stylesheet {
			r.add(rel, KindMalformed, "no stylesheet link")
		}
		classes[rel] = res.classes
	}

	checkSite(&r, dir, classes)
	sortIssues(r.Issues)
	return r
}

func checkExpected(r *Report, dir, rel string) {
	info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	switch {
	case err != nil:
		r.add(rel, KindMissing, "expected file not found")
	case info.IsDir():
		r.add(rel, KindMalformed, "expected a file, found a directory")
	case info.Size() == 0:
		r.add(rel, KindEmpty, "file is empty")
	}
}

// htmlFiles lists every *.html file below dir in lexical order.
func htmlFiles(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func checkSite(r *Report, dir string, classes map[string]map[string]bool) {
	css, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(StylesheetPath)))
	if err != nil {
		r.add(StylesheetPath, KindWarning, "stylesheet not found")
	} else {
		text := string(css)
		if !strings.Contains(text, "prefers-color-scheme: dark") {
			r.add(StylesheetPath, KindMalformed, "no dark mode media query")
		}
		if !strings.Contains(text, "--bg:") {
			r.add(StylesheetPath, KindWarning, "no --bg variable")
		}
	}

	markers := []struct {
		page, class, what string
	}{
		{IndexPath, "stats-bar", "stats bar"},
		{IndexPath, "talk-card", "talk cards"},
		{PastPath, "world-map", "world map"},
		{TagsPath, "chip-cloud", "chip cloud"},
	}
	for _, m := range markers {
		set, ok := classes[m.page]
		if !ok {
			continue
		}
		if !set[m.class] {
			r.add(m.page, KindWarning, "no %s", m.what)
		}
	}
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Kind < issues[j].Kind
	})
}
