package buildcheck_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-talksite/internal/buildcheck"
)

const goodCSS = ":root { --bg: #fff; }\n@media (prefers-color-scheme: dark) { :root { --bg: #111; } }\n"

func page(title, body string) string {
	return "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n" +
		"<title>" + title + "</title>\n<link rel=\"stylesheet\" href=\"assets/style.css\">\n</head>\n" +
		"<body>\n" + body + "\n</body>\n</html>\n"
}

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func goodSite() map[string]string {
	return map[string]string{
		"index.html":       page("Talks", `<div class="stats-bar"></div><article class="talk-card"><p>x</p></article>`),
		"past/index.html":  page("Past talks", `<figure class="world-map"><svg viewBox="0 0 900 450"><path class="land" d="M0,0 Z"/><circle class="map-dot" cx="1" cy="1" r="4"><title>Pune</title></circle></svg></figure>`),
		"tags/index.html":  page("Talk tags", `<div class="chip-cloud"><a class="chip chip-w1" href="ml/">ml</a></div>`),
		"types/index.html": page("Talk types", `<ul><li>oral<li>panel</ul>`),
		"T1/index.html":    page("Keynote", `<p>Line<br />break</p><img src="a.png" alt="">`),
		"assets/style.css": goodCSS,
	}
}

var expected = []string{"index.html", "past/index.html", "tags/index.html", "types/index.html", "T1/index.html", "assets/style.css"}

// ---------------------------------------------------------------------------
// TestCheck - Site level
// ---------------------------------------------------------------------------

func TestCheck_CleanSite(t *testing.T) {
	t.Parallel()

	r := buildcheck.Check(writeSite(t, goodSite()), expected)
	if len(r.Issues) != 0 {
		t.Fatalf("Check() issues = %v, want none", r.Issues)
	}
	if r.Pages != 5 {
		t.Errorf("Pages = %d, want 5", r.Pages)
	}
	if !r.OK() || r.Err() != nil {
		t.Errorf("OK() = %v, Err() = %v", r.OK(), r.Err())
	}
}

func TestCheck_ExpectedFiles(t *testing.T) {
	t.Parallel()

	files := goodSite()
	files["T2/index.html"] = ""
	dir := writeSite(t, files)
	if err := os.MkdirAll(filepath.Join(dir, "T4", "index.html"), 0o755); err != nil {
		t.Fatal(err)
	}

	r := buildcheck.Check(dir, append(expected, "T2/index.html", "T3/index.html", "T4/index.html"))

	want := map[string]buildcheck.Kind{
		"T2/index.html": buildcheck.KindEmpty,
		"T3/index.html": buildcheck.KindMissing,
		"T4/index.html": buildcheck.KindMalformed,
	}
	for path, kind := range want {
		if !hasIssue(r, path, kind, "") {
			t.Errorf("missing %s issue for %s in %v", kind, path, r.Issues)
		}
	}
	if r.OK() {
		t.Error("OK() = true, want false")
	}
	if err := r.Err(); !errors.Is(err, buildcheck.ErrBuildCheck) {
		t.Errorf("Err() = %v, want ErrBuildCheck", err)
	}
}

func TestCheck_MissingDir(t *testing.T) {
	t.Parallel()

	r := buildcheck.Check(filepath.Join(t.TempDir(), "nope"), nil)
	if !hasIssue(r, ".", buildcheck.KindMissing, "not found") {
		t.Errorf("Issues = %v", r.Issues)
	}
}

func TestCheck_NoHTML(t *testing.T) {
	t.Parallel()

	r := buildcheck.Check(writeSite(t, map[string]string{"assets/style.css": goodCSS}), nil)
	if !hasIssue(r, ".", buildcheck.KindMissing, "no HTML files") {
		t.Errorf("Issues = %v", r.Issues)
	}
}

func TestCheck_SiteWarnings(t *testing.T) {
	t.Parallel()

	files := goodSite()
	files["index.html"] = page("Talks", "<p>nothing</p>")
	files["past/index.html"] = page("Past talks", "<p>nothing</p>")
	files["tags/index.html"] = page("Talk tags", "<p>nothing</p>")
	files["assets/style.css"] = "@media (prefers-color-scheme: dark) { body { color: white; } }"

	r := buildcheck.Check(writeSite(t, files), expected)

	for _, w := range []struct{ path, detail string }{
		{"index.html", "stats bar"},
		{"index.html", "talk cards"},
		{"past/index.html", "world map"},
		{"tags/index.html", "chip cloud"},
		{"assets/style.css", "--bg"},
	} {
		if !hasIssue(r, w.path, buildcheck.KindWarning, w.detail) {
			t.Errorf("missing warning %q on %s in %v", w.detail, w.path, r.Issues)
		}
	}
	if !r.OK() {
		t.Errorf("warnings alone should not fail: %v", r.Errors())
	}
	if got := len(r.Warnings()); got != 5 {
		t.Errorf("Warnings() = %d, want 5", got)
	}
}

func TestCheck_StylesheetWithoutDarkMode(t *testing.T) {
	t.Parallel()

	files := goodSite()
	files["assets/style.css"] = ":root { --bg: #fff; }"

	r := buildcheck.Check(writeSite(t, files), expected)

	if !hasIssue(r, "assets/style.css", buildcheck.KindMalformed, "dark mode") {
		t.Errorf("Issues = %v", r.Issues)
	}
	if r.OK() {
		t.Error("a stylesheet without dark mode should fail the check")
	}
}

func TestCheck_DoesNotMutate(t *testing.T) {
	t.Parallel()

	files := goodSite()
	files["T1/index.html"] = "<html><body><div>broken"
	dir := writeSite(t, files)

	_ = buildcheck.Check(dir, expected)

	got, err := os.ReadFile(filepath.Join(dir, "T1", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != files["T1/index.html"] {
		t.Errorf("file changed: %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestCheck_Structure - Per-page structural pass
// ---------------------------------------------------------------------------

func TestCheck_Structure(t *testing.T) {
	t.Parallel()

	head := `<head><title>T</title><link rel="stylesheet" href="s.css"></head>`

	tests := []struct {
		name       string
		html       string
		wantDetail string
	}{
		{"missing doctype", "<html>" + head + "<body></body></html>", "missing <!DOCTYPE html>"},
		{"unclosed div", "<!DOCTYPE html><html>" + head + "<body><div></body></html>", "<div> not closed"},
		{"unclosed root", "<!DOCTYPE html><html>" + head + "<body></body>", "unclosed <html>"},
		{"stray end tag", "<!DOCTYPE html><html>" + head + "<body></span></body></html>", "unexpected </span>"},
		{"two roots", "<!DOCTYPE html><html>" + head + "</html><html></html>", "more than one <html> root"},
		{"text outside root", "<!DOCTYPE html><html>" + head + "</html>trailing", "text outside the <html> root"},
		{"element outside root", "<!DOCTYPE html><p>x</p><html>" + head + "</html>", "<p> outside the <html> root"},
		{"missing title", `<!DOCTYPE html><html><head><link rel="stylesheet" href="s.css"></head></html>`, "missing <title>"},
		{"empty title", `<!DOCTYPE html><html><head><title> </title><link rel="stylesheet" href="s.css"></head></html>`, "empty <title>"},
		{"svg title is not page title", `<!DOCTYPE html><html><head><link rel="stylesheet" href="s.css"></head><body><svg><title>x</title></svg></body></html>`, "missing <title>"},
		{"no stylesheet", "<!DOCTYPE html><html><head><title>T</title></head></html>", "no stylesheet link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := writeSite(t, map[string]string{"page.html": tt.html})
			r := buildcheck.Check(dir, nil)
			if !hasIssue(r, "page.html", buildcheck.KindMalformed, tt.wantDetail) {
				t.Errorf("want malformed %q, got %v", tt.wantDetail, r.Issues)
			}
		})
	}
}

func TestCheck_ImpliedEndTagsAccepted(t *testing.T) {
	t.Parallel()

	doc := `<!DOCTYPE html><html><head><title>T</title><link rel="stylesheet" href="s.css">` +
		`<body><ul><li>a<li>b</ul><table><tr><td>1<td>2</table><p>open` + "\n</html>"
	r := buildcheck.Check(writeSite(t, map[string]string{"page.html": doc}), nil)
	for _, is := range r.Errors() {
		t.Errorf("unexpected error: %v", is)
	}
}

func TestIssue_String(t *testing.T) {
	t.Parallel()

	is := buildcheck.Issue{Path: "T1/index.html", Kind: buildcheck.KindMissing, Detail: "expected file not found"}
	if got := is.String(); got != "T1/index.html: missing: expected file not found" {
		t.Errorf("String() = %q", got)
	}
}

func hasIssue(r buildcheck.Report, path string, kind buildcheck.Kind, detail string) bool {
	for _, is := range r.Issues {
		if is.Path == path && is.Kind == kind && strings.Contains(is.Detail, detail) {
			return true
		}
	}
	return false
}
