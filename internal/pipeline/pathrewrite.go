package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths converts relative stylesheet, image and link paths to
// absolute file:// URLs so a page still renders once copied out of the site
// tree. Paths resolve against pageDir and must stay under rootDir; paths
// that escape rootDir are left as they are. If pageDir is empty, returns the
// HTML unchanged.
//
// Rewrites:
//   - link[href]: stylesheets
//   - img[src]: images
//   - a[href]: relative file paths (not anchors, not URLs)
func RewriteRelativePaths(htmlContent, pageDir, rootDir string) (string, error) {
	if pageDir == "" {
		return htmlContent, nil
	}
	if rootDir == "" {
		rootDir = pageDir
	}

	absPageDir, err := filepath.Abs(pageDir)
	if err != nil {
		return "", err
	}
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, absPageDir, absRootDir)

	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node and whether it was a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the document back to string. Fragments render only
// their children, without an <html><body> wrapper.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, pageDir, rootDir string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Link, atom.A:
			rewriteAttr(n, "href", pageDir, rootDir)
		case atom.Img:
			rewriteAttr(n, "src", pageDir, rootDir)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, pageDir, rootDir)
	}
}

func rewriteAttr(n *html.Node, attrName, pageDir, rootDir string) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		target := attr.Val
		fragment := ""
		if at := strings.IndexByte(target, '#'); at >= 0 {
			target, fragment = target[:at], target[at:]
		}
		absPath := filepath.Join(pageDir, filepath.FromSlash(target))
		if strings.HasSuffix(target, "/") {
			absPath = filepath.Join(absPath, "index.html")
		}

		if !isPathUnderDir(absPath, rootDir) {
			continue
		}

		n.Attr[i].Val = pathToFileURL(absPath) + fragment
	}
}

// isRelativePath reports whether path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") {
		return false
	}

	if u, err := url.Parse(path); err == nil && u.Scheme != "" {
		return false
	}
	if strings.HasPrefix(path, "//") {
		return false
	}

	return !filepath.IsAbs(path) && !strings.HasPrefix(path, "/")
}

// isPathUnderDir checks if absPath is dir or below it.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
