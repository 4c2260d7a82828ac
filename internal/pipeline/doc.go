// Package pipeline converts generated Markdown pages into standalone HTML.
//
// Two backends implement HTMLConverter:
//   - GoldmarkConverter renders in-process with goldmark and wraps the result
//     in an html/template layout fed by the page's front matter
//   - PandocConverter shells out to pandoc with a template, stylesheet and
//     base URL
//
// The package also holds the HTML helpers used when a generated page is
// printed to PDF: stylesheet injection and rewriting of relative paths to
// file:// URLs.
package pipeline
