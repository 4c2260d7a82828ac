package talksite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-talksite/internal/fileutil"
	"github.com/alnah/go-talksite/internal/logging"
	"github.com/alnah/go-talksite/internal/pipeline"
)

// ExportPDF prints a generated HTML page to pdfPath. Relative links are
// resolved against the page's directory and confined to output.site when
// the page lives there, so the site stylesheet and images load; the print
// stylesheet is applied on top.
func (b *Builder) ExportPDF(ctx context.Context, htmlPath, pdfPath string) error {
	log := b.logger(logging.StagePDF)

	data, err := os.ReadFile(htmlPath) // #nosec G304 -- page path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadHTML, err)
	}

	absPage, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadHTML, err)
	}
	pageDir := filepath.Dir(absPage)

	htmlContent, err := pipeline.RewriteRelativePaths(string(data), pageDir, b.siteRootFor(pageDir))
	if err != nil {
		return fmt.Errorf("rewriting relative paths: %w", err)
	}
	htmlContent = b.cssInjector.InjectCSS(ctx, htmlContent, b.printStyle)
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf, err := b.renderer.RenderHTML(ctx, htmlContent)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(pdfPath), fileutil.DirPerm); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	// #nosec G306 -- PDF output files are intended to be readable
	if err := os.WriteFile(pdfPath, pdf, fileutil.FilePerm); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}

	log.Info("exported PDF", "page", htmlPath, "output", pdfPath, "bytes", len(pdf))
	return nil
}

// siteRootFor returns the absolute site directory when pageDir is inside it,
// or "" to confine links to pageDir.
func (b *Builder) siteRootFor(pageDir string) string {
	root, err := filepath.Abs(b.cfg.Output.Site)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(root, pageDir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return root
}

// PDFPath returns the default PDF name for a page: "site/past/index.html"
// becomes "past.pdf", any other file keeps its base name.
func PDFPath(htmlPath string) string {
	base := filepath.Base(htmlPath)
	if base == "index.html" {
		if dir := filepath.Base(filepath.Dir(htmlPath)); dir != "." && dir != string(filepath.Separator) {
			return dir + ".pdf"
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
}
