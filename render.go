package talksite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-talksite/internal/buildcheck"
	"github.com/alnah/go-talksite/internal/fileutil"
	"github.com/alnah/go-talksite/internal/logging"
	"github.com/alnah/go-talksite/internal/markdown"
	"github.com/alnah/go-talksite/internal/pipeline"
)

// RenderResult summarizes a Render run.
type RenderResult struct {
	// Pages is the number of Markdown pages converted.
	Pages int
	// Files counts the other files copied from the content tree.
	Files int
	// Written counts pages and files whose bytes changed on disk.
	Written int
	// Removed lists HTML pages without a Markdown source, relative to the
	// site directory.
	Removed []string
}

// Render converts every Markdown page under output.content to HTML under
// output.site, "x/index.md" becoming "x/index.html". Other files are
// copied unchanged except CSV files and the input CSV, which hold private
// rows. Hidden files and directories are skipped. The stylesheet is
// written to assets/style.css.
func (b *Builder) Render(ctx context.Context) (*RenderResult, error) {
	log := b.logger(logging.StageRender)
	contentDir, siteDir := b.cfg.Output.Content, b.cfg.Output.Site

	if info, err := os.Stat(contentDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, contentDir)
	}

	res := &RenderResult{}
	produced := map[string]bool{}
	inputCSV := absPath(b.cfg.Input.CSV)

	err := filepath.WalkDir(contentDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := relSlash(contentDir, p)
		if err != nil {
			return err
		}
		if isHidden(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), ".csv") || absPath(p) == inputCSV {
			log.Debug("not publishing input data", "path", rel)
			return nil
		}

		src, err := os.ReadFile(p) // #nosec G304 -- walking the content directory
		if err != nil {
			return err
		}

		out, data := rel, src
		if filepath.Ext(rel) == ".md" {
			html, err := b.converter.ToHTML(ctx, pipeline.Document{Path: rel, Source: src})
			if err != nil {
				return fmt.Errorf("rendering %s: %w", rel, err)
			}
			out, data = markdown.HTMLPath(rel), []byte(html)
			res.Pages++
		} else {
			res.Files++
		}

		changed, err := fileutil.WriteIfChanged(filepath.Join(siteDir, filepath.FromSlash(out)), data)
		if err != nil {
			return err
		}
		produced[out] = true
		if changed {
			res.Written++
			log.Debug("wrote", "path", out)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	changed, err := fileutil.WriteIfChanged(filepath.Join(siteDir, filepath.FromSlash(buildcheck.StylesheetPath)), []byte(b.style))
	if err != nil {
		return nil, err
	}
	if changed {
		res.Written++
	}

	if res.Removed, err = pruneHTML(siteDir, produced); err != nil {
		return nil, err
	}
	for _, p := range res.Removed {
		log.Info("removed stale page", "path", p)
	}

	log.Info("rendered site", "dir", siteDir, "pages", res.Pages, "files", res.Files, "written", res.Written)
	return res, nil
}

// absPath returns the cleaned absolute form of p, or "" when p is empty.
func absPath(p string) string {
	if p == "" {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

// pruneHTML deletes HTML pages under siteDir that this run did not produce.
func pruneHTML(siteDir string, produced map[string]bool) ([]string, error) {
	var removed []string
	err := filepath.WalkDir(siteDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".html" {
			return nil
		}
		rel, err := relSlash(siteDir, p)
		if err != nil || produced[rel] {
			return err
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		removed = append(removed, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pruning %s: %w", siteDir, err)
	}
	removeEmptyDirs(siteDir, removed)
	return removed, nil
}
