package talksite

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"slices"

	"github.com/alnah/go-talksite/internal/buildcheck"
	"github.com/alnah/go-talksite/internal/logging"
	"github.com/alnah/go-talksite/internal/markdown"
)

// listingPages are expected in every site, even one without talks.
var listingPages = []string{
	markdown.HTMLPath(markdown.IndexPath),
	markdown.HTMLPath(markdown.PastPath),
	markdown.HTMLPath(markdown.TagsIndexPath),
	markdown.HTMLPath(markdown.TypesPath),
}

// Check runs the build check over output.site. Every listing page, the
// stylesheet and the HTML counterpart of every Markdown page under
// output.content are expected. The error wraps buildcheck.ErrBuildCheck
// when the report holds errors; warnings alone do not fail.
func (b *Builder) Check() (buildcheck.Report, error) {
	return b.check(nil)
}

// check runs the build check expecting, on top of the content tree, the
// site files of generated: Markdown pages as HTML, other files as is.
func (b *Builder) check(generated []string) (buildcheck.Report, error) {
	log := b.logger(logging.StageCheck)

	expected, err := b.expectedPaths(generated)
	if err != nil {
		return buildcheck.Report{}, err
	}

	report := buildcheck.Check(b.cfg.Output.Site, expected)
	for _, is := range report.Issues {
		if is.Kind == buildcheck.KindWarning {
			log.Warn(is.Detail, "path", is.Path)
		} else {
			log.Error(is.Detail, "path", is.Path, "kind", string(is.Kind))
		}
	}
	log.Info("checked site",
		"dir", b.cfg.Output.Site,
		"pages", report.Pages,
		"errors", len(report.Errors()),
		"warnings", len(report.Warnings()),
	)

	return report, report.Err()
}

// expectedPaths lists the site files a complete build must contain, sorted.
func (b *Builder) expectedPaths(generated []string) ([]string, error) {
	expected := append([]string{buildcheck.StylesheetPath}, listingPages...)
	for _, rel := range generated {
		if path.Ext(rel) == ".md" {
			rel = markdown.HTMLPath(rel)
		}
		expected = append(expected, rel)
	}

	root := b.cfg.Output.Content
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := relSlash(root, p)
		if err != nil {
			return err
		}
		if isHidden(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && filepath.Ext(p) == ".md" {
			expected = append(expected, markdown.HTMLPath(rel))
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	slices.Sort(expected)
	return slices.Compact(expected), nil
}

// BuildResult gathers the results of the three stages of Build.
type BuildResult struct {
	Generate *GenerateResult
	Render   *RenderResult
	Report   buildcheck.Report
}

// Build runs Generate, Render and Check. Every page and feed Generate
// wrote is expected in the site, even if its Markdown source has since
// disappeared. Invalid rows do not stop the build; their error is joined with the build check error, if any. A
// malformed CSV, a conversion failure or an I/O error stops it.
func (b *Builder) Build(ctx context.Context, csvPath string) (*BuildResult, error) {
	res := &BuildResult{}

	gen, genErr := b.Generate(ctx, csvPath)
	if gen == nil {
		return nil, genErr
	}
	res.Generate = gen

	ren, err := b.Render(ctx)
	if err != nil {
		return res, err
	}
	res.Render = ren

	report, checkErr := b.check(gen.Paths)
	res.Report = report

	return res, errors.Join(genErr, checkErr)
}
