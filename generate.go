package talksite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-talksite/internal/calendar"
	"github.com/alnah/go-talksite/internal/csvreader"
	"github.com/alnah/go-talksite/internal/fileutil"
	"github.com/alnah/go-talksite/internal/index"
	"github.com/alnah/go-talksite/internal/logging"
	"github.com/alnah/go-talksite/internal/markdown"
	"github.com/alnah/go-talksite/internal/validate"
)

// GenerateResult summarizes a Generate run.
type GenerateResult struct {
	// Rows is the number of data rows read from the CSV.
	Rows int
	// Talks counts the rows that passed validation, Public the subset that
	// is published.
	Talks  int
	Public int
	// Pages is the number of Markdown pages produced, Written the number
	// whose bytes changed on disk.
	Pages   int
	Written int
	// Paths lists every file produced, pages and calendar feed, relative to
	// the content directory.
	Paths []string
	// Removed lists generated pages of earlier runs that no longer have a
	// talk, relative to the content directory. Archived lists the ones whose
	// notes were edited; they are moved under ArchiveDir instead.
	Removed  []string
	Archived []string
	// Calendar reports whether upcoming.ics was written.
	Calendar bool

	Errors   validate.Errors
	Warnings []index.Warning
}

// Generate reads csvPath (config input.csv when empty), validates it and
// writes the Markdown tree under output.content.
//
// A malformed CSV is fatal and returns a nil result. Invalid rows are not:
// the remaining talks are written and the returned error lists every
// failure (errors.Is(err, validate.ErrValidation)).
func (b *Builder) Generate(ctx context.Context, csvPath string) (*GenerateResult, error) {
	if csvPath == "" {
		csvPath = b.cfg.Input.CSV
	}

	log := b.logger(logging.StageCSV)
	table, err := csvreader.ReadFile(csvPath)
	if err != nil {
		return nil, err
	}
	log.Info("read CSV", "path", csvPath, "rows", len(table.Rows))

	vlog := b.logger(logging.StageValidate)
	checked := validate.Validate(table)
	for _, e := range checked.Errors {
		vlog.Warn("invalid row skipped", "line", e.Line, "id", e.ID, "field", e.Field, "message", e.Message)
	}

	idx := index.Build(checked.Talks, b.buildDate)
	for _, w := range idx.Warnings {
		vlog.Warn(w.Message, "id", w.ID)
	}

	res := &GenerateResult{
		Rows:     len(table.Rows),
		Talks:    len(checked.Talks),
		Public:   len(idx.Talks),
		Errors:   checked.Errors,
		Warnings: idx.Warnings,
	}

	elog := b.logger(logging.StageEmit)
	emitter := markdown.New(markdown.Options{
		DateLayout:      b.cfg.DateLayout(),
		RecentLimit:     b.cfg.Listing.RecentLimit,
		AbstractPreview: b.cfg.Listing.AbstractPreview,
		Title:           b.cfg.Site.Title,
	})

	pages := emitter.Pages(idx)
	produced := make(map[string]bool, len(pages))
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		changed, err := b.writePage(page)
		if err != nil {
			return nil, err
		}
		produced[page.Path] = true
		res.Paths = append(res.Paths, page.Path)
		if changed {
			res.Written++
			elog.Debug("wrote page", "path", page.Path)
		}
	}
	res.Pages = len(pages)

	if res.Removed, res.Archived, err = b.pruneContent(produced); err != nil {
		return nil, err
	}
	for _, p := range res.Removed {
		elog.Info("removed stale page", "path", p)
	}
	for _, p := range res.Archived {
		elog.Warn("stale page with edited notes archived", "path", p, "to", path.Join(ArchiveDir, p))
	}

	if b.cfg.Calendar.Enabled {
		if res.Calendar, err = b.writeCalendar(idx); err != nil {
			return nil, err
		}
		if res.Calendar {
			res.Paths = append(res.Paths, calendar.FileName)
		}
	}

	elog.Info("generated content",
		"dir", b.cfg.Output.Content,
		"talks", res.Public,
		"pages", res.Pages,
		"written", res.Written,
		"invalid", len(res.Errors),
	)

	return res, res.Errors.Err()
}

// writePage renders page over the file it replaces, keeping its notes.
func (b *Builder) writePage(page markdown.Page) (bool, error) {
	target := filepath.Join(b.cfg.Output.Content, filepath.FromSlash(page.Path))
	existing, err := fileutil.ReadIfExists(target)
	if err != nil {
		return false, err
	}
	data, err := markdown.Render(page, existing)
	if err != nil {
		return false, fmt.Errorf("rendering %s: %w", page.Path, err)
	}
	return fileutil.WriteIfChanged(target, data)
}

// ArchiveDir holds stale generated pages whose notes were edited, relative
// to the content directory. Being hidden, it is never rendered or pruned.
const ArchiveDir = ".archive"

// pruneContent deletes Markdown pages marked generated that this run did
// not produce, such as the page of a talk that became private. Pages
// without generated front matter belong to the author and are kept. Stale
// pages whose notes block was edited are moved to ArchiveDir. Hidden
// directories are skipped.
func (b *Builder) pruneContent(produced map[string]bool) (removed, archived []string, err error) {
	root := b.cfg.Output.Content

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
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
		if d.IsDir() || filepath.Ext(p) != ".md" || produced[rel] {
			return nil
		}
		data, err := os.ReadFile(p) // #nosec G304 -- walking the content directory
		if err != nil {
			return err
		}
		front, _, err := markdown.ParseDocument(data)
		if err != nil || !front.Generated {
			return nil
		}
		if notes, ok := markdown.ExtractNotes(data); ok && strings.TrimSpace(notes) != markdown.DefaultNotes {
			target := filepath.Join(root, ArchiveDir, filepath.FromSlash(rel))
			if err := os.MkdirAll(filepath.Dir(target), fileutil.DirPerm); err != nil {
				return err
			}
			if err := os.Rename(p, target); err != nil {
				return err
			}
			archived = append(archived, rel)
			return nil
		}
		if err := os.Remove(p); err != nil {
			return err
		}
		removed = append(removed, rel)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("pruning %s: %w", root, err)
	}

	removeEmptyDirs(root, append(slices.Clone(removed), archived...))
	return removed, archived, nil
}

// writeCalendar writes upcoming.ics into the content tree so Render copies
// it next to the pages. Without upcoming talks a stale feed is removed.
func (b *Builder) writeCalendar(idx *index.Index) (bool, error) {
	log := b.logger(logging.StageCalendar)
	target := filepath.Join(b.cfg.Output.Content, calendar.FileName)

	var buf bytes.Buffer
	err := calendar.Encode(&buf, idx.UpcomingTalks(), calendar.Options{
		Host:    b.cfg.Calendar.Host,
		BaseURL: b.cfg.Site.BaseURL,
		Name:    b.cfg.Site.Title,
		Stamp:   b.buildDate.Time(),
	})
	if errors.Is(err, calendar.ErrNoEvents) {
		log.Info("no upcoming talks, calendar skipped")
		if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return false, err
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if _, err := fileutil.WriteIfChanged(target, buf.Bytes()); err != nil {
		return false, err
	}
	log.Debug("wrote calendar", "path", target, "events", len(idx.UpcomingTalks()))
	return true, nil
}

// removeEmptyDirs removes the directories left empty by pruning, deepest
// first. Directories that still hold files are kept.
func removeEmptyDirs(root string, removed []string) {
	for _, rel := range removed {
		for dir := path.Dir(rel); dir != "." && dir != "/"; dir = path.Dir(dir) {
			if err := os.Remove(filepath.Join(root, filepath.FromSlash(dir))); err != nil {
				break
			}
		}
	}
}

// relSlash returns p relative to root with forward slashes.
func relSlash(root, p string) (string, error) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// isHidden reports whether any element of a slash path starts with a dot.
func isHidden(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") && part != "." {
			return true
		}
	}
	return false
}
