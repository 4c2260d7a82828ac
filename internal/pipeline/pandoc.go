package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/alnah/go-talksite/internal/fileutil"
)

// ErrPandocNotFound means the pandoc binary is not installed or not on PATH.
var ErrPandocNotFound = errors.New("pandoc not found")

// DefaultPandocBinary is looked up on PATH when no explicit path is set.
const DefaultPandocBinary = "pandoc"

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// Run executes name and collects both output streams. The process is killed
// when ctx is done.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// PandocConverter converts Markdown to HTML by invoking the Pandoc CLI.
// Pandoc reads the YAML front matter itself, so the page title and the
// other fields are available to the template.
type PandocConverter struct {
	Runner CommandRunner
	// Binary defaults to DefaultPandocBinary.
	Binary string
	// Template is the path of a pandoc HTML template. Empty uses pandoc's
	// built-in template.
	Template string
	Site     Site
}

// NewPandocConverter creates a PandocConverter with a real command runner.
func NewPandocConverter(binary, template string, site Site) *PandocConverter {
	return &PandocConverter{Runner: &ExecRunner{}, Binary: binary, Template: template, Site: site}
}

// ToHTML converts doc to a standalone HTML5 document using Pandoc.
func (c *PandocConverter) ToHTML(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(bytes.TrimSpace(doc.Source)) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyContent, doc.Path)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(doc.Source, "md")
	if err != nil {
		return "", err
	}
	defer cleanup()

	stdout, stderr, err := c.Runner.Run(ctx, c.binary(), c.Args(tmpPath, doc)...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %v", ErrPandocNotFound, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %s: %s: %v", ErrHTMLConversion, doc.Path, stderr, err)
	}

	return stdout, nil
}

// Args builds the pandoc command line for one document. fancy_lists is
// disabled so letter markers such as "A)" in notes stay text.
func (c *PandocConverter) Args(src string, doc Document) []string {
	args := []string{
		src,
		"-f", "markdown-fancy_lists",
		"-t", "html5",
		"--standalone",
	}
	if c.Template != "" {
		args = append(args, "--template", c.Template)
	}
	args = append(args,
		"--css", c.Site.StylesheetHref(doc),
		"-M", "base_url="+c.Site.Prefix(doc),
	)
	if c.Site.Title != "" {
		args = append(args, "-M", "site_title="+c.Site.Title)
	}
	return args
}

func (c *PandocConverter) binary() string {
	if c.Binary == "" {
		return DefaultPandocBinary
	}
	return c.Binary
}

// Compile-time interface check.
var _ HTMLConverter = (*PandocConverter)(nil)
