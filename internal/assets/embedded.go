package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
)

//go:embed styles/*.css
var styles embed.FS

//go:embed templates
var templates embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns styles/{name}.css.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// LoadTemplateSet returns the templates under templates/{name}/.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := "templates/" + name
	if _, err := fs.Stat(templates, dir); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}
	return readTemplateSet(name, func(file string) ([]byte, error) {
		return templates.ReadFile(dir + "/" + file)
	})
}

// readTemplateSet reads both templates through read. A missing file makes
// the set incomplete; any other failure is a read error.
func readTemplateSet(name string, read func(file string) ([]byte, error)) (*TemplateSet, error) {
	ts := &TemplateSet{Name: name}
	for _, f := range []struct {
		file string
		dst  *string
	}{
		{PageTemplateFile, &ts.Page},
		{PandocTemplateFile, &ts.Pandoc},
	} {
		content, err := read(f.file)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, f.file)
		case err != nil:
			return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, f.file, err)
		}
		*f.dst = string(content)
	}
	return ts, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
