// Package config loads and validates the talksite YAML configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/alnah/go-talksite/internal/dateutil"
	"github.com/alnah/go-talksite/internal/fileutil"
	"github.com/alnah/go-talksite/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "talksite"

// Converter engines.
const (
	EngineGoldmark = "goldmark"
	EnginePandoc   = "pandoc"
)

// Field length limits.
const (
	MaxTitleLength      = 200
	MaxURLLength        = 2048
	MaxPathLength       = 4096
	MaxDateFormatLength = 50
	MaxHostLength       = 253 // RFC 1035
	MaxNameLength       = 100
)

// Config holds every setting of a build.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Converter ConverterConfig `yaml:"converter"`
	Assets    AssetsConfig    `yaml:"assets"`
	Calendar  CalendarConfig  `yaml:"calendar"`
	Listing   ListingConfig   `yaml:"listing"`
	Log       LogConfig       `yaml:"log"`
}

// SiteConfig holds values shown on or linked from every page.
type SiteConfig struct {
	Title string `yaml:"title"`
	// BaseURL prefixes site-wide links verbatim. Empty means relative links.
	BaseURL string `yaml:"baseURL"`
	// DateFormat is a display format (tokens like "MMMM D, YYYY" or a preset
	// such as "long" or "iso") for long dates on talk pages.
	DateFormat string `yaml:"dateFormat"`
}

// InputConfig locates the spreadsheet export.
type InputConfig struct {
	CSV string `yaml:"csv"`
}

// OutputConfig locates the generated Markdown and HTML trees.
type OutputConfig struct {
	Content string `yaml:"content"`
	Site    string `yaml:"site"`
}

// ConverterConfig selects the Markdown to HTML backend.
type ConverterConfig struct {
	Engine     string `yaml:"engine"`     // "goldmark" (default) or "pandoc"
	PandocPath string `yaml:"pandocPath"` // Empty = "pandoc" on PATH
	Template   string `yaml:"template"`   // Pandoc template file, overrides the template set
}

// AssetsConfig selects the stylesheet and template set.
type AssetsConfig struct {
	BasePath    string `yaml:"basePath"` // Empty = embedded assets only
	Style       string `yaml:"style"`
	TemplateSet string `yaml:"templateSet"`
}

// CalendarConfig controls the upcoming.ics feed.
type CalendarConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"` // UID domain
}

// ListingConfig tunes the listing pages.
type ListingConfig struct {
	RecentLimit     int `yaml:"recentLimit"`
	AbstractPreview int `yaml:"abstractPreview"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Site:      SiteConfig{Title: "Talks", DateFormat: dateutil.DefaultDateFormat},
		Input:     InputConfig{CSV: "talks.csv"},
		Output:    OutputConfig{Content: "content", Site: "site"},
		Converter: ConverterConfig{Engine: EngineGoldmark},
		Assets:    AssetsConfig{Style: "default", TemplateSet: "default"},
		Calendar:  CalendarConfig{Enabled: true},
		Listing:   ListingConfig{RecentLimit: 12, AbstractPreview: 200},
		Log:       LogConfig{Level: "info", Format: "console"},
	}
}

// Validate checks field lengths and enumerated values. LoadConfig calls it;
// callers building a Config by hand should call it too.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.baseURL", c.Site.BaseURL, MaxURLLength},
		{"site.dateFormat", c.Site.DateFormat, MaxDateFormatLength},
		{"input.csv", c.Input.CSV, MaxPathLength},
		{"output.content", c.Output.Content, MaxPathLength},
		{"output.site", c.Output.Site, MaxPathLength},
		{"converter.pandocPath", c.Converter.PandocPath, MaxPathLength},
		{"converter.template", c.Converter.Template, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.style", c.Assets.Style, MaxNameLength},
		{"assets.templateSet", c.Assets.TemplateSet, MaxNameLength},
		{"calendar.host", c.Calendar.Host, MaxHostLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	err := validation.Errors{
		"site.baseURL":            validation.Validate(c.Site.BaseURL, baseURLRule),
		"site.dateFormat":         validation.Validate(c.Site.DateFormat, dateFormatRule),
		"converter.engine":        validation.Validate(strings.ToLower(c.Converter.Engine), validation.In(EngineGoldmark, EnginePandoc)),
		"calendar.host":           validation.Validate(c.Calendar.Host, is.Host),
		"listing.recentLimit":     validation.Validate(c.Listing.RecentLimit, validation.Min(0)),
		"listing.abstractPreview": validation.Validate(c.Listing.AbstractPreview, validation.Min(0)),
		"log.level":               validation.Validate(strings.ToLower(c.Log.Level), validation.In("debug", "info", "warn", "warning", "error")),
		"log.format":              validation.Validate(strings.ToLower(c.Log.Format), validation.In("console", "json", "pretty")),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// baseURLRule accepts an absolute http(s) URL or a root-relative path. Links
// are prefixed with the base URL as written, so it must end with a slash.
var baseURLRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !strings.HasSuffix(s, "/") {
		return validation.NewError("validation_base_url_slash", "must end with /")
	}
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("validation_base_url", "must be an http(s) URL or a path starting with /")
	}
	return nil
})

var dateFormatRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := dateutil.Layout(s); err != nil {
		return validation.NewError("validation_date_format", err.Error())
	}
	return nil
})

// DateLayout returns the Go time layout for Site.DateFormat.
func (c *Config) DateLayout() string {
	if c.Site.DateFormat == "" {
		return ""
	}
	layout, err := dateutil.Layout(c.Site.DateFormat)
	if err != nil {
		return ""
	}
	return layout
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; anything else is a
// name searched in standard locations. Keys missing from the file keep
// their DefaultConfig value. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order: name.yaml
// and name.yml in the current directory, then in ~/.config/go-talksite/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-talksite", name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
