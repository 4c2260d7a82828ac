package talksite

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-talksite/internal/assets"
	"github.com/alnah/go-talksite/internal/config"
	"github.com/alnah/go-talksite/internal/fileutil"
	"github.com/alnah/go-talksite/internal/logging"
	"github.com/alnah/go-talksite/internal/pipeline"
	"github.com/alnah/go-talksite/internal/talk"
)

// defaultTimeout bounds a single PDF page load.
const defaultTimeout = 30 * time.Second

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.HTMLConverter = (*pipeline.PandocConverter)(nil)
	_ pipeline.CSSInjector   = (*pipeline.CSSInjection)(nil)
	_ assets.AssetLoader     = (*assets.AssetResolver)(nil)
	_ pdfRenderer            = (*rodRenderer)(nil)
)

// Builder runs the build stages for one site. It holds no state between
// runs beyond its configuration, so Generate, Render and Check can be
// called in any order. Create with NewBuilder and Close when done.
type Builder struct {
	cfg       *config.Config
	buildDate talk.Date
	timeout   time.Duration
	provider  logging.Provider

	loader      assets.AssetLoader
	converter   pipeline.HTMLConverter
	cssInjector pipeline.CSSInjector
	renderer    pdfRenderer

	style      string
	printStyle string
	cleanups   []func()
}

// Option configures a Builder.
type Option func(*Builder)

// WithConfig replaces the default configuration. The config is validated by
// NewBuilder.
func WithConfig(cfg *config.Config) Option {
	return func(b *Builder) {
		b.cfg = cfg
	}
}

// WithBuildDate sets the date that splits upcoming from past talks. Only the
// calendar date of t is used. Defaults to today.
func WithBuildDate(t time.Time) Option {
	return func(b *Builder) {
		b.buildDate = talk.DateOf(t)
	}
}

// WithLogger sets the provider stage loggers are taken from. Defaults to a
// no-op provider.
func WithLogger(p logging.Provider) Option {
	return func(b *Builder) {
		b.provider = p
	}
}

// WithConverter replaces the Markdown to HTML converter chosen from the
// config.
func WithConverter(c pipeline.HTMLConverter) Option {
	return func(b *Builder) {
		b.converter = c
	}
}

// WithAssetLoader replaces the asset resolver built from assets.basePath.
func WithAssetLoader(l assets.AssetLoader) Option {
	return func(b *Builder) {
		b.loader = l
	}
}

// WithTimeout sets the PDF page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("talksite: WithTimeout duration must be positive")
	}
	return func(b *Builder) {
		b.timeout = d
	}
}

// withRenderer injects the PDF renderer (tests).
func withRenderer(r pdfRenderer) Option {
	return func(b *Builder) {
		b.renderer = r
	}
}

// NewBuilder validates the configuration, loads the stylesheets and sets up
// the converter. Chrome is only started by the first ExportPDF.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg:         config.DefaultConfig(),
		buildDate:   talk.DateOf(time.Now()),
		timeout:     defaultTimeout,
		provider:    logging.NoOpProvider(),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.cfg == nil {
		b.cfg = config.DefaultConfig()
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	if b.buildDate.IsZero() {
		return nil, ErrInvalidBuildDate
	}

	if b.loader == nil {
		resolver, err := assets.NewAssetResolver(b.cfg.Assets.BasePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		if resolver.HasCustomLoader() {
			b.logger(logging.StageRender).Debug("using custom assets", "path", b.cfg.Assets.BasePath)
		}
		b.loader = resolver
	}

	var err error
	if b.style, err = b.loader.LoadStyle(styleName(b.cfg.Assets.Style)); err != nil {
		return nil, fmt.Errorf("loading style: %w", err)
	}
	if b.printStyle, err = b.loader.LoadStyle(assets.PrintStyleName); err != nil {
		return nil, fmt.Errorf("loading print style: %w", err)
	}

	if b.converter == nil {
		if b.converter, err = b.newConverter(); err != nil {
			b.Close()
			return nil, err
		}
	}

	if b.renderer == nil {
		b.renderer = newRodRenderer(b.timeout)
	}

	return b, nil
}

// Config returns the configuration the builder runs with.
func (b *Builder) Config() *config.Config {
	return b.cfg
}

// BuildDate returns the date that splits upcoming from past talks.
func (b *Builder) BuildDate() time.Time {
	return b.buildDate.Time()
}

// Close removes temporary files and stops the browser if one was started.
func (b *Builder) Close() error {
	for _, cleanup := range b.cleanups {
		cleanup()
	}
	b.cleanups = nil
	if b.renderer != nil {
		return b.renderer.Close()
	}
	return nil
}

// newConverter builds the converter selected by converter.engine. The
// pandoc engine gets the template set's pandoc template written to a temp
// file unless converter.template names one.
func (b *Builder) newConverter() (pipeline.HTMLConverter, error) {
	set, err := b.loader.LoadTemplateSet(templateSetName(b.cfg.Assets.TemplateSet))
	if err != nil {
		return nil, fmt.Errorf("loading template set: %w", err)
	}

	site := pipeline.Site{
		Title:   b.cfg.Site.Title,
		BaseURL: b.cfg.Site.BaseURL,
	}

	switch strings.ToLower(b.cfg.Converter.Engine) {
	case "", config.EngineGoldmark:
		return pipeline.NewGoldmarkConverter(set.Page, site)
	case config.EnginePandoc:
		template := b.cfg.Converter.Template
		if template == "" {
			path, cleanup, err := fileutil.WriteTempFile([]byte(set.Pandoc), "html")
			if err != nil {
				return nil, fmt.Errorf("writing pandoc template: %w", err)
			}
			b.cleanups = append(b.cleanups, cleanup)
			template = path
		}
		return pipeline.NewPandocConverter(b.cfg.Converter.PandocPath, template, site), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConverter, b.cfg.Converter.Engine)
	}
}

func (b *Builder) logger(stage string) logging.Logger {
	return logging.Stage(b.provider, stage)
}

func styleName(name string) string {
	if name == "" {
		return assets.DefaultStyleName
	}
	return name
}

func templateSetName(name string) string {
	if name == "" {
		return assets.DefaultTemplateSetName
	}
	return name
}
