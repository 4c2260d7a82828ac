package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"time"

	talksite "github.com/alnah/go-talksite"
	"github.com/alnah/go-talksite/internal/assets"
	"github.com/alnah/go-talksite/internal/buildcheck"
	"github.com/alnah/go-talksite/internal/config"
	"github.com/alnah/go-talksite/internal/dateutil"
	"github.com/alnah/go-talksite/internal/hints"
	"github.com/alnah/go-talksite/internal/pipeline"
	"github.com/alnah/go-talksite/internal/validate"
)

// Commands.
const (
	cmdGenerate = "generate"
	cmdRender   = "render"
	cmdCheck    = "check"
	cmdBuild    = "build"
	cmdPDF      = "pdf"
	cmdDoctor   = "doctor"
	cmdVersion  = "version"
	cmdHelp     = "help"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage   = errors.New("invalid usage")
	ErrNoInput = errors.New("no input specified")
)

// runOptions is the configuration of one command after merging the config
// file, TALKSITE_* variables and flags.
type runOptions struct {
	cfg       *config.Config
	buildDate time.Time
	timeout   time.Duration
}

// runCommand resolves the options of cmd, builds a Builder and runs it.
func runCommand(ctx context.Context, cmd string, positional []string, flags *commandFlags, env *Environment) error {
	switch {
	case cmd == cmdPDF && len(positional) == 0:
		return fmt.Errorf("%w: pdf needs an HTML page", ErrNoInput)
	case len(positional) > maxArgs(cmd):
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[maxArgs(cmd)])
	}
	if (cmd == cmdGenerate || cmd == cmdBuild) && len(positional) == 1 {
		flags.site.csv = positional[0]
	}

	opts, err := resolveOptions(flags, env)
	if err != nil {
		return err
	}

	provider, err := env.NewProvider(opts.cfg.Log.Level, opts.cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	builderOpts := []talksite.Option{
		talksite.WithConfig(opts.cfg),
		talksite.WithBuildDate(opts.buildDate),
		talksite.WithLogger(provider),
	}
	if opts.timeout > 0 {
		builderOpts = append(builderOpts, talksite.WithTimeout(opts.timeout))
	}
	b, err := talksite.NewBuilder(builderOpts...)
	if err != nil {
		return err
	}
	defer b.Close()

	out := env.Stdout
	if flags.common.quiet {
		out = io.Discard
	}

	switch cmd {
	case cmdGenerate:
		res, err := b.Generate(ctx, "")
		printGenerateResult(out, res)
		return err
	case cmdRender:
		res, err := b.Render(ctx)
		printRenderResult(out, res)
		return err
	case cmdCheck:
		report, err := b.Check()
		printReport(out, report)
		return err
	case cmdBuild:
		res, err := b.Build(ctx, "")
		if res != nil {
			printGenerateResult(out, res.Generate)
			printRenderResult(out, res.Render)
			if res.Render != nil {
				printReport(out, res.Report)
			}
		}
		return err
	case cmdPDF:
		pdfPath := flags.output
		if pdfPath == "" {
			pdfPath = talksite.PDFPath(positional[0])
		}
		if err := b.ExportPDF(ctx, positional[0], pdfPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", pdfPath)
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
}

// maxArgs is the number of positional arguments cmd accepts.
func maxArgs(cmd string) int {
	switch cmd {
	case cmdGenerate, cmdBuild, cmdPDF:
		return 1
	default:
		return 0
	}
}

// resolveOptions applies, lowest first: defaults, the config file,
// TALKSITE_* variables and flags.
func resolveOptions(flags *commandFlags, env *Environment) (*runOptions, error) {
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	buildDate, err := resolveBuildDate(flags.site.buildDate, envCfg.BuildDate, env.Now)
	if err != nil {
		return nil, err
	}

	timeout, err := resolveTimeoutWithEnv(flags.common.timeout, envCfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &runOptions{cfg: cfg, buildDate: buildDate, timeout: timeout}, nil
}

// loadConfig loads the config named by the flag or TALKSITE_CONFIG. Without
// either, talksite.yaml is optional and defaults apply when it is missing.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name != "" {
		cfg, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(config.DefaultName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *commandFlags, cfg *config.Config) {
	if flags.site.csv != "" {
		cfg.Input.CSV = flags.site.csv
	}
	if flags.site.content != "" {
		cfg.Output.Content = flags.site.content
	}
	if flags.site.site != "" {
		cfg.Output.Site = flags.site.site
	}
	if flags.site.baseURL != "" {
		cfg.Site.BaseURL = flags.site.baseURL
	}
	if flags.site.converter != "" {
		cfg.Converter.Engine = flags.site.converter
	}
	if flags.common.logFormat != "" {
		cfg.Log.Format = flags.common.logFormat
	}

	// --quiet wins over --verbose.
	switch {
	case flags.common.quiet:
		cfg.Log.Level = "error"
	case flags.common.verbose:
		cfg.Log.Level = "debug"
	}
}

// resolveBuildDate picks the flag, then TALKSITE_BUILD_DATE, then today.
func resolveBuildDate(flagValue, envValue string, now func() time.Time) (time.Time, error) {
	value := flagValue
	if value == "" {
		value = envValue
	}
	d, err := dateutil.ResolveBuildDate(value, now())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", talksite.ErrInvalidBuildDate, err)
	}
	return d, nil
}

// resolveTimeoutWithEnv picks the flag, then TALKSITE_TIMEOUT. Zero means no
// command deadline.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid timeout %q: %v", ErrUsage, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrUsage, flagValue)
		}
		return d, nil
	}
	return envValue, nil
}

// hintFor returns an actionable hint for err, or "".
func hintFor(cmd string, err error) string {
	switch {
	case errors.Is(err, talksite.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, pipeline.ErrPandocNotFound):
		return hints.ForPandocNotFound()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(config.DefaultName))
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound([]string{assets.DefaultStyleName})
	case errors.Is(err, buildcheck.ErrBuildCheck), errors.Is(err, talksite.ErrContentNotFound):
		return hints.ForBuildCheck()
	case errors.Is(err, validate.ErrValidation):
		return hints.ForValidation()
	case errors.Is(err, talksite.ErrWritePDF):
		return hints.ForOutputDirectory()
	case errors.Is(err, fs.ErrNotExist) && (cmd == cmdGenerate || cmd == cmdBuild):
		return hints.ForCSVNotFound()
	}
	return ""
}

// printGenerateResult prints the summary of a Generate run.
func printGenerateResult(w io.Writer, res *talksite.GenerateResult) {
	if res == nil {
		return
	}
	fmt.Fprintf(w, "Generated %d pages from %d rows: %d public talks, %d invalid rows\n",
		res.Pages, res.Rows, res.Public, len(res.Errors))
	fmt.Fprintf(w, "  %d written, %d removed\n", res.Written, len(res.Removed))
	for _, p := range res.Removed {
		fmt.Fprintf(w, "  removed %s\n", p)
	}
	for _, p := range res.Archived {
		fmt.Fprintf(w, "  [WARN] archived %s to %s: its notes were edited\n", p, path.Join(talksite.ArchiveDir, p))
	}
	if res.Calendar {
		fmt.Fprintln(w, "  calendar: upcoming.ics")
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "  [WARN] %s: %s\n", warn.ID, warn.Message)
	}
}

// printRenderResult prints the summary of a Render run.
func printRenderResult(w io.Writer, res *talksite.RenderResult) {
	if res == nil {
		return
	}
	fmt.Fprintf(w, "Rendered %d pages and %d files: %d written, %d removed\n",
		res.Pages, res.Files, res.Written, len(res.Removed))
}

// printReport prints the check summary and its warnings. Errors are part
// of the returned error.
func printReport(w io.Writer, report buildcheck.Report) {
	for _, is := range report.Warnings() {
		fmt.Fprintf(w, "  [WARN] %s: %s\n", filepath.FromSlash(is.Path), is.Detail)
	}
	fmt.Fprintf(w, "Checked %d pages: %d errors, %d warnings\n",
		report.Pages, len(report.Errors()), len(report.Warnings()))
}
