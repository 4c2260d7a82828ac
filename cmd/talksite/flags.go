package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
	timeout   string
}

// siteFlags override the input and output locations of a build.
type siteFlags struct {
	csv       string
	content   string
	site      string
	baseURL   string
	buildDate string
	converter string
}

// commandFlags holds all flags for one site command.
type commandFlags struct {
	common commonFlags
	site   siteFlags
	output string // pdf only
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json, pretty")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "command timeout (e.g., 30s, 2m)")
}

// addSiteFlags adds input/output flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.csv, "csv", "", "talks CSV path")
	fs.StringVar(&f.content, "content", "", "Markdown content directory")
	fs.StringVar(&f.site, "site", "", "HTML site directory")
	fs.StringVar(&f.baseURL, "base-url", "", "site base URL or path")
	fs.StringVar(&f.buildDate, "build-date", "", "date splitting upcoming and past talks (YYYY-MM-DD, \"today\")")
	fs.StringVar(&f.converter, "converter", "", "Markdown converter: goldmark, pandoc")
}

// newCommandFlagSet registers the flags of cmd. Only pdf takes --output.
func newCommandFlagSet(cmd string, f *commandFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	if cmd == cmdPDF {
		fs.StringVarP(&f.output, "output", "o", "", "PDF output path")
	}
	return fs
}

// parseCommandFlags parses the flags of cmd and returns positional args.
// Parse errors and usage go to stderr.
func parseCommandFlags(cmd string, args []string, stderr io.Writer) (*commandFlags, []string, error) {
	f := &commandFlags{}
	fs := newCommandFlagSet(cmd, f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printCommandUsage(stderr, cmd) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
