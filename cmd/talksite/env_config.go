package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-talksite/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // TALKSITE_CONFIG: config file path
	CSV        string        // TALKSITE_CSV: talks CSV path
	Timeout    time.Duration // TALKSITE_TIMEOUT: command timeout

	// Tier 2 - Directories and site
	ContentDir string // TALKSITE_CONTENT_DIR: Markdown content directory
	SiteDir    string // TALKSITE_SITE_DIR: HTML site directory
	BaseURL    string // TALKSITE_BASE_URL: site base URL
	BuildDate  string // TALKSITE_BUILD_DATE: upcoming/past split date

	// Tier 3 - Extended
	Converter    string // TALKSITE_CONVERTER: goldmark, pandoc
	PandocPath   string // TALKSITE_PANDOC: pandoc binary
	CalendarHost string // TALKSITE_CALENDAR_HOST: iCalendar UID domain
	LogLevel     string // TALKSITE_LOG_LEVEL: debug, info, warn, error
	LogFormat    string // TALKSITE_LOG_FORMAT: console, json, pretty
}

// knownEnvVars lists valid TALKSITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"TALKSITE_CONFIG":  true,
	"TALKSITE_CSV":     true,
	"TALKSITE_TIMEOUT": true,
	// Tier 2 - Directories and site
	"TALKSITE_CONTENT_DIR": true,
	"TALKSITE_SITE_DIR":    true,
	"TALKSITE_BASE_URL":    true,
	"TALKSITE_BUILD_DATE":  true,
	// Tier 3 - Extended
	"TALKSITE_CONVERTER":     true,
	"TALKSITE_PANDOC":        true,
	"TALKSITE_CALENDAR_HOST": true,
	"TALKSITE_LOG_LEVEL":     true,
	"TALKSITE_LOG_FORMAT":    true,
	// doctor
	"TALKSITE_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized TALKSITE_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("TALKSITE_CONFIG"),
		CSV:        os.Getenv("TALKSITE_CSV"),
		// Tier 2
		ContentDir: os.Getenv("TALKSITE_CONTENT_DIR"),
		SiteDir:    os.Getenv("TALKSITE_SITE_DIR"),
		BaseURL:    os.Getenv("TALKSITE_BASE_URL"),
		BuildDate:  os.Getenv("TALKSITE_BUILD_DATE"),
		// Tier 3
		Converter:    os.Getenv("TALKSITE_CONVERTER"),
		PandocPath:   os.Getenv("TALKSITE_PANDOC"),
		CalendarHost: os.Getenv("TALKSITE_CALENDAR_HOST"),
		LogLevel:     os.Getenv("TALKSITE_LOG_LEVEL"),
		LogFormat:    os.Getenv("TALKSITE_LOG_FORMAT"),
	}

	// Parse duration for timeout
	if timeout := os.Getenv("TALKSITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized TALKSITE_* variables.
// Helps catch typos like TALKSITE_SITEDIR instead of TALKSITE_SITE_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "TALKSITE_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied later via
// mergeFlags, giving: CLI flags > env vars > config file > defaults.
// Build date and timeout are resolved separately.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1 - Input
	if env.CSV != "" {
		cfg.Input.CSV = env.CSV
	}

	// Tier 2 - Directories and site
	if env.ContentDir != "" {
		cfg.Output.Content = env.ContentDir
	}
	if env.SiteDir != "" {
		cfg.Output.Site = env.SiteDir
	}
	if env.BaseURL != "" {
		cfg.Site.BaseURL = env.BaseURL
	}

	// Tier 3 - Converter, calendar, logging
	if env.Converter != "" {
		cfg.Converter.Engine = env.Converter
	}
	if env.PandocPath != "" {
		cfg.Converter.PandocPath = env.PandocPath
	}
	if env.CalendarHost != "" {
		cfg.Calendar.Host = env.CalendarHost
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}
