package main

// Notes:
// - resolveBuildDate and resolveTimeoutWithEnv: we test precedence
//   (flag > env > default) and parsing errors.
// - mergeFlags: CLI values override config values, --quiet wins over --verbose.
// - hintFor: each hinted sentinel gets its hint; other errors get none.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	talksite "github.com/alnah/go-talksite"
	"github.com/alnah/go-talksite/internal/buildcheck"
	"github.com/alnah/go-talksite/internal/config"
	"github.com/alnah/go-talksite/internal/pipeline"
	"github.com/alnah/go-talksite/internal/validate"
)

// ---------------------------------------------------------------------------
// TestResolveBuildDate - Flag, env and today
// ---------------------------------------------------------------------------

func TestResolveBuildDate(t *testing.T) {
	t.Parallel()

	now := func() time.Time { return time.Date(2026, 3, 1, 23, 45, 0, 0, time.UTC) }

	tests := []struct {
		name    string
		flag    string
		env     string
		want    time.Time
		wantErr bool
	}{
		{"default is today", "", "", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"env", "", "2025-12-31", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), false},
		{"flag wins over env", "2026-01-15", "2025-12-31", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"today keyword", "today", "2025-12-31", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"invalid", "someday", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveBuildDate(tt.flag, tt.env, now)
			if tt.wantErr {
				if !errors.Is(err, talksite.ErrInvalidBuildDate) {
					t.Errorf("error = %v, want ErrInvalidBuildDate", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("resolveBuildDate(%q, %q) = %v, want %v", tt.flag, tt.env, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveTimeoutWithEnv - Duration parsing and priority
// ---------------------------------------------------------------------------

func TestResolveTimeoutWithEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flagValue string
		envValue  time.Duration
		want      time.Duration
		wantErr   bool
	}{
		{"no timeout", "", 0, 0, false},
		{"env", "", 45 * time.Second, 45 * time.Second, false},
		{"flag wins over env", "2m", 45 * time.Second, 2 * time.Minute, false},
		{"unparsable flag", "soon", 0, 0, true},
		{"zero flag", "0s", 0, 0, true},
		{"negative flag", "-5s", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeoutWithEnv(tt.flagValue, tt.envValue)
			if tt.wantErr {
				if !errors.Is(err, ErrUsage) {
					t.Errorf("error = %v, want ErrUsage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeoutWithEnv(%q, %v) = %v, want %v", tt.flagValue, tt.envValue, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI overrides config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("site flags", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		flags := &commandFlags{
			common: commonFlags{logFormat: "json"},
			site: siteFlags{
				csv:       "in.csv",
				content:   "md",
				site:      "public",
				baseURL:   "/talks/",
				converter: "pandoc",
			},
		}
		mergeFlags(flags, cfg)

		if cfg.Input.CSV != "in.csv" || cfg.Output.Content != "md" || cfg.Output.Site != "public" {
			t.Errorf("paths = %q %q %q", cfg.Input.CSV, cfg.Output.Content, cfg.Output.Site)
		}
		if cfg.Site.BaseURL != "/talks/" || cfg.Converter.Engine != "pandoc" || cfg.Log.Format != "json" {
			t.Errorf("site = %q %q %q", cfg.Site.BaseURL, cfg.Converter.Engine, cfg.Log.Format)
		}
	})

	t.Run("empty flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Output.Site = "from-file"
		mergeFlags(&commandFlags{}, cfg)

		if cfg.Output.Site != "from-file" || cfg.Log.Level != "info" {
			t.Errorf("Output.Site = %q, Log.Level = %q", cfg.Output.Site, cfg.Log.Level)
		}
	})

	t.Run("log level", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			quiet, verbose bool
			want           string
		}{
			{false, true, "debug"},
			{true, false, "error"},
			{true, true, "error"},
		}
		for _, tt := range tests {
			cfg := config.DefaultConfig()
			mergeFlags(&commandFlags{common: commonFlags{quiet: tt.quiet, verbose: tt.verbose}}, cfg)
			if cfg.Log.Level != tt.want {
				t.Errorf("quiet=%v verbose=%v: Log.Level = %q, want %q", tt.quiet, tt.verbose, cfg.Log.Level, tt.want)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Explicit and implicit config files
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("explicit file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "site.yaml")
		if err := os.WriteFile(path, []byte("site:\n  title: My Talks\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := loadConfig(path, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Site.Title != "My Talks" {
			t.Errorf("Site.Title = %q, want My Talks", cfg.Site.Title)
		}
	})

	t.Run("env path used without flag", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig("", filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "site.yaml")
		if err := os.WriteFile(path, []byte("site:\n  colour: red\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := loadConfig(path, ""); !errors.Is(err, config.ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cmd  string
		err  error
		want string // substring; "" means no hint
	}{
		{"pandoc", cmdRender, fmt.Errorf("rendering: %w", pipeline.ErrPandocNotFound), "install pandoc"},
		{"timeout", cmdBuild, context.DeadlineExceeded, "--timeout"},
		{"config", cmdBuild, config.ErrConfigNotFound, "--config"},
		{"build check", cmdCheck, buildcheck.ErrBuildCheck, "talksite build"},
		{"content missing", cmdRender, talksite.ErrContentNotFound, "talksite build"},
		{"validation", cmdGenerate, validate.Errors{{Line: 2, Field: "title"}}, "line numbers"},
		{"write pdf", cmdPDF, talksite.ErrWritePDF, "writable"},
		{"csv missing", cmdGenerate, fmt.Errorf("opening CSV: %w", os.ErrNotExist), "TALKSITE_CSV"},
		{"not found outside csv commands", cmdPDF, os.ErrNotExist, ""},
		{"unknown", cmdBuild, errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.cmd, tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want none", got)
				}
				return
			}
			if !strings.HasPrefix(got, "\n  hint: ") || !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want hint containing %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMaxArgs
// ---------------------------------------------------------------------------

func TestMaxArgs(t *testing.T) {
	t.Parallel()

	tests := map[string]int{
		cmdGenerate: 1,
		cmdBuild:    1,
		cmdPDF:      1,
		cmdRender:   0,
		cmdCheck:    0,
	}
	for cmd, want := range tests {
		if got := maxArgs(cmd); got != want {
			t.Errorf("maxArgs(%q) = %d, want %d", cmd, got, want)
		}
	}
}
