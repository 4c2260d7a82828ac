package main

// Notes:
// - exitCodeFor: we test the sentinel errors of every package a command can
//   return, plus wrapped and joined errors to verify the errors.Is() chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	talksite "github.com/alnah/go-talksite"
	"github.com/alnah/go-talksite/internal/assets"
	"github.com/alnah/go-talksite/internal/buildcheck"
	"github.com/alnah/go-talksite/internal/config"
	"github.com/alnah/go-talksite/internal/csvreader"
	"github.com/alnah/go-talksite/internal/pipeline"
	"github.com/alnah/go-talksite/internal/validate"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser and converter errors (exit 4)
		{"browser connect", talksite.ErrBrowserConnect, ExitBrowser},
		{"page create", talksite.ErrPageCreate, ExitBrowser},
		{"page load", talksite.ErrPageLoad, ExitBrowser},
		{"pdf generation", talksite.ErrPDFGeneration, ExitBrowser},
		{"pandoc not found", pipeline.ErrPandocNotFound, ExitBrowser},
		{"html conversion", fmt.Errorf("rendering T1/index.md: %w", pipeline.ErrHTMLConversion), ExitBrowser},

		// Build check (exit 5)
		{"build check", buildcheck.ErrBuildCheck, ExitCheck},
		{"validation and check joined", errors.Join(validate.Errors{{Line: 2, ID: "T1", Field: "title", Message: "required"}}, buildcheck.ErrBuildCheck), ExitCheck},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"no input", ErrNoInput, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config", config.ErrInvalidConfig, ExitUsage},
		{"malformed csv", &csvreader.ParseError{Line: 1, Reason: "missing header row"}, ExitUsage},
		{"invalid rows", validate.Errors{{Line: 3, ID: "T2", Field: "status", Message: "unknown"}}, ExitUsage},
		{"invalid build date", talksite.ErrInvalidBuildDate, ExitUsage},
		{"unknown converter", talksite.ErrUnknownConverter, ExitUsage},
		{"invalid asset path", talksite.ErrInvalidAssetPath, ExitUsage},
		{"style not found", assets.ErrStyleNotFound, ExitUsage},
		{"template set not found", assets.ErrTemplateSetNotFound, ExitUsage},
		{"incomplete template set", assets.ErrIncompleteTemplateSet, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"content not found", talksite.ErrContentNotFound, ExitIO},
		{"read html", talksite.ErrReadHTML, ExitIO},
		{"write pdf", talksite.ErrWritePDF, ExitIO},
		{"wrapped file not exist", fmt.Errorf("opening CSV: %w", os.ErrNotExist), ExitIO},

		// General errors (exit 1)
		{"deadline", context.DeadlineExceeded, ExitGeneral},
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}

	codes := map[string]int{
		"ExitIO":      ExitIO,
		"ExitBrowser": ExitBrowser,
		"ExitCheck":   ExitCheck,
	}
	seen := map[int]string{}
	for name, code := range codes {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("%s = %d, want 2 < code < 126", name, code)
		}
		if other, ok := seen[code]; ok {
			t.Errorf("%s and %s share exit code %d", name, other, code)
		}
		seen[code] = name
	}
}
