package main

import (
	"errors"
	"os"

	talksite "github.com/alnah/go-talksite"
	"github.com/alnah/go-talksite/internal/assets"
	"github.com/alnah/go-talksite/internal/buildcheck"
	"github.com/alnah/go-talksite/internal/config"
	"github.com/alnah/go-talksite/internal/csvreader"
	"github.com/alnah/go-talksite/internal/pipeline"
	"github.com/alnah/go-talksite/internal/validate"
)

// Exit codes for the talksite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Site generated, rendered or checked
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, CSV or talk rows
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser or converter errors
	ExitCheck   = 5 // Built site failed the structural check
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// A build that both skipped invalid rows and failed the check exits with
// ExitCheck.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser and converter errors (exit 4)
	if errors.Is(err, talksite.ErrBrowserConnect) ||
		errors.Is(err, talksite.ErrPageCreate) ||
		errors.Is(err, talksite.ErrPageLoad) ||
		errors.Is(err, talksite.ErrPDFGeneration) ||
		errors.Is(err, pipeline.ErrPandocNotFound) ||
		errors.Is(err, pipeline.ErrHTMLConversion) {
		return ExitBrowser
	}

	// Build check errors (exit 5)
	if errors.Is(err, buildcheck.ErrBuildCheck) {
		return ExitCheck
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, csvreader.ErrParse) ||
		errors.Is(err, validate.ErrValidation) ||
		errors.Is(err, talksite.ErrInvalidBuildDate) ||
		errors.Is(err, talksite.ErrUnknownConverter) ||
		errors.Is(err, talksite.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateSetNotFound) ||
		errors.Is(err, assets.ErrIncompleteTemplateSet) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, talksite.ErrContentNotFound) ||
		errors.Is(err, talksite.ErrReadHTML) ||
		errors.Is(err, talksite.ErrWritePDF) {
		return ExitIO
	}

	return ExitGeneral
}
