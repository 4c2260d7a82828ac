package talksite

import "errors"

// Sentinel errors for library operations.
var (
	ErrContentNotFound  = errors.New("content directory not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrInvalidBuildDate = errors.New("invalid build date")
	ErrUnknownConverter = errors.New("unknown converter engine")

	// PDF export errors.
	ErrReadHTML       = errors.New("failed to read HTML page")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrWritePDF       = errors.New("failed to write PDF file")
)
