package assets

import "errors"

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound       = errors.New("style not found")
	ErrTemplateSetNotFound = errors.New("template set not found")

	// ErrIncompleteTemplateSet means a template set directory lacks page.html
	// or pandoc.html.
	ErrIncompleteTemplateSet = errors.New("template set missing required template")

	// ErrInvalidAssetName means the name holds a path separator or a dot.
	ErrInvalidAssetName = errors.New("invalid asset name")

	ErrInvalidBasePath = errors.New("invalid base path")
	ErrAssetRead       = errors.New("failed to read asset")
	ErrPathTraversal   = errors.New("path traversal detected")
)
