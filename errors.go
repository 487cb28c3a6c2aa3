package json2docx

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyInput       = errors.New("block input cannot be empty")
	ErrNotBlockSequence = errors.New("top-level value is not a block sequence")
	ErrNoJSONPayload    = errors.New("no JSON payload found")
	ErrSave             = errors.New("failed to save document")
	ErrNilDocument      = errors.New("document cannot be nil")
	ErrUnknownFormat    = errors.New("unknown output format")

	// Block field errors. The renderer turns these into block fallbacks;
	// decoding never fails because of them.
	ErrInvalidLevel = errors.New("heading level must be a positive integer")
	ErrInvalidItems = errors.New("list items must be a sequence")

	// PDF export errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Asset loading errors.
	ErrThemeNotFound    = errors.New("theme not found")
	ErrIncompleteTheme  = errors.New("theme missing required file")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
