package main

import (
	"errors"
	"os"

	json2docx "github.com/alnah/go-json2docx"
	"github.com/alnah/go-json2docx/internal/config"
)

// Exit codes for the json2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, input shape or theme
	ExitIO      = 3 // File not found, permission denied, save failed
	ExitBrowser = 4 // Browser/Chrome errors (PDF export)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, json2docx.ErrBrowserConnect) ||
		errors.Is(err, json2docx.ErrPageCreate) ||
		errors.Is(err, json2docx.ErrPageLoad) ||
		errors.Is(err, json2docx.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, json2docx.ErrSave) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, json2docx.ErrEmptyInput) ||
		errors.Is(err, json2docx.ErrNotBlockSequence) ||
		errors.Is(err, json2docx.ErrNoJSONPayload) ||
		errors.Is(err, json2docx.ErrUnknownFormat) ||
		errors.Is(err, json2docx.ErrThemeNotFound) ||
		errors.Is(err, json2docx.ErrIncompleteTheme) ||
		errors.Is(err, json2docx.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
