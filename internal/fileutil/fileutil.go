// Package fileutil provides file, path and file-name helpers.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// DefaultReportName is the output base name when no heading is available.
const DefaultReportName = "report"

// SlugWords is the number of heading words kept in a derived file name.
const SlugWords = 4

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "json2docx-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
//
// Examples:
//   - "corporate" -> false (name)
//   - "./themes" -> true (relative path)
//   - "C:\themes" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// ReplaceExt swaps the extension of path for ext (which includes the dot).
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

var (
	nonSlugChars = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugSpacing  = regexp.MustCompile(`[-\s_]+`)
)

// foldAccents decomposes text and drops combining marks: "Café" -> "Cafe".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns the first maxWords words of text into a lowercase file-name
// fragment. Accents are folded, punctuation is removed, and runs of spaces
// dashes and underscores become a single underscore. Returns "" when nothing remains.
func Slugify(text string, maxWords int) string {
	words := strings.Fields(text)
	if maxWords > 0 && len(words) > maxWords {
		words = words[:maxWords]
	}
	s := strings.ToLower(strings.Join(words, "_"))
	if folded, _, err := transform.String(foldAccents, s); err == nil {
		s = folded
	}
	s = nonSlugChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = slugSpacing.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// DeriveOutputName builds "<slug>_report<ext>" from a heading, or
// "report<ext>" when the heading yields no slug.
func DeriveOutputName(heading, ext string) string {
	slug := Slugify(heading, SlugWords)
	if slug == "" {
		return DefaultReportName + ext
	}
	return slug + "_" + DefaultReportName + ext
}
