// Package hints builds the "hint:" suffixes the CLI appends to errors.
// Every hint renders as "\n  hint: <text>" so messages stay uniform.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-json2docx/internal/fileutil"
)

// CIVars are the environment variables that mark a CI runner.
var CIVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// IsInContainer reports whether /.dockerenv exists. Replaced in tests.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether any of CIVars is set.
func InCI() bool {
	for _, v := range CIVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect explains how to get Chrome running for PDF export, and
// always offers DOCX as the browser-free alternative.
func ForBrowserConnect() string {
	var parts []string
	if (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	parts = append(parts, "or use --format docx, which needs no browser")
	return formatHints(parts)
}

// ForTimeout suggests a longer PDF export timeout.
func ForTimeout() string {
	return format("long documents can need more time: raise --timeout or JSON2DOCX_TIMEOUT")
}

// ForSave suggests where to look when neither the output nor the fallback
// path could be written.
func ForSave() string {
	return format("check the output directory is writable, or point --fallback at a writable path")
}

// ForConfigNotFound suggests --config and, when a user config location was
// searched, creating the file there.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	marker := string(filepath.Separator) + "go-json2docx" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForThemeNotFound lists the usable theme names. Empty when there are none.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForInvalidInput shows the expected block input shape.
func ForInvalidInput() string {
	return format(`input must be an array of blocks, e.g. [{"type":"heading","level":1,"text":"Title"}]`)
}

// ForNoJSONPayload suggests how to convert text without a JSON block.
func ForNoJSONPayload() string {
	return format("wrap the blocks in a ```json fence, or use --from markdown")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return format(strings.Join(parts, "; "))
}
