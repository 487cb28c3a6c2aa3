package assets

// DefaultThemeName is the theme used when none is configured.
const DefaultThemeName = "default"

// Theme file names inside a theme directory.
const (
	StylesFile = "styles.xml"
	CSSFile    = "style.css"
)

// Theme bundles the styles part for DOCX output with the stylesheet used
// for HTML and PDF export.
type Theme struct {
	Name   string // identifier (name or directory)
	Styles []byte // word/styles.xml content
	CSS    string // HTML stylesheet
}

// ThemeLoader loads themes by name.
// Implementations may read from embedded files, disk, or any other store.
type ThemeLoader interface {
	// LoadTheme returns ErrThemeNotFound when the theme does not exist,
	// ErrIncompleteTheme when one of its files is missing, and
	// ErrInvalidAssetName when the name is unsafe.
	LoadTheme(name string) (*Theme, error)
}
