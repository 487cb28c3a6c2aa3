package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed themes
var themes embed.FS

// EmbeddedLoader loads themes compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTheme reads themes/{name}/styles.xml and style.css from the embedded FS.
func (e *EmbeddedLoader) LoadTheme(name string) (*Theme, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := path.Join("themes", name)
	styles, stylesErr := themes.ReadFile(path.Join(dir, StylesFile))
	css, cssErr := themes.ReadFile(path.Join(dir, CSSFile))

	switch {
	case errors.Is(stylesErr, fs.ErrNotExist) && errors.Is(cssErr, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	case stylesErr != nil:
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTheme, name, StylesFile)
	case cssErr != nil:
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTheme, name, CSSFile)
	}

	return &Theme{Name: name, Styles: styles, CSS: string(css)}, nil
}

// Names lists the embedded theme names in sorted order.
func (e *EmbeddedLoader) Names() []string {
	entries, err := themes.ReadDir("themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ ThemeLoader = (*EmbeddedLoader)(nil)
