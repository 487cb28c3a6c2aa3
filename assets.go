package json2docx

import (
	"errors"

	"github.com/alnah/go-json2docx/internal/assets"
)

// DefaultTheme is the name of the built-in theme.
const DefaultTheme = assets.DefaultThemeName

// AssetLoader defines the contract for loading themes.
// Implementations may load from the filesystem, embedded assets, a database, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded themes. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadTheme loads a theme by name.
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrIncompleteTheme if one of its files is missing.
	LoadTheme(name string) (*Theme, error)
}

// Theme holds the styles used for one look across output formats.
type Theme struct {
	Name   string // identifier
	Styles []byte // word/styles.xml for DOCX output
	CSS    string // stylesheet for HTML and PDF output
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded themes.
// If basePath is set, custom themes take precedence with fallback to embedded.
//
// The basePath directory should contain themes/{name}/styles.xml and
// themes/{name}/style.css.
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// ThemeNames lists the themes available under basePath plus the built-in ones.
func ThemeNames(basePath string) ([]string, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return resolver.Names(), nil
}

// assetLoaderAdapter wraps the internal AssetResolver to return public types.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadTheme(name string) (*Theme, error) {
	t, err := a.resolver.LoadTheme(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &Theme{Name: t.Name, Styles: t.Styles, CSS: t.CSS}, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrThemeNotFound):
		return wrapError(ErrThemeNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTheme):
		return wrapError(ErrIncompleteTheme, err)
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrThemeNotFound, err) // invalid name means not found
	default:
		return err
	}
}

// wrapError keeps the original message while matching the public sentinel
// through errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel. Internal errors are not exposed.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
