package assets

import (
	"errors"
	"sort"
)

// AssetResolver combines a custom filesystem loader with the embedded themes.
// The custom loader wins; the embedded one is consulted only when the custom
// directory does not have the theme at all.
type AssetResolver struct {
	custom   *FilesystemLoader // nil if no custom path configured
	embedded *EmbeddedLoader
}

// NewAssetResolver creates an AssetResolver.
// An empty customBasePath uses embedded themes only.
// Returns an error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTheme loads a theme, trying the custom loader first if configured.
// Validation, I/O and incomplete-theme errors are returned without fallback.
func (r *AssetResolver) LoadTheme(name string) (*Theme, error) {
	if r.custom == nil {
		return r.embedded.LoadTheme(name)
	}

	theme, err := r.custom.LoadTheme(name)
	if err == nil {
		return theme, nil
	}
	if !errors.Is(err, ErrThemeNotFound) {
		return nil, err
	}

	return r.embedded.LoadTheme(name)
}

// Names lists every theme the resolver can load, custom and embedded, sorted
// and deduplicated.
func (r *AssetResolver) Names() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(list []string) {
		for _, n := range list {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	add(r.embedded.Names())
	if r.custom != nil {
		add(r.custom.Names())
	}
	sort.Strings(names)
	return names
}

// HasCustomLoader reports whether a custom asset path is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ ThemeLoader = (*AssetResolver)(nil)
