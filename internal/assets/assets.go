package assets

// defaultLoader serves the package-level helpers.
var defaultLoader = NewEmbeddedLoader()

// LoadTheme loads an embedded theme by name.
func LoadTheme(name string) (*Theme, error) {
	return defaultLoader.LoadTheme(name)
}

// ThemeNames lists the embedded themes, for help text and error hints.
func ThemeNames() []string {
	return defaultLoader.Names()
}
