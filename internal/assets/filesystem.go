package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FilesystemLoader loads themes from {basePath}/themes/{name}/.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Containment checks compare resolved paths, so the base must be resolved too.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// BasePath returns the resolved base directory.
func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

// LoadTheme reads styles.xml and style.css from {basePath}/themes/{name}/.
func (f *FilesystemLoader) LoadTheme(name string) (*Theme, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := filepath.Join(f.basePath, "themes", name)
	stylesPath := filepath.Join(dir, StylesFile)
	cssPath := filepath.Join(dir, CSSFile)

	for _, p := range []string{stylesPath, cssPath} {
		if err := f.verifyPathContainment(p); err != nil {
			return nil, err
		}
	}

	styles, stylesErr := os.ReadFile(stylesPath) // #nosec G304 -- path validated above
	css, cssErr := os.ReadFile(cssPath)          // #nosec G304 -- path validated above

	stylesMissing := errors.Is(stylesErr, fs.ErrNotExist)
	cssMissing := errors.Is(cssErr, fs.ErrNotExist)

	if stylesMissing && cssMissing {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if stylesErr != nil && !stylesMissing {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, StylesFile, stylesErr)
	}
	if cssErr != nil && !cssMissing {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, CSSFile, cssErr)
	}
	if stylesMissing {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTheme, name, StylesFile)
	}
	if cssMissing {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTheme, name, CSSFile)
	}

	return &Theme{Name: name, Styles: styles, CSS: string(css)}, nil
}

// Names lists theme directories under {basePath}/themes, sorted.
// A missing themes directory yields an empty list.
func (f *FilesystemLoader) Names() []string {
	entries, err := os.ReadDir(filepath.Join(f.basePath, "themes"))
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && ValidateAssetName(e.Name()) == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// verifyPathContainment ensures the resolved path stays within basePath,
// following symlinks so a link cannot point outside it.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file fails EvalSymlinks; the prefix check still applies.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}

// Compile-time interface check.
var _ ThemeLoader = (*FilesystemLoader)(nil)
