// Package assets provides document themes for DOCX and HTML output.
//
// # Loader Architecture
//
//	ThemeLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - themes compiled into the binary
//	    ├── FilesystemLoader  - themes from a directory on disk
//	    └── AssetResolver     - custom first, embedded on not-found
//
// # Directory Structure
//
//	{basePath}/
//	└── themes/
//	    └── {name}/
//	        ├── styles.xml   # WordprocessingML styles part
//	        └── style.css    # stylesheet for HTML and PDF export
//
// A theme directory missing one of the two files is incomplete and is
// reported as such rather than silently mixed with the embedded theme.
//
// # Security
//
// Theme names are validated against path traversal, and FilesystemLoader
// resolves symlinks before checking that paths stay within basePath.
package assets
