package json2docx

import (
	"time"

	"github.com/alnah/go-json2docx/internal/pipeline"
)

// Renderer defaults.
const (
	// DefaultFallbackPath is where RenderFile retries when the primary save fails.
	DefaultFallbackPath = "report_fallback.docx"

	defaultTimeout = 30 * time.Second
)

// Metadata describes the document in its properties and HTML head.
type Metadata struct {
	Title       string // defaults to the first heading's text
	Author      string
	Subject     string
	Description string
	Date        string // "2025-01-31", "auto", "auto:DD/MM/YYYY" or free text
	ID          string // defaults to a random urn:uuid
}

// Footer configures a page footer.
type Footer struct {
	Text           string
	ShowPageNumber bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds settings applied by options.
type rendererConfig struct {
	theme        string
	assetPath    string
	meta         Metadata
	footer       *Footer
	fallbackPath string
	timeout      time.Duration
	now          func() time.Time
}

// WithTheme selects a theme by name. Defaults to "default".
func WithTheme(name string) Option {
	return func(r *Renderer) {
		r.cfg.theme = name
	}
}

// WithAssetPath loads themes from a directory, falling back to the built-in
// themes for names it does not provide.
// Ignored when WithAssetLoader is also set.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom theme loader.
func WithAssetLoader(loader AssetLoader) Option {
	return func(r *Renderer) {
		r.assetLoader = loader
	}
}

// WithMetadata sets document properties.
func WithMetadata(meta Metadata) Option {
	return func(r *Renderer) {
		r.cfg.meta = meta
	}
}

// WithFooter adds a page footer. A nil footer disables it.
func WithFooter(f *Footer) Option {
	return func(r *Renderer) {
		r.cfg.footer = f
	}
}

// WithFallbackPath overrides the path used when the primary save fails.
func WithFallbackPath(path string) Option {
	return func(r *Renderer) {
		if path != "" {
			r.cfg.fallbackPath = path
		}
	}
}

// WithTimeout sets the page load timeout for PDF export.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		if d > 0 {
			r.cfg.timeout = d
		}
	}
}

// Internal options for tests.

func withTokenizer(t pipeline.InlineTokenizer) Option {
	return func(r *Renderer) {
		r.tokenizer = t
	}
}

func withStripper(s pipeline.MarkdownStripper) Option {
	return func(r *Renderer) {
		r.stripper = s
	}
}

func withPDFConverter(c pdfConverter) Option {
	return func(r *Renderer) {
		r.pdfConverter = c
	}
}

func withClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.cfg.now = now
	}
}
