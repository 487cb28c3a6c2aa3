package json2docx

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/alnah/go-json2docx/internal/dateutil"
	"github.com/alnah/go-json2docx/internal/document"
	"github.com/alnah/go-json2docx/internal/docx"
	"github.com/alnah/go-json2docx/internal/fileutil"
	"github.com/alnah/go-json2docx/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.InlineTokenizer  = pipeline.BoldTokenizer{}
	_ pipeline.MarkdownStripper = pipeline.SyntaxStripper{}
	_ pipeline.CSSInjector      = (*pipeline.CSSInjection)(nil)
	_ pdfConverter              = (*rodConverter)(nil)
	_ pdfRenderer               = (*rodRenderer)(nil)
)

// Heading styling.
const (
	headingTopSize  = 16.0 // level 1
	headingBaseSize = 14.0 // level 2, shrinking one point per level
	headingMinSize  = 8.0
)

// Fallback content for blocks that fail to render.
const (
	fallbackHeading   = "Heading"
	fallbackListItem  = "List item"
	textErrorFallback = "Text processing error"
)

var (
	navy  = document.Color{R: 0, G: 0, B: 128}
	black = document.Color{}
)

// Renderer turns blocks into documents.
// Create with NewRenderer, use Render or RenderFile, and Close when done.
//
// A Renderer holds no per-render state and is safe for concurrent use.
type Renderer struct {
	cfg          rendererConfig
	assetLoader  AssetLoader
	tokenizer    pipeline.InlineTokenizer
	stripper     pipeline.MarkdownStripper
	htmlExporter pipeline.HTMLExporter
	pdfConverter pdfConverter
	writer       *docx.Writer
	theme        *Theme
}

// NewRenderer creates a Renderer with the default theme.
// Use options to customize behavior (e.g., WithTheme, WithMetadata, WithFooter).
// Returns an error if the theme cannot be loaded or the date setting is invalid.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			theme:        DefaultTheme,
			fallbackPath: DefaultFallbackPath,
			timeout:      defaultTimeout,
			now:          time.Now,
		},
		tokenizer:    pipeline.BoldTokenizer{},
		stripper:     pipeline.SyntaxStripper{},
		htmlExporter: pipeline.NewDocumentHTML(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.assetLoader == nil {
		loader, err := NewAssetLoader(r.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		r.assetLoader = loader
	}

	theme, err := r.assetLoader.LoadTheme(r.cfg.theme)
	if err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", r.cfg.theme, err)
	}
	r.theme = theme

	r.writer, err = docx.NewWriter(theme.Styles)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrIncompleteTheme, theme.Name, err)
	}

	if _, err := dateutil.Resolve(r.cfg.meta.Date, r.cfg.now()); err != nil {
		return nil, fmt.Errorf("document date: %w", err)
	}

	if r.pdfConverter == nil {
		r.pdfConverter = newRodConverter(r.cfg.timeout)
	}

	return r, nil
}

// Close releases browser resources held for PDF export.
func (r *Renderer) Close() error {
	if r.pdfConverter != nil {
		return r.pdfConverter.Close()
	}
	return nil
}

// Theme returns the loaded theme's name.
func (r *Renderer) Theme() string {
	return r.theme.Name
}

// Render builds a document from blocks in order.
//
// Malformed blocks never abort the sequence: each is replaced by its fallback
// element and rendering continues. Only a cancelled context stops it.
func (r *Renderer) Render(ctx context.Context, blocks []Block) (*Document, error) {
	model := document.New(r.metadata(blocks))
	model.Footer = r.footer()

	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.renderBlock(model, b)
	}

	return newDocument(model, r.writer, r.htmlExporter, r.theme.CSS), nil
}

// RenderFile renders blocks and writes DOCX to path, retrying once at the
// fallback path. Returns the path actually written.
func (r *Renderer) RenderFile(ctx context.Context, blocks []Block, path string) (string, error) {
	doc, err := r.Render(ctx, blocks)
	if err != nil {
		return "", err
	}
	return r.SaveAs(ctx, doc, path, FormatDOCX)
}

// Export encodes doc in the given output format.
func (r *Renderer) Export(ctx context.Context, doc *Document, format Format) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	switch format {
	case FormatDOCX:
		return doc.Bytes()
	case FormatHTML:
		html, err := doc.HTML(ctx)
		if err != nil {
			return nil, err
		}
		return []byte(html), nil
	case FormatPDF:
		return r.ExportPDF(ctx, doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// SaveAs encodes doc and writes it to path. When the write fails it retries
// once at the fallback path, with the extension adjusted to format, and
// returns that path. Encoding errors are returned without retry.
func (r *Renderer) SaveAs(ctx context.Context, doc *Document, path string, format Format) (string, error) {
	return r.SaveAsWithFallback(ctx, doc, path, r.cfg.fallbackPath, format)
}

// SaveAsWithFallback is SaveAs with the fallback path given per call, for
// callers that share one Renderer across documents and need a distinct
// fallback for each. An empty fallback means the configured one.
func (r *Renderer) SaveAsWithFallback(ctx context.Context, doc *Document, path, fallback string, format Format) (string, error) {
	data, err := r.Export(ctx, doc, format)
	if err != nil {
		return "", err
	}

	writeErr := os.WriteFile(path, data, 0644)
	if writeErr == nil {
		return path, nil
	}

	if fallback == "" {
		fallback = r.cfg.fallbackPath
	}
	fallback = fileutil.ReplaceExt(fallback, format.Ext())
	if err := os.WriteFile(fallback, data, 0644); err != nil {
		return "", fmt.Errorf("%w: %s: %v (fallback %s: %v)", ErrSave, path, writeErr, fallback, err)
	}
	return fallback, nil
}

// metadata resolves document properties for one render.
func (r *Renderer) metadata(blocks []Block) document.Metadata {
	m := r.cfg.meta
	date, _ := dateutil.Resolve(m.Date, r.cfg.now()) // validated by NewRenderer

	title := m.Title
	if title == "" {
		title = firstHeading(blocks, r.strip)
	}
	id := m.ID
	if id == "" {
		id = "urn:uuid:" + uuid.NewString()
	}

	return document.Metadata{
		Title:       title,
		Author:      m.Author,
		Subject:     m.Subject,
		Description: m.Description,
		Identifier:  id,
		Created:     date.Time,
	}
}

// footer combines the footer text with the display date.
func (r *Renderer) footer() *document.Footer {
	f := r.cfg.footer
	if f == nil {
		return nil
	}

	var parts []string
	if f.Text != "" {
		parts = append(parts, f.Text)
	}
	if date, err := dateutil.Resolve(r.cfg.meta.Date, r.cfg.now()); err == nil && date.Display != "" {
		parts = append(parts, date.Display)
	}
	if len(parts) == 0 && !f.ShowPageNumber {
		return nil
	}
	return &document.Footer{Text: strings.Join(parts, " - "), ShowPageNumber: f.ShowPageNumber}
}

// firstHeading returns the stripped text of the first well-formed heading.
func firstHeading(blocks []Block, strip func(string) string) string {
	for _, b := range blocks {
		if b.Type == BlockHeading && !b.skip && b.Err == nil {
			if t := strings.TrimSpace(strip(b.Text)); t != "" {
				return t
			}
		}
	}
	return ""
}

// ---------------------------------------------------------------------------
// Block dispatch
// ---------------------------------------------------------------------------

func (r *Renderer) renderBlock(doc *document.Document, b Block) {
	if b.Skipped() {
		return
	}
	switch b.Type {
	case BlockHeading:
		r.renderHeading(doc, b)
	case BlockParagraph:
		r.renderParagraph(doc, b)
	case BlockList:
		r.renderList(doc, b)
	}
}

func (r *Renderer) renderHeading(doc *document.Document, b Block) {
	defer func() {
		if rec := recover(); rec != nil {
			doc.Append(headingParagraph(1, fallbackHeading))
		}
	}()

	if b.Err != nil {
		doc.Append(headingParagraph(1, fallbackHeading))
		return
	}
	doc.Append(headingParagraph(b.Level, r.strip(b.Text)))
}

func (r *Renderer) renderParagraph(doc *document.Document, b Block) {
	defer func() {
		if rec := recover(); rec != nil {
			doc.Append(document.Paragraph{Kind: document.KindBody, Style: document.StyleNormal, Align: document.AlignJustify})
		}
	}()

	doc.Append(document.Paragraph{
		Kind:  document.KindBody,
		Style: document.StyleNormal,
		Align: document.AlignJustify,
		Runs:  r.inlineRuns(b.Text),
	})
}

// renderList emits one bullet per item. A failure appends a single
// placeholder bullet after the bullets already emitted.
func (r *Renderer) renderList(doc *document.Document, b Block) {
	defer func() {
		if rec := recover(); rec != nil {
			doc.Append(bulletParagraph([]document.Run{{Text: fallbackListItem}}))
		}
	}()

	if b.Err != nil {
		doc.Append(bulletParagraph([]document.Run{{Text: fallbackListItem}}))
		return
	}
	for _, item := range b.Items {
		doc.Append(bulletParagraph(r.inlineRuns(item.DisplayText())))
	}
}

func headingParagraph(level int, text string) document.Paragraph {
	color, size := navy, headingTopSize
	if level > 1 {
		color = black
		size = max(headingBaseSize-float64(level-2), headingMinSize)
	}

	p := document.Paragraph{
		Kind:  document.KindHeading,
		Level: level,
		Style: document.HeadingStyle(level),
	}
	if text != "" {
		p.Runs = []document.Run{{Text: text, Color: &color, Size: size}}
	}
	return p
}

func bulletParagraph(runs []document.Run) document.Paragraph {
	return document.Paragraph{
		Kind:  document.KindBullet,
		Style: document.StyleListBullet,
		Align: document.AlignJustify,
		Runs:  runs,
	}
}

// ---------------------------------------------------------------------------
// Inline text
// ---------------------------------------------------------------------------

// inlineRuns tokenizes text into runs. If tokenizing panics the raw text is
// used as a single run, and text that is not valid UTF-8 becomes a
// placeholder.
func (r *Renderer) inlineRuns(text string) (runs []document.Run) {
	defer func() {
		if rec := recover(); rec != nil {
			runs = rawRuns(text)
		}
	}()

	tokens := r.tokenizer.Tokenize(text)
	runs = make([]document.Run, 0, len(tokens))
	for _, t := range tokens {
		if t.Text == "" {
			continue
		}
		runs = append(runs, document.Run{Text: t.Text, Bold: t.Bold})
	}
	return runs
}

func rawRuns(text string) []document.Run {
	if !utf8.ValidString(text) {
		return []document.Run{{Text: textErrorFallback}}
	}
	if text == "" {
		return nil
	}
	return []document.Run{{Text: text}}
}

// strip removes inline markdown, returning text unchanged if the stripper panics.
func (r *Renderer) strip(text string) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			out = text
		}
	}()
	return r.stripper.Strip(text)
}
