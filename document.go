package json2docx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/alnah/go-json2docx/internal/document"
	"github.com/alnah/go-json2docx/internal/docx"
	"github.com/alnah/go-json2docx/internal/pipeline"
)

// Format names an output encoding.
type Format string

// Supported output formats.
const (
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates an output format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatDOCX, FormatHTML, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (use docx, html or pdf)", ErrUnknownFormat, s)
	}
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Rendered document model, re-exported for inspection.
type (
	RenderedParagraph = document.Paragraph
	RenderedRun       = document.Run
	Color             = document.Color
	ParagraphKind     = document.Kind
)

// Paragraph kinds.
const (
	KindBody    = document.KindBody
	KindHeading = document.KindHeading
	KindBullet  = document.KindBullet
)

// Document is a rendered document ready to be saved.
type Document struct {
	model  *document.Document
	writer *docx.Writer
	html   pipeline.HTMLExporter
	css    string
}

func newDocument(model *document.Document, w *docx.Writer, html pipeline.HTMLExporter, css string) *Document {
	return &Document{model: model, writer: w, html: html, css: css}
}

// Title returns the document title property.
func (d *Document) Title() string {
	return d.model.Meta.Title
}

// Paragraphs returns a copy of the rendered paragraphs in document order.
func (d *Document) Paragraphs() []RenderedParagraph {
	return slices.Clone(d.model.Paragraphs)
}

// PlainText returns one line per paragraph, with "#" heading and "- " bullet
// prefixes.
func (d *Document) PlainText() string {
	return d.model.PlainText()
}

// Bytes encodes the document as DOCX.
func (d *Document) Bytes() ([]byte, error) {
	return d.writer.Bytes(d.model)
}

// WriteTo writes the document as DOCX to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := d.writer.Write(&buf, d.model); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// Save writes the document as DOCX to path. Unlike Renderer.RenderFile it
// does not retry at a fallback path.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrSave, err)
	}
	return nil
}

// HTML returns the document as a standalone HTML page styled with the
// theme's CSS.
func (d *Document) HTML(ctx context.Context) (string, error) {
	return d.html.ExportHTML(ctx, d.model, d.css)
}
