package pipeline

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/alnah/go-json2docx/internal/document"
)

// maxHTMLHeading is the deepest heading element HTML provides.
const maxHTMLHeading = 6

// HTMLExporter renders a document model as a standalone HTML5 page.
type HTMLExporter interface {
	ExportHTML(ctx context.Context, doc *document.Document, css string) (string, error)
}

// DocumentHTML builds HTML by hand from the document model.
//
// Headings map to h1..h6 (deeper levels use h6 with a level-N class), body
// paragraphs to p, and consecutive bullets share one ul. Run color and size
// become inline styles so the page matches the DOCX output without a theme.
type DocumentHTML struct {
	CSS CSSInjector
}

// NewDocumentHTML creates a DocumentHTML with the default CSS injector.
func NewDocumentHTML() *DocumentHTML {
	return &DocumentHTML{CSS: &CSSInjection{}}
}

// ExportHTML renders doc and injects css into the head.
func (d *DocumentHTML) ExportHTML(ctx context.Context, doc *document.Document, css string) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("export html: nil document")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(doc.Meta.Title))
	writeMeta(&b, "author", doc.Meta.Author)
	writeMeta(&b, "description", doc.Meta.Subject)
	writeMeta(&b, "identifier", doc.Meta.Identifier)
	b.WriteString("</head>\n<body>\n<main>\n")

	inList := false
	for _, p := range doc.Paragraphs {
		if p.Kind == document.KindBullet {
			if !inList {
				b.WriteString("<ul>\n")
				inList = true
			}
			b.WriteString("<li")
			writeAlignClass(&b, p.Align)
			b.WriteByte('>')
			writeRuns(&b, p.Runs)
			b.WriteString("</li>\n")
			continue
		}
		if inList {
			b.WriteString("</ul>\n")
			inList = false
		}
		writeParagraphHTML(&b, p)
	}
	if inList {
		b.WriteString("</ul>\n")
	}
	b.WriteString("</main>\n")

	if f := doc.Footer; f != nil && (f.Text != "" || f.ShowPageNumber) {
		b.WriteString(`<footer class="page-footer">`)
		b.WriteString(html.EscapeString(f.Text))
		b.WriteString("</footer>\n")
	}
	b.WriteString("</body>\n</html>\n")

	out := b.String()
	if d.CSS != nil {
		out = d.CSS.InjectCSS(ctx, out, css)
	}
	return out, nil
}

func writeMeta(b *strings.Builder, name, content string) {
	if content == "" {
		return
	}
	fmt.Fprintf(b, "<meta name=\"%s\" content=\"%s\">\n", name, html.EscapeString(content))
}

func writeParagraphHTML(b *strings.Builder, p document.Paragraph) {
	tag := "p"
	class := ""
	if p.Kind == document.KindHeading {
		level := max(p.Level, 1)
		tag = "h" + strconv.Itoa(min(level, maxHTMLHeading))
		if level > maxHTMLHeading {
			class = "level-" + strconv.Itoa(level)
		}
	}

	b.WriteByte('<')
	b.WriteString(tag)
	switch {
	case class != "":
		fmt.Fprintf(b, " class=%q", class)
	default:
		writeAlignClass(b, p.Align)
	}
	b.WriteByte('>')
	writeRuns(b, p.Runs)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">\n")
}

func writeAlignClass(b *strings.Builder, a document.Alignment) {
	switch a {
	case document.AlignJustify:
		b.WriteString(` class="justify"`)
	case document.AlignCenter:
		b.WriteString(` class="center"`)
	case document.AlignRight:
		b.WriteString(` class="right"`)
	}
}

func writeRuns(b *strings.Builder, runs []document.Run) {
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		style := runStyle(r)
		if style != "" {
			fmt.Fprintf(b, `<span style="%s">`, style)
		}
		if r.Bold {
			b.WriteString("<strong>")
		}
		b.WriteString(strings.ReplaceAll(html.EscapeString(r.Text), "\n", "<br>"))
		if r.Bold {
			b.WriteString("</strong>")
		}
		if style != "" {
			b.WriteString("</span>")
		}
	}
}

func runStyle(r document.Run) string {
	var parts []string
	if r.Color != nil {
		parts = append(parts, "color:#"+r.Color.Hex())
	}
	if r.Size > 0 {
		parts = append(parts, "font-size:"+strconv.FormatFloat(r.Size, 'f', -1, 64)+"pt")
	}
	return strings.Join(parts, ";")
}

// Compile-time interface check.
var _ HTMLExporter = (*DocumentHTML)(nil)
