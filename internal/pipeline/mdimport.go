package pipeline

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownImporter converts Markdown source into raw block records with the
// same shape as decoded block JSON: []any of map[string]any.
type MarkdownImporter interface {
	ImportMarkdown(src []byte) []any
}

// GoldmarkImporter walks goldmark's AST to build block records.
//
// Headings keep their level, paragraphs and code blocks become paragraphs,
// lists are flattened (nested items follow their parent), and table rows
// become list items holding their cells as sequences. Strong emphasis is
// written back as ** so the renderer can tokenize it; other inline syntax is
// reduced to its text.
type GoldmarkImporter struct {
	md goldmark.Markdown
}

// NewGoldmarkImporter creates a GoldmarkImporter with GFM tables and strikethrough.
func NewGoldmarkImporter() *GoldmarkImporter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
		),
	)
	return &GoldmarkImporter{md: md}
}

// ImportMarkdown parses src and returns block records in document order.
func (g *GoldmarkImporter) ImportMarkdown(src []byte) []any {
	src = []byte(NormalizeText(string(src)))
	doc := g.md.Parser().Parse(text.NewReader(src))
	blocks := make([]any, 0, doc.ChildCount())
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = g.appendBlock(blocks, n, src)
	}
	return blocks
}

func (g *GoldmarkImporter) appendBlock(blocks []any, n ast.Node, src []byte) []any {
	switch node := n.(type) {
	case *ast.Heading:
		return append(blocks, map[string]any{
			"type":  "heading",
			"level": node.Level,
			"text":  inlineText(node, src),
		})
	case *ast.Paragraph, *ast.TextBlock:
		t := inlineText(node, src)
		if t == "" {
			return blocks
		}
		return append(blocks, map[string]any{"type": "paragraph", "text": t})
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		body := strings.TrimRight(blockLines(node, src), "\n")
		if body == "" {
			return blocks
		}
		return append(blocks, map[string]any{"type": "paragraph", "text": body})
	case *ast.List:
		return append(blocks, map[string]any{"type": "list", "items": listItems(node, src)})
	case *ast.Blockquote:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			blocks = g.appendBlock(blocks, c, src)
		}
		return blocks
	case *east.Table:
		return append(blocks, map[string]any{"type": "list", "items": tableRows(node, src)})
	default:
		// Thematic breaks and raw HTML have no block equivalent.
		return blocks
	}
}

// listItems flattens a list: each item's own text first, then its nested items.
func listItems(list *ast.List, src []byte) []any {
	var items []any
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var parts []string
		var nested []any
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, listItems(sub, src)...)
				continue
			}
			if t := inlineText(c, src); t != "" {
				parts = append(parts, t)
			}
		}
		if len(parts) > 0 {
			items = append(items, strings.Join(parts, " "))
		}
		items = append(items, nested...)
	}
	return items
}

// tableRows turns header and body rows into cell sequences.
func tableRows(table *east.Table, src []byte) []any {
	var rows []any
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		cells := make([]any, 0, row.ChildCount())
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, inlineText(cell, src))
		}
		rows = append(rows, cells)
	}
	return rows
}

// inlineText renders the inline children of n as plain text, keeping ** around
// strong emphasis.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	writeInline(&b, n, src)
	return strings.TrimSpace(b.String())
}

func writeInline(b *strings.Builder, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			switch {
			case node.HardLineBreak():
				b.WriteByte('\n')
			case node.SoftLineBreak():
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.Emphasis:
			if node.Level >= 2 {
				b.WriteString(boldMarker)
				writeInline(b, node, src)
				b.WriteString(boldMarker)
				continue
			}
			writeInline(b, node, src)
		case *ast.AutoLink:
			b.Write(node.URL(src))
		case *ast.RawHTML:
			// dropped
		default:
			writeInline(b, node, src)
		}
	}
}
