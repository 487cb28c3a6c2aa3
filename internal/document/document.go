// Package document holds the format-neutral model built by the renderer and
// consumed by the DOCX and HTML writers.
package document

import (
	"fmt"
	"strings"
	"time"
)

// Paragraph style IDs. They must exist in every theme's styles part.
const (
	StyleNormal     = "Normal"
	StyleListBullet = "ListBullet"
)

// MaxHeadingStyle is the deepest built-in heading style.
const MaxHeadingStyle = 9

// Kind classifies a paragraph for writers that need structure (HTML lists, headings).
type Kind int

const (
	KindBody Kind = iota
	KindHeading
	KindBullet
)

// Alignment is a paragraph's horizontal alignment.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as RRGGBB without a leading '#'.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Run is a span of text with character formatting.
// Zero values mean "inherit from the paragraph style".
type Run struct {
	Text  string
	Bold  bool
	Color *Color
	Size  float64 // points
}

// Paragraph is one block-level element.
type Paragraph struct {
	Kind  Kind
	Level int // heading level; 0 for other kinds
	Style string
	Align Alignment
	Runs  []Run
}

// Text concatenates the paragraph's run text.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Metadata describes the document as a whole.
type Metadata struct {
	Title       string
	Author      string
	Subject     string
	Description string
	Identifier  string
	Created     time.Time
}

// Footer configures the page footer. A nil Footer means no footer part.
type Footer struct {
	Text           string
	ShowPageNumber bool
}

// Document is an ordered list of paragraphs plus metadata.
type Document struct {
	Meta       Metadata
	Footer     *Footer
	Paragraphs []Paragraph
}

// New creates an empty Document.
func New(meta Metadata) *Document {
	return &Document{Meta: meta}
}

// Append adds p at the end of the document.
func (d *Document) Append(p Paragraph) {
	d.Paragraphs = append(d.Paragraphs, p)
}

// PlainText returns one line per paragraph. Bullets are prefixed with "- "
// and headings with one '#' per level.
func (d *Document) PlainText() string {
	var b strings.Builder
	for _, p := range d.Paragraphs {
		switch p.Kind {
		case KindHeading:
			b.WriteString(strings.Repeat("#", max(p.Level, 1)))
			b.WriteByte(' ')
		case KindBullet:
			b.WriteString("- ")
		}
		b.WriteString(p.Text())
		b.WriteByte('\n')
	}
	return b.String()
}

// HeadingStyle returns the style ID for a heading level, clamped to 1..9.
func HeadingStyle(level int) string {
	level = min(max(level, 1), MaxHeadingStyle)
	return fmt.Sprintf("Heading%d", level)
}
