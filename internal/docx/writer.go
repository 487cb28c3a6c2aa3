// Package docx serializes a document.Document as an Office Open XML
// WordprocessingML package (.docx).
//
// The body is built with github.com/fumiama/go-docx. The parts that library
// has no API for are generated here and handed to it as a seed package:
//
//	[Content_Types].xml
//	_rels/.rels
//	docProps/core.xml, docProps/app.xml
//	word/styles.xml, word/numbering.xml
//	word/_rels/document.xml.rels
//	word/footer1.xml               (only when a footer is configured)
//
// Styles come from the caller (a theme's styles.xml). The library keeps every
// seed part and relationship when it packs the final archive.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	godocx "github.com/fumiama/go-docx"

	"github.com/alnah/go-json2docx/internal/document"
)

// Sentinel errors for package writing.
var (
	ErrNilDocument   = errors.New("docx: nil document")
	ErrMissingStyles = errors.New("docx: styles part is empty")
	ErrWritePart     = errors.New("docx: failed to write package part")
)

// DefaultApplication is recorded in docProps/app.xml.
const DefaultApplication = "go-json2docx"

// bulletNumID links ListBullet paragraphs to the numbering part.
const bulletNumID = 1

// footerRelID is the relationship the section's footer reference points at.
const footerRelID = "rId3"

// zipEpoch is the earliest timestamp a zip header can store.
var zipEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// Namespaces used across parts.
const (
	nsMain     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRel      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPkgRel   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsTypes    = "http://schemas.openxmlformats.org/package/2006/content-types"
	relOffice  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCore    = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relApp     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relStyles  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relNumber  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	relFooter  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	xmlHeader  = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	footerPart = "word/footer1.xml"
)

// Writer serializes documents with a fixed styles part.
// A Writer is safe for concurrent use.
type Writer struct {
	styles      []byte
	application string
}

// NewWriter creates a Writer using styles as word/styles.xml.
func NewWriter(styles []byte) (*Writer, error) {
	if len(bytes.TrimSpace(styles)) == 0 {
		return nil, ErrMissingStyles
	}
	return &Writer{styles: styles, application: DefaultApplication}, nil
}

// Write writes doc as a .docx package to w.
func (wr *Writer) Write(w io.Writer, doc *document.Document) error {
	if doc == nil {
		return ErrNilDocument
	}

	seed, err := wr.seed(doc)
	if err != nil {
		return err
	}
	f, err := godocx.Parse(bytes.NewReader(seed), int64(len(seed)))
	if err != nil {
		return fmt.Errorf("%w: loading seed package: %v", ErrWritePart, err)
	}

	for _, p := range doc.Paragraphs {
		addParagraph(f, p)
	}
	f.Document.Body.Items = append(f.Document.Body.Items, newSection(doc.Footer != nil))

	// The library drops the archive's Close error, so pack in memory first.
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("%w: packing archive: %v", ErrWritePart, err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePart, err)
	}
	return nil
}

// Bytes serializes doc into memory.
func (wr *Writer) Bytes(doc *document.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := wr.Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// seed builds the package skeleton: every part except the document body.
func (wr *Writer) seed(doc *document.Document) ([]byte, error) {
	modified := doc.Meta.Created.UTC()
	if modified.Before(zipEpoch) {
		modified = zipEpoch
	}

	parts := []struct {
		name string
		body []byte
	}{
		{"[Content_Types].xml", contentTypes(doc.Footer != nil)},
		{"_rels/.rels", packageRels()},
		{"docProps/core.xml", coreProps(doc.Meta)},
		{"docProps/app.xml", appProps(wr.application)},
		{"word/document.xml", emptyDocument()},
		{"word/styles.xml", wr.styles},
		{"word/numbering.xml", numberingPart()},
		{"word/_rels/document.xml.rels", documentRels(doc.Footer != nil)},
	}
	if doc.Footer != nil {
		parts = append(parts, struct {
			name string
			body []byte
		}{footerPart, footerXML(doc.Footer)})
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrWritePart, p.name, err)
		}
		if _, err := fw.Write(p.body); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrWritePart, p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: finalizing seed: %v", ErrWritePart, err)
	}
	return buf.Bytes(), nil
}

// addParagraph appends p to the body with its style, numbering and runs.
func addParagraph(f *godocx.Docx, p document.Paragraph) {
	style := p.Style
	if style == "" {
		style = document.StyleNormal
	}
	para := f.AddParagraph().Style(style)
	if p.Kind == document.KindBullet {
		para.NumPr(strconv.Itoa(bulletNumID), "0")
	}
	if jc := justification(p.Align); jc != "" {
		para.Justification(jc)
	}
	for _, r := range p.Runs {
		addRun(para, r)
	}
}

func addRun(p *godocx.Paragraph, r document.Run) {
	if r.Text == "" {
		return
	}
	run := p.AddText(r.Text)
	for _, c := range run.Children {
		if t, ok := c.(*godocx.Text); ok {
			t.XMLSpace = "preserve"
		}
	}
	if r.Bold {
		run.Bold()
	}
	if r.Color != nil {
		run.Color(r.Color.Hex())
	}
	if r.Size > 0 {
		half := strconv.Itoa(int(r.Size*2 + 0.5))
		run.Size(half).SizeCs(half)
	}
}

// section is the body's trailing w:sectPr. The library's SectPr has no
// footer reference, so the element is declared here.
type section struct {
	XMLName         xml.Name         `xml:"w:sectPr"`
	FooterReference *footerReference `xml:"w:footerReference,omitempty"`
	PgSz            *godocx.PgSz     `xml:"w:pgSz"`
	PgMar           *godocx.PgMar    `xml:"w:pgMar"`
}

type footerReference struct {
	Type string `xml:"w:type,attr"`
	ID   string `xml:"r:id,attr"`
}

// newSection returns US Letter with one-inch margins.
func newSection(withFooter bool) *section {
	s := &section{
		PgSz:  &godocx.PgSz{W: 12240, H: 15840},
		PgMar: &godocx.PgMar{Top: 1440, Right: 1440, Bottom: 1440, Left: 1440, Header: 720, Footer: 720},
	}
	if withFooter {
		s.FooterReference = &footerReference{Type: "default", ID: footerRelID}
	}
	return s
}

func emptyDocument() []byte {
	return fmt.Appendf([]byte(xmlHeader), `<w:document xmlns:w="%s" xmlns:r="%s"><w:body></w:body></w:document>`, nsMain, nsRel)
}

func contentTypes(withFooter bool) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<Types xmlns="%s">`, nsTypes)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	b.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	b.WriteString(`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>`)
	if withFooter {
		b.WriteString(`<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>`)
	}
	b.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	b.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	b.WriteString(`</Types>`)
	return b.Bytes()
}

func packageRels() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<Relationships xmlns="%s">`, nsPkgRel)
	fmt.Fprintf(&b, `<Relationship Id="rId1" Type="%s" Target="word/document.xml"/>`, relOffice)
	fmt.Fprintf(&b, `<Relationship Id="rId2" Type="%s" Target="docProps/core.xml"/>`, relCore)
	fmt.Fprintf(&b, `<Relationship Id="rId3" Type="%s" Target="docProps/app.xml"/>`, relApp)
	b.WriteString(`</Relationships>`)
	return b.Bytes()
}

func documentRels(withFooter bool) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<Relationships xmlns="%s">`, nsPkgRel)
	fmt.Fprintf(&b, `<Relationship Id="rId1" Type="%s" Target="styles.xml"/>`, relStyles)
	fmt.Fprintf(&b, `<Relationship Id="rId2" Type="%s" Target="numbering.xml"/>`, relNumber)
	if withFooter {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="footer1.xml"/>`, footerRelID, relFooter)
	}
	b.WriteString(`</Relationships>`)
	return b.Bytes()
}

func coreProps(meta document.Metadata) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"`)
	b.WriteString(` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"`)
	b.WriteString(` xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	writeElement(&b, "dc:title", meta.Title)
	writeElement(&b, "dc:subject", meta.Subject)
	writeElement(&b, "dc:creator", meta.Author)
	writeElement(&b, "dc:description", meta.Description)
	writeElement(&b, "dc:identifier", meta.Identifier)
	if !meta.Created.IsZero() {
		stamp := meta.Created.UTC().Format(time.RFC3339)
		fmt.Fprintf(&b, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`, stamp)
		fmt.Fprintf(&b, `<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, stamp)
	}
	b.WriteString(`</cp:coreProperties>`)
	return b.Bytes()
}

func appProps(application string) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">`)
	writeElement(&b, "Application", application)
	b.WriteString(`</Properties>`)
	return b.Bytes()
}

func numberingPart() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<w:numbering xmlns:w="%s">`, nsMain)
	b.WriteString(`<w:abstractNum w:abstractNumId="0"><w:multiLevelType w:val="hybridMultilevel"/>`)
	b.WriteString(`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="` + "•" + `"/>`)
	b.WriteString(`<w:lvlJc w:val="left"/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr>`)
	b.WriteString(`</w:lvl>`)
	b.WriteString(`</w:abstractNum>`)
	fmt.Fprintf(&b, `<w:num w:numId="%d"><w:abstractNumId w:val="0"/></w:num>`, bulletNumID)
	b.WriteString(`</w:numbering>`)
	return b.Bytes()
}

func footerXML(f *document.Footer) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<w:ftr xmlns:w="%s" xmlns:r="%s"><w:p><w:pPr><w:jc w:val="center"/></w:pPr>`, nsMain, nsRel)
	if f.Text != "" {
		text := f.Text
		if f.ShowPageNumber {
			text += " - "
		}
		b.WriteString(`<w:r><w:t xml:space="preserve">`)
		_ = xml.EscapeText(&b, []byte(text))
		b.WriteString(`</w:t></w:r>`)
	}
	if f.ShowPageNumber {
		b.WriteString(`<w:r><w:fldChar w:fldCharType="begin"/></w:r>`)
		b.WriteString(`<w:r><w:instrText xml:space="preserve"> PAGE </w:instrText></w:r>`)
		b.WriteString(`<w:r><w:fldChar w:fldCharType="separate"/></w:r>`)
		b.WriteString(`<w:r><w:t>1</w:t></w:r>`)
		b.WriteString(`<w:r><w:fldChar w:fldCharType="end"/></w:r>`)
	}
	b.WriteString(`</w:p></w:ftr>`)
	return b.Bytes()
}

func justification(a document.Alignment) string {
	switch a {
	case document.AlignLeft:
		return "left"
	case document.AlignCenter:
		return "center"
	case document.AlignRight:
		return "right"
	case document.AlignJustify:
		return "both"
	default:
		return ""
	}
}

// writeElement writes <name>escaped value</name>, or <name/> when empty.
func writeElement(b *bytes.Buffer, name, value string) {
	if value == "" {
		fmt.Fprintf(b, "<%s/>", name)
		return
	}
	fmt.Fprintf(b, "<%s>", name)
	_ = xml.EscapeText(b, []byte(value))
	fmt.Fprintf(b, "</%s>", name)
}
