package json2docx

// Notes:
// - DOCX output is opened with archive/zip to check the parts exist; the
//   markup itself is covered by internal/docx.

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func renderSample(t *testing.T) *Document {
	t.Helper()
	doc, err := newTestRenderer(t).Render(context.Background(), SampleBlocks())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return doc
}

func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open document part: %v", err)
		}
		defer rc.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			t.Fatalf("read document part: %v", err)
		}
		return buf.String()
	}
	t.Fatal("word/document.xml not found")
	return ""
}

// ---------------------------------------------------------------------------
// TestDocument_Output
// ---------------------------------------------------------------------------

func TestDocument_WriteTo(t *testing.T) {
	t.Parallel()

	doc := renderSample(t)
	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, wrote %d", n, buf.Len())
	}

	body := documentXML(t, buf.Bytes())
	for _, want := range []string{"Test Document", `w:val="ListBullet"`, "<w:b>", `w:val="000080"`} {
		if !strings.Contains(body, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
}

func TestDocument_Save(t *testing.T) {
	t.Parallel()

	doc := renderSample(t)
	dir := t.TempDir()

	out := filepath.Join(dir, "report.docx")
	if err := doc.Save(out); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("saved file is not a zip package")
	}

	if err := doc.Save(filepath.Join(dir, "missing", "report.docx")); !errors.Is(err, ErrSave) {
		t.Errorf("Save() into missing dir error = %v, want ErrSave", err)
	}
}

func TestDocument_Paragraphs_IsCopy(t *testing.T) {
	t.Parallel()

	doc := renderSample(t)
	paras := doc.Paragraphs()
	paras[0].Style = "Changed"
	if doc.Paragraphs()[0].Style == "Changed" {
		t.Error("Paragraphs() exposes the internal slice")
	}
}

func TestDocument_HTML(t *testing.T) {
	t.Parallel()

	html, err := renderSample(t).HTML(context.Background())
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	for _, want := range []string{"<h1", "<ul>", "<strong>bold text</strong>", "<style>"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML() missing %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestParseFormat
// ---------------------------------------------------------------------------

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"docx", FormatDOCX, false},
		{"HTML", FormatHTML, false},
		{" pdf ", FormatPDF, false},
		{"odt", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
		}
	}

	if FormatPDF.Ext() != ".pdf" {
		t.Errorf("Ext() = %q, want .pdf", FormatPDF.Ext())
	}
}
