package json2docx

// Notes:
// - Browser-free: ExportPDF is tested with mockPDFConverter, and the rod
//   option builders are pure functions.
// - Real Chrome rendering lives in pdf_integration_test.go behind the
//   integration build tag.

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-json2docx/internal/document"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPDFConverter struct {
	mu     sync.Mutex
	html   string
	opts   *pdfOptions
	err    error
	closed bool
}

func (m *mockPDFConverter) ToPDF(_ context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.html = htmlContent
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	return []byte("%PDF-1.4 mock"), nil
}

func (m *mockPDFConverter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// TestExportPDF
// ---------------------------------------------------------------------------

func TestExportPDF(t *testing.T) {
	t.Parallel()

	mock := &mockPDFConverter{}
	r := newTestRenderer(t, withPDFConverter(mock), WithFooter(&Footer{Text: "Ops", ShowPageNumber: true}))
	doc, err := r.Render(context.Background(), SampleBlocks())
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	data, err := r.ExportPDF(context.Background(), doc)
	if err != nil {
		t.Fatalf("ExportPDF() unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("ExportPDF() = %q, want PDF bytes", data)
	}
	if !strings.Contains(mock.html, "<style>") || !strings.Contains(mock.html, "Test Document") {
		t.Error("converter did not receive the styled document HTML")
	}
	if mock.opts == nil || mock.opts.Footer == nil || mock.opts.Footer.Text != "Ops" {
		t.Errorf("footer options = %+v, want footer text Ops", mock.opts)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}
	if !mock.closed {
		t.Error("Close() did not close the converter")
	}
}

func TestExportPDF_Errors(t *testing.T) {
	t.Parallel()

	t.Run("nil document", func(t *testing.T) {
		t.Parallel()

		r := newTestRenderer(t)
		if _, err := r.ExportPDF(context.Background(), nil); !errors.Is(err, ErrNilDocument) {
			t.Errorf("ExportPDF() error = %v, want ErrNilDocument", err)
		}
	})

	t.Run("converter error propagates", func(t *testing.T) {
		t.Parallel()

		r := newTestRenderer(t, withPDFConverter(&mockPDFConverter{err: ErrBrowserConnect}))
		doc, err := r.Render(context.Background(), SampleBlocks())
		if err != nil {
			t.Fatalf("Render() unexpected error: %v", err)
		}
		if _, err := r.ExportPDF(context.Background(), doc); !errors.Is(err, ErrBrowserConnect) {
			t.Errorf("ExportPDF() error = %v, want ErrBrowserConnect", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		r := newTestRenderer(t)
		doc, err := r.Render(context.Background(), SampleBlocks())
		if err != nil {
			t.Fatalf("Render() unexpected error: %v", err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := r.ExportPDF(ctx, doc); !errors.Is(err, context.Canceled) {
			t.Errorf("ExportPDF() error = %v, want context.Canceled", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuildPDFOptions
// ---------------------------------------------------------------------------

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	t.Run("no footer", func(t *testing.T) {
		t.Parallel()

		opts := buildPDFOptions(nil)
		if *opts.PaperWidth != paperWidthInches || *opts.PaperHeight != paperHeightInches {
			t.Errorf("paper = %vx%v, want letter", *opts.PaperWidth, *opts.PaperHeight)
		}
		if *opts.MarginBottom != marginInches {
			t.Errorf("MarginBottom = %v, want %v", *opts.MarginBottom, marginInches)
		}
		if opts.DisplayHeaderFooter {
			t.Error("DisplayHeaderFooter = true without footer")
		}
	})

	t.Run("with footer", func(t *testing.T) {
		t.Parallel()

		opts := buildPDFOptions(&pdfOptions{Footer: &document.Footer{ShowPageNumber: true}})
		if *opts.MarginBottom != marginBottomWithFooter {
			t.Errorf("MarginBottom = %v, want %v", *opts.MarginBottom, marginBottomWithFooter)
		}
		if !opts.DisplayHeaderFooter {
			t.Error("DisplayHeaderFooter = false with footer")
		}
		if !strings.Contains(opts.FooterTemplate, `class="pageNumber"`) {
			t.Errorf("FooterTemplate = %q, want page number", opts.FooterTemplate)
		}
	})
}

func TestBuildFooterTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		footer       *document.Footer
		wantContains []string
		wantExact    string
	}{
		{name: "nil", footer: nil, wantExact: "<span></span>"},
		{name: "empty", footer: &document.Footer{}, wantExact: "<span></span>"},
		{
			name:         "text is escaped",
			footer:       &document.Footer{Text: "R&D <draft>"},
			wantContains: []string{"R&amp;D &lt;draft&gt;"},
		},
		{
			name:         "text and page number",
			footer:       &document.Footer{Text: "Ops", ShowPageNumber: true},
			wantContains: []string{"Ops - ", `<span class="totalPages"></span>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildFooterTemplate(tt.footer)
			if tt.wantExact != "" && got != tt.wantExact {
				t.Errorf("buildFooterTemplate() = %q, want %q", got, tt.wantExact)
			}
			for _, s := range tt.wantContains {
				if !strings.Contains(got, s) {
					t.Errorf("buildFooterTemplate() = %q, missing %q", got, s)
				}
			}
		})
	}
}

func TestRodRenderer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(defaultTimeout)
	if err := r.Close(); err != nil {
		t.Errorf("Close() on unused renderer error = %v", err)
	}
}

func TestRodRenderer_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRodRenderer(defaultTimeout)
	if _, err := r.RenderFromFile(ctx, "/nonexistent.html", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want context.Canceled", err)
	}
}
