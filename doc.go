// Package json2docx renders sequences of document blocks into Word documents.
//
// # Quick Start
//
// Decode blocks, render them, and save the result:
//
//	blocks, err := json2docx.ParseBlocks(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r, err := json2docx.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	path, err := r.RenderFile(ctx, blocks, "report.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("written to", path)
//
// RenderFile retries once at a fallback path ("report_fallback.docx" unless
// WithFallbackPath says otherwise) and returns the path actually written.
//
// # Blocks
//
// A block is a mapping with a "type" tag:
//
//	[
//	  {"type": "heading", "level": 1, "text": "Quarterly **Review**"},
//	  {"type": "paragraph", "text": "Revenue grew by **12%**."},
//	  {"type": "list", "items": ["plain", {"text": "from mapping"}, ["a", "b"]]}
//	]
//
// Rendering is tolerant. Unknown types and non-mapping entries are skipped.
// A malformed heading becomes the heading "Heading", a malformed paragraph an
// empty paragraph, and a malformed list the bullet "List item". Bold spans
// (**text**) become bold runs; headings have inline markdown stripped.
//
// Input adapters cover JSON (ParseBlocks), YAML (ParseBlocksYAML), already
// decoded values (DecodeBlocks), fenced JSON inside model output
// (ExtractBlocks) and Markdown (ImportMarkdown).
//
// # Output Formats
//
// Document.Save and Document.WriteTo produce DOCX. Document.HTML produces a
// standalone HTML page styled by the theme's CSS, and Renderer.ExportPDF prints
// that page to PDF with headless Chrome (go-rod). Chrome is only started when a
// PDF is requested.
//
// # Configuration
//
// Use functional options to customize the renderer:
//
//	r, err := json2docx.NewRenderer(
//	    json2docx.WithTheme("corporate"),
//	    json2docx.WithMetadata(json2docx.Metadata{Title: "Report", Author: "Ops"}),
//	    json2docx.WithFooter(&json2docx.Footer{ShowPageNumber: true}),
//	)
//
// # Parallel Processing
//
// A Renderer is safe for concurrent Render calls. For batch PDF export, use
// RendererPool so each worker owns its own browser:
//
//	pool := json2docx.NewRendererPool(json2docx.ResolvePoolSize(0))
//	defer pool.Close()
//
//	r, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(r)
package json2docx
