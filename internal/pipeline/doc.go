// Package pipeline implements the text stages between block data and the
// rendered document:
//   - inline bold tokenization into styled runs
//   - Markdown syntax stripping for heading text
//   - JSON payload extraction from fenced code blocks
//   - Markdown import into block records via goldmark
//   - HTML export of the document model with CSS injection
//
// DOCX serialization lives in internal/docx and PDF printing in the root
// json2docx package. This package only deals with text and markup.
package pipeline
