package pipeline

import (
	"regexp"
	"strings"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// byteOrderMark is stripped from the start of text input.
const byteOrderMark = "\uFEFF"

// NormalizeText prepares model output or Markdown for parsing: it drops a
// leading byte order mark, converts \r\n and \r to \n, and limits runs of
// blank lines to one.
func NormalizeText(content string) string {
	content = strings.TrimPrefix(content, byteOrderMark)
	content = crlfOrCR.ReplaceAllString(content, "\n")
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
