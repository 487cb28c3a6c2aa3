package pipeline

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrNoJSONPayload indicates the text holds no JSON array or object.
var ErrNoJSONPayload = errors.New("no JSON payload found")

// Fence trimming used when the text does not parse into a fenced block,
// e.g. a response truncated before its closing fence.
var (
	leadingFence  = regexp.MustCompile("^```(?:json)?\\s*")
	trailingFence = regexp.MustCompile("\\s*```$")
)

// JSONExtractor pulls a JSON payload out of free text.
type JSONExtractor interface {
	ExtractJSON(content string) (string, error)
}

// FencedJSONExtractor finds JSON in fenced code blocks using goldmark's AST.
type FencedJSONExtractor struct {
	md goldmark.Markdown
}

// NewFencedJSONExtractor creates a FencedJSONExtractor with a CommonMark parser.
func NewFencedJSONExtractor() *FencedJSONExtractor {
	return &FencedJSONExtractor{md: goldmark.New()}
}

// ExtractJSON returns the body of the first ```json fenced block. Failing
// that, it returns the first untagged fenced block whose body looks like JSON.
// Text without fences is trimmed of stray fence lines and returned if it
// starts with '[' or '{'.
func (e *FencedJSONExtractor) ExtractJSON(content string) (string, error) {
	content = NormalizeText(content)
	src := []byte(content)
	doc := e.md.Parser().Parse(text.NewReader(src))

	var tagged, untagged string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		body := strings.TrimSpace(blockLines(fenced, src))
		lang := strings.ToLower(string(fenced.Language(src)))
		switch {
		case lang == "json" && tagged == "":
			tagged = body
			return ast.WalkStop, nil
		case lang == "" && untagged == "" && looksLikeJSON(body):
			untagged = body
		}
		return ast.WalkSkipChildren, nil
	})

	if tagged != "" {
		return tagged, nil
	}
	if untagged != "" {
		return untagged, nil
	}

	trimmed := strings.TrimSpace(content)
	trimmed = leadingFence.ReplaceAllString(trimmed, "")
	trimmed = trailingFence.ReplaceAllString(trimmed, "")
	if looksLikeJSON(trimmed) {
		return trimmed, nil
	}
	return "", ErrNoJSONPayload
}

// blockLines concatenates the raw lines of a code block.
func blockLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

func looksLikeJSON(s string) bool {
	return strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{")
}
