package pipeline

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// boldMarker delimits a bold span.
const boldMarker = "**"

// Run is a contiguous span of text sharing a single bold attribute.
type Run struct {
	Text string
	Bold bool
}

// InlineTokenizer splits inline text into styled runs.
type InlineTokenizer interface {
	Tokenize(text string) []Run
}

// MarkdownStripper removes inline markdown syntax from text.
type MarkdownStripper interface {
	Strip(text string) string
}

// BoldTokenizer implements InlineTokenizer for **bold** spans.
type BoldTokenizer struct{}

// Tokenize delegates to the package-level Tokenize.
func (BoldTokenizer) Tokenize(text string) []Run {
	return Tokenize(text)
}

// SyntaxStripper implements MarkdownStripper using StripMarkdown.
type SyntaxStripper struct{}

// Strip delegates to the package-level StripMarkdown.
func (SyntaxStripper) Strip(text string) string {
	return StripMarkdown(text)
}

// span is a matched **...** region: [start, end) includes both markers.
type span struct {
	start int
	end   int
}

// boundary is a bold on/off event at a marker offset.
type boundary struct {
	pos   int
	start bool
}

// Tokenize splits text into runs, marking text enclosed in ** pairs as bold
// and dropping the markers. Matches are the shortest span between an opening
// ** and the next ** on the same line, taken left to right without overlap.
//
// Text without any match comes back as a single non-bold run, even when empty.
// Adjacent spans such as "**a****b**" yield two consecutive bold runs.
func Tokenize(text string) []Run {
	spans := findBoldSpans(text)
	if len(spans) == 0 {
		return []Run{{Text: text}}
	}

	events := make([]boundary, 0, 2*len(spans))
	for _, s := range spans {
		events = append(events,
			boundary{pos: s.start, start: true},
			boundary{pos: s.end - len(boldMarker), start: false},
		)
	}
	// Ends sort before starts at the same offset.
	slices.SortStableFunc(events, func(a, b boundary) int {
		if c := cmp.Compare(a.pos, b.pos); c != 0 {
			return c
		}
		switch {
		case a.start == b.start:
			return 0
		case a.start:
			return 1
		default:
			return -1
		}
	})

	runs := make([]Run, 0, len(events)+1)
	bold := false
	cursor := 0
	for _, ev := range events {
		if ev.pos > cursor {
			runs = appendSlice(runs, text[cursor:ev.pos], bold)
		}
		bold = ev.start
		cursor = ev.pos + len(boldMarker)
	}
	if cursor < len(text) {
		if rest := text[cursor:]; rest != "" {
			runs = append(runs, Run{Text: rest, Bold: bold})
		}
	}
	return runs
}

// appendSlice appends a slice taken between two boundaries.
// A bold slice loses a stray leading marker, a plain one a stray trailing marker.
func appendSlice(runs []Run, s string, bold bool) []Run {
	if bold {
		s = strings.TrimPrefix(s, boldMarker)
	} else {
		s = strings.TrimSuffix(s, boldMarker)
	}
	if s == "" {
		return runs
	}
	return append(runs, Run{Text: s, Bold: bold})
}

// findBoldSpans returns every non-overlapping **...** match in order.
// When an opening marker has no closer on its line, scanning resumes one byte later.
func findBoldSpans(text string) []span {
	var spans []span
	i := 0
	for i+len(boldMarker) <= len(text) {
		if !strings.HasPrefix(text[i:], boldMarker) {
			i++
			continue
		}
		closeAt := indexOnLine(text, i+len(boldMarker), boldMarker)
		if closeAt < 0 {
			i++
			continue
		}
		end := closeAt + len(boldMarker)
		spans = append(spans, span{start: i, end: end})
		i = end
	}
	return spans
}

// indexOnLine returns the offset of the first sub at or after from,
// or -1 when sub does not occur before the next line break.
func indexOnLine(text string, from int, sub string) int {
	if from > len(text) {
		return -1
	}
	line := text[from:]
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}
	idx := strings.Index(line, sub)
	if idx < 0 {
		return -1
	}
	return from + idx
}

// StripMarkdown removes inline markdown syntax, in order: bold, emphasis,
// links and code spans. Bold goes first so ** is never half-consumed by the
// emphasis rule. If stripping panics, the original text is returned.
func StripMarkdown(text string) (stripped string) {
	defer func() {
		if r := recover(); r != nil {
			stripped = text
		}
	}()

	s := stripBold(text)
	s = stripEmphasis(s)
	s = stripLinks(s)
	s = stripCode(s)
	return s
}

// stripBold replaces **x** with x.
func stripBold(s string) string {
	spans := findBoldSpans(s)
	if len(spans) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, sp := range spans {
		b.WriteString(s[last:sp.start])
		b.WriteString(s[sp.start+len(boldMarker) : sp.end-len(boldMarker)])
		last = sp.end
	}
	b.WriteString(s[last:])
	return b.String()
}

// stripEmphasis replaces *x* with x when neither asterisk touches a word
// character on its outer side, so "2*3*4" is left alone.
func stripEmphasis(s string) string {
	var b strings.Builder
	last := 0
	for i := 0; i < len(s); {
		if s[i] != '*' || !opensEmphasis(s, i) {
			i++
			continue
		}
		j := closesEmphasis(s, i+1)
		if j < 0 {
			i++
			continue
		}
		b.WriteString(s[last:i])
		b.WriteString(s[i+1 : j])
		last = j + 1
		i = j + 1
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

func opensEmphasis(s string, i int) bool {
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		if isWordRune(r) {
			return false
		}
	}
	return i+1 >= len(s) || s[i+1] != '*'
}

// closesEmphasis finds the shortest closing asterisk on the same line.
func closesEmphasis(s string, from int) int {
	for j := from; j < len(s); j++ {
		switch s[j] {
		case '\n':
			return -1
		case '*':
			if s[j-1] == '*' {
				continue
			}
			if j+1 < len(s) {
				r, _ := utf8.DecodeRuneInString(s[j+1:])
				if isWordRune(r) {
					continue
				}
			}
			return j
		}
	}
	return -1
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// stripLinks replaces [label](url) with label.
func stripLinks(s string) string {
	var b strings.Builder
	last := 0
	for i := 0; i < len(s); {
		if s[i] != '[' {
			i++
			continue
		}
		labelEnd, linkEnd := matchLink(s, i)
		if linkEnd < 0 {
			i++
			continue
		}
		b.WriteString(s[last:i])
		b.WriteString(s[i+1 : labelEnd])
		last = linkEnd + 1
		i = linkEnd + 1
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// matchLink returns the offsets of "](" and of the closing ")" for a link
// opening at i, or -1, -1 when there is none on the same line.
func matchLink(s string, i int) (labelEnd, linkEnd int) {
	for k := i + 1; k < len(s); k++ {
		if s[k] == '\n' {
			break
		}
		if s[k] != ']' || k+1 >= len(s) || s[k+1] != '(' {
			continue
		}
		if end := indexOnLine(s, k+2, ")"); end >= 0 {
			return k, end
		}
		break
	}
	return -1, -1
}

// stripCode replaces `x` with x.
func stripCode(s string) string {
	var b strings.Builder
	last := 0
	for i := 0; i < len(s); {
		if s[i] != '`' {
			i++
			continue
		}
		j := indexOnLine(s, i+1, "`")
		if j < 0 {
			i++
			continue
		}
		b.WriteString(s[last:i])
		b.WriteString(s[i+1 : j])
		last = j + 1
		i = j + 1
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}
