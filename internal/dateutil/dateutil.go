// Package dateutil resolves document date settings.
//
// A date setting is one of:
//   - empty: no display date; the document is stamped with the current time
//   - "auto" or "auto:FORMAT": the current date, formatted
//   - an ISO date "YYYY-MM-DD": displayed as given and used as the timestamp
//   - any other text: displayed as given; the timestamp is the current time
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is specified without a format.
const DefaultDateFormat = "YYYY-MM-DD"

// isoLayout is the Go layout for DefaultDateFormat.
const isoLayout = "2006-01-02"

// dateTokens maps format tokens to Go layout components, longest first
// within each letter so matching is greedy.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"DD", "02"},
	{"D", "2"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"full":     "dddd, MMMM D, YYYY",
}

// ParseDateFormat converts a format string to a Go time layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, dddd, ddd.
// Text in brackets is kept literally: "[Date]" stays "Date".
// Other characters are kept as-is.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	layout.Grow(len(format) + 10)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			layout.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		n := writeToken(&layout, format[i:])
		if n == 0 {
			layout.WriteByte(format[i])
			n = 1
		}
		i += n
	}

	return layout.String(), nil
}

// writeToken writes the layout for the token at the start of s and returns
// the token length, or 0 when s does not start with a token.
func writeToken(b *strings.Builder, s string) int {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.goFmt)
			return len(t.token)
		}
	}
	return 0
}

// ResolveDate expands "auto" and "auto:FORMAT" (or "auto:PRESET") using now.
// Other values are returned unchanged.
func ResolveDate(value string, now time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}

	format := DefaultDateFormat
	switch {
	case lower == "auto":
	case strings.HasPrefix(lower, "auto:"):
		format = value[len("auto:"):]
		if format == "" {
			return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		if preset, ok := DatePresets[strings.ToLower(format)]; ok {
			format = preset
		}
	default:
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}

// DocumentDate is a resolved date setting.
type DocumentDate struct {
	Display string    // text shown in the document; empty when unset
	Time    time.Time // creation timestamp for document properties
}

// Resolve turns a date setting into display text and a timestamp.
// now is injected for testing.
func Resolve(value string, now time.Time) (DocumentDate, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DocumentDate{Time: now}, nil
	}

	display, err := ResolveDate(value, now)
	if err != nil {
		return DocumentDate{}, err
	}

	stamp := now
	if t, err := time.ParseInLocation(isoLayout, value, now.Location()); err == nil {
		stamp = t
	}
	return DocumentDate{Display: display, Time: stamp}, nil
}
