package dateutil

// Notes:
// - All resolution tests use a fixed time, Friday 2024-03-15 10:30 UTC.

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var fixedTime = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// TestParseDateFormat - Token to layout conversion
// ---------------------------------------------------------------------------

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "year tokens", format: "YYYY YY", want: "2006 06"},
		{name: "month tokens", format: "MMMM MMM MM M", want: "January Jan 01 1"},
		{name: "day tokens", format: "DD D", want: "02 2"},
		{name: "weekday tokens", format: "dddd ddd", want: "Monday Mon"},
		{name: "ISO", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "European", format: "DD/MM/YYYY", want: "02/01/2006"},
		{name: "long", format: "MMMM D, YYYY", want: "January 2, 2006"},
		{name: "literal punctuation", format: "(YYYY)", want: "(2006)"},
		{name: "unescaped D in text is a token", format: "Date: YYYY", want: "2ate: 2006"},
		{name: "brackets keep literals", format: "[Date]: YYYY", want: "Date: 2006"},
		{name: "brackets keep tokens", format: "[YYYY]-MM", want: "YYYY-01"},
		{name: "empty brackets", format: "YYYY[]MM", want: "200601"},
		{name: "first close bracket wins", format: "[a[b]c", want: "a[bc"},
		{name: "unclosed bracket", format: "[Date YYYY", wantErr: ErrInvalidDateFormat},
		{name: "empty format", format: "", wantErr: ErrInvalidDateFormat},
		{name: "too long", format: strings.Repeat("-", MaxDateFormatLength+1), wantErr: ErrInvalidDateFormat},
		{name: "at max length", format: strings.Repeat("-", MaxDateFormatLength), want: strings.Repeat("-", MaxDateFormatLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseDateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveDate - auto expansion
// ---------------------------------------------------------------------------

func TestResolveDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{name: "empty passthrough", value: "", want: ""},
		{name: "literal date passthrough", value: "2024-01-01", want: "2024-01-01"},
		{name: "text passthrough", value: "Q1 2024", want: "Q1 2024"},
		{name: "auto", value: "auto", want: "2024-03-15"},
		{name: "AUTO case-insensitive", value: "AUTO", want: "2024-03-15"},
		{name: "auto custom", value: "auto:DD/MM/YYYY", want: "15/03/2024"},
		{name: "auto long", value: "auto:MMMM D, YYYY", want: "March 15, 2024"},
		{name: "preset us", value: "auto:us", want: "03/15/2024"},
		{name: "preset case-insensitive", value: "auto:European", want: "15/03/2024"},
		{name: "preset full", value: "auto:full", want: "Friday, March 15, 2024"},
		{name: "bracket literal", value: "auto:[Date]: YYYY-MM-DD", want: "Date: 2024-03-15"},
		{name: "empty after colon", value: "auto:", wantErr: ErrInvalidDateFormat},
		{name: "autoX", value: "autoX", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveDate(tt.value, fixedTime)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ResolveDate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDate(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ResolveDate(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolve - Display text and timestamp
// ---------------------------------------------------------------------------

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		value       string
		wantDisplay string
		wantTime    time.Time
		wantErr     error
	}{
		{name: "unset", value: "", wantDisplay: "", wantTime: fixedTime},
		{name: "whitespace only", value: "  ", wantDisplay: "", wantTime: fixedTime},
		{name: "auto", value: "auto", wantDisplay: "2024-03-15", wantTime: fixedTime},
		{name: "iso date sets timestamp", value: "2023-12-31", wantDisplay: "2023-12-31", wantTime: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
		{name: "free text keeps now", value: "Spring 2024", wantDisplay: "Spring 2024", wantTime: fixedTime},
		{name: "invalid auto", value: "auto:[x", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(tt.value, fixedTime)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Resolve(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.value, err)
			}
			if got.Display != tt.wantDisplay {
				t.Errorf("Display = %q, want %q", got.Display, tt.wantDisplay)
			}
			if !got.Time.Equal(tt.wantTime) {
				t.Errorf("Time = %v, want %v", got.Time, tt.wantTime)
			}
		})
	}
}
