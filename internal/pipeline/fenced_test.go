package pipeline

// Notes:
// - Model responses usually wrap the block array in a ```json fence, with
//   prose before or after it. Extraction must return the fence body only.
// - The fallback trims fences from text goldmark does not see as a fenced
//   block, such as a truncated response with no closing fence.

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "tagged fence with prose",
			input: "Here is the report:\n\n```json\n[{\"type\":\"paragraph\"}]\n```\n\nThanks.",
			want:  `[{"type":"paragraph"}]`,
		},
		{
			name:  "tagged fence wins over earlier untagged",
			input: "```\n{\"a\":1}\n```\n\n```json\n[1]\n```",
			want:  "[1]",
		},
		{
			name:  "untagged fence that looks like JSON",
			input: "```\n[{\"type\":\"heading\"}]\n```",
			want:  `[{"type":"heading"}]`,
		},
		{
			name:    "untagged fence with non-JSON is ignored",
			input:   "```\nplain text\n```",
			wantErr: ErrNoJSONPayload,
		},
		{
			name:  "bare JSON",
			input: "  [1, 2, 3]  ",
			want:  "[1, 2, 3]",
		},
		{
			name:  "CRLF line endings",
			input: "```json\r\n{\"k\":true}\r\n```\r\n",
			want:  `{"k":true}`,
		},
		{
			name:  "uppercase language tag",
			input: "```JSON\n[]\n```",
			want:  "[]",
		},
		{
			name:    "no payload",
			input:   "I could not produce a report.",
			wantErr: ErrNoJSONPayload,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrNoJSONPayload,
		},
	}

	extractor := NewFencedJSONExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := extractor.ExtractJSON(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ExtractJSON() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSON() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unchanged", "a\nb", "a\nb"},
		{"crlf", "a\r\nb", "a\nb"},
		{"lone cr", "a\rb", "a\nb"},
		{"bom", "\uFEFFtext", "text"},
		{"blank lines compressed", "a\n\n\n\n\nb", "a\n\nb"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		if got := NormalizeText(tt.input); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFencedJSONExtractor_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ JSONExtractor = NewFencedJSONExtractor()
}
