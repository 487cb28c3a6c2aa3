package json2docx

// Notes:
// - ParseBlocks keeps numbers as json.Number, so level and item checks see
//   the literal form ("1.50" stays "1.50").
// - Malformed fields never fail decoding; they are reported through
//   Block.Err and checked with errors.Is.
// - Markdown import details are covered in internal/pipeline; here only the
//   hand-off to DecodeBlocks is checked.

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseBlocks - JSON top level
// ---------------------------------------------------------------------------

func TestParseBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantLen    int
		wantErr    error
		wantAnyErr bool
	}{
		{"array of blocks", `[{"type":"heading","text":"A"},{"type":"paragraph","text":"b"}]`, 2, nil, false},
		{"empty array", `[]`, 0, nil, false},
		{"byte order mark", "\xEF\xBB\xBF[{\"type\":\"paragraph\"}]", 1, nil, false},
		{"object top level", `{"type":"heading"}`, 0, ErrNotBlockSequence, false},
		{"string top level", `"blocks"`, 0, ErrNotBlockSequence, false},
		{"empty input", "  \n", 0, ErrEmptyInput, false},
		{"invalid JSON", `[{"type":`, 0, nil, true},
		{"trailing data", `[] []`, 0, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks, err := ParseBlocks([]byte(tt.input))
			if tt.wantErr != nil || tt.wantAnyErr {
				if err == nil {
					t.Fatal("ParseBlocks() expected error, got nil")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseBlocks() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBlocks() unexpected error: %v", err)
			}
			if len(blocks) != tt.wantLen {
				t.Errorf("len(blocks) = %d, want %d", len(blocks), tt.wantLen)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDecodeBlocks_Heading - Level handling
// ---------------------------------------------------------------------------

func TestDecodeBlocks_Heading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantLevel int
		wantErr   bool
	}{
		{"missing level defaults to 1", `[{"type":"heading","text":"x"}]`, 1, false},
		{"explicit level", `[{"type":"heading","level":3,"text":"x"}]`, 3, false},
		{"integral float", `[{"type":"heading","level":2.0,"text":"x"}]`, 2, false},
		{"deep level kept", `[{"type":"heading","level":12,"text":"x"}]`, 12, false},
		{"zero", `[{"type":"heading","level":0,"text":"x"}]`, 0, true},
		{"negative", `[{"type":"heading","level":-1,"text":"x"}]`, 0, true},
		{"fractional", `[{"type":"heading","level":1.5,"text":"x"}]`, 0, true},
		{"string", `[{"type":"heading","level":"2","text":"x"}]`, 0, true},
		{"null", `[{"type":"heading","level":null,"text":"x"}]`, 0, true},
		{"boolean", `[{"type":"heading","level":true,"text":"x"}]`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks, err := ParseBlocks([]byte(tt.input))
			if err != nil {
				t.Fatalf("ParseBlocks() unexpected error: %v", err)
			}
			b := blocks[0]
			if tt.wantErr {
				if !errors.Is(b.Err, ErrInvalidLevel) {
					t.Errorf("Block.Err = %v, want ErrInvalidLevel", b.Err)
				}
				return
			}
			if b.Err != nil {
				t.Fatalf("Block.Err = %v, want nil", b.Err)
			}
			if b.Level != tt.wantLevel {
				t.Errorf("Level = %d, want %d", b.Level, tt.wantLevel)
			}
		})
	}
}

func TestDecodeBlocks_HandBuiltLevels(t *testing.T) {
	t.Parallel()

	blocks := DecodeBlocks([]any{
		map[string]any{"type": "heading", "level": 2},
		map[string]any{"type": "heading", "level": 3.0},
		map[string]any{"type": "heading", "level": uint64(4)},
	})
	for i, want := range []int{2, 3, 4} {
		if blocks[i].Err != nil || blocks[i].Level != want {
			t.Errorf("blocks[%d] = level %d err %v, want level %d", i, blocks[i].Level, blocks[i].Err, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDecodeBlocks_Fields - Text, items and skipped entries
// ---------------------------------------------------------------------------

func TestDecodeBlocks_Fields(t *testing.T) {
	t.Parallel()

	input := `[
		"not a block",
		42,
		{"type":"paragraph","text":123.50},
		{"type":"paragraph"},
		{"type":"list"},
		{"type":"list","items":"abc"},
		{"type":"list","items":null},
		{"type":"table","rows":[]},
		{"text":"no type"}
	]`
	blocks, err := ParseBlocks([]byte(input))
	if err != nil {
		t.Fatalf("ParseBlocks() unexpected error: %v", err)
	}
	if len(blocks) != 9 {
		t.Fatalf("len(blocks) = %d, want 9", len(blocks))
	}

	if !blocks[0].Skipped() || !blocks[1].Skipped() {
		t.Error("non-mapping entries should be skipped")
	}
	if blocks[2].Text != "123.50" {
		t.Errorf("numeric text = %q, want %q", blocks[2].Text, "123.50")
	}
	if blocks[3].Text != "" || blocks[3].Skipped() {
		t.Errorf("paragraph without text = %+v, want empty rendered paragraph", blocks[3])
	}
	if blocks[4].Err != nil || len(blocks[4].Items) != 0 {
		t.Errorf("list without items = %+v, want empty list", blocks[4])
	}
	for _, i := range []int{5, 6} {
		if !errors.Is(blocks[i].Err, ErrInvalidItems) {
			t.Errorf("blocks[%d].Err = %v, want ErrInvalidItems", i, blocks[i].Err)
		}
	}
	if blocks[7].Type != "table" || !blocks[7].Skipped() {
		t.Errorf("unknown type = %+v, want kept tag and skipped", blocks[7])
	}
	if !blocks[8].Skipped() {
		t.Error("block without type should be skipped")
	}
}

// ---------------------------------------------------------------------------
// TestParseBlocksYAML
// ---------------------------------------------------------------------------

func TestParseBlocksYAML(t *testing.T) {
	t.Parallel()

	input := `
- type: heading
  level: 2
  text: Market **Overview**
- type: list
  items:
    - plain
    - text: from mapping
    - [a, b]
`
	blocks, err := ParseBlocksYAML([]byte(input))
	if err != nil {
		t.Fatalf("ParseBlocksYAML() unexpected error: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("len(blocks) = %d, want 2", len(blocks))
	}
	if blocks[0].Level != 2 || blocks[0].Text != "Market **Overview**" {
		t.Errorf("heading = %+v", blocks[0])
	}

	var got []string
	for _, it := range blocks[1].Items {
		got = append(got, it.DisplayText())
	}
	want := []string{"plain", "from mapping", "a, b"}
	if len(got) != len(want) {
		t.Fatalf("items = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseBlocksYAML_Mapping(t *testing.T) {
	t.Parallel()

	_, err := ParseBlocksYAML([]byte("type: heading\ntext: x\n"))
	if !errors.Is(err, ErrNotBlockSequence) {
		t.Errorf("ParseBlocksYAML() error = %v, want ErrNotBlockSequence", err)
	}
}

// ---------------------------------------------------------------------------
// TestExtractBlocks - Fenced model output
// ---------------------------------------------------------------------------

func TestExtractBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr error
	}{
		{
			name:    "json fence with prose",
			input:   "Here is the report:\n\n```json\n[{\"type\":\"paragraph\",\"text\":\"x\"}]\n```\nDone.",
			wantLen: 1,
		},
		{
			name:    "bare array",
			input:   `[{"type":"heading","text":"A"},{"type":"paragraph","text":"B"}]`,
			wantLen: 2,
		},
		{
			name:    "unclosed fence",
			input:   "```json\n[{\"type\":\"paragraph\",\"text\":\"x\"}]",
			wantLen: 1,
		},
		{
			name:    "prose only",
			input:   "I could not produce a report.",
			wantErr: ErrNoJSONPayload,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrEmptyInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks, err := ExtractBlocks(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ExtractBlocks() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractBlocks() unexpected error: %v", err)
			}
			if len(blocks) != tt.wantLen {
				t.Errorf("len(blocks) = %d, want %d", len(blocks), tt.wantLen)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDecode - Format dispatch
// ---------------------------------------------------------------------------

func TestDecode_Markdown(t *testing.T) {
	t.Parallel()

	t.Run("plain markdown is imported", func(t *testing.T) {
		t.Parallel()

		blocks, err := Decode([]byte("# Title\n\nBody with **bold**.\n\n- one\n- two\n"), InputMarkdown)
		if err != nil {
			t.Fatalf("Decode() unexpected error: %v", err)
		}
		if len(blocks) != 3 {
			t.Fatalf("len(blocks) = %d, want 3", len(blocks))
		}
		if blocks[0].Type != BlockHeading || blocks[0].Level != 1 || blocks[0].Text != "Title" {
			t.Errorf("blocks[0] = %+v, want heading level 1 %q", blocks[0], "Title")
		}
		if blocks[1].Text != "Body with **bold**." {
			t.Errorf("blocks[1].Text = %q", blocks[1].Text)
		}
		if len(blocks[2].Items) != 2 {
			t.Errorf("list items = %d, want 2", len(blocks[2].Items))
		}
	})

	t.Run("fenced block array wins", func(t *testing.T) {
		t.Parallel()

		src := "Report follows.\n\n```json\n[{\"type\":\"paragraph\",\"text\":\"from json\"}]\n```\n"
		blocks, err := Decode([]byte(src), InputMarkdown)
		if err != nil {
			t.Fatalf("Decode() unexpected error: %v", err)
		}
		if len(blocks) != 1 || blocks[0].Text != "from json" {
			t.Errorf("blocks = %+v, want the fenced paragraph", blocks)
		}
	})
}

func TestDetectInputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want InputFormat
	}{
		{"report.json", InputJSON},
		{"REPORT.JSON", InputJSON},
		{"blocks.yaml", InputYAML},
		{"blocks.yml", InputYAML},
		{"notes.md", InputMarkdown},
		{"notes.markdown", InputMarkdown},
		{"response.txt", InputText},
		{"stdin", InputText},
	}

	for _, tt := range tests {
		if got := DetectInputFormat(tt.path); got != tt.want {
			t.Errorf("DetectInputFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParseInputFormat(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "json", "YAML", " markdown ", "text"} {
		if _, err := ParseInputFormat(s); err != nil {
			t.Errorf("ParseInputFormat(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParseInputFormat("xml"); err == nil {
		t.Error("ParseInputFormat(\"xml\") expected error, got nil")
	}
}
