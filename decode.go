package json2docx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/alnah/go-json2docx/internal/codec"
	"github.com/alnah/go-json2docx/internal/pipeline"
)

// InputFormat names a block source encoding.
type InputFormat string

// Supported input formats.
const (
	InputJSON     InputFormat = "json"
	InputYAML     InputFormat = "yaml"
	InputMarkdown InputFormat = "markdown"
	InputText     InputFormat = "text" // model output with fenced JSON
)

var utf8BOM = []byte("\xEF\xBB\xBF")

// DetectInputFormat picks an input format from a file extension.
// Unknown extensions are treated as text that may hold fenced JSON.
func DetectInputFormat(path string) InputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return InputJSON
	case ".yaml", ".yml":
		return InputYAML
	case ".md", ".markdown":
		return InputMarkdown
	default:
		return InputText
	}
}

// ParseInputFormat validates a format name. Empty means auto-detect and is
// returned unchanged.
func ParseInputFormat(s string) (InputFormat, error) {
	switch f := InputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", InputJSON, InputYAML, InputMarkdown, InputText:
		return f, nil
	default:
		return "", fmt.Errorf("unknown input format %q (use json, yaml, markdown or text)", s)
	}
}

// Decode parses data according to format.
//
// Markdown input that carries a fenced JSON block array is decoded as that
// array; otherwise the Markdown itself is imported.
func Decode(data []byte, format InputFormat) ([]Block, error) {
	switch format {
	case InputJSON:
		return ParseBlocks(data)
	case InputYAML:
		return ParseBlocksYAML(data)
	case InputText:
		return ExtractBlocks(string(data))
	case InputMarkdown:
		if blocks, err := ExtractBlocks(string(data)); err == nil {
			return blocks, nil
		}
		if err := codec.CheckDocumentSize(data); err != nil {
			return nil, err
		}
		return ImportMarkdown(data), nil
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

// ParseBlocks decodes a JSON array of blocks.
// Returns ErrNotBlockSequence if the top-level value is not an array.
func ParseBlocks(data []byte) ([]Block, error) {
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	var v any
	if err := codec.DecodeJSON(data, &v); err != nil {
		return nil, fmt.Errorf("parsing blocks: %w", err)
	}

	values, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotBlockSequence, describe(v))
	}
	return DecodeBlocks(values), nil
}

// ParseBlocksYAML decodes a YAML sequence of blocks.
// Values go through the same number handling as JSON input.
func ParseBlocksYAML(data []byte) ([]Block, error) {
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	js, err := codec.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing blocks: %w", err)
	}
	return ParseBlocks(js)
}

// ExtractBlocks finds a JSON block array inside free text, typically a model
// response wrapped in ```json fences, and decodes it.
// Returns ErrNoJSONPayload when the text holds no JSON.
func ExtractBlocks(text string) ([]Block, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	payload, err := pipeline.NewFencedJSONExtractor().ExtractJSON(text)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoJSONPayload) {
			return nil, ErrNoJSONPayload
		}
		return nil, err
	}
	return ParseBlocks([]byte(payload))
}

// ImportMarkdown converts Markdown into blocks. Headings keep their level,
// paragraphs and code become paragraphs, and lists and tables become lists.
func ImportMarkdown(src []byte) []Block {
	return DecodeBlocks(pipeline.NewGoldmarkImporter().ImportMarkdown(src))
}

// DecodeBlocks converts already-decoded values (from encoding/json, YAML or
// hand-built data) into blocks. It never fails: malformed fields are recorded
// in Block.Err and non-mapping entries are marked skipped.
func DecodeBlocks(values []any) []Block {
	blocks := make([]Block, 0, len(values))
	for _, v := range values {
		blocks = append(blocks, decodeBlock(v))
	}
	return blocks
}

func decodeBlock(v any) Block {
	m, ok := v.(map[string]any)
	if !ok {
		return Block{skip: true}
	}

	tag, _ := m["type"].(string)
	b := Block{Type: BlockType(tag)}

	switch b.Type {
	case BlockHeading:
		b.Text = Stringify(m["text"])
		raw, present := m["level"]
		if !present {
			b.Level = 1
			break
		}
		level, err := parseLevel(raw)
		if err != nil {
			b.Err = fmt.Errorf("%w: %s", err, Stringify(raw))
			break
		}
		b.Level = level

	case BlockParagraph:
		b.Text = Stringify(m["text"])

	case BlockList:
		raw, present := m["items"]
		if !present {
			break
		}
		items, ok := raw.([]any)
		if !ok {
			b.Err = fmt.Errorf("%w: got %s", ErrInvalidItems, describe(raw))
			break
		}
		b.Items = make([]ListItem, 0, len(items))
		for _, it := range items {
			b.Items = append(b.Items, newListItem(it))
		}
	}

	return b
}

// parseLevel accepts positive integers, including integral floats such as 2.0.
func parseLevel(v any) (int, error) {
	var f float64
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return positiveLevel(float64(n))
		}
		parsed, err := x.Float64()
		if err != nil {
			return 0, ErrInvalidLevel
		}
		f = parsed
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint64:
		f = float64(x)
	default:
		return 0, ErrInvalidLevel
	}
	return positiveLevel(f)
}

func positiveLevel(f float64) (int, error) {
	if f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, ErrInvalidLevel
	}
	return int(f), nil
}

// describe names a decoded value's JSON kind for error messages.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int64, uint64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
