package json2docx

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-json2docx/internal/codec"
)

// BlockType is a block's "type" tag.
type BlockType string

// Recognized block types. Any other tag is kept but skipped by the renderer.
const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
)

// Block is one decoded document block.
//
// Only the fields relevant to Type are set. Err records a malformed field
// found while decoding (ErrInvalidLevel, ErrInvalidItems); the renderer
// replaces such a block with its fallback instead of failing.
type Block struct {
	Type  BlockType
	Level int        // heading level, 1 when absent
	Text  string     // heading and paragraph text
	Items []ListItem // list items in order
	Err   error

	skip bool // entry was not a mapping
}

// NewHeading creates a heading block.
func NewHeading(level int, text string) Block {
	return Block{Type: BlockHeading, Level: level, Text: text}
}

// NewParagraph creates a paragraph block.
func NewParagraph(text string) Block {
	return Block{Type: BlockParagraph, Text: text}
}

// NewList creates a list block of plain text items.
func NewList(items ...string) Block {
	b := Block{Type: BlockList, Items: make([]ListItem, 0, len(items))}
	for _, s := range items {
		b.Items = append(b.Items, TextItem(s))
	}
	return b
}

// Skipped reports whether the renderer ignores the block: its entry was not a
// mapping or its type tag is not recognized.
func (b Block) Skipped() bool {
	if b.skip {
		return true
	}
	switch b.Type {
	case BlockHeading, BlockParagraph, BlockList:
		return false
	}
	return true
}

// ItemKind tags the shape of a list item.
type ItemKind int

const (
	ItemText ItemKind = iota
	ItemMapping
	ItemSequence
)

// String returns the kind name used by inspect output.
func (k ItemKind) String() string {
	switch k {
	case ItemMapping:
		return "mapping"
	case ItemSequence:
		return "sequence"
	default:
		return "text"
	}
}

// ListItem is one entry of a list block.
type ListItem struct {
	Kind     ItemKind
	Text     string         // ItemText
	Mapping  map[string]any // ItemMapping
	Sequence []any          // ItemSequence
}

// TextItem creates a plain text list item.
func TextItem(s string) ListItem {
	return ListItem{Kind: ItemText, Text: s}
}

// newListItem classifies a decoded value.
func newListItem(v any) ListItem {
	switch x := v.(type) {
	case map[string]any:
		return ListItem{Kind: ItemMapping, Mapping: x}
	case []any:
		return ListItem{Kind: ItemSequence, Sequence: x}
	default:
		return ListItem{Kind: ItemText, Text: Stringify(x)}
	}
}

// DisplayText resolves the text rendered for the item.
//
// A mapping with a "text" field shows that field; without one it shows the
// mapping as compact JSON. A sequence shows its elements joined by ", ".
func (li ListItem) DisplayText() string {
	switch li.Kind {
	case ItemMapping:
		if t, ok := li.Mapping["text"]; ok {
			return Stringify(t)
		}
		return Stringify(li.Mapping)
	case ItemSequence:
		parts := make([]string, len(li.Sequence))
		for i, v := range li.Sequence {
			parts[i] = Stringify(v)
		}
		return strings.Join(parts, ", ")
	default:
		return li.Text
	}
}

// Stringify converts a decoded value to display text.
//
// Strings are returned unchanged, numbers keep their literal form, booleans
// become "true"/"false" and null becomes "". Mappings and sequences become
// compact JSON with sorted keys.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x)
	case map[string]any, []any:
		s, err := codec.CompactJSON(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return s
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
