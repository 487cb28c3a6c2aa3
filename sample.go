package json2docx

import "fmt"

// Default output names for the built-in documents.
const (
	SampleOutputName      = "sample_report.docx"
	ErrorReportOutputName = "error_report.docx"
)

// SampleBlocks returns the built-in test document. It exercises every block
// type and every list item shape.
func SampleBlocks() []Block {
	return []Block{
		NewHeading(1, "Test Document"),
		NewParagraph("This is a paragraph with **bold text** inside it."),
		NewHeading(2, "List Items"),
		{
			Type: BlockList,
			Items: []ListItem{
				TextItem("Regular item"),
				TextItem("Item with **bold text**"),
				{Kind: ItemSequence, Sequence: []any{"This", "is", "a", "list", "item"}},
				{Kind: ItemMapping, Mapping: map[string]any{"text": "This is a dict item", "value": 100}},
				TextItem("**Completely bold item**"),
			},
		},
	}
}

// ErrorReportBlocks returns a short document describing a failed conversion.
func ErrorReportBlocks(err error) []Block {
	return []Block{
		NewHeading(1, "Error Report"),
		NewParagraph(fmt.Sprintf("An error occurred during processing: %v", err)),
	}
}
