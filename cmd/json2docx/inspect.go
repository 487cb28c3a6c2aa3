package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	flag "github.com/spf13/pflag"

	json2docx "github.com/alnah/go-json2docx"
	"github.com/alnah/go-json2docx/internal/codec"
)

// Highlighting settings for inspect output on a terminal.
const (
	inspectFormatter = "terminal256"
	inspectStyle     = "monokai"
)

// inspectBlock is the normalized view of a block: list items are reduced to
// the text the renderer would print.
type inspectBlock struct {
	Type    string   `json:"type" yaml:"type"`
	Level   int      `json:"level,omitempty" yaml:"level,omitempty"`
	Text    string   `json:"text,omitempty" yaml:"text,omitempty"`
	Items   []string `json:"items,omitempty" yaml:"items,omitempty"`
	Skipped bool     `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// runInspectCmd prints the normalized blocks of one input.
func runInspectCmd(args []string, env *Environment) error {
	f := &inspectFlags{}
	fs := newInspectFlagSet(f)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printInspectUsage(env.Stdout)
			return nil
		}
		return wrapFlagError(err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: inspect takes exactly one input", ErrNoInput)
	}
	input := fs.Arg(0)

	from, err := json2docx.ParseInputFormat(f.from)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	data, err := readInput(input, env.Stdin)
	if err != nil {
		return err
	}

	blocks, err := loadBlocks(FileToConvert{InputPath: input, Data: data}, from)
	if err != nil {
		return err
	}

	out, lexer, err := encodeInspect(normalizeBlocks(blocks), f.yaml)
	if err != nil {
		return err
	}

	if !f.noColor && isTerminal(env.Stdout) {
		if err := quick.Highlight(env.Stdout, string(out), lexer, inspectFormatter, inspectStyle); err == nil {
			return nil
		}
	}
	_, err = env.Stdout.Write(out)
	return err
}

// readInput reads a file, or stdin for "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	var data []byte
	var err error
	if path == stdinArg {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- user-provided path
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// normalizeBlocks converts decoded blocks to their inspect view.
func normalizeBlocks(blocks []json2docx.Block) []inspectBlock {
	out := make([]inspectBlock, 0, len(blocks))
	for _, b := range blocks {
		ib := inspectBlock{
			Type:    string(b.Type),
			Text:    b.Text,
			Skipped: b.Skipped(),
		}
		if b.Type == json2docx.BlockHeading {
			ib.Level = b.Level
		}
		for _, item := range b.Items {
			ib.Items = append(ib.Items, item.DisplayText())
		}
		if b.Err != nil {
			ib.Error = b.Err.Error()
		}
		out = append(out, ib)
	}
	return out
}

// encodeInspect renders blocks as indented JSON or YAML and names the
// matching highlighting lexer.
func encodeInspect(blocks []inspectBlock, asYAML bool) ([]byte, string, error) {
	if asYAML {
		out, err := codec.MarshalYAML(blocks)
		return out, "yaml", err
	}
	out, err := codec.IndentJSON(blocks)
	return out, "json", err
}
