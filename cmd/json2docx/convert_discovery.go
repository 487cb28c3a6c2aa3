package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	json2docx "github.com/alnah/go-json2docx"
	"github.com/alnah/go-json2docx/internal/config"
	"github.com/alnah/go-json2docx/internal/fileutil"
)

// stdinArg is the input argument that reads blocks from standard input.
const stdinArg = "-"

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("unsupported input extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// supportedExtensions lists the input extensions picked up from directories.
var supportedExtensions = []string{".json", ".yaml", ".yml", ".md", ".markdown", ".txt"}

// FileToConvert represents a single document to produce.
type FileToConvert struct {
	InputPath  string
	OutputPath string            // empty: derived from the first heading
	Data       []byte            // preloaded input (stdin)
	Blocks     []json2docx.Block // preloaded blocks (--test)

	FallbackPath string // empty: the renderer's configured fallback
}

// collectFiles builds the work list from positional inputs, the configured
// input directory, or the built-in test document.
func collectFiles(positional []string, test bool, cfg *config.Config, params *conversionParams, env *Environment) ([]FileToConvert, error) {
	ext := params.format.Ext()

	if test {
		return []FileToConvert{{
			InputPath:  "--test",
			OutputPath: resolveNamedOutput(params.outputDir, json2docx.SampleOutputName, ext),
			Blocks:     json2docx.SampleBlocks(),
		}}, nil
	}

	inputs, err := resolveInputPaths(positional, cfg)
	if err != nil {
		return nil, err
	}

	var files []FileToConvert
	for _, in := range inputs {
		if in == stdinArg {
			data, err := io.ReadAll(env.Stdin)
			if err != nil {
				return nil, fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
			}
			var out string
			if isOutputFile(params.outputDir, ext) {
				out = params.outputDir
			}
			files = append(files, FileToConvert{InputPath: stdinArg, OutputPath: out, Data: data})
			continue
		}

		found, err := discoverFiles(in, params.outputDir, ext)
		if err != nil {
			return nil, fmt.Errorf("discovering files: %w", err)
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no supported files found in %s", ErrNoInput, strings.Join(inputs, ", "))
	}
	return files, nil
}

// resolveInputPaths returns the positional inputs, or the configured
// default input directory when there are none.
func resolveInputPaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, ErrNoInput
}

// hasInputs reports whether the user named inputs, as arguments or through
// the configured input directory.
func hasInputs(args []string, cfg *config.Config) bool {
	return len(args) > 0 || cfg.Input.DefaultDir != ""
}

// batchFallbacks returns one fallback path per file. A single file keeps the
// configured fallback (empty result). In larger batches every file gets
// base with its input stem appended, made unique across the batch, so two
// failed saves never write the same fallback.
func batchFallbacks(files []FileToConvert, base string) []string {
	paths := make([]string, len(files))
	if len(files) < 2 {
		return paths
	}
	if base == "" {
		base = json2docx.DefaultFallbackPath
	}
	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext)

	used := make(map[string]bool, len(files))
	for i, f := range files {
		stem := strings.TrimSuffix(filepath.Base(f.InputPath), filepath.Ext(f.InputPath))
		if f.InputPath == stdinArg || f.Blocks != nil || stem == "" || stem == "." {
			stem = strconv.Itoa(i + 1)
		}
		name := stem
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", stem, n)
		}
		used[name] = true
		paths[i] = prefix + "_" + name + ext
	}
	return paths
}

// resolveOutputDir returns the output flag, or the configured default
// output directory.
func resolveOutputDir(outputFlag string, cfg *config.Config) string {
	if outputFlag != "" {
		return outputFlag
	}
	return cfg.Output.DefaultDir
}

// discoverFiles finds all supported input files under inputPath.
func discoverFiles(inputPath, outputDir, ext string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateInputExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "", ext)
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath, ext)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the output path for an input file.
// Directory inputs are mirrored under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+ext)
	}

	if isOutputFile(outputDir, ext) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+ext)
		}
	}

	return filepath.Join(outputDir, base+ext)
}

// resolveNamedOutput places a fixed file name in outputDir, with the
// extension adjusted to ext. An output file path is used as is.
func resolveNamedOutput(outputDir, name, ext string) string {
	if isOutputFile(outputDir, ext) {
		return outputDir
	}
	return filepath.Join(outputDir, fileutil.ReplaceExt(name, ext))
}

// derivedOutputPath names stdin output after the first heading.
func derivedOutputPath(outputDir string, blocks []json2docx.Block, ext string) string {
	var heading string
	for _, b := range blocks {
		if b.Type == json2docx.BlockHeading && !b.Skipped() {
			heading = b.Text
			break
		}
	}
	return filepath.Join(outputDir, fileutil.DeriveOutputName(heading, ext))
}

// isOutputFile reports whether the output flag names a file rather than a
// directory.
func isOutputFile(output, ext string) bool {
	return output != "" && strings.EqualFold(filepath.Ext(output), ext)
}

// isSupportedExtension reports whether ext is a known input extension.
func isSupportedExtension(ext string) bool {
	return slices.Contains(supportedExtensions, strings.ToLower(ext))
}

// validateInputExtension checks that the file has a supported extension.
func validateInputExtension(path string) error {
	ext := filepath.Ext(path)
	if !isSupportedExtension(ext) {
		return fmt.Errorf("%w: got %q (use %s)", ErrInvalidExtension, ext, strings.Join(supportedExtensions, ", "))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
