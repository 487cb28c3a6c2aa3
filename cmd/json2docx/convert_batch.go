package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	json2docx "github.com/alnah/go-json2docx"
	"github.com/alnah/go-json2docx/internal/hints"
)

// File permission constants.
const (
	dirPermissions = 0o750 // rwxr-x---: owner full, group read+execute
)

// rendererPool abstracts renderer pool operations for testability.
type rendererPool interface {
	Acquire() (*json2docx.Renderer, error)
	Release(*json2docx.Renderer)
	Size() int
}

// Compile-time interface implementation check.
var _ rendererPool = (*json2docx.RendererPool)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath     string
	OutputPath    string // path actually written
	RequestedPath string // set when OutputPath is the fallback
	Size          int64
	Err           error
	Duration      time.Duration
}

// convertBatch processes files concurrently using the renderer pool.
func convertBatch(ctx context.Context, pool rendererPool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	fallbacks := batchFallbacks(files, params.fallbackPath)

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := pool.Acquire()
			if err != nil {
				// Renderer creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("creating renderer: %w", err),
					}
				}
				return
			}
			defer pool.Release(r)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				f := files[idx]
				if fallbacks[idx] != "" {
					f.FallbackPath = fallbacks[idx]
				}
				results[idx] = convertFile(ctx, r, f, params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile decodes, renders and saves a single document.
func convertFile(ctx context.Context, r *json2docx.Renderer, f FileToConvert, params *conversionParams) (result ConversionResult) {
	start := time.Now()
	result = ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	defer func() { result.Duration = time.Since(start) }()

	blocks, err := loadBlocks(f, params.from)
	if err != nil {
		result.Err = err
		return result
	}

	if result.OutputPath == "" {
		result.OutputPath = derivedOutputPath(params.outputDir, blocks, params.format.Ext())
	}

	prepareOutputDir(result.OutputPath)

	doc, err := r.Render(ctx, blocks)
	if err != nil {
		result.Err = err
		return result
	}

	saved, err := r.SaveAsWithFallback(ctx, doc, result.OutputPath, f.FallbackPath, params.format)
	if err != nil {
		result.Err = withExportHint(err)
		return result
	}
	if saved != result.OutputPath {
		result.RequestedPath = result.OutputPath
		result.OutputPath = saved
	}

	if info, err := os.Stat(saved); err == nil {
		result.Size = info.Size()
	}
	return result
}

// prepareOutputDir creates the parent directory of path. A directory that
// cannot be created surfaces as a save error, which SaveAs answers with the
// fallback path.
func prepareOutputDir(path string) {
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, dirPermissions)
	}
}

// loadBlocks returns the blocks for f, reading and decoding its input as needed.
func loadBlocks(f FileToConvert, from json2docx.InputFormat) ([]json2docx.Block, error) {
	if f.Blocks != nil {
		return f.Blocks, nil
	}

	data := f.Data
	if data == nil {
		var err error
		data, err = os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
	}

	format := from
	if format == "" {
		format = json2docx.InputText
		if f.InputPath != stdinArg {
			format = json2docx.DetectInputFormat(f.InputPath)
		}
	}

	blocks, err := json2docx.Decode(data, format)
	if err != nil {
		return nil, withDecodeHint(err)
	}
	return blocks, nil
}

// withDecodeHint appends a hint for malformed input.
func withDecodeHint(err error) error {
	switch {
	case errors.Is(err, json2docx.ErrNoJSONPayload):
		return fmt.Errorf("%w%s", err, hints.ForNoJSONPayload())
	case errors.Is(err, json2docx.ErrNotBlockSequence), errors.Is(err, json2docx.ErrEmptyInput):
		return fmt.Errorf("%w%s", err, hints.ForInvalidInput())
	default:
		return err
	}
}

// withExportHint appends a hint for export and save failures.
func withExportHint(err error) error {
	switch {
	case errors.Is(err, json2docx.ErrSave):
		return fmt.Errorf("%w%s", err, hints.ForSave())
	case errors.Is(err, json2docx.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	default:
		return err
	}
}

// firstError returns the first failure in input order.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// writeErrorReport saves a short document describing err next to the outputs.
// Failures are reported as warnings; the original error stays the result.
func writeErrorReport(ctx context.Context, pool rendererPool, err error, params *conversionParams, env *Environment) {
	dir := params.outputDir
	if isOutputFile(dir, params.format.Ext()) {
		dir = filepath.Dir(dir)
	}
	path := filepath.Join(dir, json2docx.ErrorReportOutputName)

	r, aerr := pool.Acquire()
	if aerr != nil {
		fmt.Fprintf(env.Stderr, "warning: could not write error report: %v\n", aerr)
		return
	}
	defer pool.Release(r)

	// Written even after an interrupt.
	ctx = context.WithoutCancel(ctx)
	doc, rerr := r.Render(ctx, json2docx.ErrorReportBlocks(err))
	var saved string
	if rerr == nil {
		prepareOutputDir(path)
		saved, rerr = r.SaveAs(ctx, doc, path, json2docx.FormatDOCX)
	}
	if rerr != nil {
		fmt.Fprintf(env.Stderr, "warning: could not write error report: %v\n", rerr)
		return
	}

	if !params.quiet {
		fmt.Fprintf(env.Stderr, "Error report written to %s\n", saved)
	}
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
// Returns the number of failures.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if r.RequestedPath != "" {
			fmt.Fprintf(env.Stderr, "Saved to fallback %s (could not write %s)\n", r.OutputPath, r.RequestedPath)
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v, %s)\n", r.InputPath, r.OutputPath,
				r.Duration.Round(time.Millisecond), humanize.Bytes(uint64(max(r.Size, 0))))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
