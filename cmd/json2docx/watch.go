package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce groups the burst of events an editor save produces.
const watchDebounce = 200 * time.Millisecond

// watchAndConvert re-converts inputs as they change until ctx is canceled.
// New files in watched directories are converted too.
func watchAndConvert(ctx context.Context, files []FileToConvert, pool rendererPool, params *conversionParams, env *Environment) error {
	roots := watchRoots(files)
	if len(roots) == 0 {
		return fmt.Errorf("%w: --watch needs file or directory inputs", ErrInvalidFlags)
	}

	known := make(map[string]FileToConvert, len(files))
	for _, f := range files {
		known[filepath.Clean(f.InputPath)] = f
	}
	ext := params.format.Ext()

	if !params.quiet {
		fmt.Fprintf(env.Stdout, "Watching %d director%s for changes (Ctrl+C to stop)\n", len(roots), plural(len(roots), "y", "ies"))
	}

	return watchPaths(ctx, roots, watchDebounce, func(paths []string) {
		batch := make([]FileToConvert, 0, len(paths))
		for _, p := range paths {
			f, ok := known[p]
			if !ok {
				f = FileToConvert{InputPath: p, OutputPath: resolveOutputPath(p, params.outputDir, "", ext)}
			}
			batch = append(batch, f)
		}
		// Failures are already printed; keep watching.
		_ = convertAndReport(ctx, pool, batch, params, env)
	})
}

// watchRoots returns the directories holding file inputs, deduplicated.
// Preloaded inputs (stdin, --test) have nothing to watch.
func watchRoots(files []FileToConvert) []string {
	var roots []string
	for _, f := range files {
		if f.Data != nil || f.Blocks != nil || f.InputPath == stdinArg {
			continue
		}
		dir := filepath.Dir(f.InputPath)
		if !slices.Contains(roots, dir) {
			roots = append(roots, dir)
		}
	}
	return roots
}

// watchPaths calls onChange with the sorted, cleaned paths of supported input
// files written or created in dirs, once events settle for debounce.
// Returns nil when ctx is canceled.
func watchPaths(ctx context.Context, dirs []string, debounce time.Duration, onChange func([]string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watching %s: %w", d, err)
		}
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !isSupportedExtension(filepath.Ext(ev.Name)) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = struct{}{}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching: %w", err)
		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			clear(pending)
			onChange(paths)
		}
	}
}

// plural returns one or many depending on n.
func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
