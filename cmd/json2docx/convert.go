package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	json2docx "github.com/alnah/go-json2docx"
	"github.com/alnah/go-json2docx/internal/config"
	"github.com/alnah/go-json2docx/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadInput    = errors.New("failed to read input")
	ErrInvalidFlags = errors.New("invalid flags")
)

// conversionParams groups settings shared by every file of a batch.
type conversionParams struct {
	format       json2docx.Format
	from         json2docx.InputFormat // empty = by extension
	opts         []json2docx.Option
	outputDir    string // resolved -o or output.defaultDir
	fallbackPath string // base for per-file fallbacks in multi-file batches
	errorReport  bool
	quiet        bool
	verbose      bool
}

// runConvertCmd parses convert flags and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConvertUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.io.workers); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath, env)
	if err != nil {
		return err
	}

	// CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	params, err := buildConversionParams(flags, cfg, env)
	if err != nil {
		return err
	}

	if err := checkTheme(cfg); err != nil {
		return err
	}

	pool := json2docx.NewRendererPool(json2docx.ResolvePoolSize(cfg.Render.Workers), params.opts...)
	defer func() { _ = pool.Close() }()

	files, err := collectFiles(positionalArgs, flags.io.test, cfg, params, env)
	if err != nil {
		// Named inputs that cannot be read still leave a report behind.
		if params.errorReport && hasInputs(positionalArgs, cfg) {
			writeErrorReport(ctx, pool, err, params, env)
		}
		return err
	}

	if params.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", pool.Size())
	}

	err = convertAndReport(ctx, pool, files, params, env)
	if !flags.io.watch {
		return err
	}

	return watchAndConvert(ctx, files, pool, params, env)
}

// loadConfig loads the named config, the JSON2DOCX_CONFIG one, or the
// environment's base config, in that order.
func loadConfig(flagName, envName string, env *Environment) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		cfg := *env.Config
		return &cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(nil))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// I/O flags
	if flags.io.format != "" {
		cfg.Output.Format = flags.io.format
	}
	if flags.io.from != "" {
		cfg.Input.Format = flags.io.from
	}
	if flags.io.workers > 0 {
		cfg.Render.Workers = flags.io.workers
	}
	if flags.io.timeout != "" {
		cfg.Render.Timeout = flags.io.timeout
	}
	if flags.io.fallback != "" {
		cfg.Output.FallbackPath = flags.io.fallback
	}
	if flags.io.noErrorReport {
		cfg.Output.DisableErrorReport = true
	}

	// Document flags
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.author != "" {
		cfg.Document.Author = flags.document.author
	}
	if flags.document.subject != "" {
		cfg.Document.Subject = flags.document.subject
	}
	if flags.document.description != "" {
		cfg.Document.Description = flags.document.description
	}
	if flags.document.date != "" {
		cfg.Document.Date = flags.document.date
	}
	if flags.document.id != "" {
		cfg.Document.ID = flags.document.id
	}

	// Footer flags (setting a footer field enables the footer)
	if flags.footer.text != "" {
		cfg.Footer.Text = flags.footer.text
		cfg.Footer.Enabled = true
	}
	if flags.footer.pageNumber {
		cfg.Footer.ShowPageNumber = true
		cfg.Footer.Enabled = true
	}
	if flags.footer.disabled {
		cfg.Footer.Enabled = false
	}

	// Asset flags
	if flags.assets.theme != "" {
		cfg.Theme.Name = flags.assets.theme
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
}

// buildConversionParams resolves the merged config into renderer options.
func buildConversionParams(flags *convertFlags, cfg *config.Config, env *Environment) (*conversionParams, error) {
	format, err := resolveOutputFormat(cfg.Output.Format, flags.io.output)
	if err != nil {
		return nil, err
	}

	from, err := json2docx.ParseInputFormat(cfg.Input.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	timeout, err := cfg.Render.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	// Resolve "auto" once for the entire batch
	date, err := json2docx.ResolveDate(cfg.Document.Date, env.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: document.date: %v", config.ErrInvalidValue, err)
	}

	opts := []json2docx.Option{
		json2docx.WithMetadata(json2docx.Metadata{
			Title:       cfg.Document.Title,
			Author:      cfg.Document.Author,
			Subject:     cfg.Document.Subject,
			Description: cfg.Document.Description,
			Date:        date,
			ID:          cfg.Document.ID,
		}),
		json2docx.WithFallbackPath(cfg.Output.FallbackPath),
		json2docx.WithTimeout(timeout),
	}
	if cfg.Theme.Name != "" {
		opts = append(opts, json2docx.WithTheme(cfg.Theme.Name))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, json2docx.WithAssetPath(cfg.Assets.BasePath))
	}
	if footer := buildFooter(cfg); footer != nil {
		opts = append(opts, json2docx.WithFooter(footer))
	}

	return &conversionParams{
		format:       format,
		from:         from,
		opts:         opts,
		outputDir:    resolveOutputDir(flags.io.output, cfg),
		fallbackPath: cfg.Output.FallbackPath,
		errorReport:  !cfg.Output.DisableErrorReport,
		quiet:        flags.common.quiet,
		verbose:      flags.common.verbose,
	}, nil
}

// resolveOutputFormat picks the output format: the configured one, else the
// extension of an explicit output file, else DOCX.
func resolveOutputFormat(configured, output string) (json2docx.Format, error) {
	if configured != "" {
		return json2docx.ParseFormat(configured)
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), "."); ext != "" {
		if f, err := json2docx.ParseFormat(ext); err == nil {
			return f, nil
		}
	}
	return json2docx.FormatDOCX, nil
}

// buildFooter returns the footer settings, or nil when the footer is off.
func buildFooter(cfg *config.Config) *json2docx.Footer {
	if !cfg.Footer.Enabled {
		return nil
	}
	return &json2docx.Footer{
		Text:           cfg.Footer.Text,
		ShowPageNumber: cfg.Footer.ShowPageNumber,
	}
}

// checkTheme fails early, listing alternatives, when the theme does not exist.
func checkTheme(cfg *config.Config) error {
	name := cfg.Theme.Name
	if name == "" {
		return nil
	}
	names, err := json2docx.ThemeNames(cfg.Assets.BasePath)
	if err != nil {
		return err
	}
	if !slices.Contains(names, name) {
		return fmt.Errorf("%w: %q%s", json2docx.ErrThemeNotFound, name, hints.ForThemeNotFound(names))
	}
	return nil
}

// batchError summarizes a batch with failures. It unwraps to the first
// failure so the exit code reflects its cause.
type batchError struct {
	failed int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d conversion(s) failed", e.failed)
}

func (e *batchError) Unwrap() error {
	return e.first
}

// convertAndReport converts files, prints results and writes the error
// report on failure.
func convertAndReport(ctx context.Context, pool rendererPool, files []FileToConvert, params *conversionParams, env *Environment) error {
	start := time.Now()
	results := convertBatch(ctx, pool, files, params)
	failed := printResultsWithWriter(results, params.quiet, params.verbose, env)
	if params.verbose {
		fmt.Fprintf(env.Stderr, "Finished in %v\n", time.Since(start).Round(time.Millisecond))
	}
	if failed == 0 {
		return nil
	}

	first := firstError(results)
	if params.errorReport {
		writeErrorReport(ctx, pool, first, params, env)
	}
	return &batchError{failed: failed, first: first}
}
