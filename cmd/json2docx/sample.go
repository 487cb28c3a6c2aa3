package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	json2docx "github.com/alnah/go-json2docx"
)

// runSampleCmd writes the built-in test document.
func runSampleCmd(ctx context.Context, args []string, env *Environment) error {
	f := &sampleFlags{}
	fs := newSampleFlagSet(f)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printSampleUsage(env.Stdout)
			return nil
		}
		return wrapFlagError(err)
	}

	format, err := resolveOutputFormat(f.format, f.output)
	if err != nil {
		return err
	}

	opts := []json2docx.Option{json2docx.WithMetadata(json2docx.Metadata{Date: "auto"})}
	if f.assets.theme != "" {
		opts = append(opts, json2docx.WithTheme(f.assets.theme))
	}
	if f.assets.assetPath != "" {
		opts = append(opts, json2docx.WithAssetPath(f.assets.assetPath))
	}

	r, err := json2docx.NewRenderer(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	path := resolveNamedOutput(f.output, json2docx.SampleOutputName, format.Ext())
	prepareOutputDir(path)

	doc, err := r.Render(ctx, json2docx.SampleBlocks())
	if err != nil {
		return err
	}
	saved, err := r.SaveAs(ctx, doc, path, format)
	if err != nil {
		return withExportHint(err)
	}

	if saved != path {
		fmt.Fprintf(env.Stderr, "Saved to fallback %s (could not write %s)\n", saved, path)
	}
	if !f.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", saved)
	}
	return nil
}
