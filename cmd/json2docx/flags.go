package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds document property flags.
type documentFlags struct {
	title       string
	author      string
	subject     string
	description string
	date        string
	id          string
}

// footerFlags holds footer-related flags.
type footerFlags struct {
	text       string
	pageNumber bool
	disabled   bool
}

// assetFlags holds theme selection flags.
type assetFlags struct {
	theme     string // theme name or directory
	assetPath string // override asset directory
}

// ioFlags holds input and output flags.
type ioFlags struct {
	inputs        []string
	output        string
	format        string // docx, html, pdf
	from          string // json, yaml, markdown, text
	workers       int
	timeout       string
	fallback      string
	noErrorReport bool
	test          bool
	watch         bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	io       ioFlags
	document documentFlags
	footer   footerFlags
	assets   assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addIOFlags adds input/output flags to a FlagSet.
func addIOFlags(fs *flag.FlagSet, f *ioFlags) {
	fs.StringArrayVarP(&f.inputs, "input", "i", nil, "input file or directory (repeatable)")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.format, "format", "f", "", "output format: docx, html, pdf")
	fs.StringVar(&f.from, "from", "", "input format: json, yaml, markdown, text")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout (e.g. 30s, 2m)")
	fs.StringVar(&f.fallback, "fallback", "", "path used when the output cannot be written")
	fs.BoolVar(&f.noErrorReport, "no-error-report", false, "do not write error_report.docx on failure")
	fs.BoolVar(&f.test, "test", false, "render the built-in test document")
	fs.BoolVar(&f.watch, "watch", false, "re-render when inputs change")
}

// addDocumentFlags adds document property flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (default: first heading)")
	fs.StringVar(&f.author, "author", "", "document author")
	fs.StringVar(&f.subject, "subject", "", "document subject")
	fs.StringVar(&f.description, "description", "", "document description")
	fs.StringVar(&f.date, "date", "", "document date: YYYY-MM-DD, auto, auto:FORMAT")
	fs.StringVar(&f.id, "doc-id", "", "document identifier (default: random UUID)")
}

// addFooterFlags adds footer flags to a FlagSet.
func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.StringVar(&f.text, "footer-text", "", "footer text")
	fs.BoolVar(&f.pageNumber, "footer-page-number", false, "show page numbers in the footer")
	fs.BoolVar(&f.disabled, "no-footer", false, "disable footer")
}

// addAssetFlags adds theme flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.theme, "theme", "", "theme name (default, corporate)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet.
// Shared by parsing and completion so both see the same flags.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	addIOFlags(fs, &f.io)
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addFooterFlags(fs, &f.footer)
	addAssetFlags(fs, &f.assets)

	return fs
}

// parseConvertFlags parses convert arguments. Returns the flags and the
// positional inputs, with -i values placed first.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapFlagError(err)
	}

	positional := append(append([]string{}, f.io.inputs...), fs.Args()...)
	return f, positional, nil
}

// inspectFlags holds flags for the inspect command.
type inspectFlags struct {
	from    string
	yaml    bool
	noColor bool
}

// newInspectFlagSet registers every inspect flag on a fresh FlagSet.
func newInspectFlagSet(f *inspectFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.from, "from", "", "input format: json, yaml, markdown, text")
	fs.BoolVar(&f.yaml, "yaml", false, "print YAML instead of JSON")
	fs.BoolVar(&f.noColor, "no-color", false, "disable syntax highlighting")
	return fs
}

// sampleFlags holds flags for the sample command.
type sampleFlags struct {
	output string
	format string
	assets assetFlags
	quiet  bool
}

// newSampleFlagSet registers every sample flag on a fresh FlagSet.
func newSampleFlagSet(f *sampleFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: sample_report.docx)")
	fs.StringVarP(&f.format, "format", "f", "", "output format: docx, html, pdf")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	addAssetFlags(fs, &f.assets)
	return fs
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json bool
}

// newDoctorFlagSet registers every doctor flag on a fresh FlagSet.
func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	return fs
}
