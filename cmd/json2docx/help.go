package main

import (
	"fmt"
	"io"
)

// runHelp prints help for a command, or the main usage.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "sample":
		printSampleUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version", "help":
		printUsage(env.Stdout)
	default:
		if !isCommand(args[0]) {
			fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
			printUsage(env.Stderr)
			return ExitUsage
		}
	}
	return ExitSuccess
}

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: json2docx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert block files to DOCX, HTML or PDF")
	fmt.Fprintln(w, "  inspect     Print normalized blocks")
	fmt.Fprintln(w, "  sample      Write the built-in test document")
	fmt.Fprintln(w, "  doctor      Check system configuration")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'json2docx help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: json2docx convert [input...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert block files to DOCX, HTML or PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File, directory, or - for stdin (optional if config has input.defaultDir)")
	fmt.Fprintln(w, "           Extensions: .json .yaml .yml .md .markdown .txt")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>        Input file or directory (repeatable)")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: docx, html, pdf (default docx)")
	fmt.Fprintln(w, "      --from <s>            Input format: json, yaml, markdown, text (default by extension)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF export timeout (default 30s)")
	fmt.Fprintln(w, "      --fallback <path>     Written when the output cannot be (default report_fallback.docx)")
	fmt.Fprintln(w, "      --no-error-report     Do not write error_report.docx on failure")
	fmt.Fprintln(w, "      --test                Render the built-in test document")
	fmt.Fprintln(w, "      --watch               Re-render when inputs change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           Title (\"\" = first heading)")
	fmt.Fprintln(w, "      --author <s>          Author")
	fmt.Fprintln(w, "      --subject <s>         Subject")
	fmt.Fprintln(w, "      --description <s>     Description")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "      --doc-id <s>          Identifier (\"\" = random UUID)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Footer (HTML and PDF):")
	fmt.Fprintln(w, "      --footer-text <s>     Footer text")
	fmt.Fprintln(w, "      --footer-page-number  Show page numbers")
	fmt.Fprintln(w, "      --no-footer           Disable footer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Theme:")
	fmt.Fprintln(w, "      --theme <name>        Theme: default, corporate, or one under --asset-path")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory (themes/<name>/styles.xml, style.css)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and file sizes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  JSON2DOCX_CONFIG, JSON2DOCX_THEME, JSON2DOCX_FORMAT, JSON2DOCX_TIMEOUT,")
	fmt.Fprintln(w, "  JSON2DOCX_INPUT_DIR, JSON2DOCX_OUTPUT_DIR, JSON2DOCX_AUTHOR, JSON2DOCX_TITLE,")
	fmt.Fprintln(w, "  JSON2DOCX_DATE, JSON2DOCX_WORKERS")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  json2docx convert report.json")
	fmt.Fprintln(w, "  json2docx convert ./blocks/ -o ./out/ -f pdf")
	fmt.Fprintln(w, "  cat answer.txt | json2docx convert - --from text")
	fmt.Fprintln(w, "  json2docx convert --test -o ./out/")
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: json2docx inspect <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print decoded blocks with list items resolved to their display text.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --from <s>    Input format: json, yaml, markdown, text (default by extension)")
	fmt.Fprintln(w, "      --yaml        Print YAML instead of JSON")
	fmt.Fprintln(w, "      --no-color    Disable syntax highlighting")
}

// printSampleUsage prints usage for the sample command.
func printSampleUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: json2docx sample [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the built-in test document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default sample_report.docx)")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: docx, html, pdf")
	fmt.Fprintln(w, "      --theme <name>        Theme name")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: json2docx doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check themes, Chrome (for PDF export) and the environment.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json        Print results as JSON")
}
