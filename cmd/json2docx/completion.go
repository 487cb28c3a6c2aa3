package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// supportedShells lists shells in help order.
var supportedShells = []Shell{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// programName is the binary name completions are registered for.
const programName = "json2docx"

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed argument values (completion shells)
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments (e.g., "*.json")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// inputFilePattern matches the inputs convert and inspect accept.
const inputFilePattern = "*.json,*.yaml,*.yml,*.md,*.markdown,*.txt"

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"format": {Values: []string{"docx", "html", "pdf"}},
	"from":   {Values: []string{"json", "yaml", "markdown", "text"}},
	"theme":  {Values: []string{"default", "corporate"}},

	// File flags with glob patterns
	"config":   {FileGlob: "*.yaml,*.yml,*.toml"},
	"input":    {FileGlob: inputFilePattern},
	"fallback": {FileGlob: "*.docx,*.html,*.pdf"},

	// Directory flags
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	shells := make([]string, len(supportedShells))
	for i, s := range supportedShells {
		shells[i] = string(s)
	}

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert block files to DOCX, HTML or PDF",
			Flags:       extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			TakesFiles:  true,
			FilePattern: inputFilePattern,
		},
		{
			Name:        "inspect",
			Desc:        "Print normalized blocks",
			Flags:       extractFlagsFromFlagSet(newInspectFlagSet(&inspectFlags{})),
			TakesFiles:  true,
			FilePattern: inputFilePattern,
		},
		{
			Name:  "sample",
			Desc:  "Write the built-in test document",
			Flags: extractFlagsFromFlagSet(newSampleFlagSet(&sampleFlags{})),
		},
		{
			Name:  "doctor",
			Desc:  "Check system configuration",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&doctorFlags{})),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: shells,
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
		},
	}
}

// commandNames returns the names of all commands.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	case ShellPowerShell:
		script = generatePowerShell(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(cmds []commandDef) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# bash completion for %s\n\n", programName)
	fmt.Fprintf(&b, "_%s() {\n", programName)
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")

	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		writeBashCommand(&b, c, cmds)
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "complete -F _%s %s\n", programName, programName)

	return b.String()
}

func writeBashCommand(b *strings.Builder, c commandDef, all []commandDef) {
	// Flag values
	var valueCases []string
	for _, f := range c.Flags {
		if f.Type == flagBool {
			continue
		}
		var reply string
		switch f.Type {
		case flagEnum:
			reply = fmt.Sprintf("COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )", strings.Join(f.Values, " "))
		case flagDir:
			reply = "COMPREPLY=( $(compgen -d -- \"${cur}\") )"
		case flagFile:
			reply = "COMPREPLY=( $(compgen -f -- \"${cur}\") )"
		default:
			reply = "COMPREPLY=()"
		}
		valueCases = append(valueCases, fmt.Sprintf("                %s)\n                    %s\n                    return 0\n                    ;;\n", bashFlagPattern(f), reply))
	}
	if len(valueCases) > 0 {
		b.WriteString("            case \"${prev}\" in\n")
		for _, vc := range valueCases {
			b.WriteString(vc)
		}
		b.WriteString("            esac\n")
	}

	// Flag names
	if len(c.Flags) > 0 {
		b.WriteString("            if [[ ${cur} == -* ]]; then\n")
		fmt.Fprintf(b, "                COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(flagNames(c.Flags), " "))
		b.WriteString("                return 0\n")
		b.WriteString("            fi\n")
	}

	// Arguments
	switch {
	case len(c.Args) > 0:
		fmt.Fprintf(b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(c.Args, " "))
	case c.Name == "help":
		fmt.Fprintf(b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(commandNames(all), " "))
	case c.TakesFiles:
		b.WriteString("            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
	}
}

// bashFlagPattern returns the case pattern matching a flag's spellings.
func bashFlagPattern(f flagDef) string {
	if f.Short != "" {
		return fmt.Sprintf("--%s|-%s", f.Long, f.Short)
	}
	return "--" + f.Long
}

// flagNames returns every spelling of flags, long forms first.
func flagNames(flags []flagDef) []string {
	var names []string
	for _, f := range flags {
		names = append(names, "--"+f.Long)
	}
	for _, f := range flags {
		if f.Short != "" {
			names = append(names, "-"+f.Short)
		}
	}
	return names
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(cmds []commandDef) string {
	var b strings.Builder

	fmt.Fprintf(&b, "#compdef %s\n\n", programName)
	fmt.Fprintf(&b, "_%s() {\n", programName)
	b.WriteString("  local -a commands\n")
	b.WriteString("  commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    '%s:%s'\n", c.Name, zshQuote(c.Desc))
	}
	b.WriteString("  )\n\n")

	b.WriteString("  if (( CURRENT == 2 )); then\n")
	b.WriteString("    _describe 'command' commands\n")
	b.WriteString("    return\n")
	b.WriteString("  fi\n\n")

	b.WriteString("  case \"$words[2]\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		var specs []string
		for _, f := range c.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		switch {
		case len(c.Args) > 0:
			specs = append(specs, fmt.Sprintf("'1:shell:(%s)'", strings.Join(c.Args, " ")))
		case c.Name == "help":
			specs = append(specs, "'1:command:_describe command commands'")
		case c.TakesFiles:
			specs = append(specs, fmt.Sprintf("'*:input file:_files -g \"%s\"'", zshGlob(c.FilePattern)))
		}
		if len(specs) == 0 {
			b.WriteString("      ;;\n")
			continue
		}
		b.WriteString("      _arguments -s \\\n")
		for i, s := range specs {
			if i == len(specs)-1 {
				fmt.Fprintf(&b, "        %s\n", s)
			} else {
				fmt.Fprintf(&b, "        %s \\\n", s)
			}
		}
		b.WriteString("      ;;\n")
	}
	b.WriteString("  esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "compdef _%s %s\n", programName, programName)

	return b.String()
}

// zshFlagSpec renders one _arguments spec.
func zshFlagSpec(f flagDef) string {
	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagDir:
		action = ":directory:_files -/"
	case flagFile:
		action = fmt.Sprintf(":file:_files -g \"%s\"", zshGlob(f.FileGlob))
	default:
		action = ":" + f.Long + ":"
	}

	desc := "[" + zshQuote(f.Desc) + "]"
	if f.Short == "" {
		return fmt.Sprintf("'--%s%s%s'", f.Long, desc, action)
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

// zshGlob turns "*.a,*.b" into "*.(a|b)".
func zshGlob(pattern string) string {
	parts := strings.Split(pattern, ",")
	if len(parts) == 1 {
		return pattern
	}
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		exts = append(exts, strings.TrimPrefix(p, "*."))
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// zshQuote escapes text for a single-quoted _arguments description.
func zshQuote(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(cmds []commandDef) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# fish completion for %s\n\n", programName)
	fmt.Fprintf(&b, "complete -c %s -f\n\n", programName)

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c %s -n '__fish_use_subcommand' -a %s -d '%s'\n", programName, c.Name, fishQuote(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_seen_subcommand_from %s'", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c %s -n %s -l %s", programName, cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += fmt.Sprintf(" -d '%s'", fishQuote(f.Desc))
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagFile:
				line += " -r -F"
			default:
				line += " -x"
			}
			b.WriteString(line + "\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c %s -n %s -a '%s'\n", programName, cond, strings.Join(c.Args, " "))
		case c.Name == "help":
			fmt.Fprintf(&b, "complete -c %s -n %s -a '%s'\n", programName, cond, strings.Join(commandNames(cmds), " "))
		case c.TakesFiles:
			fmt.Fprintf(&b, "complete -c %s -n %s -F\n", programName, cond)
		}
	}

	return b.String()
}

// fishQuote escapes text for a single-quoted fish string.
func fishQuote(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func generatePowerShell(cmds []commandDef) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# PowerShell completion for %s\n\n", programName)
	fmt.Fprintf(&b, "Register-ArgumentCompleter -Native -CommandName %s -ScriptBlock {\n", programName)
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = @{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, psList(flagNames(c.Flags)))
	}
	b.WriteString("    }\n\n")

	// Flag and argument values, keyed by "command flag" or "command"
	values := map[string][]string{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type != flagEnum {
				continue
			}
			values[c.Name+" --"+f.Long] = f.Values
			if f.Short != "" {
				values[c.Name+" -"+f.Short] = f.Values
			}
		}
		if len(c.Args) > 0 {
			values[c.Name] = c.Args
		}
		if c.Name == "help" {
			values[c.Name] = commandNames(cmds)
		}
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("    $values = @{\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", k, psList(values[k]))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($wordToComplete -ne '') {\n")
	b.WriteString("        $elements = @($elements | Select-Object -First ($elements.Count - 1))\n")
	b.WriteString("    }\n\n")

	b.WriteString("    if ($elements.Count -le 1) {\n")
	b.WriteString("        $candidates = $commands.Keys\n")
	b.WriteString("    } else {\n")
	b.WriteString("        $command = $elements[1]\n")
	b.WriteString("        $prev = $elements[-1]\n")
	b.WriteString("        if ($values.ContainsKey(\"$command $prev\")) {\n")
	b.WriteString("            $candidates = $values[\"$command $prev\"]\n")
	b.WriteString("        } elseif ($wordToComplete -like '-*' -and $commands.ContainsKey($command)) {\n")
	b.WriteString("            $candidates = $commands[$command]\n")
	b.WriteString("        } elseif ($values.ContainsKey($command)) {\n")
	b.WriteString("            $candidates = $values[$command]\n")
	b.WriteString("        } else {\n")
	b.WriteString("            return\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | Sort-Object | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	return b.String()
}

// psList renders a PowerShell array body of single-quoted strings.
func psList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: json2docx completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(json2docx completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(json2docx completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    json2docx completion fish > ~/.config/fish/completions/json2docx.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    json2docx completion powershell | Out-String | Invoke-Expression")
}
