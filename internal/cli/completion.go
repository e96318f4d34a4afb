package cli

import (
	"fmt"
	"io"
	"strings"
)

// ProgramName is the command name completion scripts register for.
const ProgramName = "fibwhole"

// FlagCompletion describes one flag for completion scripts. Every script is
// generated from flagRegistry.
type FlagCompletion struct {
	Long      string   // without "--"
	Short     string   // without "-"
	Help      string
	Values    []string // suggested values; nil for booleans or free input
	ValueName string   // label of the value; empty for booleans
	IsFile    bool
	IsAlgo    bool // values come from the algorithm list
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Short: "n", Help: "Fibonacci index to compute", ValueName: "number"},
	{Long: "seq", Help: "List the first COUNT Fibonacci numbers", ValueName: "count"},
	{Long: "algo", Help: "Algorithm to use", IsAlgo: true, ValueName: "algorithm"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"1m", "5m", "10m", "30m", "1h"}, ValueName: "duration"},
	{Long: "verbose", Short: "v", Help: "Verbose logging"},
	{Long: "details", Short: "d", Help: "Show performance details"},
	{Long: "quiet", Short: "q", Help: "Print only the result"},
	{Long: "calculate", Short: "c", Help: "Print the full value"},
	{Long: "plain", Help: "Print values without group separators"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "memory-limit", Help: "Memory budget for accumulators", Values: []string{"64MB", "256MB", "1GB", "4GB"}, ValueName: "size"},
	{Long: "max-groups", Help: "Maximum digit groups per number", ValueName: "groups"},
	{Long: "gc", Help: "GC control during calculation", Values: []string{"auto", "aggressive", "disabled"}, ValueName: "mode"},
	{Long: "last-digits", Help: "Compute only the last K digits", ValueName: "digits"},
	{Long: "verify", Help: "Check trailing digits by modular arithmetic"},
	{Long: "console", Help: "Run the two-prompt sequence driver"},
	{Long: "interactive", Short: "i", Help: "Start the REPL"},
	{Long: "tui", Help: "Start the dashboard"},
	{Long: "metrics-addr", Help: "Serve Prometheus metrics on ADDR", ValueName: "addr"},
	{Long: "config", Help: "YAML configuration file", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell: bash, zsh or
// fish.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(algorithms)
	case "zsh":
		script = zshCompletion(algorithms)
	case "fish":
		script = fishCompletion(algorithms)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func bashCompletion(algorithms []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)

		var body string
		switch {
		case f.IsAlgo:
			body = `COMPREPLY=( $(compgen -W "${algorithms}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(names, "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

_%[1]s_completions() {
    local cur prev opts algorithms
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%[2]s"
    algorithms="%[3]s all"

    case "${prev}" in
%[4]s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _%[1]s_completions %[1]s
`, ProgramName, strings.Join(opts, " "), strings.Join(algorithms, " "), cases.String())
}

func zshCompletion(algorithms []string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef %[1]s

# Zsh completion script for %[1]s
# Place this file in a directory of $fpath

_%[1]s() {
    local -a algorithms
    algorithms=(%[2]s all)

    _arguments -s \
%[3]s
}

_%[1]s "$@"
`, ProgramName, strings.Join(algorithms, " "), strings.Join(args, " \\\n"))
}

func zshArgEntry(f FlagCompletion) string {
	var value string
	switch {
	case f.IsFile:
		value = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsAlgo:
		value = fmt.Sprintf(":%s:($algorithms)", f.ValueName)
	case len(f.Values) > 0:
		value = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		value = fmt.Sprintf(":%s:", f.ValueName)
	}

	switch {
	case f.Long != "" && f.Short != "":
		return fmt.Sprintf("        '(-%[1]s --%[2]s)'{-%[1]s,--%[2]s}'[%[3]s]%[4]s'", f.Short, f.Long, f.Help, value)
	case f.Long != "":
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, value)
	default:
		return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, value)
	}
}

func fishCompletion(algorithms []string) string {
	lines := []string{
		"# Fish completion script for " + ProgramName,
		"# Add this to ~/.config/fish/completions/" + ProgramName + ".fish",
		"",
		"complete -c " + ProgramName + " -f",
	}
	algoList := strings.Join(algorithms, " ")
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, algoList))
	}
	return strings.Join(lines, "\n") + "\n"
}

func fishCompleteLine(f FlagCompletion, algoList string) string {
	parts := []string{"complete -c " + ProgramName}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsAlgo:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", algoList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
