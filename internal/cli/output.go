// Naming in this package:
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a string without performing I/O.
//   - Write* functions write to the filesystem.

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/fibwhole/internal/format"
	"github.com/agbru/fibwhole/internal/orchestration"
	"github.com/agbru/fibwhole/internal/ui"
	"github.com/agbru/fibwhole/internal/wholenumber"
)

// OutputConfig holds the result output settings.
type OutputConfig struct {
	// OutputFile receives the result when non-empty.
	OutputFile string
	Quiet      bool
	Verbose    bool
	ShowValue  bool
	// Plain writes values without group separators.
	Plain bool
}

// WriteResultToFile writes F(n) to cfg.OutputFile under a commented header.
// Missing parent directories are created. It does nothing when no file is
// configured.
func WriteResultToFile(result *wholenumber.WholeNumber, n uint64, duration time.Duration, algo string, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Fibonacci Calculation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", algo)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# N: %d\n", n)
	fmt.Fprintf(file, "# Groups: %d\n", result.Len())
	fmt.Fprintf(file, "# Digits: %d\n", result.DigitCount())
	fmt.Fprintf(file, "\nF(%d) =\n%s\n", n, FormatValue(result, cfg.Plain))

	return file.Close()
}

// FormatValue renders result with or without group separators.
func FormatValue(result *wholenumber.WholeNumber, plain bool) string {
	if plain {
		return result.Digits()
	}
	return result.String()
}

// FormatQuietResult renders a result for scripts: the bare value.
func FormatQuietResult(result *wholenumber.WholeNumber, plain bool) string {
	return FormatValue(result, plain)
}

// DisplayQuietResult writes the quiet form of result followed by a newline.
func DisplayQuietResult(out io.Writer, result *wholenumber.WholeNumber, plain bool) {
	fmt.Fprintln(out, FormatQuietResult(result, plain))
}

// DisplayResult writes the final result block. With Details it adds the
// size analysis; with ShowValue or Verbose it prints the value, truncated
// to its edges unless Verbose is set.
func DisplayResult(result *wholenumber.WholeNumber, duration time.Duration, opts orchestration.PresentationOptions, out io.Writer) {
	digits := result.DigitCount()
	fmt.Fprintf(out, "\nResult size: %s%s%s digits in %s%s%s groups of three.\n",
		ui.ColorCyan(), format.FormatCount(digits), ui.ColorReset(),
		ui.ColorCyan(), format.FormatCount(result.Len()), ui.ColorReset())

	if opts.Details {
		fmt.Fprintf(out, "\n--- Detailed result analysis ---\n")
		fmt.Fprintf(out, "Calculation time        : %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits        : %s%s%s\n", ui.ColorCyan(), format.FormatCount(digits), ui.ColorReset())
		fmt.Fprintf(out, "Number of digit groups  : %s%s%s\n", ui.ColorCyan(), format.FormatCount(result.Len()), ui.ColorReset())
		if duration > 0 && opts.N > 0 {
			perTerm := duration / time.Duration(opts.N)
			fmt.Fprintf(out, "Average time per term   : %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(perTerm), ui.ColorReset())
		}
	}

	if !opts.ShowValue && !opts.Verbose {
		fmt.Fprintf(out, "\nTip: use %s-c%s to print the calculated value.\n", ui.ColorYellow(), ui.ColorReset())
		return
	}

	fmt.Fprintf(out, "\n--- Calculated value ---\n")
	keep := DisplayEdges
	if opts.Verbose {
		keep = 0
	}
	text := FormatValue(result, opts.Plain)
	truncated := false
	if len(text) > TruncationLimit {
		text, truncated = format.TruncateValue(result, keep, opts.Plain)
	}
	fmt.Fprintf(out, "F(%s%d%s) = %s%s%s\n", ui.ColorMagenta(), opts.N, ui.ColorReset(), ui.ColorGreen(), text, ui.ColorReset())
	if truncated {
		fmt.Fprintf(out, "(truncated) Tip: use %s-v%s to print the full value.\n", ui.ColorYellow(), ui.ColorReset())
	}
}

// DisplaySaved confirms that a result was written to path.
func DisplaySaved(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}
