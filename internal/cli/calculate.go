package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fibwhole/internal/config"
	"github.com/agbru/fibwhole/internal/fibonacci"
	"github.com/agbru/fibwhole/internal/fibonacci/memory"
	"github.com/agbru/fibwhole/internal/format"
	"github.com/agbru/fibwhole/internal/ui"
)

// PrintExecutionConfig writes the run parameters: target, timeout,
// environment and the expected result size.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Calculating %sF(%d)%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Expected size: about %s%s%s digits, %s%s%s.\n",
		ui.ColorCyan(), format.FormatCount(fibonacci.EstimateDigits(cfg.N)), ui.ColorReset(),
		ui.ColorDim(), memory.FormatMemoryEstimate(memory.EstimateMemoryUsage(cfg.N)), ui.ColorReset())
	if groups := cfg.ResolveMaxGroups(); groups > 0 {
		fmt.Fprintf(out, "Digit group cap: %s%s%s.\n", ui.ColorYellow(), format.FormatCount(groups), ui.ColorReset())
	}
}

// PrintExecutionMode writes whether one algorithm runs or several are
// compared.
func PrintExecutionMode(calculators []fibonacci.Calculator, out io.Writer) {
	modeDesc := "Parallel comparison of all algorithms"
	if len(calculators) == 1 {
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s algorithm",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
