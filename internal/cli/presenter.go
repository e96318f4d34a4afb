package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	apperrors "github.com/agbru/fibwhole/internal/errors"
	"github.com/agbru/fibwhole/internal/format"
	"github.com/agbru/fibwhole/internal/metrics"
	"github.com/agbru/fibwhole/internal/orchestration"
	"github.com/agbru/fibwhole/internal/progress"
	"github.com/agbru/fibwhole/internal/ui"
)

// CLIProgressReporter shows a spinner with a progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements orchestration.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCalculators, out)
}

// CLIResultPresenter renders results for the terminal.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable writes one row per result. Padding is computed on
// the uncoloured text so that ANSI codes do not skew the columns.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameWidth, durWidth, groupWidth := len("Algorithm"), len("Duration"), len("Groups")
	durations := make([]string, len(results))
	groups := make([]string, len(results))
	for i, res := range results {
		nameWidth = max(nameWidth, len(res.Name))
		durations[i] = formatTableDuration(res.Duration)
		durWidth = max(durWidth, len(durations[i]))
		groups[i] = "-"
		if res.Err == nil && res.Result != nil {
			groups[i] = format.FormatCount(res.Result.Len())
		}
		groupWidth = max(groupWidth, len(groups[i]))
	}

	fmt.Fprintf(out, "%sAlgorithm%s%s   %sDuration%s%s   %sGroups%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), pad(nameWidth-len("Algorithm")),
		ui.ColorUnderline(), ui.ColorReset(), pad(durWidth-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset(), pad(groupWidth-len("Groups")),
		ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), pad(nameWidth-len(res.Name)),
			ui.ColorYellow(), durations[i], ui.ColorReset(), pad(durWidth-len(durations[i])),
			groups[i], pad(groupWidth-len(groups[i])),
			status)
	}
}

func formatTableDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// PresentResult implements orchestration.ResultPresenter.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "Fastest algorithm: %s%s%s\n", ui.ColorBlue(), result.Name, ui.ColorReset())
	DisplayResult(result.Result, result.Duration, opts, out)
}

// FormatDuration implements orchestration.DurationFormatter.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError implements orchestration.ErrorHandler.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	fmt.Fprint(out, ui.ColorRed())
	code := apperrors.HandleCalculationError(err, duration, out)
	fmt.Fprint(out, ui.ColorReset())
	return code
}

// DisplayMemoryStats writes the memory used by a run: the heap growth
// between two snapshots and the collector activity.
func DisplayMemoryStats(before, after metrics.MemorySnapshot, out io.Writer) {
	delta := after.Since(before)
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", humanize.Bytes(after.HeapAlloc))
	if delta.HeapGrowth > 0 {
		fmt.Fprintf(out, "  Heap growth:     %s\n", humanize.Bytes(delta.HeapGrowth))
	}
	fmt.Fprintf(out, "  Heap objects:    %s\n", humanize.Comma(int64(after.HeapObjects)))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.GCPause)/float64(time.Millisecond))
}
