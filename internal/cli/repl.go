package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/fibwhole/internal/config"
	"github.com/agbru/fibwhole/internal/fibonacci"
	"github.com/agbru/fibwhole/internal/format"
	"github.com/agbru/fibwhole/internal/orchestration"
	"github.com/agbru/fibwhole/internal/progress"
	"github.com/agbru/fibwhole/internal/ui"
	"github.com/agbru/fibwhole/internal/wholenumber"
)

// MaxREPLSequence bounds the seq command.
const MaxREPLSequence = 10_000

// REPLConfig holds the session settings.
type REPLConfig struct {
	// DefaultAlgo is the initial algorithm. "all" or empty selects the
	// first registered one.
	DefaultAlgo string
	// Timeout bounds each command.
	Timeout time.Duration
	// MaxGroups caps the accumulators. Zero is unbounded.
	MaxGroups int
	// Plain prints values without group separators.
	Plain bool
}

// REPL is an interactive session over the registered calculators.
type REPL struct {
	config      REPLConfig
	factory     fibonacci.CalculatorFactory
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a session reading stdin and writing stdout.
func NewREPL(factory fibonacci.CalculatorFactory, cfg REPLConfig) *REPL {
	current := cfg.DefaultAlgo
	if _, err := factory.Get(current); err != nil {
		if names := factory.List(); len(names) > 0 {
			current = names[0]
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	return &REPL{config: cfg, factory: factory, currentAlgo: current, in: os.Stdin, out: os.Stdout}
}

// SetInput replaces the input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput replaces the output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and runs commands until exit, end of input or cancellation
// of ctx.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorGreen()+"fib> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(ctx, input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %sFibonacci WholeNumber - Interactive Mode%s     %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	commands := [][2]string{
		{"seq <count>", "List F(1) through F(count)"},
		{"show <n>", "Display F(n) with the current algorithm (or just type n)"},
		{"algo <name>", "Change algorithm (" + r.getAlgoList() + ")"},
		{"compare <n>", "Compare all algorithms for F(n)"},
		{"list", "List available algorithms"},
		{"digits", "Toggle digit group separators"},
		{"status", "Display current configuration"},
		{"help", "Display this help"},
		{"exit", "Exit interactive mode"},
	}
	for _, c := range commands {
		fmt.Fprintf(r.out, "  %s%-12s%s - %s\n", ui.ColorYellow(), c[0], ui.ColorReset(), c[1])
	}
}

func (r *REPL) getAlgoList() string {
	return strings.Join(r.factory.List(), ", ")
}

// processCommand runs one command line. It returns false on exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "seq", "s":
		if count, ok := r.parseArg(cmd, args); ok {
			r.cmdSeq(ctx, count)
		}
	case "show", "calc", "c":
		if n, ok := r.parseArg(cmd, args); ok {
			r.calculate(ctx, n)
		}
	case "algo", "a":
		r.cmdAlgo(args)
	case "compare", "cmp":
		if n, ok := r.parseArg(cmd, args); ok {
			r.cmdCompare(ctx, n)
		}
	case "list", "ls":
		r.cmdList()
	case "digits":
		r.cmdDigits()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if n, err := strconv.ParseUint(cmd, 10, 64); err == nil {
			r.calculate(ctx, n)
			break
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func (r *REPL) parseArg(cmd string, args []string) (uint64, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s <n>%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		return 0, false
	}
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return 0, false
	}
	return n, true
}

func (r *REPL) options() fibonacci.Options {
	return fibonacci.Options{MaxGroups: r.config.MaxGroups}
}

func (r *REPL) cmdSeq(ctx context.Context, count uint64) {
	if count > MaxREPLSequence {
		fmt.Fprintf(r.out, "%sCount limited to %s in interactive mode.%s\n", ui.ColorRed(), format.FormatCount(MaxREPLSequence), ui.ColorReset())
		return
	}
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	seq, err := fibonacci.NewSequence(r.options())
	if err == nil {
		err = seq.Each(ctx, count, func(index uint64, term *wholenumber.WholeNumber) error {
			fmt.Fprintf(r.out, "  F(%d)\t%s\n", index, FormatValue(term, r.config.Plain))
			return nil
		})
	}
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
}

func (r *REPL) calculate(ctx context.Context, n uint64) {
	calc, err := r.factory.Get(r.currentAlgo)
	if err != nil {
		fmt.Fprintf(r.out, "%sAlgorithm not found: %s%s\n", ui.ColorRed(), r.currentAlgo, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Calculating F(%s%d%s) with %s%s%s...\n",
		ui.ColorMagenta(), n, ui.ColorReset(), ui.ColorCyan(), calc.Name(), ui.ColorReset())

	progressChan := make(chan progress.ProgressUpdate, orchestration.ProgressBufferMultiplier)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	result, err := calc.Calculate(ctx, progressChan, 0, n, r.options())
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	fmt.Fprintf(r.out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Time:   %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintf(r.out, "  Digits: %s%s%s\n", ui.ColorCyan(), format.FormatCount(result.DigitCount()), ui.ColorReset())
	fmt.Fprintf(r.out, "  Groups: %s%s%s\n", ui.ColorCyan(), format.FormatCount(result.Len()), ui.ColorReset())

	text, suffix := FormatValue(result, r.config.Plain), ""
	if len(text) > TruncationLimit {
		text, _ = format.TruncateValue(result, DisplayEdges, r.config.Plain)
		suffix = " (truncated)"
	}
	fmt.Fprintf(r.out, "  F(%d) = %s%s%s%s\n\n", n, ui.ColorGreen(), text, ui.ColorReset(), suffix)
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", r.getAlgoList())
		return
	}
	name := strings.ToLower(args[0])
	calc, err := r.factory.Get(name)
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown algorithm: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", r.getAlgoList())
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Algorithm changed to: %s%s%s\n", ui.ColorGreen(), calc.Name(), ui.ColorReset())
}

func (r *REPL) cmdCompare(ctx context.Context, n uint64) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	calcs := orchestration.GetCalculatorsToRun(orchestration.AllAlgorithms, r.factory)
	cfg := config.AppConfig{N: n, MaxGroups: r.config.MaxGroups}
	results := orchestration.ExecuteCalculations(ctx, calcs, cfg, orchestration.NullProgressReporter{}, io.Discard)

	fmt.Fprintf(r.out, "\n%sComparison for F(%d):%s\n", ui.ColorBold(), n, ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	var ref *wholenumber.WholeNumber
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %s%-36s%s: %sError - %v%s\n",
				ui.ColorYellow(), res.Name, ui.ColorReset(), ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		if ref == nil {
			ref = res.Result
		}
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if !res.Result.Equal(ref) {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-36s%s: %s%10s%s %s\n",
			ui.ColorYellow(), res.Name, ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(res.Duration), ui.ColorReset(), status)
	}
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable algorithms:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		calc, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), calc.Name())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdDigits() {
	r.config.Plain = !r.config.Plain
	status := "shown"
	if r.config.Plain {
		status = "hidden"
	}
	fmt.Fprintf(r.out, "Group separators: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Algorithm:   %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:     %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	groups := "unbounded"
	if r.config.MaxGroups > 0 {
		groups = format.FormatCount(r.config.MaxGroups)
	}
	fmt.Fprintf(r.out, "  Group cap:   %s%s%s\n", ui.ColorCyan(), groups, ui.ColorReset())
	separators := "yes"
	if r.config.Plain {
		separators = "no"
	}
	fmt.Fprintf(r.out, "  Separators:  %s%s%s\n", ui.ColorCyan(), separators, ui.ColorReset())
	fmt.Fprintln(r.out)
}
