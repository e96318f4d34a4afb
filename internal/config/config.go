// Package config parses and validates the fibwhole command line. Values are
// resolved in the order CLI flags > FIBWHOLE_* environment variables >
// YAML config file > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/fibwhole/internal/errors"
	"github.com/agbru/fibwhole/internal/fibonacci"
	"github.com/agbru/fibwhole/internal/fibonacci/memory"
)

const (
	// EnvPrefix is prepended to every environment variable name.
	EnvPrefix = "FIBWHOLE_"

	// DefaultN is the index computed when none is given.
	DefaultN = 100
	// DefaultAlgo is the calculator used when none is given.
	DefaultAlgo = "list"
	// DefaultTimeout bounds a single run.
	DefaultTimeout = 5 * time.Minute
	// MaxLastDigits bounds --last-digits.
	MaxLastDigits = 10_000
)

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// N is the Fibonacci index to compute.
	N uint64
	// Count, when non-zero, lists F(1) through F(Count) instead of computing F(N).
	Count uint64
	// Algo is a calculator name or "all".
	Algo string
	// Timeout bounds the whole run.
	Timeout time.Duration

	Verbose   bool
	Details   bool
	Quiet     bool
	ShowValue bool
	// Plain prints values without group separators.
	Plain bool
	// NoColor disables ANSI colors.
	NoColor bool

	// OutputFile receives the result when set.
	OutputFile string
	// MemoryLimit is a human-readable size such as "512MB". It derives a
	// digit-group cap when MaxGroups is zero.
	MemoryLimit string
	// MaxGroups caps every WholeNumber accumulator. Zero is unbounded.
	MaxGroups int
	// GCMode is auto, aggressive or disabled.
	GCMode string
	// LastDigits, when non-zero, computes only the last K digits by modular
	// fast doubling.
	LastDigits int
	// Verify checks the trailing digits of each result by modular arithmetic.
	Verify bool

	// Console runs the interactive two-prompt sequence driver.
	Console bool
	// Interactive starts the REPL.
	Interactive bool
	// TUI starts the dashboard.
	TUI bool
	// Completion names a shell to print a completion script for.
	Completion string
	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string
	// ConfigFile is the YAML file that was loaded, if any.
	ConfigFile string
}

// ToCalculationOptions converts the configuration into calculator options.
// The group cap comes from MaxGroups or, failing that, from MemoryLimit.
func (c AppConfig) ToCalculationOptions() fibonacci.Options {
	return fibonacci.Options{MaxGroups: c.ResolveMaxGroups()}
}

// ResolveMaxGroups returns the effective digit-group cap.
func (c AppConfig) ResolveMaxGroups() int {
	if c.MaxGroups > 0 {
		return c.MaxGroups
	}
	limit, err := memory.ParseMemoryLimit(c.MemoryLimit)
	if err != nil {
		return 0
	}
	return memory.MaxGroupsForLimit(limit)
}

func defaults() AppConfig {
	return AppConfig{
		N:       DefaultN,
		Algo:    DefaultAlgo,
		Timeout: DefaultTimeout,
		GCMode:  string(memory.GCModeAuto),
		Verify:  true,
	}
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Usage and parse errors are written to errWriter. A --help request returns
// flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	cfg := defaults()
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	algoHelp := fmt.Sprintf("Algorithm: %s or all.", strings.Join(availableAlgos, ", "))

	fs.Uint64Var(&cfg.N, "n", cfg.N, "Index of the Fibonacci number to compute.")
	fs.Uint64Var(&cfg.Count, "seq", 0, "List the first COUNT Fibonacci numbers instead of computing F(n).")
	fs.StringVar(&cfg.Algo, "algo", cfg.Algo, algoHelp)
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Maximum duration of the run.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging (shorthand).")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose logging.")
	fs.BoolVar(&cfg.Details, "d", false, "Show performance details (shorthand).")
	fs.BoolVar(&cfg.Details, "details", false, "Show performance details.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Print only the result (shorthand).")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&cfg.ShowValue, "c", false, "Print the full value (shorthand).")
	fs.BoolVar(&cfg.ShowValue, "calculate", false, "Print the full value.")
	fs.BoolVar(&cfg.Plain, "plain", false, "Print values without group separators.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write the result to FILE (shorthand).")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the result to FILE.")
	fs.StringVar(&cfg.MemoryLimit, "memory-limit", "", "Memory budget for accumulators, e.g. 512MB.")
	fs.IntVar(&cfg.MaxGroups, "max-groups", 0, "Maximum digit groups per number (0 = unbounded).")
	fs.StringVar(&cfg.GCMode, "gc", cfg.GCMode, "GC control during calculation: auto, aggressive or disabled.")
	fs.IntVar(&cfg.LastDigits, "last-digits", 0, "Compute only the last K digits.")
	fs.BoolVar(&cfg.Verify, "verify", cfg.Verify, "Check trailing digits of results by modular arithmetic.")
	fs.BoolVar(&cfg.Console, "console", false, "Run the interactive two-prompt sequence driver.")
	fs.BoolVar(&cfg.Interactive, "i", false, "Start the REPL (shorthand).")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Start the REPL.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Start the dashboard.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script for SHELL (bash, zsh, fish).")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on ADDR, e.g. :9090.")
	fs.StringVar(&cfg.ConfigFile, "config", "", "Load settings from a YAML file.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if cfg.ConfigFile == "" && !isFlagSet(fs, "config") {
		cfg.ConfigFile = getEnvString("CONFIG", "")
	}
	if cfg.ConfigFile != "" {
		file, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return AppConfig{}, apperrors.NewConfigError("%v", err)
		}
		file.apply(&cfg, fs)
	}
	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(availableAlgos); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistent or out-of-range values.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: %s, all)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if c.MaxGroups < 0 {
		return apperrors.NewConfigError("--max-groups must not be negative, got %d", c.MaxGroups)
	}
	if _, err := memory.ParseMemoryLimit(c.MemoryLimit); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if _, err := memory.ParseGCMode(c.GCMode); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.LastDigits < 0 || c.LastDigits > MaxLastDigits {
		return apperrors.NewConfigError("--last-digits must be between 0 and %d, got %d", MaxLastDigits, c.LastDigits)
	}
	if c.LastDigits > 0 && c.Count > 0 {
		return apperrors.NewConfigError("--last-digits cannot be combined with --seq")
	}
	modes := 0
	for _, on := range []bool{c.Console, c.Interactive, c.TUI} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--console, --interactive and --tui are mutually exclusive")
	}
	if c.Completion != "" && !slices.Contains([]string{"bash", "zsh", "fish"}, c.Completion) {
		return apperrors.NewConfigError("unsupported shell %q for --completion", c.Completion)
	}
	return nil
}
