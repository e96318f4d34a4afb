package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/agbru/fibwhole/internal/cli"
	apperrors "github.com/agbru/fibwhole/internal/errors"
	"github.com/agbru/fibwhole/internal/fibonacci"
	"github.com/agbru/fibwhole/internal/fibonacci/memory"
	"github.com/agbru/fibwhole/internal/format"
	"github.com/agbru/fibwhole/internal/logging"
	"github.com/agbru/fibwhole/internal/metrics"
	"github.com/agbru/fibwhole/internal/orchestration"
	"github.com/agbru/fibwhole/internal/progress"
	"github.com/agbru/fibwhole/internal/server"
	"github.com/agbru/fibwhole/internal/wholenumber"
)

// progressLogStep is the progress fraction between debug log lines.
const progressLogStep = 0.25

// runCalculate orchestrates the execution of the CLI calculation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	// Partial computation mode: last K digits only
	if a.Config.LastDigits > 0 {
		return a.runLastDigits(ctx, out)
	}

	if a.Config.MemoryLimit != "" {
		if code := a.validateMemoryBudget(out); code != apperrors.ExitSuccess {
			return code
		}
	}

	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	var execOpts []orchestration.ExecOption
	if a.Config.MetricsAddr != "" {
		m := metrics.NewCalculation()
		stop := a.startMetricsServer(ctx, m)
		defer stop()
		execOpts = append(execOpts, orchestration.WithMetrics(m))
	}
	if a.Config.Verbose {
		execOpts = append(execOpts, orchestration.WithObserver(progress.NewLoggingObserver(a.logger, progressLogStep)))
	}

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	gcMode, _ := memory.ParseGCMode(a.Config.GCMode)
	gc := memory.NewGCController(gcMode, a.Config.N)
	gc.SetLogger(a.logger)

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()

	a.logger.Debug().
		Uint64("n", a.Config.N).
		Str("algo", a.Config.Algo).
		Int("max_groups", a.Config.ResolveMaxGroups()).
		Bool("gc_suspended", gc.Active()).
		Msg("starting calculation")

	gc.Begin()
	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, a.Config, progressReporter, progressOut, execOpts...)
	gc.End()

	after := collector.Snapshot()
	a.logger.Debug().
		Stringer("memory", after).
		Dur("gc_pause", after.Since(before).GCPause).
		Msg("calculation finished")

	if a.Config.Verify {
		a.verifyResults(results)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowValue:  a.Config.ShowValue,
		Plain:      a.Config.Plain,
	}

	code := a.analyzeResultsWithOutput(results, outputCfg, out)
	if a.Config.Details && !a.Config.Quiet {
		cli.DisplayMemoryStats(before, after, out)
	}
	return code
}

// validateMemoryBudget checks if the estimated memory usage fits within the configured limit.
func (a *Application) validateMemoryBudget(out io.Writer) int {
	limit, err := memory.ParseMemoryLimit(a.Config.MemoryLimit)
	if err != nil {
		fmt.Fprintf(out, "Invalid --memory-limit: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	est := memory.EstimateMemoryUsage(a.Config.N)
	if est.TotalBytes > limit {
		fmt.Fprintf(out, "Estimated memory %s exceeds limit %s.\n",
			memory.FormatMemoryEstimate(est),
			a.Config.MemoryLimit)
		fmt.Fprintf(out, "Consider using --last-digits K for O(K) memory usage.\n")
		return apperrors.ExitErrorConfig
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Memory estimate: %s (limit: %s)\n",
			memory.FormatMemoryEstimate(est), a.Config.MemoryLimit)
	}
	return apperrors.ExitSuccess
}

// startMetricsServer serves m until ctx ends. The returned function waits
// for the server to shut down.
func (a *Application) startMetricsServer(ctx context.Context, m *metrics.Calculation) func() {
	srv := server.New(a.Config.MetricsAddr, m, logging.NewLogger(a.ErrWriter, "metrics"))
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.ListenAndServe(ctx); err != nil {
			a.logger.Error().Err(err).Str("addr", a.Config.MetricsAddr).Msg("metrics server failed")
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// verifyResults checks the trailing digits of every successful result
// against modular fast doubling. A mismatch turns the result into an error.
func (a *Application) verifyResults(results []orchestration.CalculationResult) {
	for i := range results {
		r := &results[i]
		if r.Err != nil || r.Result == nil {
			continue
		}
		if err := fibonacci.VerifyLastDigits(a.Config.N, r.Result); err != nil {
			a.logger.Error().Err(err).Str("algo", r.Name).Msg("verification failed")
			r.Err = apperrors.CalculationError{Algorithm: r.Name, N: a.Config.N, Cause: err}
			r.Result = nil
			continue
		}
		a.logger.Debug().Str("algo", r.Name).Msg("trailing digits verified")
	}
}

// runSequenceList writes F(1) through F(Count) with the linked-list
// accumulators.
func (a *Application) runSequenceList(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	seq, err := fibonacci.NewSequence(a.Config.ToCalculationOptions())
	if err != nil {
		return a.handleError(err, out)
	}

	w := bufio.NewWriter(out)
	if !a.Config.Quiet {
		fmt.Fprintf(w, "--- Fibonacci sequence F(1)..F(%s) ---\n", format.FormatCount(a.Config.Count))
	}

	start := time.Now()
	err = seq.Each(ctx, a.Config.Count, func(index uint64, term *wholenumber.WholeNumber) error {
		if a.Config.Quiet {
			_, werr := fmt.Fprintln(w, cli.FormatValue(term, a.Config.Plain))
			return werr
		}
		_, werr := fmt.Fprintf(w, "F(%d) = %s\n", index, cli.FormatValue(term, a.Config.Plain))
		return werr
	})
	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		return a.handleError(err, out)
	}

	a.logger.Debug().
		Uint64("count", a.Config.Count).
		Dur("elapsed", time.Since(start)).
		Msg("sequence listed")
	return apperrors.ExitSuccess
}

// runLastDigits computes only the last K decimal digits of F(N) using modular
// arithmetic, requiring O(K) memory regardless of N.
func (a *Application) runLastDigits(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	k := a.Config.LastDigits
	n := a.Config.N
	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)

	if !a.Config.Quiet {
		fmt.Fprintf(out, "Computing last %d digits of F(%d)...\n", k, n)
	}

	start := time.Now()
	result, err := fibonacci.FastDoublingModContext(ctx, n, mod)
	elapsed := time.Since(start)
	if err != nil {
		return a.handleError(err, out)
	}

	digits := fmt.Sprintf("%0*s", k, result.String())
	if a.Config.Quiet {
		fmt.Fprintln(out, digits)
	} else {
		fmt.Fprintf(out, "Last %d digits of F(%d): %s\n", k, n, digits)
		fmt.Fprintf(out, "Computed in %s\n", format.FormatExecutionDuration(elapsed))
	}
	return apperrors.ExitSuccess
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	if outputCfg.Quiet && bestResult != nil {
		if !orchestration.Consistent(results) {
			return apperrors.ExitErrorMismatch
		}
		cli.DisplayQuietResult(out, bestResult.Result, outputCfg.Plain)
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	presOpts := orchestration.PresentationOptions{
		N:         a.Config.N,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		ShowValue: a.Config.ShowValue,
		Plain:     a.Config.Plain,
	}
	presenter := cli.CLIResultPresenter{}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, out)

	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			cli.DisplaySaved(out, outputCfg.OutputFile)
		}
	}
	return exitCode
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.CalculationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, a.Config.N, res.Duration, res.Name, cfg); err != nil {
		a.logger.Error().Err(err).Str("file", cfg.OutputFile).Msg("saving result")
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
