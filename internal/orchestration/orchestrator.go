package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibwhole/internal/config"
	apperrors "github.com/agbru/fibwhole/internal/errors"
	"github.com/agbru/fibwhole/internal/fibonacci"
	"github.com/agbru/fibwhole/internal/metrics"
	"github.com/agbru/fibwhole/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel per calculator.
const ProgressBufferMultiplier = 5

var tracer = otel.Tracer("github.com/agbru/fibwhole/internal/orchestration")

// ExecOption customizes ExecuteCalculations.
type ExecOption func(*execSettings)

type execSettings struct {
	metrics   *metrics.Calculation
	observers []progress.ProgressObserver
}

// WithMetrics records every run, and every addition of the linked-list
// calculator, on m.
func WithMetrics(m *metrics.Calculation) ExecOption {
	return func(s *execSettings) { s.metrics = m }
}

// WithObserver registers o on every calculator in addition to the progress
// reporter.
func WithObserver(o progress.ProgressObserver) ExecOption {
	return func(s *execSettings) { s.observers = append(s.observers, o) }
}

// ExecuteCalculations runs every calculator on F(cfg.N) concurrently, each
// with its own accumulators, and returns one result per calculator in input
// order. A failing calculator does not cancel the others. The progress
// reporter is stopped before the function returns.
func ExecuteCalculations(ctx context.Context, calculators []fibonacci.Calculator, cfg config.AppConfig, progressReporter ProgressReporter, out io.Writer, opts ...ExecOption) []CalculationResult {
	var settings execSettings
	for _, opt := range opts {
		opt(&settings)
	}

	calcOpts := cfg.ToCalculationOptions()
	if settings.metrics != nil {
		calcOpts.Recorder = settings.metrics
	}
	calcOpts.Observers = settings.observers

	ctx, span := tracer.Start(ctx, "ExecuteCalculations",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int64("fib.n", int64(cfg.N)), attribute.Int("fib.calculators", len(calculators))))
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan progress.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	for i, calc := range calculators {
		g.Go(func() error {
			results[i] = runOne(ctx, calc, i, cfg.N, calcOpts, progressChan, settings.metrics)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func runOne(ctx context.Context, calc fibonacci.Calculator, idx int, n uint64, opts fibonacci.Options, progressChan chan<- progress.ProgressUpdate, m *metrics.Calculation) CalculationResult {
	ctx, span := tracer.Start(ctx, "Calculate", trace.WithAttributes(attribute.String("fib.algorithm", calc.Name())))
	defer span.End()

	var done func(int, error)
	if m != nil {
		done = m.Start(calc.Name())
	}

	start := time.Now()
	res, err := calc.Calculate(ctx, progressChan, idx, n, opts)
	duration := time.Since(start)

	groups := 0
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		err = apperrors.CalculationError{Algorithm: calc.Name(), N: n, Cause: err}
	} else {
		groups = res.Len()
		span.SetAttributes(attribute.Int("fib.groups", groups))
	}
	if done != nil {
		done(groups, err)
	}

	return CalculationResult{Name: calc.Name(), Result: res, Duration: duration, Err: err}
}

// AnalyzeComparisonResults sorts results (successes first, fastest first),
// shows the comparison table and checks that every successful calculator
// produced the same value. It returns the exit code: success, a mismatch,
// or the code chosen by handler for the first error when nothing succeeded.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *CalculationResult
	var firstError error
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the calculation.\n")
		return handler.HandleError(firstError, 0, out)
	}

	if !Consistent(results) {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the algorithms.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}

// Consistent reports whether every successful result holds the same value.
func Consistent(results []CalculationResult) bool {
	var ref *CalculationResult
	for i := range results {
		if results[i].Err != nil || results[i].Result == nil {
			continue
		}
		if ref == nil {
			ref = &results[i]
			continue
		}
		if !results[i].Result.Equal(ref.Result) {
			return false
		}
	}
	return true
}
