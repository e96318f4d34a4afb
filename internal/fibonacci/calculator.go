// Package fibonacci computes Fibonacci numbers on WholeNumber accumulators
// and exposes the algorithms behind a common Calculator interface.
package fibonacci

import (
	"context"

	"github.com/agbru/fibwhole/internal/wholenumber"
)

// Calculator computes Fibonacci numbers and reports progress on a channel.
type Calculator interface {
	// Calculate computes F(n). Progress updates tagged with calcIndex are sent
	// on progressChan when it is non-nil; sends never block.
	Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64, opts Options) (*wholenumber.WholeNumber, error)
	// Name returns a human-readable algorithm name.
	Name() string
}

// coreCalculator is implemented by each algorithm. It reports progress
// through a plain callback and knows nothing about channels or observers.
type coreCalculator interface {
	CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, opts Options) (*wholenumber.WholeNumber, error)
	Name() string
}

// StepRecorder receives one call per addition performed by the linked-list
// calculator, with the accumulator's group count before and after.
type StepRecorder interface {
	RecordAddition(groupsBefore, groupsAfter int)
}

// Options configures a calculation.
type Options struct {
	// MaxGroups caps the digit groups of every accumulator. Zero is unbounded.
	MaxGroups int
	// ReportInterval is the number of steps between progress reports.
	// Zero selects DefaultReportInterval.
	ReportInterval uint64
	// Recorder, when set, observes every addition.
	Recorder StepRecorder
	// Observers receive progress alongside the progress channel.
	Observers []ProgressObserver
}

func (o Options) groupOptions() []wholenumber.Option {
	if o.MaxGroups <= 0 {
		return nil
	}
	return []wholenumber.Option{wholenumber.WithMaxGroups(o.MaxGroups)}
}

func (o Options) reportInterval() uint64 {
	if o.ReportInterval == 0 {
		return DefaultReportInterval
	}
	return o.ReportInterval
}

// FibCalculator adapts a coreCalculator to the Calculator interface.
type FibCalculator struct {
	core coreCalculator
}

// NewCalculator wraps an algorithm implementation.
func NewCalculator(core coreCalculator) Calculator {
	return &FibCalculator{core: core}
}

// Name returns the name of the wrapped algorithm.
func (c *FibCalculator) Name() string {
	return c.core.Name()
}

// Calculate implements Calculator.
func (c *FibCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64, opts Options) (*wholenumber.WholeNumber, error) {
	subject := NewProgressSubject()
	if progressChan != nil {
		subject.Register(NewChannelObserver(progressChan))
	}
	for _, o := range opts.Observers {
		subject.Register(o)
	}
	return c.CalculateWithObservers(ctx, subject, calcIndex, n, opts)
}

// CalculateWithObservers computes F(n) and notifies every observer
// registered on subject. A final update of 1.0 is published on success.
func (c *FibCalculator) CalculateWithObservers(ctx context.Context, subject *ProgressSubject, calcIndex int, n uint64, opts Options) (*wholenumber.WholeNumber, error) {
	report := subject.Freeze(calcIndex)
	result, err := c.core.CalculateCore(ctx, report, n, opts)
	if err != nil {
		return nil, err
	}
	report(1.0)
	return result, nil
}
