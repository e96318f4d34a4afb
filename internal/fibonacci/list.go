package fibonacci

import (
	"context"

	"github.com/agbru/fibwhole/internal/wholenumber"
)

// ListAccumulator computes F(n) by iterating the sequence with three
// linked-list WholeNumber accumulators. It performs n-1 additions of
// O(groups) each.
type ListAccumulator struct{}

// Name returns the algorithm name.
func (c *ListAccumulator) Name() string {
	return "Linked-List Accumulator (O(n·d), base 1000)"
}

// CalculateCore implements coreCalculator.
func (c *ListAccumulator) CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, opts Options) (*wholenumber.WholeNumber, error) {
	if n == 0 {
		return wholenumber.New(0, opts.groupOptions()...)
	}
	seq, err := NewSequence(opts)
	if err != nil {
		return nil, err
	}
	interval := opts.reportInterval()
	for seq.Index() < n {
		if seq.Index()%CancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if err := seq.Advance(); err != nil {
			return nil, err
		}
		ReportStepProgress(reporter, seq.Index(), n, interval)
	}
	// The sequence is dropped here, so its accumulator can be handed out.
	return seq.fib, nil
}
