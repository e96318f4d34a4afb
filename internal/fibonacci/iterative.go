package fibonacci

import (
	"context"
	"math/big"

	"github.com/agbru/fibwhole/internal/wholenumber"
)

// BigIterative runs the same recurrence as ListAccumulator on math/big
// integers and converts the result. It serves as a reference for
// cross-checking the linked-list arithmetic.
type BigIterative struct{}

// Name returns the algorithm name.
func (c *BigIterative) Name() string {
	return "Iterative math/big (O(n·d))"
}

// CalculateCore implements coreCalculator.
func (c *BigIterative) CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, opts Options) (*wholenumber.WholeNumber, error) {
	a, b := new(big.Int), big.NewInt(1)
	interval := opts.reportInterval()
	for i := uint64(0); i < n; i++ {
		if i%CancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		a.Add(a, b)
		a, b = b, a
		ReportStepProgress(reporter, i+1, n, interval)
	}
	return wholenumber.FromBigInt(a, opts.groupOptions()...)
}
