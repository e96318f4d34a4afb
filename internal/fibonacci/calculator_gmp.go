//go:build gmp

package fibonacci

import (
	"context"

	"github.com/ncw/gmp"

	"github.com/agbru/fibwhole/internal/wholenumber"
)

// GMPIterative runs the additive recurrence on GMP integers. It is only
// available in binaries built with the gmp tag.
type GMPIterative struct{}

func init() {
	builtinCalculators["gmp"] = func() coreCalculator { return &GMPIterative{} }
}

// Name returns the algorithm name.
func (c *GMPIterative) Name() string {
	return "Iterative GMP (O(n·d))"
}

// CalculateCore implements coreCalculator.
func (c *GMPIterative) CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, opts Options) (*wholenumber.WholeNumber, error) {
	a, b := gmp.NewInt(0), gmp.NewInt(1)
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
	return wholenumber.Parse(a.String(), opts.groupOptions()...)
}
